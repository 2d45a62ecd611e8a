package api

import (
	"net/http"
	"strconv"
	"time"

	"ecocampus/internal/domain"
	"ecocampus/internal/service"
	"ecocampus/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TopUpRequest represents a wallet top-up request
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"` // Top-up amount
}

// PurchaseRequest represents a purchase request
type PurchaseRequest struct {
	ItemName string          `json:"item_name" binding:"required"` // Purchased item
	Price    decimal.Decimal `json:"price" binding:"required"`     // Item price
	Category string          `json:"category" binding:"required"`  // CANTINA or BAR
}

// walletCacheKey is the redis key caching one user's wallet read.
func walletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// invalidateWallet drops the cached wallet after a mutation.
func invalidateWallet(c *gin.Context, userID uint) {
	if v, exists := c.Get("redisClient"); exists {
		if rdb, ok := v.(*redis.Client); ok {
			_ = utils.DeleteCache(c.Request.Context(), rdb, walletCacheKey(userID))
		}
	}
}

// GetWalletHandler returns wallet info for the authenticated user
func GetWalletHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		ctx := c.Request.Context()

		cacheKey := walletCacheKey(userID)
		var wallet domain.Wallet
		found, err := utils.GetCache(ctx, rdb, cacheKey, &wallet)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wallet": wallet, "cached": true})
			return
		}

		w, err := svc.Wallet(ctx, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, w, 60*time.Second) // Cache the wallet for 60 seconds
		c.JSON(http.StatusOK, gin.H{"wallet": w, "cached": false})
	}
}

// TopUpHandler credits the authenticated user's wallet
func TopUpHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		var req TopUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		balance, err := svc.CreditWallet(c.Request.Context(), userID, req.Amount)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		invalidateWallet(c, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Top-up successful", "balance": balance})
	}
}

// PurchaseHandler debits the wallet and records the order
func PurchaseHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		category, err := domain.ParseCategory(req.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		err = svc.ProcessPurchase(c.Request.Context(), userID, req.ItemName, req.Price, category)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		invalidateWallet(c, userID)
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"item":    req.ItemName,
			"price":   req.Price.String(),
			"type":    req.Category,
		}).Info("Purchase handled")
		c.JSON(http.StatusOK, gin.H{"message": "Purchase successful"})
	}
}

// OrdersHandler returns the authenticated user's purchase history, most
// recent first
func OrdersHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		orders, err := svc.PurchaseHistory(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
