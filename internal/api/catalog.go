package api

import (
	"net/http"
	"time"

	"ecocampus/internal/campus"
	"ecocampus/internal/domain"
	"ecocampus/internal/remote"
	"ecocampus/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Catalogue reads are cached briefly: the documents change at most daily and
// the fallback value is cheap to serve but not worth pinning.
const catalogCacheTTL = 5 * time.Minute

// MenuHandler returns the daily canteen menu (or its fallback)
func MenuHandler(client *remote.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var menu domain.Menu
		found, err := utils.GetCache(ctx, rdb, "catalog:menu", &menu)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"menu": menu, "cached": true})
			return
		}
		menu, ok := client.Menu(ctx)
		if ok {
			// Only a live document is cached; the fallback is served but
			// never pinned, so the next request retries the remote.
			_ = utils.SetCache(ctx, rdb, "catalog:menu", menu, catalogCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"menu": menu, "cached": false})
	}
}

// ProductsHandler returns the bar catalogue (or an empty list)
func ProductsHandler(client *remote.Client, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var products []domain.Product
		found, err := utils.GetCache(ctx, rdb, "catalog:products", &products)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"products": products, "cached": true})
			return
		}
		products, ok := client.Products(ctx)
		if ok {
			_ = utils.SetCache(ctx, rdb, "catalog:products", products, catalogCacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "cached": false})
	}
}

// LocationsHandler returns the static campus site markers
func LocationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"locations": campus.Locations()})
	}
}
