package api

import (
	"errors"
	"net/http"

	"ecocampus/internal/service"
	"ecocampus/internal/utils"

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request and Response structs
type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`           // Display name must be provided
	StudentNumber string `json:"student_number" binding:"required"` // Student number must be provided
	Email         string `json:"email" binding:"required,email"`    // Email must be provided and well-formed
	Password      string `json:"password" binding:"required"`       // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token  string `json:"token"`   // JWT token for the protected routes
	UserID uint   `json:"user_id"` // Authenticated user id
}

// RegisterHandler creates the account (with its zero-balance wallet),
// establishes the session and returns a token.
func RegisterHandler(svc *service.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := svc.Register(c.Request.Context(), req.Name, req.StudentNumber, req.Email, req.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		token, err := utils.GenerateJWT(id, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Token: token, UserID: id})
	}
}

// LoginHandler authenticates a user, establishes the session and returns a
// JWT token.
func LoginHandler(svc *service.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		token, err := utils.GenerateJWT(id, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, UserID: id})
	}
}

// LogoutHandler clears the durable session. Stored records are untouched.
func LogoutHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// respondServiceError maps service errors onto short user-facing messages.
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already registered"})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
	case errors.Is(err, service.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, service.ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, try again"})
	}
}
