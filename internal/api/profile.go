package api

import (
	"net/http"

	"ecocampus/internal/service"

	"github.com/gin-gonic/gin" // Gin web framework
)

// ProfileResponse hides the credential hash from profile reads.
type ProfileResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	StudentNumber string `json:"student_number"`
}

// UpdateProfileRequest carries the editable profile fields. The credential
// is not editable here.
type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	StudentNumber string `json:"student_number" binding:"required"`
}

// GetProfileHandler returns the authenticated user's profile
func GetProfileHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		user, err := svc.UserByID(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, ProfileResponse{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			StudentNumber: user.StudentNumber,
		})
	}
}

// UpdateProfileHandler saves profile edits (name, email, student number)
func UpdateProfileHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint)
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email, req.StudentNumber)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": ProfileResponse{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			StudentNumber: user.StudentNumber,
		}})
	}
}
