package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roomies/internal/domain"
)

// MeHandler returns the authenticated user.
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": NewUserResponse(user)})
	}
}

// ListUsersHandler returns every user in the household, for the roommate
// picker in the SPA.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User
		if err := db.Order("id").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		resp := make([]UserResponse, len(users))
		for i := range users {
			resp[i] = NewUserResponse(&users[i])
		}
		c.JSON(http.StatusOK, gin.H{"users": resp})
	}
}
