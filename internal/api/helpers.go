package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roomies/internal/domain"
)

// currentUserID reads the authenticated user ID set by the JWT middleware.
// Aborts with 401 when absent.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return id, true
}

// currentUser loads the full user record for the authenticated user.
func currentUser(c *gin.Context, db *gorm.DB) (*domain.User, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	var user domain.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return &user, true
}

// scopedExpenses narrows a query to all expenses involving the user, as payer
// or roommate. Every expense read passes through this scope before any domain
// computation runs.
func scopedExpenses(db *gorm.DB, userID uint) *gorm.DB {
	return db.Where("user_id = ? OR roommate_id = ?", userID, userID)
}

// findScopedExpense fetches one expense visible to the user, associations
// preloaded. Writes the 404 response on miss.
func findScopedExpense(c *gin.Context, db *gorm.DB, userID uint, id string) (*domain.Expense, bool) {
	var expense domain.Expense
	err := scopedExpenses(db, userID).
		Preload("User").Preload("Roommate").Preload("SettledBy").
		First(&expense, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return nil, false
	}
	return &expense, true
}

// renderValidationError maps domain validation failures to a 422 with the
// field message list; anything else becomes a 500.
func renderValidationError(c *gin.Context, err error) {
	if verrs, ok := err.(domain.ValidationErrors); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs.Messages()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
