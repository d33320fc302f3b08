package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roomies/internal/domain"
)

const defaultShoppingPerPage = 20

// ShoppingItemRequest is the create payload.
type ShoppingItemRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	RoommateID uint   `json:"roommate_id"`
}

// ShoppingItemUpdateRequest is the partial-update payload.
type ShoppingItemUpdateRequest struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	RoommateID *uint   `json:"roommate_id"`
}

// findShoppingItem fetches one of the current user's items, associations
// preloaded. Writes the 404 response on miss.
func findShoppingItem(c *gin.Context, db *gorm.DB, userID uint, id string) (*domain.ShoppingItem, bool) {
	var item domain.ShoppingItem
	err := db.Where("user_id = ?", userID).
		Preload("User").Preload("Roommate").
		First(&item, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shopping item not found"})
		return nil, false
	}
	return &item, true
}

// ListShoppingItemsHandler returns the current user's shopping items, newest
// first, with completion and category filters.
func ListShoppingItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		page, perPage := pageParams(c, defaultShoppingPerPage)

		query := db.Model(&domain.ShoppingItem{}).Where("user_id = ?", userID)

		// Filters
		if completed := c.Query("completed"); completed != "" {
			query = query.Where("completed = ?", completed == "true")
		}
		if cat := c.Query("category"); cat != "" {
			if v, ok := domain.ParseShoppingCategory(cat); ok {
				query = query.Where("category = ?", v)
			}
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count shopping items"})
			return
		}
		var items []domain.ShoppingItem
		offset := (page - 1) * perPage
		if err := query.Preload("User").Preload("Roommate").
			Order("created_at desc").Offset(offset).Limit(perPage).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping items"})
			return
		}

		resp := make([]ShoppingItemResponse, len(items))
		for i := range items {
			resp[i] = NewShoppingItemResponse(&items[i], userID)
		}
		c.JSON(http.StatusOK, gin.H{
			"shopping_items": resp,
			"pagination":     newPagination(page, perPage, total),
		})
	}
}

// CreateShoppingItemHandler adds an item to the current user's list.
func CreateShoppingItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ShoppingItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		item := domain.ShoppingItem{
			Name:       req.Name,
			Category:   domain.ShoppingOther,
			UserID:     userID,
			RoommateID: req.RoommateID,
		}
		if req.Category != "" {
			cat, ok := domain.ParseShoppingCategory(req.Category)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Category is not a valid category"}})
				return
			}
			item.Category = cat
		}
		if req.RoommateID != 0 {
			var roommate domain.User
			if err := db.First(&roommate, req.RoommateID).Error; err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Roommate must exist"}})
				return
			}
		}
		if err := item.Validate(); err != nil {
			renderValidationError(c, err)
			return
		}
		if err := db.Create(&item).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create shopping item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shopping item"})
			return
		}
		db.Preload("User").Preload("Roommate").First(&item, item.ID)
		c.JSON(http.StatusCreated, gin.H{"shopping_item": NewShoppingItemResponse(&item, userID)})
	}
}

// GetShoppingItemHandler returns one of the current user's items.
func GetShoppingItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		item, ok := findShoppingItem(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"shopping_item": NewShoppingItemResponse(item, userID)})
	}
}

// UpdateShoppingItemHandler applies a partial update.
func UpdateShoppingItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		item, ok := findShoppingItem(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		var req ShoppingItemUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Category != nil {
			cat, ok := domain.ParseShoppingCategory(*req.Category)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Category is not a valid category"}})
				return
			}
			item.Category = cat
		}
		if req.RoommateID != nil {
			var roommate domain.User
			if err := db.First(&roommate, *req.RoommateID).Error; err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Roommate must exist"}})
				return
			}
			item.RoommateID = *req.RoommateID
			item.Roommate = roommate
		}
		if err := item.Validate(); err != nil {
			renderValidationError(c, err)
			return
		}
		if err := db.Save(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shopping item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shopping_item": NewShoppingItemResponse(item, userID)})
	}
}

// DeleteShoppingItemHandler removes an item.
func DeleteShoppingItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		item, ok := findShoppingItem(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		if err := db.Delete(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shopping item"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ToggleShoppingItemHandler flips the completed flag.
func ToggleShoppingItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		item, ok := findShoppingItem(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		item.ToggleCompletion()
		if err := db.Model(item).Update("completed", item.Completed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle shopping item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shopping_item": NewShoppingItemResponse(item, userID)})
	}
}

// ClearCompletedShoppingItemsHandler deletes every completed item in bulk.
func ClearCompletedShoppingItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		if err := db.Where("user_id = ? AND completed = ?", userID, true).
			Delete(&domain.ShoppingItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear completed items"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ShoppingStatsHandler returns the pending/completed counts.
func ShoppingStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var total, pending, completed int64
		base := db.Model(&domain.ShoppingItem{}).Where("user_id = ?", userID)
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := base.Session(&gorm.Session{}).Where("completed = ?", false).Count(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := base.Session(&gorm.Session{}).Where("completed = ?", true).Count(&completed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total":     total,
			"pending":   pending,
			"completed": completed,
		})
	}
}
