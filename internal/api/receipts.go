package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roomies/internal/domain"
)

// Receipts can be many; smaller default page for the SPA's grid layout.
const defaultReceiptPerPage = 12

// ReceiptRequest is the create payload.
type ReceiptRequest struct {
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	ExpenseID *uint           `json:"expense_id"`
}

// ReceiptUpdateRequest is the partial-update payload.
type ReceiptUpdateRequest struct {
	Title    *string          `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
	Status   *string          `json:"status"`
}

// LinkReceiptRequest names the expense to link.
type LinkReceiptRequest struct {
	ExpenseID uint `json:"expense_id"`
}

// findReceipt fetches one of the current user's receipts, associations
// preloaded. Writes the 404 response on miss.
func findReceipt(c *gin.Context, db *gorm.DB, userID uint, id string) (*domain.Receipt, bool) {
	var receipt domain.Receipt
	err := db.Where("user_id = ?", userID).
		Preload("User").
		Preload("Expense").Preload("Expense.User").Preload("Expense.Roommate").Preload("Expense.SettledBy").
		First(&receipt, "id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return nil, false
	}
	return &receipt, true
}

// ListReceiptsHandler returns the current user's receipts with filtering,
// sorting and pagination.
func ListReceiptsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		page, perPage := pageParams(c, defaultReceiptPerPage)

		query := db.Model(&domain.Receipt{}).Where("user_id = ?", userID)

		// Filtering
		if search := c.Query("search"); search != "" {
			query = query.Where("title LIKE ?", "%"+search+"%")
		}
		if cat := c.Query("category"); cat != "" {
			if v, ok := domain.ParseReceiptCategory(cat); ok {
				query = query.Where("category = ?", v)
			}
		}
		if status := c.Query("status"); status != "" {
			if v, ok := domain.ParseReceiptStatus(status); ok {
				query = query.Where("status = ?", v)
			}
		}
		if c.Query("unlinked") == "true" {
			query = query.Where("expense_id IS NULL")
		}

		// Date range filter
		if from := c.Query("date_from"); from != "" {
			if t, err := time.Parse("2006-01-02", from); err == nil {
				query = query.Where("created_at >= ?", t)
			}
		}
		if to := c.Query("date_to"); to != "" {
			if t, err := time.Parse("2006-01-02", to); err == nil {
				query = query.Where("created_at <= ?", t)
			}
		}

		// Sorting
		switch c.Query("sort_by") {
		case "amount_desc":
			query = query.Order("amount desc")
		case "amount_asc":
			query = query.Order("amount asc")
		case "date_desc":
			query = query.Order("created_at desc")
		case "date_asc":
			query = query.Order("created_at asc")
		default:
			query = query.Order("created_at desc")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count receipts"})
			return
		}
		var receipts []domain.Receipt
		offset := (page - 1) * perPage
		if err := query.Preload("User").
			Preload("Expense").Preload("Expense.User").Preload("Expense.Roommate").
			Offset(offset).Limit(perPage).Find(&receipts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
			return
		}

		resp := make([]ReceiptResponse, len(receipts))
		for i := range receipts {
			resp[i] = NewReceiptResponse(&receipts[i])
		}
		c.JSON(http.StatusOK, gin.H{
			"receipts":   resp,
			"pagination": newPagination(page, perPage, total),
		})
	}
}

// CreateReceiptHandler stores a new receipt for the current user.
func CreateReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ReceiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		receipt := domain.Receipt{
			Title:  req.Title,
			Amount: req.Amount,
			UserID: userID,
		}
		if req.Category != "" {
			cat, ok := domain.ParseReceiptCategory(req.Category)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Category is not a valid category"}})
				return
			}
			receipt.Category = cat
		}
		if req.ExpenseID != nil {
			var expense domain.Expense
			if err := scopedExpenses(db, userID).First(&expense, *req.ExpenseID).Error; err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Expense must exist"}})
				return
			}
			receipt.ExpenseID = req.ExpenseID
			receipt.Status = domain.ReceiptLinked
		}
		if err := receipt.Validate(); err != nil {
			renderValidationError(c, err)
			return
		}
		if err := db.Create(&receipt).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create receipt")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create receipt"})
			return
		}
		db.Preload("User").
			Preload("Expense").Preload("Expense.User").Preload("Expense.Roommate").
			First(&receipt, receipt.ID)
		c.JSON(http.StatusCreated, gin.H{"receipt": NewReceiptResponse(&receipt)})
	}
}

// GetReceiptHandler returns one of the current user's receipts.
func GetReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		receipt, ok := findReceipt(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"receipt": NewReceiptResponse(receipt)})
	}
}

// UpdateReceiptHandler applies a partial update.
func UpdateReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		receipt, ok := findReceipt(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		var req ReceiptUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if req.Title != nil {
			receipt.Title = *req.Title
		}
		if req.Amount != nil {
			receipt.Amount = *req.Amount
		}
		if req.Category != nil {
			cat, ok := domain.ParseReceiptCategory(*req.Category)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Category is not a valid category"}})
				return
			}
			receipt.Category = cat
		}
		if req.Status != nil {
			status, ok := domain.ParseReceiptStatus(*req.Status)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Status is not a valid status"}})
				return
			}
			receipt.Status = status
		}
		if err := receipt.Validate(); err != nil {
			renderValidationError(c, err)
			return
		}
		if err := db.Save(receipt).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receipt"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"receipt": NewReceiptResponse(receipt)})
	}
}

// DeleteReceiptHandler removes a receipt. The linked expense is untouched.
func DeleteReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		receipt, ok := findReceipt(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		if err := db.Delete(receipt).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete receipt"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// LinkReceiptHandler ties a receipt to one of the current user's expenses and
// marks it linked. A receipt references at most one expense.
func LinkReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		receipt, ok := findReceipt(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		var req LinkReceiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var expense domain.Expense
		if err := scopedExpenses(db, userID).
			Preload("User").Preload("Roommate").Preload("SettledBy").
			First(&expense, req.ExpenseID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}

		receipt.ExpenseID = &expense.ID
		receipt.Expense = &expense
		receipt.Status = domain.ReceiptLinked
		if err := db.Model(receipt).Updates(map[string]any{
			"expense_id": expense.ID,
			"status":     domain.ReceiptLinked,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link receipt"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"receipt_id": receipt.ID,
			"expense_id": expense.ID,
			"user_id":    userID,
		}).Info("Receipt linked to expense")
		c.JSON(http.StatusOK, gin.H{"receipt": NewReceiptResponse(receipt)})
	}
}

// categoryStat is one row of the per-category breakdown.
type categoryStat struct {
	Name        string `json:"name"`
	Count       int64  `json:"count"`
	TotalAmount Money  `json:"total_amount"`
	Emoji       string `json:"emoji"`
}

// ReceiptStatsHandler returns counts and totals across the current user's
// receipts, with a per-category breakdown.
func ReceiptStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		base := db.Model(&domain.Receipt{}).Where("user_id = ?", userID)

		var totalCount, unlinkedCount, linkedCount int64
		if err := base.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := base.Session(&gorm.Session{}).Where("expense_id IS NULL").Count(&unlinkedCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := base.Session(&gorm.Session{}).Where("expense_id IS NOT NULL").Count(&linkedCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}

		var totalAmount decimal.Decimal
		row := base.Session(&gorm.Session{}).Select("COALESCE(SUM(amount), 0)").Row()
		if err := row.Scan(&totalAmount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}

		categories := make([]categoryStat, 0, len(domain.ReceiptCategories()))
		for _, cat := range domain.ReceiptCategories() {
			var count int64
			if err := base.Session(&gorm.Session{}).Where("category = ?", cat).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
				return
			}
			var catTotal decimal.Decimal
			row := base.Session(&gorm.Session{}).Where("category = ?", cat).Select("COALESCE(SUM(amount), 0)").Row()
			if err := row.Scan(&catTotal); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
				return
			}
			categories = append(categories, categoryStat{
				Name:        cat.String(),
				Count:       count,
				TotalAmount: NewMoney(catTotal),
				Emoji:       cat.Emoji(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"total_count":    totalCount,
			"total_amount":   NewMoney(totalAmount),
			"unlinked_count": unlinkedCount,
			"linked_count":   linkedCount,
			"categories":     categories,
		})
	}
}
