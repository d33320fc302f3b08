package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"roomies/internal/domain"
	"roomies/internal/ledger"
	"roomies/internal/utils"
)

const (
	defaultExpensePerPage = 10
	cacheTTL              = 60 * time.Second
)

// highValueThreshold is the cutoff for the high_value quick filter.
var highValueThreshold = decimal.NewFromInt(100)

// ExpenseRequest is the create payload. Validation happens on the domain
// record, so every field binds loosely.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	RoommateID  uint            `json:"roommate_id"`
}

// ExpenseUpdateRequest is the partial-update payload.
type ExpenseUpdateRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	RoommateID  *uint            `json:"roommate_id"`
}

// expenseListKey is the cache key for one unfiltered list page.
func expenseListKey(userID uint, page, perPage int) string {
	return "expenses:user:" + strconv.Itoa(int(userID)) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(perPage)
}

// balanceKey is the cache key for the balance as seen by userID.
func balanceKey(userID, roommateID uint) string {
	return "balance:user:" + strconv.Itoa(int(userID)) + ":roommate:" + strconv.Itoa(int(roommateID))
}

// invalidateExpenseCaches drops the cached list pages and both balance
// directions for the two users touched by an expense mutation.
// Simple version: delete the first 5 default-size pages per user.
func invalidateExpenseCaches(ctx context.Context, rdb *redis.Client, payerID, roommateID uint) {
	for _, id := range []uint{payerID, roommateID} {
		for page := 1; page <= 5; page++ {
			_ = utils.DeleteCache(ctx, rdb, expenseListKey(id, page, defaultExpensePerPage))
		}
	}
	_ = utils.DeleteCache(ctx, rdb, balanceKey(payerID, roommateID))
	_ = utils.DeleteCache(ctx, rdb, balanceKey(roommateID, payerID))
}

// ListExpensesHandler returns all expenses involving the current user, with
// filtering, sorting and pagination. Unfiltered pages are served from Redis.
func ListExpensesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		page, perPage := pageParams(c, defaultExpensePerPage)

		filtered := false
		for _, k := range []string{"search", "category", "status", "paid_by", "high_value", "date_from", "date_to", "sort_by"} {
			if c.Query(k) != "" {
				filtered = true
				break
			}
		}

		ctx := context.Background()
		cacheKey := expenseListKey(userID, page, perPage)
		var cached struct {
			Expenses   []ExpenseResponse `json:"expenses"`
			Pagination Pagination        `json:"pagination"`
		}
		if !filtered {
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"expenses":   cached.Expenses,
					"pagination": cached.Pagination,
					"cached":     true,
				})
				return
			}
		}

		query := scopedExpenses(db.Model(&domain.Expense{}), userID)

		// Basic filters
		if search := c.Query("search"); search != "" {
			query = query.Where("description LIKE ?", "%"+search+"%")
		}
		if cat := c.Query("category"); cat != "" {
			if v, ok := domain.ParseExpenseCategory(cat); ok {
				query = query.Where("category = ?", v)
			}
		}
		if status := c.Query("status"); status != "" {
			if v, ok := domain.ParseExpenseStatus(status); ok {
				query = query.Where("status = ?", v)
			}
		}

		// Quick filters
		if paidBy := c.Query("paid_by"); paidBy == "you" {
			query = query.Where("user_id = ?", userID)
		} else if paidBy == "roommate" {
			query = query.Where("user_id <> ?", userID)
		}
		if c.Query("high_value") == "true" {
			query = query.Where("amount > ?", highValueThreshold)
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
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count expenses"})
			return
		}
		var expenses []domain.Expense
		offset := (page - 1) * perPage
		if err := query.Preload("User").Preload("Roommate").Preload("SettledBy").
			Offset(offset).Limit(perPage).Find(&expenses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}

		resp := make([]ExpenseResponse, len(expenses))
		for i := range expenses {
			resp[i] = NewExpenseResponse(&expenses[i])
		}
		pagination := newPagination(page, perPage, total)

		if !filtered {
			cached.Expenses = resp
			cached.Pagination = pagination
			_ = utils.SetCache(ctx, rdb, cacheKey, cached, cacheTTL)
		}
		c.JSON(http.StatusOK, gin.H{
			"expenses":   resp,
			"pagination": pagination,
			"cached":     false,
		})
	}
}

// CreateExpenseHandler records a new shared expense paid by the current user.
func CreateExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ExpenseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		expense := domain.Expense{
			Amount:      req.Amount,
			Description: req.Description,
			Category:    domain.ExpenseOther,
			UserID:      userID,
			RoommateID:  req.RoommateID,
		}
		if req.Category != "" {
			cat, ok := domain.ParseExpenseCategory(req.Category)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Category is not a valid category"}})
				return
			}
			expense.Category = cat
		}
		if req.RoommateID != 0 {
			var roommate domain.User
			if err := db.First(&roommate, req.RoommateID).Error; err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Roommate must exist"}})
				return
			}
		}
		if err := expense.Validate(); err != nil {
			renderValidationError(c, err)
			return
		}
		if err := db.Create(&expense).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to create expense")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"expense_id":  expense.ID,
			"user_id":     userID,
			"roommate_id": expense.RoommateID,
			"amount":      expense.Amount.String(),
			"category":    expense.Category.String(),
		}).Info("Expense created")

		invalidateExpenseCaches(context.Background(), rdb, expense.UserID, expense.RoommateID)

		// Reload with associations for the response
		db.Preload("User").Preload("Roommate").First(&expense, expense.ID)
		c.JSON(http.StatusCreated, gin.H{"expense": NewExpenseResponse(&expense)})
	}
}

// GetExpenseHandler returns one expense visible to the current user.
func GetExpenseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		expense, ok := findScopedExpense(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"expense": NewExpenseResponse(expense)})
	}
}

// UpdateExpenseHandler applies a partial update. The original imposes no
// status guard, so settled expenses stay editable.
func UpdateExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		expense, ok := findScopedExpense(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		var req ExpenseUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		oldRoommateID := expense.RoommateID
		if req.Amount != nil {
			expense.Amount = *req.Amount
		}
		if req.Description != nil {
			expense.Description = *req.Description
		}
		if req.Category != nil {
			cat, ok := domain.ParseExpenseCategory(*req.Category)
			if !ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Category is not a valid category"}})
				return
			}
			expense.Category = cat
		}
		if req.RoommateID != nil {
			var roommate domain.User
			if err := db.First(&roommate, *req.RoommateID).Error; err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Roommate must exist"}})
				return
			}
			expense.RoommateID = *req.RoommateID
			expense.Roommate = roommate
		}
		if err := expense.Validate(); err != nil {
			renderValidationError(c, err)
			return
		}
		if err := db.Save(expense).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"expense_id": expense.ID,
				"error":      err.Error(),
			}).Error("Failed to update expense")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
			return
		}

		ctx := context.Background()
		invalidateExpenseCaches(ctx, rdb, expense.UserID, expense.RoommateID)
		if oldRoommateID != expense.RoommateID {
			invalidateExpenseCaches(ctx, rdb, expense.UserID, oldRoommateID)
		}
		c.JSON(http.StatusOK, gin.H{"expense": NewExpenseResponse(expense)})
	}
}

// DeleteExpenseHandler removes an expense. Balances are derived on demand, so
// no recomputation follows.
func DeleteExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		expense, ok := findScopedExpense(c, db, userID, c.Param("id"))
		if !ok {
			return
		}
		if err := db.Delete(expense).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"expense_id": expense.ID,
			"user_id":    userID,
		}).Info("Expense deleted")
		invalidateExpenseCaches(context.Background(), rdb, expense.UserID, expense.RoommateID)
		c.Status(http.StatusNoContent)
	}
}

// SettleExpenseHandler marks an expense settled by the current user via the
// ledger engine.
func SettleExpenseHandler(db *gorm.DB, rdb *redis.Client, engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		expense, ok := findScopedExpense(c, db, user.ID, c.Param("id"))
		if !ok {
			return
		}
		if err := engine.Settle(c.Request.Context(), expense, user); err != nil {
			if errors.Is(err, ledger.ErrAlreadySettled) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Expense is already settled"}})
				return
			}
			if _, isValidation := err.(domain.ValidationErrors); isValidation {
				renderValidationError(c, err)
				return
			}
			logrus.WithFields(logrus.Fields{
				"expense_id": expense.ID,
				"settled_by": user.ID,
				"error":      err.Error(),
			}).Error("Settlement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement failed"})
			return
		}
		expense.SettledBy = user
		logrus.WithFields(logrus.Fields{
			"expense_id": expense.ID,
			"settled_by": user.ID,
			"amount":     expense.Amount.String(),
		}).Info("Expense settled")

		invalidateExpenseCaches(context.Background(), rdb, expense.UserID, expense.RoommateID)
		c.JSON(http.StatusOK, gin.H{"expense": NewExpenseResponse(expense)})
	}
}

// BalanceHandler returns the net balance between the current user and the
// given roommate. Positive means the roommate owes the current user.
func BalanceHandler(db *gorm.DB, rdb *redis.Client, engine *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		roommateParam := c.Query("roommate_id")
		roommateID, err := strconv.ParseUint(roommateParam, 10, 32)
		if err != nil || roommateID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roommate_id is required"})
			return
		}
		var roommate domain.User
		if err := db.First(&roommate, roommateID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Roommate not found"})
			return
		}

		ctx := context.Background()
		cacheKey := balanceKey(userID, uint(roommateID))
		var cached struct {
			Balance  Money        `json:"balance"`
			Roommate UserResponse `json:"roommate"`
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"balance":  cached.Balance,
				"roommate": cached.Roommate,
				"cached":   true,
			})
			return
		}

		balance, err := engine.BalanceBetween(c.Request.Context(), userID, uint(roommateID))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":     userID,
				"roommate_id": roommateID,
				"error":       err.Error(),
			}).Error("Balance calculation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate balance"})
			return
		}

		cached.Balance = NewMoney(balance)
		cached.Roommate = NewUserResponse(&roommate)
		_ = utils.SetCache(ctx, rdb, cacheKey, cached, cacheTTL)
		c.JSON(http.StatusOK, gin.H{
			"balance":  cached.Balance,
			"roommate": cached.Roommate,
			"cached":   false,
		})
	}
}
