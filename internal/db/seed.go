package db

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"roomies/internal/domain"
)

// Seed wipes the household tables and loads the demo data: two roommates,
// a handful of expenses (one already settled) and a shopping list.
func Seed(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	logrus.Info("Seeding demo data...")

	// Clear existing records. Order matters for the foreign keys.
	for _, model := range []any{&domain.Receipt{}, &domain.Expense{}, &domain.ShoppingItem{}, &domain.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			logrus.Fatalf("failed to clear table: %v", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash password: %v", err)
	}

	joao := domain.User{Name: "João Silva", Email: "joao@roommate.com", Password: string(hash)}
	maria := domain.User{Name: "Maria Santos", Email: "maria@roommate.com", Password: string(hash)}
	for _, u := range []*domain.User{&joao, &maria} {
		if err := db.Create(u).Error; err != nil {
			logrus.Fatalf("failed to create user %s: %v", u.Email, err)
		}
	}
	logrus.Infof("Users created: %d", 2)

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	expenses := []domain.Expense{
		{
			Description: "Compras no supermercado",
			Amount:      decimal.RequireFromString("127.80"),
			Category:    domain.ExpenseGroceries,
			UserID:      joao.ID,
			RoommateID:  maria.ID,
		},
		{
			Description: "Conta de luz",
			Amount:      decimal.RequireFromString("89.50"),
			Category:    domain.ExpenseUtilities,
			UserID:      maria.ID,
			RoommateID:  joao.ID,
		},
		{
			Description: "Produtos de limpeza",
			Amount:      decimal.RequireFromString("45.30"),
			Category:    domain.ExpenseHousehold,
			UserID:      joao.ID,
			RoommateID:  maria.ID,
		},
		{
			Description: "Gás de cozinha",
			Amount:      decimal.RequireFromString("95.00"),
			Category:    domain.ExpenseUtilities,
			UserID:      maria.ID,
			RoommateID:  joao.ID,
			Status:      domain.ExpenseSettled,
			SettledAt:   &twoDaysAgo,
			SettledByID: &joao.ID,
		},
	}
	for i := range expenses {
		if err := db.Create(&expenses[i]).Error; err != nil {
			logrus.Fatalf("failed to create expense: %v", err)
		}
		logrus.Infof("Expense created: %s - %s", expenses[i].Description, expenses[i].Amount)
	}

	items := []domain.ShoppingItem{
		{Name: "Leite integral 1L", Category: domain.ShoppingDairy, UserID: joao.ID, RoommateID: maria.ID},
		{Name: "Bananas orgânicas", Category: domain.ShoppingProduce, UserID: maria.ID, RoommateID: joao.ID},
		{Name: "Peito de frango 1kg", Category: domain.ShoppingMeat, UserID: joao.ID, RoommateID: maria.ID},
		{Name: "Detergente líquido", Category: domain.ShoppingHousehold, UserID: maria.ID, RoommateID: joao.ID, Completed: true},
		{Name: "Arroz tipo 1 - 5kg", Category: domain.ShoppingPantry, UserID: joao.ID, RoommateID: maria.ID},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			logrus.Fatalf("failed to create shopping item: %v", err)
		}
		logrus.Infof("Shopping item created: %s (%s)", items[i].Name, items[i].Category.Emoji())
	}

	logrus.Info("Seed finished.")
	logrus.Info("Test login: joao@roommate.com / 123456 or maria@roommate.com / 123456")
}
