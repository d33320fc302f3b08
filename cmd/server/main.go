package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"roomies/internal/api"
	"roomies/internal/config"
	"roomies/internal/ledger"
	"roomies/internal/middleware"
	"roomies/internal/storage"
)

func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Ledger engine over the gorm-backed store
	var opts []ledger.Option
	if cfg.SettleOnce {
		opts = append(opts, ledger.SettleOnce())
	}
	engine := ledger.NewEngine(storage.NewExpenseStore(db), opts...)

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/api/v1/auth/register", api.RegisterHandler(db))
	r.POST("/api/v1/auth/login", api.LoginHandler(db, cfg.JWTSecret))

	// Everything else requires a valid token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	v1.GET("/me", api.MeHandler(db))
	v1.GET("/users", api.ListUsersHandler(db))

	// Expense routes
	expenses := v1.Group("/expenses")
	expenses.GET("", api.ListExpensesHandler(db, redisClient))
	expenses.POST("", api.CreateExpenseHandler(db, redisClient))
	expenses.GET("/balance", api.BalanceHandler(db, redisClient, engine))
	expenses.GET("/:id", api.GetExpenseHandler(db))
	expenses.PATCH("/:id", api.UpdateExpenseHandler(db, redisClient))
	expenses.DELETE("/:id", api.DeleteExpenseHandler(db, redisClient))
	expenses.POST("/:id/settle", api.SettleExpenseHandler(db, redisClient, engine))

	// Shopping list routes
	shopping := v1.Group("/shopping_items")
	shopping.GET("", api.ListShoppingItemsHandler(db))
	shopping.POST("", api.CreateShoppingItemHandler(db))
	shopping.GET("/stats", api.ShoppingStatsHandler(db))
	shopping.DELETE("/completed", api.ClearCompletedShoppingItemsHandler(db))
	shopping.GET("/:id", api.GetShoppingItemHandler(db))
	shopping.PATCH("/:id", api.UpdateShoppingItemHandler(db))
	shopping.DELETE("/:id", api.DeleteShoppingItemHandler(db))
	shopping.POST("/:id/toggle", api.ToggleShoppingItemHandler(db))

	// Receipt routes
	receipts := v1.Group("/receipts")
	receipts.GET("", api.ListReceiptsHandler(db))
	receipts.POST("", api.CreateReceiptHandler(db))
	receipts.GET("/stats", api.ReceiptStatsHandler(db))
	receipts.GET("/:id", api.GetReceiptHandler(db))
	receipts.PATCH("/:id", api.UpdateReceiptHandler(db))
	receipts.DELETE("/:id", api.DeleteReceiptHandler(db))
	receipts.POST("/:id/link", api.LinkReceiptHandler(db))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
