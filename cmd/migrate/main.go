package main

import (
	"roomies/internal/config"
	"roomies/internal/db"
)

func main() {
	cfg := config.LoadConfig()
	db.Migrate(cfg.DSN())
}
