package main

import (
	"log"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/config"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.RunMigrations("file://database/migrations", cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")
}
