package main

import (
	"log"

	"quizroom/internal/config"
	"quizroom/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations("file://database/migrations", cfg.GetDSN()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
