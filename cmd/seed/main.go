// Command seed populates the database with sample data.
package main

import (
	"context"
	"log"

	"postboard/config"
	"postboard/database"
	"postboard/seed"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(context.Background(), db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
