package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"startupops-api/internal/config"
	"startupops-api/internal/infrastructure/persistence/postgres"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting schema bootstrap...")

	cfg := config.MustLoad()

	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer client.Close()

	fmt.Println("Migrating tables...")
	if err := client.AutoMigrate(); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	fmt.Println("Bootstrap completed successfully.")
}
