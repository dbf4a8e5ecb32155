package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bolumrehberi/backend/internal/infrastructure/clients/postgres"
	"github.com/bolumrehberi/backend/pkg/config"
)

// Creates the feedback table. Run with: go run scripts/migrate.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.Database.Configured() {
		log.Fatal("DB_HOST is not set; nothing to migrate")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping feedback table before migrating")
		if _, err := pgClient.DB().ExecContext(ctx, `DROP TABLE IF EXISTS feedback`); err != nil {
			log.Fatalf("Failed to drop feedback table: %v", err)
		}
	}

	_, err = pgClient.DB().ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS feedback (
			id UUID PRIMARY KEY,
			message TEXT NOT NULL,
			is_positive BOOLEAN NOT NULL,
			user_agent TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Fatalf("Failed to create feedback table: %v", err)
	}

	log.Println("Migration complete")
}
