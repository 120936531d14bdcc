package main

import (
	"context"
	"log"
	"os"

	"github.com/admin222aman/LocalFixConnect/internal/adapters/database"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/clients/postgres"
	"github.com/admin222aman/LocalFixConnect/internal/seed"
	"github.com/admin222aman/LocalFixConnect/pkg/config"
)

// Seeds the durable store ahead of first boot. The API server runs the
// same seed on startup when the store is empty, so this exists for
// provisioning and for re-seeding after a RESET_DB wipe.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reviews,
				bookings,
				provider_categories,
				providers,
				service_categories,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	store := database.New(pgClient)
	if err := seed.Ensure(ctx, store); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seeding complete")
}
