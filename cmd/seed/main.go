package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sahilchouksey/studyshare-api/app"
	"github.com/sahilchouksey/studyshare-api/config"
	"github.com/sahilchouksey/studyshare-api/database"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}
	if env.STORAGE_DRIVER == "memory" {
		log.Fatal("Seeding the in-memory store has no effect, set STORAGE_DRIVER=postgres")
	}

	store, err := app.OpenStore(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("StudyShare - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	if err := database.NewSeeder(store).SeedAll(context.Background(), database.DefaultCatalog); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
}
