package main

import (
	"context"
	"flag"
	"log"
	"os"

	"taskdeck/internal/config"
	"taskdeck/internal/repository"
	"taskdeck/internal/seed"
	"taskdeck/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	clearData := flag.Bool("clear-data", false, "Clear all users, projects and tasks (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.IsProd() && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := config.NewLogger(os.Stdout, cfg.Debug)

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, storage: %s, prefix: %s)", cfg.Environment, cfg.StorageDriver, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, storage: %s, prefix: %s)", cfg.Environment, cfg.StorageDriver, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, storage: %s, prefix: %s)", cfg.Environment, cfg.StorageDriver, cfg.TablePrefix)
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close(ctx)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := store.Drop(ctx); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	log.Println("🧹 Clearing existing data...")
	if err := store.Clear(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	log.Println("✅ Data cleared")

	if *clearData {
		return
	}

	svc := service.SetupServices(store.Projects, store.Tasks, store.Users, store.Tx, logger)
	seeder := seed.NewSeeder(svc.Users, svc.Projects, svc.Tasks, logger)

	log.Println("📝 Seeding demo projects and tasks...")
	summary, err := seeder.Seed(ctx)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("✅ Seeded %d projects with %d tasks for demo user %s", summary.Projects, summary.Tasks, summary.UserID)
	log.Printf("   Login as %s (external id %s)", seed.DemoProfile.Username, seed.DemoProfile.ExternalID())
}
