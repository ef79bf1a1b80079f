package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/adapters/repositories"
)

// dbtool initializes the SQLite schema and optionally seeds reference
// data, employees and sample bookings from a JSON fixture.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := flag.String("db", "data/app.db", "path to the SQLite database file")
	seedPath := flag.String("seed", "", "path to a schedule seed JSON file (skipped when empty)")
	flag.Parse()

	store, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", *dbPath, err)
	}
	defer store.Close()

	if err := store.Ping(); err != nil {
		log.Fatalf("verify sqlite connection to %q: %v", *dbPath, err)
	}

	if err := initAndSeed(store, *seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(store *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(store); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		log.Println("No seed file given; skipping seeding.")
		return nil
	}

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(store, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
