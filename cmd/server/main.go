package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/Pacman0126/tucker-and-dales-home-services/internal/adapters/cache"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/adapters/maps"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/adapters/repositories"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/api"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/platform/db"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/ports"
	"github.com/Pacman0126/tucker-and-dales-home-services/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Google Distance Matrix, the
// chosen travel-time cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "")
	port := getEnv("PORT", "8080")

	mapsKey := os.Getenv("GOOGLE_MAPS_SERVER_KEY")
	if strings.TrimSpace(mapsKey) == "" {
		log.Fatal("GOOGLE_MAPS_SERVER_KEY is required")
	}

	store, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	// Initialize schema (and optionally seed demo data) on startup for
	// local runs.
	if err := repositories.InitSchema(store); err != nil {
		log.Fatal(err)
	}
	if seedPath != "" {
		if err := repositories.SeedFromJSON(store, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	travelCache, cleanup, err := openTravelTimeCache(store)
	if err != nil {
		log.Fatal(err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	estimator, err := maps.NewGoogleDistanceMatrix(mapsKey, travelCache)
	if err != nil {
		log.Fatal(err)
	}

	schedule := repositories.NewSqliteScheduleRepository(store)
	reference := repositories.NewSqliteReferenceRepository(store)

	matcher := services.NewMatcher(
		schedule,
		reference,
		estimator,
		getEnvInt("MATCH_CONCURRENCY", 5),
		getEnvDuration("MATCH_TIMEOUT", 30*time.Second),
	)
	assignments := services.NewAssignmentService(schedule, reference)

	router := api.NewRouter(matcher, assignments)

	// Write timeout covers cold-cache grid queries (28 days x all
	// categories against the external matrix API).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s must be a duration (e.g. 30s), got %q", key, v)
	}
	return d
}

func openDB(dbPath string) (*sql.DB, error) {
	store, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := store.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return store, nil
}

// openTravelTimeCache selects the cache backend: REDIS_ADDR wins,
// then DATABASE_URL (shared Postgres), then the local SQLite store.
func openTravelTimeCache(store *sql.DB) (ports.TravelTimeCache, func(), error) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		ttl := getEnvDuration("TRAVEL_CACHE_TTL", 24*time.Hour)
		log.Printf("travel time cache backend=redis addr=%s ttl=%s", addr, ttl)
		return cache.NewRedisTravelTimeCache(client, ttl), func() { _ = client.Close() }, nil
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pool, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open travel time cache: %w", err)
		}
		log.Printf("travel time cache backend=postgres")
		return cache.NewSQLTravelTimeCache(pool), func() { _ = pool.Close() }, nil
	}

	log.Printf("travel time cache backend=sqlite")
	return cache.NewSqliteTravelTimeCache(store), nil, nil
}
