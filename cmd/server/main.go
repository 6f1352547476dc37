package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/adapters/repositories"
	"route-planner-service/internal/adapters/travel"
	"route-planner-service/internal/api"
	"route-planner-service/internal/config"
	"route-planner-service/internal/domain"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, OSRM, TomTom, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/stops.csv")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromCSV(context.Background(), db, seedPath); err != nil {
		log.Fatal(err)
	}

	// Traffic conditions are cached in Redis for a short TTL when configured;
	// without it every lookup goes straight to TomTom (or the simulation).
	var trafficCache travel.TrafficCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		trafficCache = cache.NewRedisTrafficCache(client, 2*time.Minute)
		log.Printf("traffic cache enabled addr=%s", addr)
	}

	tomtomKey := os.Getenv("TOMTOM_API_KEY")
	if tomtomKey == "" {
		log.Println("TOMTOM_API_KEY not set, traffic conditions will be simulated")
	}
	traffic := travel.NewTomTomTraffic(tomtomKey, trafficCache)
	estimator := travel.NewOSRMEstimator(traffic)

	repo := repositories.NewSqliteStopRepository(db)
	now := func() time.Time { return time.Now().Truncate(time.Minute) }
	router := api.NewRouter(repo, estimator, traffic, defaultBounds(), now)

	// Timeouts are tuned for cold-cache route estimation (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// defaultBounds is the service area used when a traffic request has no bbox.
func defaultBounds() domain.BoundingBox {
	return domain.BoundingBox{MinLon: 39.5, MinLat: 47.1, MaxLon: 40.0, MaxLat: 47.4}
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
