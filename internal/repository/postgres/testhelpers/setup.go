package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bnb-finder/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// TestTables - отдельные таблицы для тестов, чтобы не задеть рабочие данные
var TestTables = config.TablesConfig{
	Listings:          "test_listings_bnb",
	ListingGeomColumn: "listing_geom",
	Neighborhoods:     "test_neighborhoods",
	SubwayStations:    "test_subway_stations",
}

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// Драйверы, которыми можно подключиться к тестовой БД
const (
	DriverPgx = "pgx"      // тот же драйвер, что и в сервисе
	DriverPQ  = "postgres" // lib/pq
)

// TestDrivers - драйверы, на которых прогоняются сквозные проверки сканирования
var TestDrivers = []string{DriverPgx, DriverPQ}

// SetupTestDB initializes a test database connection using TEST_PG_DRIVER (pgx by default).
// The test is skipped when PostGIS is not reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithDriver(t, getEnv("TEST_PG_DRIVER", DriverPgx))
}

// SetupTestDBWithDriver initializes a test database connection through the given database/sql driver.
func SetupTestDBWithDriver(t *testing.T, driver string) *TestDB {
	t.Helper()

	if driver != DriverPgx && driver != DriverPQ {
		t.Fatalf("unsupported test driver %q", driver)
	}

	// Priority:
	// 1. Environment variables
	// 2. Default values
	host := getEnv("TEST_PG_HOST", "localhost")
	port := getEnv("TEST_PG_PORT", "5433")
	user := getEnv("TEST_PG_USER", "postgres")
	password := getEnv("TEST_PG_PASSWORD", "postgres")
	dbname := getEnv("TEST_PG_DATABASE", "bnb_finder_test")
	sslmode := getEnv("TEST_PG_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry connection with exponential backoff to wait for DB recovery
	var db *sqlx.DB
	var err error
	maxRetries := 3
	retryDelay := 200 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect(driver, connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2 // exponential backoff
		}
	}

	if err != nil {
		t.Skipf("PostGIS test database not available: %v", err)
	}

	// Check PostGIS availability
	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		db.Close()
		t.Skipf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s (driver %s)", version, driver)

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup cleans up test data
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	tables := []string{
		TestTables.Listings,
		TestTables.Neighborhoods,
		TestTables.SubwayStations,
	}

	for _, table := range tables {
		if _, err := tdb.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
