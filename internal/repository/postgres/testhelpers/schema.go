package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SRIDNYStatePlane - NAD83 / New York Long Island (ftUS); районы хранятся в ней,
// объявления и станции - в других SRID, чтобы запросы проходили через ST_Transform
const SRIDNYStatePlane = 2263

// CreateSchema создает тестовые таблицы (идемпотентно)
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		"CREATE EXTENSION IF NOT EXISTS postgis",
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			gid SERIAL PRIMARY KEY,
			name TEXT,
			geom geometry(Polygon, %d)
		)`, TestTables.Neighborhoods, SRIDNYStatePlane),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGINT PRIMARY KEY,
			name TEXT,
			price NUMERIC(10, 2),
			room_type TEXT,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			%s geometry(Point, 4326)
		)`, TestTables.Listings, TestTables.ListingGeomColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			gid SERIAL PRIMARY KEY,
			name TEXT,
			geom geometry(Point, 3857)
		)`, TestTables.SubwayStations),
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
