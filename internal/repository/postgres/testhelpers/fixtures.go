package testhelpers

import (
	"context"
	"fmt"

	"github.com/bnb-finder/internal/pkg/utils"
	"github.com/jmoiron/sqlx"
)

// SoHo - центр тестового района
const (
	SoHoLat = 40.7233
	SoHoLon = -74.0030
)

// InsertSquareNeighborhood добавляет квадратный район со стороной 2*halfSideMeters
func InsertSquareNeighborhood(ctx context.Context, db *sqlx.DB, name string, lat, lon, halfSideMeters float64) error {
	minLat, minLon := utils.OffsetMeters(lat, lon, -halfSideMeters, -halfSideMeters)
	maxLat, maxLon := utils.OffsetMeters(lat, lon, halfSideMeters, halfSideMeters)

	query := fmt.Sprintf(`
		INSERT INTO %s (name, geom)
		VALUES ($1, ST_Transform(ST_MakeEnvelope($2, $3, $4, $5, 4326), %d))
	`, TestTables.Neighborhoods, SRIDNYStatePlane)

	if _, err := db.ExecContext(ctx, query, name, minLon, minLat, maxLon, maxLat); err != nil {
		return fmt.Errorf("insert neighborhood %s: %w", name, err)
	}
	return nil
}

// InsertListing добавляет объявление; price == nil записывается как NULL
func InsertListing(ctx context.Context, db *sqlx.DB, id int64, name string, price *float64, roomType string, lat, lon float64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, price, room_type, latitude, longitude, %s)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($6, $5), 4326))
	`, TestTables.Listings, TestTables.ListingGeomColumn)

	if _, err := db.ExecContext(ctx, query, id, name, price, roomType, lat, lon); err != nil {
		return fmt.Errorf("insert listing %d: %w", id, err)
	}
	return nil
}

// InsertStationAt добавляет станцию метро, смещенную на eastMeters к востоку от точки
func InsertStationAt(ctx context.Context, db *sqlx.DB, name string, lat, lon, eastMeters float64) error {
	sLat, sLon := utils.OffsetMeters(lat, lon, 0, eastMeters)

	query := fmt.Sprintf(`
		INSERT INTO %s (name, geom)
		VALUES ($1, ST_Transform(ST_SetSRID(ST_MakePoint($2, $3), 4326), 3857))
	`, TestTables.SubwayStations)

	if _, err := db.ExecContext(ctx, query, name, sLon, sLat); err != nil {
		return fmt.Errorf("insert station %s: %w", name, err)
	}
	return nil
}

// Price возвращает указатель на цену (для InsertListing)
func Price(v float64) *float64 {
	return &v
}

// LoadSoHoScenario - район SoHo (квадрат ~1 км), одно объявление в центре по цене 150
// и станция метро в stationMeters к востоку от него
func LoadSoHoScenario(ctx context.Context, db *sqlx.DB, stationMeters float64) error {
	if err := InsertSquareNeighborhood(ctx, db, "SoHo", SoHoLat, SoHoLon, 500); err != nil {
		return err
	}
	if err := InsertListing(ctx, db, 1, "Sunny SoHo loft", Price(150), "Entire home/apt", SoHoLat, SoHoLon); err != nil {
		return err
	}
	return InsertStationAt(ctx, db, "Spring St", SoHoLat, SoHoLon, stationMeters)
}
