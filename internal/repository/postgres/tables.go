package postgres

import (
	"strings"

	"github.com/bnb-finder/internal/config"
	"github.com/jackc/pgx/v5"
)

// Tables - экранированные идентификаторы таблиц и колонок, подставляемые в SQL
type Tables struct {
	Listings       string
	Neighborhoods  string
	SubwayStations string
	ListingGeom    string
}

// NewTables экранирует имена из конфигурации; "schema.table" разбивается на части
func NewTables(cfg config.TablesConfig) Tables {
	geom := cfg.ListingGeomColumn
	if geom == "" {
		geom = DefaultListingGeomColumn
	}
	return Tables{
		Listings:       quoteIdent(cfg.Listings),
		Neighborhoods:  quoteIdent(cfg.Neighborhoods),
		SubwayStations: quoteIdent(cfg.SubwayStations),
		ListingGeom:    quoteIdent(geom),
	}
}

func quoteIdent(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
