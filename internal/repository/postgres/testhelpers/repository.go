package testhelpers

import (
	"github.com/bnb-finder/internal/domain/repository"
	"github.com/bnb-finder/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB over the test tables
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, TestTables, logger)
}

// NewListingRepositoryForTest creates a listing repository with test database and logger
func NewListingRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ListingRepository {
	return postgres.NewListingRepository(NewDBForTest(db, logger), postgres.DefaultSubwayRadiusMeters)
}

// NewReferenceRepositoryForTest creates a reference repository with test database and logger
func NewReferenceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ReferenceRepository {
	return postgres.NewReferenceRepository(NewDBForTest(db, logger))
}
