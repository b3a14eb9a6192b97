package postgres_test

import (
	"context"
	stderrors "errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/bnb-finder/internal/domain"
	"github.com/bnb-finder/internal/domain/repository"
	pkgerrors "github.com/bnb-finder/internal/pkg/errors"
	"github.com/bnb-finder/internal/repository/postgres/testhelpers"
)

// ListingRepositoryTestSuite tests FetchListings against a real PostGIS instance
type ListingRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.ListingRepository
	ctx    context.Context
}

// SetupSuite runs once before all tests in the suite
func (s *ListingRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.CreateSchema(context.Background(), s.testDB.DB)
	s.Require().NoError(err, "Failed to create test schema")

	s.repo = testhelpers.NewListingRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests in the suite
func (s *ListingRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *ListingRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func priceRange(low, high int64) domain.PriceRange {
	return domain.NewPriceRange(decimal.NewFromInt(low), decimal.NewFromInt(high))
}

func listingIDs(listings []domain.Listing) []int64 {
	ids := make([]int64, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ============================================================================
// End-to-end scenario
// ============================================================================

func (s *ListingRepositoryTestSuite) TestFetchListings_SoHoStationNearby() {
	// Arrange
	s.Require().NoError(testhelpers.LoadSoHoScenario(s.ctx, s.testDB.DB, 200))
	filter := domain.NewListingFilter("SoHo", priceRange(100, 200), true)

	// Act
	listings, err := s.repo.FetchListings(s.ctx, filter)

	// Assert
	s.Require().NoError(err)
	s.Require().Len(listings, 1)
	s.Equal(int64(1), listings[0].ID)
	s.Equal("Sunny SoHo loft", listings[0].Name)
	s.Equal("Entire home/apt", listings[0].RoomType)
	s.True(listings[0].Price.Equal(decimal.NewFromInt(150)))
	s.InDelta(testhelpers.SoHoLat, listings[0].Lat, 1e-9)
	s.InDelta(testhelpers.SoHoLon, listings[0].Lon, 1e-9)
}

func (s *ListingRepositoryTestSuite) TestFetchListings_SoHoStationTooFar() {
	s.Require().NoError(testhelpers.LoadSoHoScenario(s.ctx, s.testDB.DB, 600))

	listings, err := s.repo.FetchListings(s.ctx, domain.NewListingFilter("SoHo", priceRange(100, 200), true))

	s.Require().NoError(err)
	s.NotNil(listings)
	s.Empty(listings)

	// без ограничения по метро объявление возвращается
	listings, err = s.repo.FetchListings(s.ctx, domain.NewListingFilter("SoHo", priceRange(100, 200), false))
	s.Require().NoError(err)
	s.Len(listings, 1)
}

// ============================================================================
// Predicates
// ============================================================================

func (s *ListingRepositoryTestSuite) TestFetchListings_PriceIsHalfOpen() {
	db := s.testDB.DB
	s.Require().NoError(testhelpers.InsertSquareNeighborhood(s.ctx, db, "SoHo", testhelpers.SoHoLat, testhelpers.SoHoLon, 500))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 1, "low edge", testhelpers.Price(100), "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 2, "just below", testhelpers.Price(199.99), "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 3, "high edge", testhelpers.Price(200), "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 4, "too cheap", testhelpers.Price(99.99), "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 5, "no price", nil, "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))

	filter := domain.NewListingFilter("SoHo", priceRange(100, 200), false)
	listings, err := s.repo.FetchListings(s.ctx, filter)

	s.Require().NoError(err)
	s.Equal([]int64{1, 2}, listingIDs(listings))
	for _, l := range listings {
		s.True(filter.PriceRange.Contains(l.Price), "price %s outside %s", l.Price, filter.PriceRange)
	}
}

func (s *ListingRepositoryTestSuite) TestFetchListings_ContainmentExcludesOutsidePoints() {
	db := s.testDB.DB
	s.Require().NoError(testhelpers.InsertSquareNeighborhood(s.ctx, db, "SoHo", testhelpers.SoHoLat, testhelpers.SoHoLon, 500))
	s.Require().NoError(testhelpers.InsertSquareNeighborhood(s.ctx, db, "Tribeca", 40.7163, -74.0086, 300))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 1, "inside", testhelpers.Price(150), "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 2, "in tribeca", testhelpers.Price(150), "Private room", 40.7163, -74.0086))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 3, "far away", testhelpers.Price(150), "Private room", 40.8, -73.95))

	listings, err := s.repo.FetchListings(s.ctx, domain.NewListingFilter("SoHo", priceRange(0, 1000), false))
	s.Require().NoError(err)
	s.Equal([]int64{1}, listingIDs(listings))

	listings, err = s.repo.FetchListings(s.ctx, domain.NewListingFilter("Tribeca", priceRange(0, 1000), false))
	s.Require().NoError(err)
	s.Equal([]int64{2}, listingIDs(listings))
}

func (s *ListingRepositoryTestSuite) TestFetchListings_SubwayFilterIsSubset() {
	db := s.testDB.DB
	s.Require().NoError(testhelpers.InsertSquareNeighborhood(s.ctx, db, "SoHo", testhelpers.SoHoLat, testhelpers.SoHoLon, 500))
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 1, "by the station", testhelpers.Price(120), "Private room", testhelpers.SoHoLat, testhelpers.SoHoLon))
	farLat := testhelpers.SoHoLat + 0.004 // ~445 м к северу
	s.Require().NoError(testhelpers.InsertListing(s.ctx, db, 2, "quiet corner", testhelpers.Price(130), "Private room", farLat, testhelpers.SoHoLon))
	s.Require().NoError(testhelpers.InsertStationAt(s.ctx, db, "Spring St", testhelpers.SoHoLat, testhelpers.SoHoLon, -150))

	near, err := s.repo.FetchListings(s.ctx, domain.NewListingFilter("SoHo", priceRange(100, 200), true))
	s.Require().NoError(err)
	all, err := s.repo.FetchListings(s.ctx, domain.NewListingFilter("SoHo", priceRange(100, 200), false))
	s.Require().NoError(err)

	s.Equal([]int64{1}, listingIDs(near))
	s.Equal([]int64{1, 2}, listingIDs(all))
	s.Subset(listingIDs(all), listingIDs(near))
}

// ============================================================================
// Edge cases
// ============================================================================

func (s *ListingRepositoryTestSuite) TestFetchListings_EmptyNeighborhood() {
	s.Require().NoError(testhelpers.LoadSoHoScenario(s.ctx, s.testDB.DB, 200))

	listings, err := s.repo.FetchListings(s.ctx, domain.NewListingFilter("", priceRange(0, 1000), false))

	s.NoError(err)
	s.NotNil(listings)
	s.Empty(listings)
}

func (s *ListingRepositoryTestSuite) TestFetchListings_NameIsCaseSensitive() {
	s.Require().NoError(testhelpers.LoadSoHoScenario(s.ctx, s.testDB.DB, 200))

	listings, err := s.repo.FetchListings(s.ctx, domain.NewListingFilter("soho", priceRange(0, 1000), false))

	s.NoError(err)
	s.Empty(listings)
}

func (s *ListingRepositoryTestSuite) TestFetchListings_Idempotent() {
	s.Require().NoError(testhelpers.LoadSoHoScenario(s.ctx, s.testDB.DB, 200))
	filter := domain.NewListingFilter("SoHo", priceRange(100, 200), true)

	first, err := s.repo.FetchListings(s.ctx, filter)
	s.Require().NoError(err)
	second, err := s.repo.FetchListings(s.ctx, filter)
	s.Require().NoError(err)

	s.Equal(listingIDs(first), listingIDs(second))
}

func (s *ListingRepositoryTestSuite) TestFetchListings_CanceledContextIsQueryFailure() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	listings, err := s.repo.FetchListings(ctx, domain.NewListingFilter("SoHo", priceRange(100, 200), false))

	s.Nil(listings)
	s.True(stderrors.Is(err, pkgerrors.ErrQueryFailed), "expected QUERY_FAILED, got %v", err)
}

// TestListingRepositorySuite runs the test suite
func TestListingRepositorySuite(t *testing.T) {
	suite.Run(t, new(ListingRepositoryTestSuite))
}
