package postgres

const (
	SRID4326 = 4326

	// DefaultSubwayRadiusMeters - радиус близости к метро
	DefaultSubwayRadiusMeters = 400.0

	// DefaultListingGeomColumn - колонка с геометрией объявления
	DefaultListingGeomColumn = "listing_geom"
)

// имена запросов для метрик
const (
	queryFetchListings     = "fetch_listings"
	queryListNeighborhoods = "list_neighborhoods"
	queryListPrices        = "list_prices"
)
