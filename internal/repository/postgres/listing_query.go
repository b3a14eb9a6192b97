package postgres

import (
	"fmt"
	"strings"

	"github.com/bnb-finder/internal/domain"
)

// argBinder выдает плейсхолдеры $n по мере привязки аргументов
type argBinder struct {
	args []interface{}
}

func (b *argBinder) bind(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// Clause - один предикат WHERE со своими аргументами. Значения никогда не попадают в текст SQL.
type Clause interface {
	render(b *argBinder, t Tables) string
}

type neighborhoodClause struct {
	name string
}

// NeighborhoodClause - объявление лежит внутри полигона района с указанным именем
// (вхождение проверяется в JOIN, здесь выбирается сам район)
func NeighborhoodClause(name string) Clause {
	return neighborhoodClause{name: name}
}

func (c neighborhoodClause) render(b *argBinder, _ Tables) string {
	return "nh.name = " + b.bind(c.name)
}

type priceRangeClause struct {
	r domain.PriceRange
}

// PriceRangeClause - цена в [low, high); NULL цены отсекаются сравнением
func PriceRangeClause(r domain.PriceRange) Clause {
	return priceRangeClause{r: r}
}

func (c priceRangeClause) render(b *argBinder, _ Tables) string {
	return fmt.Sprintf("l.price::numeric >= %s AND l.price::numeric < %s", b.bind(c.r.Low), b.bind(c.r.High))
}

type nearSubwayClause struct {
	radiusMeters float64
}

// NearSubwayClause - существует станция метро в радиусе radiusMeters.
// Обе геометрии приводятся к 4326 и сравниваются как geography, поэтому радиус в метрах.
func NearSubwayClause(radiusMeters float64) Clause {
	return nearSubwayClause{radiusMeters: radiusMeters}
}

func (c nearSubwayClause) render(b *argBinder, t Tables) string {
	return fmt.Sprintf(`EXISTS (
			SELECT 1 FROM %s ss
			WHERE ST_DWithin(
				ST_Transform(l.%s, %d)::geography,
				ST_Transform(ss.geom, %d)::geography,
				%s
			)
		)`, t.SubwayStations, t.ListingGeom, SRID4326, SRID4326, b.bind(c.radiusMeters))
}

// ListingQuery - запрос объявлений как список предикатов, объединенных через AND
type ListingQuery struct {
	tables  Tables
	clauses []Clause
}

func NewListingQuery(tables Tables) *ListingQuery {
	return &ListingQuery{tables: tables}
}

// Where добавляет предикат (AND)
func (q *ListingQuery) Where(c Clause) *ListingQuery {
	q.clauses = append(q.clauses, c)
	return q
}

// Len - число предикатов
func (q *ListingQuery) Len() int {
	return len(q.clauses)
}

// Build собирает SQL и аргументы. Точка объявления переводится в SRID района для ST_Contains.
func (q *ListingQuery) Build() (string, []interface{}) {
	b := &argBinder{}

	conditions := make([]string, 0, len(q.clauses))
	for _, c := range q.clauses {
		conditions = append(conditions, c.render(b, q.tables))
	}

	where := "TRUE"
	if len(conditions) > 0 {
		where = strings.Join(conditions, "\n\t\t  AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			l.id::bigint AS id,
			COALESCE(l.name, '') AS name,
			l.price::numeric AS price,
			COALESCE(l.room_type, '') AS room_type,
			COALESCE(l.latitude::double precision, ST_Y(ST_Transform(l.%[3]s, %[5]d))) AS latitude,
			COALESCE(l.longitude::double precision, ST_X(ST_Transform(l.%[3]s, %[5]d))) AS longitude
		FROM %[1]s l
		JOIN %[2]s nh
		  ON ST_Contains(nh.geom, ST_Transform(l.%[3]s, ST_SRID(nh.geom)))
		WHERE %[4]s
	`, q.tables.Listings, q.tables.Neighborhoods, q.tables.ListingGeom, where, SRID4326)

	return query, b.args
}

// BuildListingQuery собирает запрос для фильтра; предикат метро добавляется отдельной веткой
func BuildListingQuery(tables Tables, filter domain.ListingFilter, subwayRadiusMeters float64) (string, []interface{}) {
	q := NewListingQuery(tables).
		Where(NeighborhoodClause(filter.Neighborhood)).
		Where(PriceRangeClause(filter.PriceRange))

	if filter.NearSubway {
		q.Where(NearSubwayClause(subwayRadiusMeters))
	}

	return q.Build()
}
