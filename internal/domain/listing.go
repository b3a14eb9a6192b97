package domain

import "github.com/shopspring/decimal"

// Listing - объявление краткосрочной аренды, прочитанное из пространственной БД
type Listing struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Price    decimal.Decimal `json:"price" db:"price"`
	RoomType string          `json:"room_type" db:"room_type"`
	Lat      float64         `json:"lat" db:"latitude"`
	Lon      float64         `json:"lon" db:"longitude"`
}

// Neighborhood - район; полигон остается в БД и используется только в предикате вхождения
type Neighborhood struct {
	Name string `json:"name" db:"name"`
}

// ListingFilter - неизменяемая комбинация фильтров для одного поиска
type ListingFilter struct {
	Neighborhood string
	PriceRange   PriceRange
	NearSubway   bool
}

// NewListingFilter создает фильтр; проверку района выполняет Validate
func NewListingFilter(neighborhood string, priceRange PriceRange, nearSubway bool) ListingFilter {
	return ListingFilter{
		Neighborhood: neighborhood,
		PriceRange:   priceRange,
		NearSubway:   nearSubway,
	}
}

// Validate проверяет, что поиск вообще имеет смысл запускать
func (f ListingFilter) Validate() error {
	if f.Neighborhood == "" {
		return ErrNeighborhoodRequired
	}
	return f.PriceRange.Validate()
}

// Matches проверяет атрибутивную часть фильтра (цена); геометрию проверяет БД
func (f ListingFilter) Matches(l Listing) bool {
	return f.PriceRange.Contains(l.Price)
}
