package dto

import (
	"fmt"
	"html"
	"time"

	"github.com/bnb-finder/internal/domain"
	"github.com/shopspring/decimal"
)

// NeighborhoodsResponse - список районов
type NeighborhoodsResponse struct {
	Neighborhoods []string  `json:"neighborhoods"`
	Total         int       `json:"total"`
	RefreshedAt   time.Time `json:"refreshed_at"`
}

// PriceCategoryItem - ценовая категория с индексом для выбора
type PriceCategoryItem struct {
	Index int             `json:"index"`
	Label string          `json:"label"`
	Low   decimal.Decimal `json:"low"`
	High  decimal.Decimal `json:"high"`
}

// PriceCategoriesResponse - ценовые категории
type PriceCategoriesResponse struct {
	Categories  []PriceCategoryItem `json:"categories"`
	RefreshedAt time.Time           `json:"refreshed_at"`
}

func ConvertPriceCategories(categories []domain.PriceCategory) []PriceCategoryItem {
	items := make([]PriceCategoryItem, 0, len(categories))
	for i, c := range categories {
		items = append(items, PriceCategoryItem{
			Index: i,
			Label: c.Label,
			Low:   c.Range.Low,
			High:  c.Range.High,
		})
	}
	return items
}

// ListingsResponse - найденные объявления
type ListingsResponse struct {
	Neighborhood string           `json:"neighborhood"`
	PriceMin     decimal.Decimal  `json:"price_min"`
	PriceMax     decimal.Decimal  `json:"price_max"`
	NearSubway   bool             `json:"near_subway"`
	Listings     []domain.Listing `json:"listings"`
	Total        int              `json:"total"`
}

// MapCenter - центр карты
type MapCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MapMarker - маркер объявления на карте
type MapMarker struct {
	ID       int64   `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Name     string  `json:"name"`
	RoomType string  `json:"room_type"`
	Price    int64   `json:"price"`
	Popup    string  `json:"popup"`
}

// NewMapMarker строит маркер; popup - HTML "name<br>Room: type<br>Price: $N" с экранированными полями
func NewMapMarker(l domain.Listing) MapMarker {
	price := l.Price.IntPart()
	return MapMarker{
		ID:       l.ID,
		Lat:      l.Lat,
		Lon:      l.Lon,
		Name:     l.Name,
		RoomType: l.RoomType,
		Price:    price,
		Popup: fmt.Sprintf("%s<br>Room: %s<br>Price: $%d",
			html.EscapeString(l.Name), html.EscapeString(l.RoomType), price),
	}
}

// DashboardView - все, что нужно для отрисовки дашборда
type DashboardView struct {
	Status        domain.SearchStatus `json:"status"`
	Neighborhoods []string            `json:"neighborhoods"`
	Categories    []PriceCategoryItem `json:"categories"`

	Selected DashboardSearchRequest `json:"selected"`

	Title    string      `json:"title,omitempty"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
	Total    int         `json:"total"`
	Center   *MapCenter  `json:"center,omitempty"`
	Markers  []MapMarker `json:"markers"`
	Radius   float64     `json:"subway_radius_meters"`
	TookMSec float64     `json:"took_ms,omitempty"`
}
