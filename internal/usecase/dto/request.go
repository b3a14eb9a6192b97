package dto

import "github.com/shopspring/decimal"

// ListingSearchRequest - JSON запрос на поиск объявлений с явным ценовым интервалом [price_min, price_max)
type ListingSearchRequest struct {
	Neighborhood string          `json:"neighborhood" validate:"max=200"`
	PriceMin     decimal.Decimal `json:"price_min" validate:"gte=0"`
	PriceMax     decimal.Decimal `json:"price_max" validate:"gte=0"`
	NearSubway   bool            `json:"near_subway"`
}

// DashboardSearchRequest - выбор пользователя на дашборде (query-параметры)
type DashboardSearchRequest struct {
	Neighborhood string `query:"neighborhood" json:"neighborhood" validate:"max=200"`
	Category     int    `query:"category" json:"category" validate:"gte=0,lt=4"`
	NearSubway   bool   `query:"near_subway" json:"near_subway"`
	Search       bool   `query:"search" json:"-"`
}
