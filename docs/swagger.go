// Package docs NYC BnB Finder API.
//
// Дашборд поиска объявлений краткосрочной аренды в Нью-Йорке поверх PostGIS.
// Пользователь выбирает район, ценовую категорию и, опционально, близость к метро;
// сервис возвращает подходящие объявления и отрисовывает их на карте.
//
// Основные возможности:
// - Справочники районов и ценовых категорий (квартили цен)
// - Поиск объявлений внутри района с фильтром по цене и расстоянию до метро
// - HTML дашборд с картой Leaflet
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Produces:
//	- application/json
//	- text/html
//
// swagger:meta
package docs
