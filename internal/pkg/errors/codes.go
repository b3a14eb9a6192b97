package errors

import "net/http"

var (
	// ErrDataUnavailable - справочные данные не позволяют посчитать ценовые категории
	ErrDataUnavailable = New(
		"DATA_UNAVAILABLE",
		"Reference data is unavailable",
		http.StatusServiceUnavailable,
	)

	// ErrQueryFailed - ошибка соединения или выполнения запроса к пространственной БД
	ErrQueryFailed = New(
		"QUERY_FAILED",
		"Spatial store query failed",
		http.StatusBadGateway,
	)

	// ErrValidationFailed - поиск запущен без выбранного района
	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Please select a neighborhood to search",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidPriceRange = New(
		"INVALID_PRICE_RANGE",
		"Invalid price range",
		http.StatusBadRequest,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Unknown price category",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
