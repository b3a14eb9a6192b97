package domain

import "errors"

var (
	// ErrNoPrices - в таблице объявлений нет ни одной цены, квартили не определены
	ErrNoPrices = errors.New("no non-null prices available")

	// ErrNeighborhoodRequired - поиск без выбранного района
	ErrNeighborhoodRequired = errors.New("neighborhood is required")

	// ErrInvalidPriceRange - нижняя граница отрицательна или больше верхней
	ErrInvalidPriceRange = errors.New("invalid price range")

	// ErrInvalidTransition - недопустимый переход состояния поиска
	ErrInvalidTransition = errors.New("invalid search state transition")
)
