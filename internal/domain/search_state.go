package domain

// SearchStatus - состояние поиска на дашборде
type SearchStatus string

const (
	SearchIdle      SearchStatus = "idle"
	SearchInvalid   SearchStatus = "invalid"
	SearchSearching SearchStatus = "searching"
	SearchResults   SearchStatus = "results"
	SearchEmpty     SearchStatus = "empty"
	SearchError     SearchStatus = "error"
)

// Terminal - поиск завершен (можно запускать следующий)
func (s SearchStatus) Terminal() bool {
	switch s {
	case SearchIdle, SearchInvalid, SearchResults, SearchEmpty, SearchError:
		return true
	default:
		return false
	}
}

// SearchState - явная машина состояний поиска:
//
//	Idle|Invalid|Results|Empty|Error --Begin(valid)--> Searching --Complete--> Results|Empty
//	                                 --Begin(invalid)--> Invalid     --Fail----> Error
type SearchState struct {
	Status   SearchStatus
	Filter   ListingFilter
	Listings []Listing
	Err      error
}

func NewSearchState() *SearchState {
	return &SearchState{Status: SearchIdle}
}

// Begin валидирует фильтр и переводит поиск в Searching.
// Невалидный фильтр оставляет состояние Invalid и возвращает ошибку валидации.
func (s *SearchState) Begin(filter ListingFilter) error {
	if !s.Status.Terminal() {
		return ErrInvalidTransition
	}

	s.Filter = filter
	s.Listings = nil
	s.Err = nil

	if err := filter.Validate(); err != nil {
		s.Status = SearchInvalid
		s.Err = err
		return err
	}

	s.Status = SearchSearching
	return nil
}

// Complete фиксирует успешный результат; пустой результат - отдельное состояние Empty
func (s *SearchState) Complete(listings []Listing) error {
	if s.Status != SearchSearching {
		return ErrInvalidTransition
	}

	if len(listings) == 0 {
		s.Status = SearchEmpty
		s.Listings = []Listing{}
		return nil
	}

	s.Status = SearchResults
	s.Listings = listings
	return nil
}

// Fail фиксирует ошибку запроса
func (s *SearchState) Fail(err error) error {
	if s.Status != SearchSearching {
		return ErrInvalidTransition
	}

	s.Status = SearchError
	s.Err = err
	return nil
}

// Center - центр карты по первому объявлению
func (s *SearchState) Center() (lat, lon float64, ok bool) {
	if s.Status != SearchResults || len(s.Listings) == 0 {
		return 0, 0, false
	}
	return s.Listings[0].Lat, s.Listings[0].Lon, true
}
