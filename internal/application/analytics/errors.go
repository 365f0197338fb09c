package analytics

import "errors"

var (
	// ErrInvalidDateRange flags a request whose start date is after
	// its end date.
	ErrInvalidDateRange = errors.New("date range start is after end")

	// ErrInvalidPriceRange flags a request whose minimum price
	// exceeds its maximum.
	ErrInvalidPriceRange = errors.New("price range minimum exceeds maximum")
)
