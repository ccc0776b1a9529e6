package marketdata

import (
	"fmt"
	"time"
)

// RequestTimeout bounds every upstream provider call.
const RequestTimeout = 10 * time.Second

// PriceFetcher fetches historical weekly closing prices for a
// provider-canonical identifier. Implementations must return the series
// ordered most recent week first.
type PriceFetcher interface {
	FetchWeeklyCloses(id string, maPeriod int) ([]float64, error)
	Name() string
}

// FetchError wraps upstream failures: network errors, timeouts,
// provider-reported errors and malformed payloads.
type FetchError struct {
	Provider string
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
