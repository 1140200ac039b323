package coingecko

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when an upstream body cannot be decoded or lacks required members.
var ErrMalformed = errors.New("malformed upstream response")

// APIError represents a non-success status from the CoinGecko API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coingecko %s: status %d", e.Endpoint, e.StatusCode)
}

// IsRateLimited reports whether the upstream rejected the call for exceeding its quota.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}
