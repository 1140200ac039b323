package dto

import "time"

// ErrorResponse is the standard JSON error body returned by the API.
//
// Example:
//
//	{"error":"Failed to fetch data","message":"coingecko /global: status 429","timestamp":"2025-10-14T10:00:00Z"}
type ErrorResponse struct {
	Message      string    `json:"error" example:"Failed to fetch data"`
	ErrorDetails string    `json:"message,omitempty" example:"coingecko /global: status 429"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so the response can travel through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse, copying err's text into the details when err is non-nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
