// Package liquipedia fetches tournament and match records from the
// Liquipedia API v3 and normalizes them into the predictor's models.
package liquipedia

import "errors"

// APIError wraps failures talking to the Liquipedia API with a stable
// error code for callers that branch on failure class.
type APIError struct {
	Endpoint string
	Code     string
	Message  string
	Err      error
}

func (e APIError) Error() string {
	if e.Err != nil {
		return "liquipedia: " + e.Endpoint + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return "liquipedia: " + e.Endpoint + ": " + e.Code + ": " + e.Message
}

func (e APIError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Sentinel errors for errors.Is checks
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// newAPIError creates an APIError for the given endpoint and class.
func newAPIError(endpoint, code, message string, err error) APIError {
	return APIError{
		Endpoint: endpoint,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// classifyStatus maps a non-success HTTP status onto an error code and
// sentinel.
func classifyStatus(status int) (string, error) {
	switch {
	case status == 401 || status == 403:
		return ErrCodeAuthenticationFailed, ErrAuthenticationFailed
	case status == 404:
		return ErrCodeNotFound, ErrNotFound
	case status == 429:
		return ErrCodeRateLimitExceeded, ErrRateLimitExceeded
	case status >= 500:
		return ErrCodeServerError, ErrServerError
	}
	return ErrCodeUnknown, nil
}
