// Package ml provides the client for the external model-serving service
// that turns feature vectors into win probabilities.
package ml

import "errors"

var (
	// ErrServiceUnavailable indicates the model service is unreachable
	ErrServiceUnavailable = errors.New("model service unavailable")

	// ErrConnectionFailed indicates the request could not be delivered
	ErrConnectionFailed = errors.New("model service connection failed")

	// ErrInvalidResponse indicates an unparseable or out-of-range response
	ErrInvalidResponse = errors.New("invalid response from model service")
)
