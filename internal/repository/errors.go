package repository

import "errors"

// Upstream failure kinds. Every provider error is an *UpstreamError whose Kind
// is one of these, so callers can use errors.Is without caring which provider failed.
var (
	ErrCityNotFound        = errors.New("city not found")
	ErrWeatherNotFound     = errors.New("failed to get weather data")
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")
	ErrMalformedResponse   = errors.New("malformed response from weather provider")
)

// Causes attached to an UpstreamError.
var (
	ErrAPIKeyMissing    = errors.New("API key missing")
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
)

// Store errors.
var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSessionNotFound = errors.New("session not found")
)

// UpstreamError reports a failed provider call. Error() only exposes the
// generic kind message; the provider detail stays in Err for logging.
type UpstreamError struct {
	Provider string
	Kind     error
	Err      error
}

func (e *UpstreamError) Error() string {
	return e.Kind.Error()
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Detail is the full diagnostic string, provider and cause included.
func (e *UpstreamError) Detail() string {
	if e.Err == nil {
		return e.Provider + ": " + e.Kind.Error()
	}
	return e.Provider + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func upstreamError(provider string, kind, cause error) *UpstreamError {
	return &UpstreamError{Provider: provider, Kind: kind, Err: cause}
}
