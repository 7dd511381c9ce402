package repository

import (
	"io"
	"net/http"
	"strings"
)

// RoundTripperFunc allows us to easily mock http.Client responses in tests.
type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// ErrorRoundTripper fails every request with Err, simulating a network outage.
type ErrorRoundTripper struct {
	Err error
}

func (e ErrorRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, e.Err
}

// JSONResponse builds a canned provider response.
func JSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// MockClient returns an http.Client whose transport is fn.
func MockClient(fn func(*http.Request) *http.Response) *http.Client {
	return &http.Client{Transport: RoundTripperFunc(fn)}
}
