package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
)

// maxErrorBody caps how much of a failed provider response is kept for logs.
const maxErrorBody = 512

// NewHTTPClient returns the pooled client shared by every upstream repository.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func pickClient(httpClient []*http.Client) *http.Client {
	if len(httpClient) > 0 && httpClient[0] != nil {
		return httpClient[0]
	}
	return http.DefaultClient
}

// get issues GET endpoint?query. Transport failures become ErrUpstreamUnavailable.
func get(ctx context.Context, client *http.Client, provider, endpoint string, query url.Values) (*http.Response, error) {
	target := endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, upstreamError(provider, ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, upstreamError(provider, ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

// statusError logs the provider's answer and returns an UpstreamError of kind.
// The body is drained but never surfaced to API callers.
func statusError(provider string, kind error, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	config.GetLogger().Warnw("Upstream returned non-success status",
		"provider", provider,
		"status", resp.StatusCode,
		"body", string(body),
	)
	return upstreamError(provider, kind, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
}

func decodeJSON(provider string, resp *http.Response, out interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upstreamError(provider, ErrMalformedResponse, err)
	}
	return nil
}
