package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/deccan0963-netizen/Tasks/logging"
)

// HTTPClient wraps calls to external services with a request timeout and a
// circuit breaker, so a flapping upstream degrades quickly instead of holding
// request handlers open.
type HTTPClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPClient builds a client with a named breaker that trips after four
// consecutive failures.
func NewHTTPClient(breakerName string) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &HTTPClient{
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: breaker,
	}
}

// GetJSON performs a GET against url, optionally sending apiKey as the
// X-Api-Key header, and decodes the response body into v.
func (c *HTTPClient) GetJSON(ctx context.Context, url, apiKey string, v interface{}) error {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		if apiKey != "" {
			req.Header.Set("X-Api-Key", apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %v", url, err)
	}
	return nil
}
