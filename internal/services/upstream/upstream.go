// Package upstream is the shared HTTP client for external data providers.
// Every provider call goes through a circuit breaker and a short retry
// loop so a flapping upstream neither hangs requests nor hides behind
// silent failures.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/rs-patil/cropadvisor/internal/metrics"
)

// Client wraps an http.Client with a named circuit breaker.
type Client struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// New builds a provider client. The breaker trips after three
// consecutive failures and probes again after openFor.
func New(name string, timeout, openFor time.Duration, log zerolog.Logger) *Client {
	return &Client{
		name: name,
		http: &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: openFor,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
			OnStateChange: func(_ string, from, to gobreaker.State) {
				log.Warn().Str("provider", name).
					Str("from", from.String()).Str("to", to.String()).
					Msg("circuit breaker state change")
			},
		}),
		log: log.With().Str("provider", name).Logger(),
	}
}

// GetJSON fetches url and decodes the response body into out. The call
// is retried up to twice on transient errors; an open breaker fails
// immediately.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
		return nil, backoff.Retry(func() error {
			return c.getOnce(ctx, url, out)
		}, bo)
	})
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.name, "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(c.name, "ok").Inc()
	return nil
}

func (c *Client) getOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cropadvisor/1.0")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		err := fmt.Errorf("GET %s -> %s", url, res.Status)
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			// Client errors will not heal on retry.
			return backoff.Permanent(err)
		}
		return err
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode %s response: %w", c.name, err))
	}
	return nil
}
