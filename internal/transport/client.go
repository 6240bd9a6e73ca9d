package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/i474232898/space-data-console/internal/space"
)

// Config controls the outbound HTTP client.
type Config struct {
	// Timeout bounds a single request; zero means no timeout.
	Timeout time.Duration
	// MaxConsecutiveFailures trips a host's circuit; zero disables tripping.
	MaxConsecutiveFailures uint32
	// CooldownPeriod is how long a tripped circuit stays open.
	CooldownPeriod time.Duration
	UserAgent      string
}

var (
	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
)

// Client issues GET requests with one circuit breaker per upstream host.
// Failures are never retried.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger zerolog.Logger

	mu       sync.Mutex
	circuits map[string]*gobreaker.CircuitBreaker
}

// New creates a new Client.
func New(cfg Config, logger zerolog.Logger) *Client {
	hc := resty.New()
	if cfg.Timeout > 0 {
		hc.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		hc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.CooldownPeriod <= 0 {
		cfg.CooldownPeriod = time.Minute
	}
	return &Client{
		http:     hc,
		cfg:      cfg,
		logger:   logger,
		circuits: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Get performs req and returns the response body of a 2xx response.
func (c *Client) Get(ctx context.Context, req space.Request) ([]byte, error) {
	u, err := url.Parse(req.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", space.ErrTransport, err)
	}
	cb := c.circuit(u.Host)

	result, err := cb.Execute(func() (interface{}, error) {
		r := c.http.R().SetContext(ctx)
		if len(req.Query) > 0 {
			r.SetQueryParamsFromValues(req.Query)
		}
		if req.Accept != "" {
			r.SetHeader("Accept", req.Accept)
		}

		resp, execErr := r.Get(req.BaseURL)
		if execErr != nil {
			return nil, execErr
		}
		if countsAsFailure(resp.StatusCode()) {
			return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %v", space.ErrTransport, errCircuitOpen, err)
		}
		return nil, fmt.Errorf("%w: %v", space.ErrTransport, err)
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", space.ErrTransport)
	}
	// Client errors reach the caller but leave the host's circuit alone.
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: %w: %d", space.ErrTransport, errUnexpectedStatus, resp.StatusCode())
	}
	body := resp.Body()
	c.logger.Debug().Str("host", u.Host).Int("bytes", len(body)).Msg("response received")
	return body, nil
}

// countsAsFailure reports whether a status says the upstream itself is unhealthy.
func countsAsFailure(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

func (c *Client) circuit(host string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.circuits[host]; ok {
		return cb
	}
	maxFailures := c.cfg.MaxConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     c.cfg.CooldownPeriod,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return maxFailures > 0 && counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Warn().Str("host", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	c.circuits[host] = cb
	return cb
}
