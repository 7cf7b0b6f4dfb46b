package wecom

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	ticketTTL  time.Duration
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    slog.New(slog.DiscardHandler),
		ticketTTL: 30 * time.Minute,
	}
}

// Option configures a Client or Registry.
type Option func(*clientConfig)

// WithBaseURL overrides the API endpoint. Empty values are ignored.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for API calls. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			clone := *c.httpClient
			clone.Timeout = d
			c.httpClient = &clone
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTicketTTL sets how long pushed suite tickets are kept.
func WithTicketTTL(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.ticketTTL = d
		}
	}
}

// FromConfig converts env configuration into options.
func FromConfig(cfg Config) []Option {
	return []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.HTTPTimeout),
		WithTicketTTL(cfg.TicketTTL),
	}
}
