package coingecko

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/coinpulse/internal/logger"
)

const (
	// DefaultBaseURL is the public CoinGecko v3 API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	defaultTimeout = 8 * time.Second
	maxBodyBytes   = 8 << 20
	apiKeyHeader   = "x-cg-demo-api-key"
)

// Client provides access to the CoinGecko REST endpoints used by the aggregator.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for the given API root.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		log:        logger.Component("coingecko"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAPIKey sets the demo API key sent with every request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout sets the deadline applied to each call individually.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
