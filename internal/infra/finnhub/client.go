package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// HTTPClient is the subset of *http.Client used by Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches quotes from the Finnhub REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets a client-side timeout; zero leaves the transport default
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient creates a new Finnhub client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QuoteResponse is the body of GET /quote
type QuoteResponse struct {
	C  *decimal.Decimal `json:"c"`  // current price
	D  decimal.Decimal  `json:"d"`  // change vs previous close
	DP decimal.Decimal  `json:"dp"` // percent change
	H  decimal.Decimal  `json:"h"`  // day high
	L  decimal.Decimal  `json:"l"`  // day low
	O  decimal.Decimal  `json:"o"`  // day open
	PC decimal.Decimal  `json:"pc"` // previous close
	T  int64            `json:"t"`  // epoch seconds
}

// FetchQuote issues a single quote request for code. No retry.
func (c *Client) FetchQuote(ctx context.Context, code string) (*stock.QuoteSnapshot, error) {
	endpoint, err := url.Parse(c.baseURL + "/quote")
	if err != nil {
		return nil, stock.NewUpstreamError(0, fmt.Errorf("parse base url: %w", err))
	}
	query := endpoint.Query()
	query.Set("symbol", code)
	query.Set("token", c.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, stock.NewUpstreamError(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, stock.NewUpstreamError(0, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, stock.NewUpstreamError(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().
			Str("symbol", code).
			Int("status", resp.StatusCode).
			Msg("Finnhub quote request failed")
		return nil, stock.NewUpstreamError(resp.StatusCode, fmt.Errorf("finnhub API error: status=%d body=%s", resp.StatusCode, truncate(body, 256)))
	}

	var quote QuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrInvalidUpstreamData, err)
	}
	if quote.C == nil {
		return nil, fmt.Errorf("%w: missing current price for %s", stock.ErrInvalidUpstreamData, code)
	}

	return quote.toSnapshot(), nil
}

func (q QuoteResponse) toSnapshot() *stock.QuoteSnapshot {
	return &stock.QuoteSnapshot{
		CurrentPrice:       *q.C,
		Change:             q.D,
		PercentChange:      q.DP,
		HighPrice:          q.H,
		LowPrice:           q.L,
		OpenPrice:          q.O,
		PreviousClosePrice: q.PC,
		TimestampSeconds:   q.T,
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
