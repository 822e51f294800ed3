package finnhub_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/finnhub"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchQuote_Success(t *testing.T) {
	srv := newServer(t, http.StatusOK,
		`{"c":234.795,"d":1.925,"dp":0.8266,"h":235.57,"l":232.9,"o":232.9,"pc":232.87,"t":1732640657}`)

	client := finnhub.NewClient("test-key", finnhub.WithBaseURL(srv.URL+"/"))

	quote, err := client.FetchQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.True(t, quote.CurrentPrice.Equal(decimal.RequireFromString("234.795")))
	assert.True(t, quote.Change.Equal(decimal.RequireFromString("1.925")))
	assert.True(t, quote.PercentChange.Equal(decimal.RequireFromString("0.8266")))
	assert.True(t, quote.HighPrice.Equal(decimal.RequireFromString("235.57")))
	assert.True(t, quote.LowPrice.Equal(decimal.RequireFromString("232.9")))
	assert.True(t, quote.OpenPrice.Equal(decimal.RequireFromString("232.9")))
	assert.True(t, quote.PreviousClosePrice.Equal(decimal.RequireFromString("232.87")))
	assert.Equal(t, int64(1732640657), quote.TimestampSeconds)
}

func TestFetchQuote_CurrentPriceAndTimestampPassThrough(t *testing.T) {
	cases := []struct {
		body  string
		price string
		ts    int64
	}{
		{`{"c":0,"t":0}`, "0", 0},
		{`{"c":1.5,"t":1}`, "1.5", 1},
		{`{"c":99999.123456,"d":null,"dp":null,"t":1700000000}`, "99999.123456", 1700000000},
	}

	for _, tc := range cases {
		t.Run(tc.body, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, tc.body)
			client := finnhub.NewClient("test-key", finnhub.WithBaseURL(srv.URL))

			quote, err := client.FetchQuote(context.Background(), "AAPL")
			require.NoError(t, err)
			assert.True(t, quote.CurrentPrice.Equal(decimal.RequireFromString(tc.price)))
			assert.Equal(t, tc.ts, quote.TimestampSeconds)
		})
	}
}

func TestFetchQuote_MissingCurrentPrice(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"c":null,"t":1732640657}`,
		`{"d":1.2,"h":3,"l":1,"o":2,"pc":2,"t":1732640657}`,
		`not json`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, body)
			client := finnhub.NewClient("test-key", finnhub.WithBaseURL(srv.URL))

			_, err := client.FetchQuote(context.Background(), "AAPL")
			require.Error(t, err)
			assert.ErrorIs(t, err, stock.ErrInvalidUpstreamData)
			assert.NotErrorIs(t, err, stock.ErrUpstreamUnavailable)
		})
	}
}

func TestFetchQuote_NonSuccessStatus(t *testing.T) {
	srv := newServer(t, http.StatusTooManyRequests, `{"error":"API limit reached"}`)
	client := finnhub.NewClient("test-key", finnhub.WithBaseURL(srv.URL))

	_, err := client.FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.ErrorIs(t, err, stock.ErrUpstreamUnavailable)

	var ue *stock.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.StatusCode)
}

func TestFetchQuote_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := finnhub.NewClient("test-key", finnhub.WithBaseURL(url), finnhub.WithTimeout(time.Second))

	_, err := client.FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var ue *stock.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusInternalServerError, ue.StatusCode)
}

type recordingClient struct {
	calls int
}

func (r *recordingClient) Do(req *http.Request) (*http.Response, error) {
	r.calls++
	return nil, errors.New("boom")
}

func TestFetchQuote_NoRetry(t *testing.T) {
	rc := &recordingClient{}
	client := finnhub.NewClient("test-key", finnhub.WithHTTPClient(rc))

	_, err := client.FetchQuote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, 1, rc.calls)
}
