package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"FXArchive/internal/httputil"
	"FXArchive/internal/model"
)

const (
	fxDailyFunction = "FX_DAILY"
	seriesKey       = "Time Series FX (Daily)"
)

// AlphaVantage implements Fetcher using the Alpha Vantage FX_DAILY endpoint.
// The API key is injected at construction and never read from the process
// environment here.
type AlphaVantage struct {
	BaseURL    string
	APIKey     string
	OutputSize string // "full" or "compact"
	Client     *http.Client
	Retry      httputil.Retry
}

// NewAlphaVantage creates a fetcher with optional proxy support. OutputSize
// defaults to "full" (complete history).
func NewAlphaVantage(baseURL, apiKey, proxyURL string, timeout time.Duration) *AlphaVantage {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlphaVantage{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		OutputSize: "full",
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Retry: httputil.DefaultRetry,
	}
}

func (f *AlphaVantage) Name() string { return "alphavantage" }

// fxDailyResponse covers the reply shapes FX_DAILY is known to produce: an
// error envelope, a rate-limit note, or the series itself.
type fxDailyResponse struct {
	ErrorMessage string         `json:"Error Message"`
	Note         string         `json:"Note"`
	Series       model.RawQuote `json:"Time Series FX (Daily)"`
}

// FetchDaily requests the full daily history for the pair and returns the
// raw date-keyed series. In-band API errors are never retried; transport
// errors and 5xx are, within the retry budget.
func (f *AlphaVantage) FetchDaily(ctx context.Context, fromSymbol, toSymbol string) (model.RawQuote, error) {
	q := url.Values{}
	q.Set("function", fxDailyFunction)
	q.Set("from_symbol", fromSymbol)
	q.Set("to_symbol", toSymbol)
	q.Set("outputsize", f.OutputSize)
	q.Set("apikey", f.APIKey)
	endpoint := fmt.Sprintf("%s/query?%s", f.BaseURL, q.Encode())

	resp, err := f.Retry.Do(ctx, f.Client, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrUpstream, resp.StatusCode, snippet(body))
	}

	var payload fxDailyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable body: %v", ErrUnexpectedResponse, err)
	}
	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, payload.ErrorMessage)
	}
	if payload.Note != "" {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, payload.Note)
	}
	if payload.Series == nil {
		return nil, fmt.Errorf("%w: missing %q", ErrUnexpectedResponse, seriesKey)
	}
	return payload.Series, nil
}

func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
