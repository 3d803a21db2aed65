package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"FXArchive/internal/httputil"
)

const sampleBody = `{
	"Meta Data": {
		"1. Information": "Forex Daily Prices (open, high, low, close)",
		"2. From Symbol": "USD",
		"3. To Symbol": "JPY"
	},
	"Time Series FX (Daily)": {
		"2024-01-05": {"1. open": "148.30", "2. high": "148.90", "3. low": "148.10", "4. close": "148.75"},
		"2024-01-04": {"1. open": "147.90", "2. high": "148.40", "3. low": "147.60", "4. close": "148.20"},
		"2024-01-08": {"1. open": "148.80", "2. high": "149.20", "3. low": "148.50", "4. close": "149.00"}
	}
}`

func newTestFetcher(baseURL string) *AlphaVantage {
	f := NewAlphaVantage(baseURL, "test-key", "", 5*time.Second)
	f.Retry = httputil.Retry{Attempts: 3, BaseDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond}
	return f
}

func TestFetchDaily_Success(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"function":    r.URL.Query().Get("function"),
			"from_symbol": r.URL.Query().Get("from_symbol"),
			"to_symbol":   r.URL.Query().Get("to_symbol"),
			"outputsize":  r.URL.Query().Get("outputsize"),
			"apikey":      r.URL.Query().Get("apikey"),
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	raw, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("expected 3 raw candles, got %d", len(raw))
	}
	rc, ok := raw["2024-01-05"]
	if !ok {
		t.Fatal("missing candle for 2024-01-05")
	}
	if rc.Open != "148.30" || rc.High != "148.90" || rc.Low != "148.10" || rc.Close != "148.75" {
		t.Fatalf("raw candle mismatch: %+v", rc)
	}

	want := map[string]string{
		"function":    "FX_DAILY",
		"from_symbol": "USD",
		"to_symbol":   "JPY",
		"outputsize":  "full",
		"apikey":      "test-key",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query param %s: got %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestFetchDaily_EmptySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Time Series FX (Daily)": {}}`))
	}))
	defer srv.Close()

	raw, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if err != nil {
		t.Fatalf("present-but-empty series must not error: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty raw quote, got %d entries", len(raw))
	}
}

func TestFetchDaily_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call. Please retry or visit the documentation."}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestFetchDaily_RateLimitNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestFetchDaily_MissingSeriesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Meta Data": {"2. From Symbol": "USD"}}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}

func TestFetchDaily_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}

func TestFetchDaily_RetriesServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	raw, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if err != nil {
		t.Fatalf("expected success on second attempt: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("expected 3 raw candles, got %d", len(raw))
	}
	if got := attempts.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestFetchDaily_ClientErrorStatus(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchDaily(context.Background(), "USD", "JPY")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for 404, got %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("4xx must not be retried, got %d attempts", got)
	}
}
