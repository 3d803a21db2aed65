// Package fetcher pulls raw daily FX series from an upstream HTTP source.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FXArchive/internal/model"
)

// Fetcher defines the interface for fetching the raw daily series of a
// currency pair. Implementations own transport, credentials and retry.
type Fetcher interface {
	FetchDaily(ctx context.Context, fromSymbol, toSymbol string) (model.RawQuote, error)
	Name() string
}

var (
	// ErrUpstream marks a failure reported by the upstream API itself.
	ErrUpstream = errors.New("upstream API error")
	// ErrRateLimited marks an upstream quota rejection.
	ErrRateLimited = errors.New("upstream rate limit exceeded")
	// ErrUnexpectedResponse marks a reply that fits none of the known shapes.
	ErrUnexpectedResponse = errors.New("unexpected upstream response")
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Raw model.RawQuote
	Err error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDaily(_ context.Context, _, _ string) (model.RawQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Raw != nil {
		return m.Raw, nil
	}
	return generateMockQuote(30), nil
}

func generateMockQuote(days int) model.RawQuote {
	raw := make(model.RawQuote, days)
	base := 148.0
	for i := 0; i < days; i++ {
		day := time.Now().AddDate(0, 0, -(days - i)).Format(model.DateLayout)
		p := base * (1 + float64(i-days/2)*0.001)
		raw[day] = model.RawCandle{
			Open:  fmt.Sprintf("%.4f", p*0.999),
			High:  fmt.Sprintf("%.4f", p*1.003),
			Low:   fmt.Sprintf("%.4f", p*0.997),
			Close: fmt.Sprintf("%.4f", p),
		}
	}
	return raw
}
