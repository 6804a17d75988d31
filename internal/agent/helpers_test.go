package agent

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func syntheticSeries(symbol string, n int) *market.Series {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, n)
	for i := range bars {
		bars[i] = market.Bar{
			Time:  start.AddDate(0, 0, i),
			Close: decimal.NewFromFloat(100 + 10*math.Sin(float64(i)/7) + float64(i)*0.05),
		}
	}

	return &market.Series{Symbol: symbol, Bars: bars}
}

type mockSource struct {
	series map[string]*market.Series
	errs   map[string]error
}

func (m *mockSource) GetHistory(ctx context.Context, symbol string, start, end time.Time) (*market.Series, error) {
	if err, ok := m.errs[symbol]; ok {
		return nil, err
	}

	return m.series[symbol], nil
}

type mockReport struct {
	results []SymbolResult
	mu      sync.Mutex
}

func (m *mockReport) Submit(r SymbolResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, r)
}

func (m *mockReport) Write(w io.Writer) error {
	return nil
}

func (m *mockReport) symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var symbols []string
	for _, r := range m.results {
		symbols = append(symbols, r.Symbol)
	}

	return symbols
}
