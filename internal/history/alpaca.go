package history

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/gamma-omg/backtester/internal/config"
	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
)

// AlpacaSource fetches split-adjusted daily stock bars from the Alpaca
// market data API.
type AlpacaSource struct {
	client *marketdata.Client
}

func NewAlpacaSource(cfg config.Alpaca) *AlpacaSource {
	return &AlpacaSource{
		client: marketdata.NewClient(marketdata.ClientOpts{
			BaseURL:   cfg.BaseUrl,
			APIKey:    cfg.ApiKey,
			APISecret: cfg.Secret,
		}),
	}
}

func (s *AlpacaSource) GetHistory(ctx context.Context, symbol string, start, end time.Time) (*market.Series, error) {
	raw, err := s.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Split,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bars for %s: %w", symbol, err)
	}

	bars := make([]market.Bar, len(raw))
	for i, b := range raw {
		bars[i] = market.Bar{
			Time:   b.Timestamp,
			Open:   decimal.NewFromFloat(b.Open),
			High:   decimal.NewFromFloat(b.High),
			Low:    decimal.NewFromFloat(b.Low),
			Close:  decimal.NewFromFloat(b.Close),
			Volume: decimal.NewFromInt(int64(b.Volume)),
		}
	}

	return market.NewSeries(symbol, bars)
}
