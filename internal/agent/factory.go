package agent

import (
	"errors"

	"github.com/gamma-omg/backtester/internal/config"
	"github.com/gamma-omg/backtester/internal/history"
)

// NewSource builds a history source from its config reference, wrapping it
// with the ttl cache when one is configured.
func NewSource(cfg config.Config) (history.Source, error) {
	var src history.Source

	if csv, ok := cfg.SourceRef.Source.(config.CSV); ok {
		src = history.NewCSVSource(csv.Data)
	}
	if alpaca, ok := cfg.SourceRef.Source.(config.Alpaca); ok {
		src = history.NewAlpacaSource(alpaca)
	}
	if src == nil {
		return nil, errors.New("unknown history source")
	}

	if ttl := cfg.Backtest.CacheTTL(); ttl > 0 {
		src = history.NewCachedProvider(src, ttl)
	}

	return src, nil
}
