package backtest

import (
	"errors"
	"math"
	"time"

	"github.com/gamma-omg/backtester/internal/indicator"
	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
)

// Snapshot describes the most recent bar of a series: its close, the core
// indicator values and the RSI+SMA signal for that bar. Indicator values are
// NaN when the series is too short for their window.
type Snapshot struct {
	Symbol string
	Time   time.Time
	Close  decimal.Decimal
	RSI    float64
	SMA50  float64
	SMA200 float64
	Signal Signal
}

func TakeSnapshot(s *market.Series) (*Snapshot, error) {
	if s.Len() == 0 {
		return nil, errors.New("cannot take a snapshot of an empty series")
	}

	closes := s.Closes()
	last := len(closes) - 1

	rsi := indicator.RSI(closes, rsiPeriod)[last]
	sma50 := indicator.SMA(closes, smaFast)[last]
	sma200 := indicator.SMA(closes, smaSlow)[last]
	close := closes[last]

	signal := Hold
	if !math.IsNaN(rsi) && !math.IsNaN(sma50) {
		switch {
		case rsi < rsiOversold && close > sma50:
			signal = Buy
		case rsi > rsiOverbought || close < sma200:
			signal = Sell
		}
	}

	return &Snapshot{
		Symbol: s.Symbol,
		Time:   s.Bars[last].Time,
		Close:  s.Bars[last].Close,
		RSI:    rsi,
		SMA50:  sma50,
		SMA200: sma200,
		Signal: signal,
	}, nil
}
