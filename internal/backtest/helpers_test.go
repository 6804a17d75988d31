package backtest

import (
	"math"
	"time"

	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
)

func makeBars(closes []float64) []market.Bar {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Time:  start.AddDate(0, 0, i),
			Close: decimal.NewFromFloat(c),
		}
	}

	return bars
}

// makeAnnotated builds a signal-annotated series directly, bypassing the
// indicator pass, so simulator tests control exactly when signals fire.
func makeAnnotated(closes []float64, signals map[int]Signal) *Annotated {
	bars := makeBars(closes)
	a := &Annotated{
		Bars:    bars,
		Signals: make([]Signal, len(bars)),
		closes:  closes,
	}
	for i, s := range signals {
		a.Signals[i] = s
	}

	return a
}

// emptyAnnotated preallocates NaN indicator columns for rule tests that
// force specific values.
func emptyAnnotated(closes []float64) *Annotated {
	n := len(closes)
	nanCol := func() []float64 {
		col := make([]float64, n)
		for i := range col {
			col[i] = math.NaN()
		}
		return col
	}

	return &Annotated{
		Bars:       makeBars(closes),
		RSI:        nanCol(),
		SMA50:      nanCol(),
		SMA200:     nanCol(),
		MACD:       nanCol(),
		MACDSignal: nanCol(),
		BBUpper:    nanCol(),
		BBLower:    nanCol(),
		BBMid:      nanCol(),
		Signals:    make([]Signal, n),
		closes:     closes,
	}
}

func fill(col []float64, v float64) {
	for i := range col {
		col[i] = v
	}
}
