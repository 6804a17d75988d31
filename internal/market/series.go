package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Bar struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// Series is an immutable chronological sequence of daily bars for one symbol.
// Missing trading days are simply absent; no calendar gaps are filled.
type Series struct {
	Symbol string
	Bars   []Bar
}

func NewSeries(symbol string, bars []Bar) (*Series, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return nil, fmt.Errorf("bars for %s are not in strict chronological order at index %d", symbol, i)
		}
	}

	return &Series{Symbol: symbol, Bars: bars}, nil
}

func (s *Series) Len() int {
	return len(s.Bars)
}

// Closes extracts the close prices as floats for indicator math.
func (s *Series) Closes() []float64 {
	return Closes(s.Bars)
}

func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i], _ = b.Close.Float64()
	}

	return closes
}

func (s *Series) Last() (Bar, error) {
	if len(s.Bars) == 0 {
		return Bar{}, fmt.Errorf("no bars for %s", s.Symbol)
	}

	return s.Bars[len(s.Bars)-1], nil
}
