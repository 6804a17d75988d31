package backtest

import (
	"fmt"

	"github.com/gamma-omg/backtester/internal/indicator"
	"github.com/gamma-omg/backtester/internal/market"
)

type Signal int

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Hold:
		return "HOLD"
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("SIGNAL_%d", s)
	}
}

type Strategy int

const (
	StrategyRSISMA Strategy = iota
	StrategySMACross
	StrategyBollinger
	StrategyMACDCross
)

var strategyNames = map[Strategy]string{
	StrategyRSISMA:    "rsi-sma",
	StrategySMACross:  "sma-cross",
	StrategyBollinger: "bollinger",
	StrategyMACDCross: "macd-cross",
}

func (s Strategy) String() string {
	name, ok := strategyNames[s]
	if !ok {
		return fmt.Sprintf("STRATEGY_%d", s)
	}

	return name
}

func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("unknown strategy: %s", name)
}

const (
	rsiPeriod     = 14
	rsiOversold   = 30
	rsiOverbought = 70
	smaFast       = 50
	smaSlow       = 200
	macdFast      = 12
	macdSlow      = 26
	macdSignal    = 9
	bbPeriod      = 20
	bbWidth       = 2
)

// Annotated is a derived copy of a price series carrying indicator columns
// and one signal per bar. Indicator values are NaN during warm-up; no signal
// fires on undefined data.
type Annotated struct {
	Bars       []market.Bar
	RSI        []float64
	SMA50      []float64
	SMA200     []float64
	MACD       []float64
	MACDSignal []float64
	BBUpper    []float64
	BBLower    []float64
	BBMid      []float64
	Signals    []Signal

	closes []float64
}

// GenerateSignals maps a price series and a strategy to a same-length signal
// sequence. The input is never mutated; signals depend only on the current
// and prior bars.
func GenerateSignals(bars []market.Bar, strategy Strategy) (*Annotated, error) {
	a := annotate(bars, strategy)
	if err := a.apply(strategy); err != nil {
		return nil, err
	}

	return a, nil
}

func annotate(bars []market.Bar, strategy Strategy) *Annotated {
	copied := make([]market.Bar, len(bars))
	copy(copied, bars)

	a := &Annotated{
		Bars:    copied,
		Signals: make([]Signal, len(copied)),
		closes:  market.Closes(copied),
	}

	a.RSI = indicator.RSI(a.closes, rsiPeriod)
	a.SMA50 = indicator.SMA(a.closes, smaFast)
	a.SMA200 = indicator.SMA(a.closes, smaSlow)
	a.MACD, a.MACDSignal = indicator.MACD(a.closes, macdFast, macdSlow, macdSignal)

	if strategy == StrategyBollinger {
		a.BBUpper, a.BBLower, a.BBMid = indicator.Bollinger(a.closes, bbPeriod, bbWidth)
	}

	return a
}

func (a *Annotated) apply(strategy Strategy) error {
	switch strategy {
	case StrategyRSISMA:
		a.applyRSISMA()
	case StrategySMACross:
		a.applyCross(a.SMA50, a.SMA200)
	case StrategyBollinger:
		a.applyBollinger()
	case StrategyMACDCross:
		a.applyCross(a.MACD, a.MACDSignal)
	default:
		return fmt.Errorf("unknown strategy: %d", strategy)
	}

	return nil
}

// applyRSISMA buys oversold dips above the fast average and sells on
// overbought or a close below the slow average. Buy wins when both
// conditions hold on the same bar.
func (a *Annotated) applyRSISMA() {
	for i, c := range a.closes {
		buy := a.RSI[i] < rsiOversold && c > a.SMA50[i]
		sell := a.RSI[i] > rsiOverbought || c < a.SMA200[i]

		switch {
		case buy:
			a.Signals[i] = Buy
		case sell:
			a.Signals[i] = Sell
		}
	}
}

// applyCross fires only on the transition bar of a crossover, using the
// previous bar for the "from" state. The first bar never fires.
func (a *Annotated) applyCross(fast, slow []float64) {
	for i := 1; i < len(a.closes); i++ {
		switch {
		case fast[i] > slow[i] && fast[i-1] <= slow[i-1]:
			a.Signals[i] = Buy
		case fast[i] < slow[i] && fast[i-1] >= slow[i-1]:
			a.Signals[i] = Sell
		}
	}
}

// applyBollinger buys at or below the lower band and sells at or above the
// upper band, buy winning on overlap.
func (a *Annotated) applyBollinger() {
	for i, c := range a.closes {
		buy := c <= a.BBLower[i]
		sell := c >= a.BBUpper[i]

		switch {
		case buy:
			a.Signals[i] = Buy
		case sell:
			a.Signals[i] = Sell
		}
	}
}
