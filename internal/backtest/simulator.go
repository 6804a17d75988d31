package backtest

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Side int

const (
	SideBuy Side = iota
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return fmt.Sprintf("SIDE_%d", s)
	}
}

type Trade struct {
	Side  Side
	Time  time.Time
	Price decimal.Decimal
}

type EquityPoint struct {
	Time  time.Time
	Value decimal.Decimal
}

type Result struct {
	Final       decimal.Decimal
	Return      float64
	Trades      int
	WinRate     float64
	MaxDrawdown float64
	Sharpe      float64
	TradeLog    []Trade
	Equity      []EquityPoint
}

type commissionCharger interface {
	ApplyOnBuy(decimal.Decimal) decimal.Decimal
	ApplyOnSell(decimal.Decimal) decimal.Decimal
}

type fixedRateCommission struct {
	factor decimal.Decimal
}

func newFixedRateCommission(pct float64) *fixedRateCommission {
	return &fixedRateCommission{factor: decimal.NewFromFloat(1 - pct)}
}

func (c *fixedRateCommission) ApplyOnBuy(sum decimal.Decimal) decimal.Decimal {
	return sum.Mul(c.factor)
}

func (c *fixedRateCommission) ApplyOnSell(sum decimal.Decimal) decimal.Decimal {
	return sum.Mul(c.factor)
}

// Simulate runs a single long-only account over a signal-annotated series.
// The account is always either fully in cash or fully invested; duplicate
// signals for the current position state are ignored. The commission rate is
// fractional and applies to both entry and exit notional.
func Simulate(a *Annotated, initialCapital decimal.Decimal, commission float64) (*Result, error) {
	if !initialCapital.IsPositive() {
		return nil, fmt.Errorf("initial capital must be positive, got %s", initialCapital)
	}
	if commission < 0 {
		return nil, fmt.Errorf("commission must not be negative, got %f", commission)
	}
	if a == nil || len(a.Bars) == 0 {
		return nil, errors.New("cannot simulate an empty series")
	}
	if len(a.Signals) != len(a.Bars) {
		return nil, errors.New("signal sequence does not match the series")
	}

	charger := newFixedRateCommission(commission)

	capital := initialCapital
	shares := decimal.Zero
	inPosition := false
	var entryPrice decimal.Decimal

	trades, wins := 0, 0
	var tradeLog []Trade
	equity := make([]EquityPoint, 0, len(a.Bars))

	for i, bar := range a.Bars {
		switch a.Signals[i] {
		case Buy:
			if !inPosition {
				shares = charger.ApplyOnBuy(capital).Div(bar.Close)
				capital = decimal.Zero
				entryPrice = bar.Close
				inPosition = true
				trades++
				tradeLog = append(tradeLog, Trade{Side: SideBuy, Time: bar.Time, Price: bar.Close})
			}
		case Sell:
			if inPosition {
				capital = charger.ApplyOnSell(shares.Mul(bar.Close))
				if bar.Close.GreaterThan(entryPrice) {
					wins++
				}
				shares = decimal.Zero
				inPosition = false
				tradeLog = append(tradeLog, Trade{Side: SideSell, Time: bar.Time, Price: bar.Close})
			}
		}

		equity = append(equity, EquityPoint{
			Time:  bar.Time,
			Value: capital.Add(shares.Mul(bar.Close)),
		})
	}

	// An open position is liquidated implicitly for the final value, but no
	// synthetic sell is logged: the position is conceptually still open.
	final := capital
	if inPosition {
		final = charger.ApplyOnSell(shares.Mul(a.Bars[len(a.Bars)-1].Close))
	}

	values := make([]float64, len(equity))
	for i, p := range equity {
		values[i], _ = p.Value.Float64()
	}

	ret, _ := final.Sub(initialCapital).Div(initialCapital).Float64()

	winRate := 0.0
	if trades > 0 {
		winRate = float64(wins) / float64(trades) * 100
	}

	return &Result{
		Final:       final.Round(2),
		Return:      round2(ret * 100),
		Trades:      trades,
		WinRate:     round2(winRate),
		MaxDrawdown: round2(maxDrawdown(values) * 100),
		Sharpe:      round2(sharpeRatio(values)),
		TradeLog:    tradeLog,
		Equity:      equity,
	}, nil
}
