package backtest

import (
	"errors"
	"fmt"

	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
)

// BuyHold is the benchmark of buying on the first bar and selling on the
// last, paying commission on both legs.
func BuyHold(bars []market.Bar, initialCapital decimal.Decimal, commission float64) (final decimal.Decimal, returnPct float64, err error) {
	if !initialCapital.IsPositive() {
		return decimal.Zero, 0, fmt.Errorf("initial capital must be positive, got %s", initialCapital)
	}
	if commission < 0 {
		return decimal.Zero, 0, fmt.Errorf("commission must not be negative, got %f", commission)
	}
	if len(bars) == 0 {
		return decimal.Zero, 0, errors.New("cannot compute buy & hold on an empty series")
	}

	charger := newFixedRateCommission(commission)
	shares := charger.ApplyOnBuy(initialCapital).Div(bars[0].Close)
	final = charger.ApplyOnSell(shares.Mul(bars[len(bars)-1].Close))

	ret, _ := final.Sub(initialCapital).Div(initialCapital).Float64()
	return final.Round(2), round2(ret * 100), nil
}
