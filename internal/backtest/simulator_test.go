package backtest

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}

	return closes
}

func TestSimulate_noTradesNoChange(t *testing.T) {
	a := makeAnnotated(flatCloses(50, 100), nil)

	res, err := Simulate(a, decimal.NewFromInt(10000), 0.001)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10000).Equal(res.Final), "final: %s", res.Final)
	assert.Equal(t, 0.0, res.Return)
	assert.Equal(t, 0, res.Trades)
	assert.Equal(t, 0.0, res.WinRate)
	assert.Equal(t, 0.0, res.MaxDrawdown)
	assert.Equal(t, 0.0, res.Sharpe)
	assert.Empty(t, res.TradeLog)
	assert.Len(t, res.Equity, 50)
}

func TestSimulate_commissionDeductedBeforeEntry(t *testing.T) {
	a := makeAnnotated(flatCloses(10, 100), map[int]Signal{2: Buy})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0.001)
	require.NoError(t, err)

	// shares = 10000 * 0.999 / 100 = 99.9, capital drops to zero
	assert.True(t, decimal.NewFromFloat(9990).Equal(res.Equity[2].Value), "equity: %s", res.Equity[2].Value)
	assert.Equal(t, 1, res.Trades)
	require.Len(t, res.TradeLog, 1)
	assert.Equal(t, SideBuy, res.TradeLog[0].Side)

	// open position is liquidated for the final value only
	assert.True(t, decimal.NewFromFloat(9980.01).Equal(res.Final), "final: %s", res.Final)
}

func TestSimulate_profitableTrade(t *testing.T) {
	closes := append(append(flatCloses(5, 100), flatCloses(5, 90)...), flatCloses(90, 110)...)
	a := makeAnnotated(closes, map[int]Signal{5: Buy, 50: Sell})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0)
	require.NoError(t, err)

	assert.True(t, res.Final.GreaterThan(decimal.NewFromInt(10000)), "final: %s", res.Final)
	assert.Equal(t, 1, res.Trades)
	assert.Equal(t, 100.0, res.WinRate)

	require.Len(t, res.TradeLog, 2)
	assert.Equal(t, SideBuy, res.TradeLog[0].Side)
	assert.Equal(t, SideSell, res.TradeLog[1].Side)
	assert.True(t, res.TradeLog[0].Price.Equal(decimal.NewFromInt(90)))
	assert.True(t, res.TradeLog[1].Price.Equal(decimal.NewFromInt(110)))
}

func TestSimulate_losingTrade(t *testing.T) {
	closes := append(flatCloses(5, 100), flatCloses(5, 80)...)
	a := makeAnnotated(closes, map[int]Signal{1: Buy, 7: Sell})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Trades)
	assert.Equal(t, 0.0, res.WinRate)
	assert.True(t, res.Final.LessThan(decimal.NewFromInt(10000)))
	assert.Negative(t, res.Return)
}

func TestSimulate_duplicateSignalsIgnored(t *testing.T) {
	a := makeAnnotated(flatCloses(10, 100), map[int]Signal{
		0: Sell, // sell while flat is a no-op
		2: Buy,
		3: Buy, // buy while long is a no-op
		5: Sell,
		6: Sell,
	})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Trades)
	require.Len(t, res.TradeLog, 2)
	assert.Equal(t, SideBuy, res.TradeLog[0].Side)
	assert.Equal(t, SideSell, res.TradeLog[1].Side)
}

func TestSimulate_tradeLogAlternates(t *testing.T) {
	a := makeAnnotated(syntheticCloses(100), map[int]Signal{
		3: Buy, 10: Sell, 11: Sell, 20: Buy, 21: Buy, 40: Sell, 60: Buy,
	})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0.001)
	require.NoError(t, err)

	require.NotEmpty(t, res.TradeLog)
	assert.Equal(t, SideBuy, res.TradeLog[0].Side)
	for i := 1; i < len(res.TradeLog); i++ {
		assert.NotEqual(t, res.TradeLog[i-1].Side, res.TradeLog[i].Side, "entry %d", i)
	}
}

func TestSimulate_equityConservation(t *testing.T) {
	closes := []float64{100, 200, 100, 150, 50}
	a := makeAnnotated(closes, map[int]Signal{0: Buy, 3: Sell})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0)
	require.NoError(t, err)

	// in position: value tracks price; flat: value stays put
	expected := []float64{10000, 20000, 10000, 15000, 15000}
	require.Len(t, res.Equity, len(expected))
	for i, want := range expected {
		got, _ := res.Equity[i].Value.Float64()
		assert.InDelta(t, want, got, 1e-9, "bar %d", i)
	}
}

func TestSimulate_maxDrawdown(t *testing.T) {
	a := makeAnnotated([]float64{100, 200, 100}, map[int]Signal{0: Buy})

	res, err := Simulate(a, decimal.NewFromInt(10000), 0)
	require.NoError(t, err)

	assert.Equal(t, -50.0, res.MaxDrawdown)
}

func TestSimulate_winRateBounds(t *testing.T) {
	tbl := []struct {
		signals map[int]Signal
	}{
		{signals: nil},
		{signals: map[int]Signal{1: Buy, 5: Sell}},
		{signals: map[int]Signal{1: Buy, 5: Sell, 10: Buy, 20: Sell, 30: Buy}},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			a := makeAnnotated(syntheticCloses(60), c.signals)
			res, err := Simulate(a, decimal.NewFromInt(10000), 0.001)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, res.WinRate, 0.0)
			assert.LessOrEqual(t, res.WinRate, 100.0)
		})
	}
}

func TestSimulate_invalidParams(t *testing.T) {
	a := makeAnnotated(flatCloses(10, 100), nil)

	_, err := Simulate(a, decimal.Zero, 0.001)
	assert.Error(t, err)

	_, err = Simulate(a, decimal.NewFromInt(-100), 0.001)
	assert.Error(t, err)

	_, err = Simulate(a, decimal.NewFromInt(10000), -0.1)
	assert.Error(t, err)

	_, err = Simulate(nil, decimal.NewFromInt(10000), 0.001)
	assert.Error(t, err)

	_, err = Simulate(&Annotated{}, decimal.NewFromInt(10000), 0.001)
	assert.Error(t, err)
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "BUY", SideBuy.String())
	assert.Equal(t, "SELL", SideSell.String())
	assert.Equal(t, "SIDE_7", Side(7).String())
}
