package backtest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyHold(t *testing.T) {
	bars := makeBars([]float64{100, 120, 90, 150})

	final, ret, err := BuyHold(bars, decimal.NewFromInt(10000), 0)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(15000).Equal(final), "final: %s", final)
	assert.Equal(t, 50.0, ret)
}

func TestBuyHold_commissionOnBothLegs(t *testing.T) {
	bars := makeBars([]float64{100, 150})

	final, ret, err := BuyHold(bars, decimal.NewFromInt(10000), 0.001)
	require.NoError(t, err)

	// 9990 / 100 = 99.9 shares; 99.9 * 150 * 0.999 = 14970.015
	assert.True(t, decimal.NewFromFloat(14970.02).Equal(final), "final: %s", final)
	assert.Equal(t, 49.7, ret)
}

func TestBuyHold_invalidInput(t *testing.T) {
	bars := makeBars([]float64{100, 150})

	_, _, err := BuyHold(bars, decimal.Zero, 0)
	assert.Error(t, err)

	_, _, err = BuyHold(bars, decimal.NewFromInt(10000), -0.5)
	assert.Error(t, err)

	_, _, err = BuyHold(nil, decimal.NewFromInt(10000), 0)
	assert.Error(t, err)
}
