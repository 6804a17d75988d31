package backtest

import "math"

// tradingDaysPerYear annualizes daily returns for the Sharpe ratio.
const tradingDaysPerYear = 252

// maxDrawdown is the deepest peak-to-trough decline of the equity curve,
// as a non-positive fraction of the running peak.
func maxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	peak := values[0]
	worst := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (v - peak) / peak; dd < worst {
				worst = dd
			}
		}
	}

	return worst
}

// sharpeRatio annualizes the mean daily return over its sample standard
// deviation. A flat curve has zero variance and yields exactly 0.
func sharpeRatio(values []float64) float64 {
	returns := make([]float64, 0, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		returns = append(returns, values[i]/values[i-1]-1)
	}

	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(len(returns)-1))

	if sd == 0 {
		return 0
	}

	return mean / sd * math.Sqrt(tradingDaysPerYear)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
