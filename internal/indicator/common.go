// Package indicator implements technical indicators as pure functions over a
// close-price sequence. Every function returns a slice of the same length as
// its input with math.NaN() for warm-up bars where the window has
// insufficient history. Comparisons against NaN are always false, which lets
// callers treat undefined values as "condition does not hold".
package indicator

import "math"

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// SMA is the simple moving average over the trailing period bars.
func SMA(data []float64, period int) []float64 {
	out := nans(len(data))
	if period <= 0 || len(data) < period {
		return out
	}

	var sum float64
	for i, v := range data {
		sum += v
		if i >= period {
			sum -= data[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// EMA is the exponential moving average with smoothing 2/(period+1). The
// recursion is seeded with the first defined value and the first period-1
// defined bars are masked as warm-up. Leading NaNs in the input are skipped,
// so the result of one EMA can feed another.
func EMA(data []float64, period int) []float64 {
	out := nans(len(data))
	if period <= 0 {
		return out
	}

	start := -1
	for i, v := range data {
		if !math.IsNaN(v) {
			start = i
			break
		}
	}
	if start < 0 {
		return out
	}

	a := 2.0 / (float64(period) + 1)
	prev := data[start]
	for i := start; i < len(data); i++ {
		if i > start {
			prev = data[i]*a + prev*(1-a)
		}
		if i-start >= period-1 {
			out[i] = prev
		}
	}

	return out
}
