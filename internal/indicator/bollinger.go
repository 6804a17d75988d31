package indicator

import "math"

// Bollinger returns the upper, lower and middle bands: SMA(period) plus and
// minus width population standard deviations over the same window.
func Bollinger(data []float64, period int, width float64) (upper, lower, mid []float64) {
	mid = SMA(data, period)
	upper = nans(len(data))
	lower = nans(len(data))

	for i := period - 1; i < len(data); i++ {
		var variance float64
		for _, v := range data[i-period+1 : i+1] {
			d := v - mid[i]
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		upper[i] = mid[i] + width*sd
		lower[i] = mid[i] - width*sd
	}

	return upper, lower, mid
}
