package indicator

import "math"

// MACD returns the MACD line (fast EMA minus slow EMA) and its signal line
// (EMA of the MACD line). The line is defined once the slow EMA is, the
// signal line after signalPeriod defined line values.
func MACD(data []float64, fast, slow, signalPeriod int) (line, signal []float64) {
	emaFast := EMA(data, fast)
	emaSlow := EMA(data, slow)

	line = nans(len(data))
	for i := range data {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}

	signal = EMA(line, signalPeriod)
	return line, signal
}
