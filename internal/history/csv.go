package history

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
)

// CSVSource reads daily bars from per-symbol csv files with a
// timestamp,open,high,low,close,volume layout.
type CSVSource struct {
	paths map[string]string
}

func NewCSVSource(paths map[string]string) *CSVSource {
	return &CSVSource{paths: paths}
}

func (s *CSVSource) GetHistory(ctx context.Context, symbol string, start, end time.Time) (*market.Series, error) {
	path, ok := s.paths[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown symbol: %s", symbol)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open bars file: %w", err)
	}
	defer f.Close()

	bars, err := readBars(csv.NewReader(bufio.NewReader(f)), func(b market.Bar) bool {
		return !b.Time.Before(start) && !b.Time.After(end)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read bars for %s: %w", symbol, err)
	}

	return market.NewSeries(symbol, bars)
}

type barFilter func(b market.Bar) bool

func readBars(rdr *csv.Reader, filter barFilter) ([]market.Bar, error) {
	if _, err := rdr.Read(); err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var bars []market.Bar
	for {
		data, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read bar data: %w", err)
		}
		if len(data) < 6 {
			return nil, errors.New("bar record has too few columns")
		}

		timestamp, err := strconv.ParseFloat(data[0], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bar time: %w", err)
		}

		open, err := decimal.NewFromString(data[1])
		if err != nil {
			return nil, fmt.Errorf("failed to read open price: %w", err)
		}

		high, err := decimal.NewFromString(data[2])
		if err != nil {
			return nil, fmt.Errorf("failed to read high price: %w", err)
		}

		low, err := decimal.NewFromString(data[3])
		if err != nil {
			return nil, fmt.Errorf("failed to read low price: %w", err)
		}

		close, err := decimal.NewFromString(data[4])
		if err != nil {
			return nil, fmt.Errorf("failed to read close price: %w", err)
		}

		volume, err := decimal.NewFromString(data[5])
		if err != nil {
			return nil, fmt.Errorf("failed to read volume: %w", err)
		}

		bar := market.Bar{
			Time:   time.Unix(int64(timestamp), 0),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		}
		if filter(bar) {
			bars = append(bars, bar)
		}
	}

	return bars, nil
}
