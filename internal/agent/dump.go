package agent

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gamma-omg/backtester/internal/backtest"
)

type CsvTradesDump struct {
	w           *csv.Writer
	writeHeader bool
}

func NewCsvTradesDump(w io.Writer) *CsvTradesDump {
	return &CsvTradesDump{csv.NewWriter(w), true}
}

func (d *CsvTradesDump) Dump(t backtest.Trade) error {
	if d.writeHeader {
		if err := d.w.Write([]string{"side", "timestamp", "price"}); err != nil {
			return fmt.Errorf("failed to write trades csv header: %w", err)
		}
		d.writeHeader = false
	}

	err := d.w.Write([]string{
		t.Side.String(),
		strconv.FormatInt(t.Time.Unix(), 10),
		t.Price.String()})

	if err != nil {
		return fmt.Errorf("failed to dump trade: %w", err)
	}

	d.w.Flush()
	return d.w.Error()
}

func (d *CsvTradesDump) DumpAll(trades []backtest.Trade) error {
	for _, t := range trades {
		if err := d.Dump(t); err != nil {
			return err
		}
	}

	return nil
}
