package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gamma-omg/backtester/internal/backtest"
	"github.com/gamma-omg/backtester/internal/config"
	"github.com/gamma-omg/backtester/internal/market"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type historySource interface {
	GetHistory(ctx context.Context, symbol string, start, end time.Time) (*market.Series, error)
}

type reportBuilder interface {
	Submit(r SymbolResult)
	Write(w io.Writer) error
}

// Agent runs one backtest per configured symbol against a shared history
// source and feeds the results to a report builder. Each symbol's run is
// independent, so they execute concurrently on a bounded worker group.
type Agent struct {
	log    *slog.Logger
	cfg    config.Config
	source historySource
	report reportBuilder
	now    func() time.Time
}

func New(log *slog.Logger, cfg config.Config, source historySource, report reportBuilder) *Agent {
	return &Agent{
		log:    log,
		cfg:    cfg,
		source: source,
		report: report,
		now:    time.Now,
	}
}

func (a *Agent) Run(ctx context.Context) error {
	strategy, err := backtest.ParseStrategy(a.cfg.Backtest.Strategy)
	if err != nil {
		return err
	}

	end := a.now()
	start := end.AddDate(-a.cfg.Backtest.Years, 0, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Backtest.Workers)

	for _, symbol := range a.cfg.Backtest.Symbols {
		g.Go(func() error {
			return a.runSymbol(ctx, symbol, strategy, start, end)
		})
	}

	return g.Wait()
}

func (a *Agent) runSymbol(ctx context.Context, symbol string, strategy backtest.Strategy, start, end time.Time) error {
	series, err := a.source.GetHistory(ctx, symbol, start, end)
	if err != nil {
		// a failed fetch skips the symbol, it must not sink the whole scan
		a.log.Error("failed to fetch history", "symbol", symbol, "error", err)
		return nil
	}

	if series.Len() < a.cfg.Backtest.MinBars {
		a.log.Warn("not enough data for backtest",
			"symbol", symbol,
			"bars", series.Len(),
			"required", a.cfg.Backtest.MinBars)
		return nil
	}

	ann, err := backtest.GenerateSignals(series.Bars, strategy)
	if err != nil {
		return fmt.Errorf("failed to generate signals for %s: %w", symbol, err)
	}

	capital := decimal.NewFromFloat(a.cfg.Backtest.InitialCapital)
	res, err := backtest.Simulate(ann, capital, a.cfg.Backtest.Commission)
	if err != nil {
		return fmt.Errorf("failed to simulate trades for %s: %w", symbol, err)
	}

	bhFinal, bhReturn, err := backtest.BuyHold(series.Bars, capital, a.cfg.Backtest.Commission)
	if err != nil {
		return fmt.Errorf("failed to compute buy & hold for %s: %w", symbol, err)
	}

	a.report.Submit(SymbolResult{
		Symbol:         symbol,
		Strategy:       strategy,
		InitialCapital: capital,
		Result:         res,
		BuyHoldFinal:   bhFinal,
		BuyHoldReturn:  bhReturn,
	})

	if a.cfg.TradesDir != "" {
		if err := a.dumpTrades(symbol, res.TradeLog); err != nil {
			a.log.Error("failed to dump trade history", "symbol", symbol, "error", err)
		}
	}

	if a.cfg.PlotDir != "" {
		path := filepath.Join(a.cfg.PlotDir, symbol+".png")
		if err := SaveEquityPlot(path, symbol, ann.Bars, res.Equity); err != nil {
			a.log.Error("failed to save equity plot", "symbol", symbol, "error", err)
		}
	}

	return nil
}

func (a *Agent) dumpTrades(symbol string, trades []backtest.Trade) (err error) {
	f, err := os.Create(filepath.Join(a.cfg.TradesDir, symbol+".csv"))
	if err != nil {
		return fmt.Errorf("failed to create trades file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return NewCsvTradesDump(f).DumpAll(trades)
}
