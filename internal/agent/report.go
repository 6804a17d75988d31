package agent

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gamma-omg/backtester/internal/backtest"
	"github.com/shopspring/decimal"
)

type SymbolResult struct {
	Symbol         string
	Strategy       backtest.Strategy
	InitialCapital decimal.Decimal
	Result         *backtest.Result
	BuyHoldFinal   decimal.Decimal
	BuyHoldReturn  float64
}

type JsonReportBuilder struct {
	log    *slog.Logger
	report JsonReport
	mu     sync.Mutex
}

type JsonReport struct {
	Strategy string                `json:"strategy,omitempty"`
	Results  map[string]JsonResult `json:"results,omitempty"`
}

type JsonResult struct {
	InitialCapital    string      `json:"initial_capital"`
	StrategyFinal     string      `json:"strategy_final"`
	StrategyReturnPct float64     `json:"strategy_return_pct"`
	BuyHoldFinal      string      `json:"buy_hold_final"`
	BuyHoldReturnPct  float64     `json:"buy_hold_return_pct"`
	Trades            int         `json:"trades"`
	WinRatePct        float64     `json:"win_rate_pct"`
	MaxDrawdownPct    float64     `json:"max_drawdown_pct"`
	SharpeRatio       float64     `json:"sharpe_ratio"`
	TradeHistory      []JsonTrade `json:"trade_history,omitempty"`
}

type JsonTrade struct {
	Side  string    `json:"side"`
	Time  time.Time `json:"time,omitzero"`
	Price string    `json:"price"`
}

func NewJsonReportBuilder(log *slog.Logger) *JsonReportBuilder {
	return &JsonReportBuilder{
		log: log,
		report: JsonReport{
			Results: map[string]JsonResult{},
		},
	}
}

func (r *JsonReportBuilder) Submit(res SymbolResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trades := make([]JsonTrade, len(res.Result.TradeLog))
	for i, t := range res.Result.TradeLog {
		trades[i] = JsonTrade{
			Side:  t.Side.String(),
			Time:  t.Time,
			Price: t.Price.String(),
		}
	}

	r.report.Strategy = res.Strategy.String()
	r.report.Results[res.Symbol] = JsonResult{
		InitialCapital:    res.InitialCapital.String(),
		StrategyFinal:     res.Result.Final.String(),
		StrategyReturnPct: res.Result.Return,
		BuyHoldFinal:      res.BuyHoldFinal.String(),
		BuyHoldReturnPct:  res.BuyHoldReturn,
		Trades:            res.Result.Trades,
		WinRatePct:        res.Result.WinRate,
		MaxDrawdownPct:    res.Result.MaxDrawdown,
		SharpeRatio:       res.Result.Sharpe,
		TradeHistory:      trades,
	}

	r.log.Info("backtest finished",
		slog.String("symbol", res.Symbol),
		slog.String("strategy", res.Strategy.String()),
		slog.Float64("strategy_return_pct", res.Result.Return),
		slog.Float64("buy_hold_return_pct", res.BuyHoldReturn),
		slog.Int("trades", res.Result.Trades),
		slog.Float64("sharpe_ratio", res.Result.Sharpe))
}

func (r *JsonReportBuilder) Write(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := json.NewEncoder(w)
	if err := e.Encode(r.report); err != nil {
		return fmt.Errorf("failed to write backtest report: %w", err)
	}

	return nil
}

func (r *JsonReportBuilder) WriteToFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return r.Write(f)
}
