package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gamma-omg/backtester/internal/agent"
	"github.com/gamma-omg/backtester/internal/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.ReadFromFile(os.Getenv("CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.Default()

	source, err := agent.NewSource(*cfg)
	if err != nil {
		log.Fatal(err)
	}

	report := agent.NewJsonReportBuilder(logger)
	a := agent.New(logger, *cfg, source, report)
	if err := a.Run(ctx); err != nil {
		log.Fatal(err)
	}

	if cfg.Report != "" {
		if err := report.WriteToFile(cfg.Report); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := report.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
