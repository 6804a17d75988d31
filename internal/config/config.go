package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backtest  Backtest        `yaml:"backtest"`
	Report    string          `yaml:"report"`
	PlotDir   string          `yaml:"plot_dir"`
	TradesDir string          `yaml:"trades_dir"`
	SourceRef SourceReference `yaml:"source"`
}

type Backtest struct {
	Symbols        []string `yaml:"symbols"`
	Years          int      `yaml:"years"`
	InitialCapital float64  `yaml:"initial_capital"`
	Commission     float64  `yaml:"commission"`
	Strategy       string   `yaml:"strategy"`
	MinBars        int      `yaml:"min_bars"`
	Workers        int      `yaml:"workers"`
	CacheTTLSec    int      `yaml:"cache_ttl_sec"`
}

func (b Backtest) CacheTTL() time.Duration {
	return time.Duration(b.CacheTTLSec) * time.Second
}

func Read(r io.Reader) (*Config, error) {
	cfg := Config{
		Backtest: Backtest{
			Years:       5,
			MinBars:     200,
			Workers:     4,
			CacheTTLSec: 300,
		},
	}

	d := yaml.NewDecoder(r)
	if err := d.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func (c *Config) validate() error {
	b := c.Backtest
	if len(b.Symbols) == 0 {
		return errors.New("at least one symbol is required")
	}
	if b.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %f", b.InitialCapital)
	}
	if b.Commission < 0 {
		return fmt.Errorf("commission must not be negative, got %f", b.Commission)
	}
	if b.Years <= 0 {
		return fmt.Errorf("lookback years must be positive, got %d", b.Years)
	}
	if b.Strategy == "" {
		return errors.New("strategy is required")
	}

	return nil
}

// source configs

type Source interface{}

type SourceReference struct {
	Source Source
}

type CSV struct {
	Data map[string]string `yaml:"data"`
}

type Alpaca struct {
	BaseUrl string `yaml:"base_url"`
	ApiKey  string `yaml:"api_key"`
	Secret  string `yaml:"secret"`
}

func (w *SourceReference) UnmarshalYAML(value *yaml.Node) error {
	if len(value.Content) == 0 {
		return nil
	}

	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return errors.New("invalid source yaml format")
	}

	key := value.Content[0].Value
	switch key {
	case "csv":
		var csv CSV
		if err := value.Content[1].Decode(&csv); err != nil {
			return fmt.Errorf("failed parsing csv source config: %w", err)
		}
		w.Source = csv
	case "alpaca":
		var alpaca Alpaca
		if err := value.Content[1].Decode(&alpaca); err != nil {
			return fmt.Errorf("failed parsing alpaca source config: %w", err)
		}
		w.Source = alpaca
	default:
		return fmt.Errorf("unknown source type: %s", key)
	}

	return nil
}
