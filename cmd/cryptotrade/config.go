package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cryptotrade/pkg/core"
)

// options holds the parsed command line.
type options struct {
	configPath string
	envFile    string
	exchange   string
	op         string
	output     string
	logLevel   string
	timeout    time.Duration
	baseURL    string
	metrics    bool

	params params
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("cryptotrade", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.envFile, "env", "", "environment file with API keys (default from config: .env)")
	fs.StringVar(&o.exchange, "exchange", "", "exchange name: binance, gateio, upbit")
	fs.StringVar(&o.op, "op", "", "operation: symbols, tickers, balances, open-orders, closed-orders, order, order-book, place-order, cancel-order")
	fs.StringVar(&o.output, "output", "", "output format: json or table")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.DurationVar(&o.timeout, "timeout", 0, "per-request timeout, e.g. 10s")
	fs.StringVar(&o.baseURL, "base-url", "", "override the exchange REST base URL")
	fs.BoolVar(&o.metrics, "metrics", false, "dump request metrics to stderr")

	p := &o.params
	fs.StringVar(&p.symbol, "symbol", "", "market symbol, e.g. KRW-BTC, BTC_USDT, BTCUSDT")
	fs.StringVar(&p.orderID, "id", "", "order id")
	fs.StringVar(&p.side, "side", "", "order side: bid or ask")
	fs.StringVar(&p.orderType, "type", "limit", "order type: limit or market")
	fs.StringVar(&p.amount, "amount", "", "order amount")
	fs.StringVar(&p.price, "price", "", "order price")
	fs.StringVar(&p.status, "status", "", "closed order status: done or canceled")
	fs.StringVar(&p.orderBy, "order-by", "desc", "sort order: asc or desc")
	fs.IntVar(&p.page, "page", 1, "page number")
	fs.IntVar(&p.limit, "limit", 100, "page size")
	fs.Int64Var(&p.start, "start", 0, "closed orders created at or after, epoch ms")
	fs.Int64Var(&p.end, "end", 0, "closed orders created at or before, epoch ms")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

// loadConfig builds the effective configuration: defaults, then the YAML
// file, then flags that were set explicitly.
func loadConfig(o *options, fs *flag.FlagSet) (*core.Config, error) {
	cfg := core.DefaultConfig()

	if o.configPath != "" {
		data, err := os.ReadFile(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", o.configPath, err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "env":
			cfg.EnvFile = o.envFile
		case "exchange":
			cfg.Exchange = o.exchange
		case "output":
			cfg.Output = o.output
		case "log-level":
			cfg.LogLevel = o.logLevel
		case "timeout":
			cfg.WithTimeout(o.timeout)
		}
	})
	if o.baseURL != "" && cfg.Exchange != "" {
		cfg.WithBaseURL(cfg.Exchange, o.baseURL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
