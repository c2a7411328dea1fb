package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"cryptotrade/internal/keyring"
	"cryptotrade/internal/metrics"
	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
	"cryptotrade/pkg/exchange/all"
)

const (
	exitOK    = 0
	exitFault = 1
	exitUsage = 2
)

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup keyring.LookupFunc) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := newLogger(stderr, cfg.LogLevel)

	if err := keyring.LoadEnvFile(cfg.EnvFile); err != nil {
		logger.Warn().Err(err).Msg("env file not loaded")
	}

	if cfg.Exchange == "" {
		fmt.Fprintln(stderr, "-exchange is required")
		return exitUsage
	}
	op, err := core.ParseOperation(opts.op)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	registry := all.NewRegistry()
	ring := keyring.FromEnv(lookup, registry.Names()...)
	ring.SetLogger(logger)

	collector := metrics.NewCollector()
	exOpts := []exchange.Option{
		exchange.WithLogger(logger),
		exchange.WithObserver(collector),
		exchange.WithTimeout(cfg.Timeout),
	}
	if url := cfg.BaseURLs[cfg.Exchange]; url != "" {
		exOpts = append(exOpts, exchange.WithBaseURL(url))
	}

	ex, err := registry.New(cfg.Exchange, ring.Get(cfg.Exchange), exOpts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger.Debug().Str("exchange", ex.Name()).Str("op", op.String()).Msg("dispatching")
	result, err := dispatch(ctx, ex, op, &opts.params)

	code := report(stdout, stderr, logger, ex.Name(), op, cfg.Output, result, err)

	if opts.metrics {
		if err := collector.WriteText(stderr); err != nil {
			logger.Error().Err(err).Msg("write metrics")
		}
	}
	return code
}

// report prints the outcome and maps it to an exit code. Faults and
// argument errors are printed as a failure envelope on stdout.
func report(stdout, stderr io.Writer, logger zerolog.Logger, name string, op core.Operation, output string, result any, err error) int {
	if err != nil {
		var fault *core.Fault
		var argErr *argumentError
		switch {
		case errors.As(err, &fault):
		case errors.As(err, &argErr):
			fault = core.FaultFromStatus(name, http.StatusBadRequest, argErr.Error())
		default:
			logger.Error().Err(err).Str("op", op.String()).Msg("operation failed")
			fmt.Fprintln(stderr, err)
			return exitFault
		}
		if werr := writeJSON(stdout, fault); werr != nil {
			fmt.Fprintln(stderr, werr)
		}
		return exitFault
	}

	env := core.OK(result, time.Now().UnixMilli())
	if output == "table" {
		err = writeTable(stdout, fmt.Sprintf("%s %s", name, op), env)
	} else {
		err = writeJSON(stdout, env)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFault
	}
	return exitOK
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}
