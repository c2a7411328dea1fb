// Command cryptotrade runs one exchange operation and prints the result.
//
// Usage:
//
//	cryptotrade -exchange upbit -op tickers -symbol KRW-BTC
//	cryptotrade -exchange binance -op place-order -symbol BTCUSDT -side bid -type limit -amount 0.001 -price 60000
//
// Credentials are read from <EXCHANGE>_ACCESS_KEY and <EXCHANGE>_SECRET_KEY,
// optionally loaded from a .env file first.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	os.Exit(code)
}
