// Package binance implements the Binance spot REST adapter.
//
// The package includes:
//   - Signer: X-MBX-APIKEY header and HMAC-SHA256 query signatures
//   - Normalizer: conversion from Binance payloads to canonical types
//   - BinanceExchange: the exchange.Exchange implementation
//
// Example usage:
//
//	ex, err := binance.New(core.Credentials{AccessKey: key, SecretKey: secret})
//	tickers, err := ex.GetTickers(ctx, "BTCUSDT")
package binance
