// Package all wires every supported exchange adapter into a registry.
package all

import (
	"cryptotrade/pkg/exchange"
	"cryptotrade/pkg/exchange/binance"
	"cryptotrade/pkg/exchange/gateio"
	"cryptotrade/pkg/exchange/upbit"
)

// NewRegistry returns a registry with binance, gateio and upbit registered.
func NewRegistry() *exchange.Registry {
	r := exchange.NewRegistry()
	binance.Register(r)
	gateio.Register(r)
	upbit.Register(r)
	return r
}
