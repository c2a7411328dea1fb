package core

import "fmt"

// Operation represents one of the capabilities every exchange adapter offers.
type Operation int

// Operation constants define all supported exchange operations.
const (
	// OpGetSymbols lists tradable pairs.
	OpGetSymbols Operation = iota
	// OpGetTickers retrieves 24h market snapshots.
	OpGetTickers
	// OpGetBalances retrieves account balances.
	OpGetBalances
	// OpGetOpenOrders retrieves resting orders for a symbol.
	OpGetOpenOrders
	// OpGetClosedOrders retrieves finished orders for a symbol.
	OpGetClosedOrders
	// OpGetOrder retrieves a single order.
	OpGetOrder
	// OpGetOrderBook retrieves the current depth snapshot.
	OpGetOrderBook
	// OpPlaceOrder submits a new order.
	OpPlaceOrder
	// OpCancelOrder cancels an existing order.
	OpCancelOrder
)

var operationNames = [...]string{
	"symbols",
	"tickers",
	"balances",
	"open-orders",
	"closed-orders",
	"order",
	"order-book",
	"place-order",
	"cancel-order",
}

// String returns the command name of the operation.
func (o Operation) String() string {
	return operationNames[o]
}

// Operations returns every operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}

// ParseOperation resolves a command name such as "order-book".
func ParseOperation(s string) (Operation, error) {
	for i, name := range operationNames {
		if name == s {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}
