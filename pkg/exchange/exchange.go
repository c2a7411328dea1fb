package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-playground/validator/v10"

	"cryptotrade/pkg/core"
)

//go:generate mockgen -source=exchange.go -destination=mock/exchange.go -package=mock

// Exchange defines the uniform trading interface implemented by every
// supported exchange. Every method issues exactly one HTTP call. A non-2xx
// response is returned as a *core.Fault.
type Exchange interface {
	Name() string

	// GetSymbols lists the tradable pairs.
	GetSymbols(ctx context.Context) ([]core.TradingPair, error)
	// GetTickers returns all tickers, or only symbol's when symbol is non-empty.
	GetTickers(ctx context.Context, symbol string) ([]core.Ticker, error)
	GetBalances(ctx context.Context) ([]core.Balance, error)

	GetOpenOrders(ctx context.Context, q *OpenOrdersQuery) ([]core.Order, error)
	GetClosedOrders(ctx context.Context, q *ClosedOrdersQuery) ([]core.Order, error)
	// GetOrder fetches one order. symbol is ignored by exchanges that key
	// orders by id alone.
	GetOrder(ctx context.Context, orderID, symbol string) (*core.Order, error)
	GetOrderBook(ctx context.Context, symbol string) (*core.OrderBook, error)

	PlaceOrder(ctx context.Context, req *OrderRequest) (*core.Order, error)
	// CancelOrder cancels an order and returns it as reported by the exchange.
	CancelOrder(ctx context.Context, orderID, symbol string) (*core.Order, error)
}

var validate = validator.New()

// OrderRequest contains the parameters required to place a new order.
// For market orders an exchange may ignore Price or Amount: Upbit market
// bids spend Price in quote currency and market asks sell Amount.
type OrderRequest struct {
	Symbol string         `validate:"required"`
	Side   core.OrderSide `validate:"min=0,max=1"`
	Type   core.OrderType `validate:"min=0,max=1"`
	Amount apd.Decimal
	Price  apd.Decimal
}

// Validate checks required fields and that amounts are not negative.
func (r *OrderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Amount.Negative || r.Price.Negative {
		return errors.New("amount and price must not be negative")
	}
	if r.Type == core.TypeLimit && (r.Amount.IsZero() || r.Price.IsZero()) {
		return errors.New("limit orders require amount and price")
	}
	return nil
}

// OpenOrdersQuery selects resting orders of one symbol.
type OpenOrdersQuery struct {
	Symbol  string `validate:"required"`
	Page    int    `validate:"min=1"`
	Limit   int    `validate:"min=1"`
	OrderBy core.OrderBy
}

// NewOpenOrdersQuery returns a query for the first page of 100 orders, newest first.
func NewOpenOrdersQuery(symbol string) *OpenOrdersQuery {
	return &OpenOrdersQuery{Symbol: symbol, Page: 1, Limit: 100, OrderBy: core.OrderByDesc}
}

// Validate checks the query against its struct tags.
func (q *OpenOrdersQuery) Validate() error {
	return validate.Struct(q)
}

// ClosedOrdersQuery selects finished orders of one symbol.
type ClosedOrdersQuery struct {
	Symbol string `validate:"required"`
	Page   int    `validate:"min=1"`
	Limit  int    `validate:"min=1"`
	// Status restricts results to done or canceled orders when set.
	Status *core.OrderStatus
	// StartTime and EndTime bound creation time in epoch milliseconds.
	StartTime *int64
	EndTime   *int64
	OrderBy   core.OrderBy
}

// NewClosedOrdersQuery returns a query for the first page of 100 orders, newest first.
func NewClosedOrdersQuery(symbol string) *ClosedOrdersQuery {
	return &ClosedOrdersQuery{Symbol: symbol, Page: 1, Limit: 100, OrderBy: core.OrderByDesc}
}

// Validate checks the query against its struct tags.
func (q *ClosedOrdersQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.Status != nil && !q.Status.IsTerminal() {
		return fmt.Errorf("closed orders cannot have status %s", *q.Status)
	}
	if q.StartTime != nil && q.EndTime != nil && *q.StartTime > *q.EndTime {
		return errors.New("start time is after end time")
	}
	return nil
}
