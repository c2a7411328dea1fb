package main

import (
	"context"
	"fmt"

	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
)

// params are the operation arguments taken from the command line.
type params struct {
	symbol    string
	orderID   string
	side      string
	orderType string
	amount    string
	price     string
	status    string
	orderBy   string
	page      int
	limit     int
	start     int64
	end       int64
}

func (p *params) openOrdersQuery() (*exchange.OpenOrdersQuery, error) {
	orderBy, err := core.ParseOrderBy(p.orderBy)
	if err != nil {
		return nil, err
	}
	q := &exchange.OpenOrdersQuery{Symbol: p.symbol, Page: p.page, Limit: p.limit, OrderBy: orderBy}
	return q, q.Validate()
}

func (p *params) closedOrdersQuery() (*exchange.ClosedOrdersQuery, error) {
	orderBy, err := core.ParseOrderBy(p.orderBy)
	if err != nil {
		return nil, err
	}
	q := &exchange.ClosedOrdersQuery{Symbol: p.symbol, Page: p.page, Limit: p.limit, OrderBy: orderBy}
	if p.status != "" {
		status, err := core.ParseOrderStatus(p.status)
		if err != nil {
			return nil, err
		}
		q.Status = &status
	}
	if p.start > 0 {
		q.StartTime = &p.start
	}
	if p.end > 0 {
		q.EndTime = &p.end
	}
	return q, q.Validate()
}

func (p *params) orderRequest() (*exchange.OrderRequest, error) {
	side, err := core.ParseOrderSide(p.side)
	if err != nil {
		return nil, err
	}
	orderType, err := core.ParseOrderType(p.orderType)
	if err != nil {
		return nil, err
	}
	r := &exchange.OrderRequest{Symbol: p.symbol, Side: side, Type: orderType}
	if err := core.ParseDecimal(&r.Amount, p.amount); err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	if err := core.ParseDecimal(&r.Price, p.price); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	return r, r.Validate()
}

// requireOrderID is the argument check shared by order and cancel-order.
func (p *params) requireOrderID() error {
	if p.orderID == "" {
		return fmt.Errorf("-id is required")
	}
	return nil
}

// argumentError marks a rejected command-line argument. It is reported as
// a bad-request fault without contacting the exchange.
type argumentError struct {
	err error
}

func (e *argumentError) Error() string { return e.err.Error() }
func (e *argumentError) Unwrap() error { return e.err }

// dispatch runs op against ex and returns its result.
func dispatch(ctx context.Context, ex exchange.Exchange, op core.Operation, p *params) (any, error) {
	invalid := func(err error) (any, error) {
		return nil, &argumentError{err: err}
	}

	switch op {
	case core.OpGetSymbols:
		return ex.GetSymbols(ctx)
	case core.OpGetTickers:
		return ex.GetTickers(ctx, p.symbol)
	case core.OpGetBalances:
		return ex.GetBalances(ctx)
	case core.OpGetOpenOrders:
		q, err := p.openOrdersQuery()
		if err != nil {
			return invalid(err)
		}
		return ex.GetOpenOrders(ctx, q)
	case core.OpGetClosedOrders:
		q, err := p.closedOrdersQuery()
		if err != nil {
			return invalid(err)
		}
		return ex.GetClosedOrders(ctx, q)
	case core.OpGetOrder:
		if err := p.requireOrderID(); err != nil {
			return invalid(err)
		}
		return ex.GetOrder(ctx, p.orderID, p.symbol)
	case core.OpGetOrderBook:
		if p.symbol == "" {
			return invalid(fmt.Errorf("-symbol is required"))
		}
		return ex.GetOrderBook(ctx, p.symbol)
	case core.OpPlaceOrder:
		r, err := p.orderRequest()
		if err != nil {
			return invalid(err)
		}
		return ex.PlaceOrder(ctx, r)
	case core.OpCancelOrder:
		if err := p.requireOrderID(); err != nil {
			return invalid(err)
		}
		return ex.CancelOrder(ctx, p.orderID, p.symbol)
	}
	return invalid(fmt.Errorf("unsupported operation %d", op))
}
