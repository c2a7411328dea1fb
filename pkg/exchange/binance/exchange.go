package binance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"cryptotrade/internal/transport"
	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
)

const (
	// Name is the registry key of the Binance adapter.
	Name = "binance"

	defaultBaseURL = "https://api.binance.com/api/v3"

	// messagePath locates the error message in Binance error bodies.
	messagePath = "msg"
)

// BinanceExchange implements the Exchange interface for the Binance spot market.
type BinanceExchange struct {
	client     *transport.Client
	normalizer *Normalizer
	logger     zerolog.Logger
	now        func() time.Time
}

// New creates a new BinanceExchange for creds.
func New(creds core.Credentials, opts ...exchange.Option) (*BinanceExchange, error) {
	options := exchange.ApplyOptions(opts...)

	client, err := transport.NewClient(transport.Config{
		Exchange: Name,
		BaseURL:  options.BaseURLOr(defaultBaseURL),
		Timeout:  options.Timeout,
	}, NewSigner(creds), options.TransportOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	return &BinanceExchange{
		client:     client,
		normalizer: NewNormalizer(options.Now),
		logger:     options.Logger.With().Str("exchange", Name).Logger(),
		now:        options.Now,
	}, nil
}

// Register adds the Binance constructor to r.
func Register(r *exchange.Registry) {
	r.Register(Name, func(creds core.Credentials, opts ...exchange.Option) (exchange.Exchange, error) {
		return New(creds, opts...)
	})
}

// Name returns the exchange identifier "binance".
func (e *BinanceExchange) Name() string {
	return Name
}

// GetSymbols lists the symbols currently in TRADING status.
func (e *BinanceExchange) GetSymbols(ctx context.Context) ([]core.TradingPair, error) {
	var data binanceExchangeInfo
	if err := e.do(ctx, core.OpGetSymbols, transport.NewRequest(http.MethodGet, "/exchangeInfo"), &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeSymbols(&data), nil
}

// GetTickers retrieves 24hr statistics. Binance answers a scoped request
// with a single object and an unscoped one with an array.
func (e *BinanceExchange) GetTickers(ctx context.Context, symbol string) ([]core.Ticker, error) {
	req := transport.NewRequest(http.MethodGet, "/ticker/24hr")
	if symbol == "" {
		var data []binanceTicker
		if err := e.do(ctx, core.OpGetTickers, req, &data); err != nil {
			return nil, err
		}
		return e.normalizer.NormalizeTickers(data)
	}

	req.Query.Add("symbol", symbol)
	var data binanceTicker
	if err := e.do(ctx, core.OpGetTickers, req, &data); err != nil {
		return nil, err
	}
	ticker, err := e.normalizer.NormalizeTicker(&data)
	if err != nil {
		return nil, fmt.Errorf("normalize ticker: %w", err)
	}
	return []core.Ticker{*ticker}, nil
}

// GetBalances retrieves the spot account balances.
func (e *BinanceExchange) GetBalances(ctx context.Context) ([]core.Balance, error) {
	req := transport.NewRequest(http.MethodGet, "/account")
	e.stamp(req)

	var data binanceAccount
	if err := e.do(ctx, core.OpGetBalances, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeBalances(&data)
}

// GetOpenOrders retrieves working orders. Binance returns every open order
// of the symbol at once, so sorting and paging happen locally.
func (e *BinanceExchange) GetOpenOrders(ctx context.Context, q *exchange.OpenOrdersQuery) ([]core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/openOrders")
	req.Query.Add("symbol", q.Symbol)
	e.stamp(req)

	var data []binanceOrder
	if err := e.do(ctx, core.OpGetOpenOrders, req, &data); err != nil {
		return nil, err
	}
	orders, err := e.normalizer.NormalizeOrders(data)
	if err != nil {
		return nil, err
	}
	exchange.SortByCreated(orders, q.OrderBy)
	return exchange.Paginate(orders, q.Page, q.Limit), nil
}

// GetClosedOrders retrieves finished orders from allOrders. The time range
// and limit are applied by Binance; status and ordering locally.
func (e *BinanceExchange) GetClosedOrders(ctx context.Context, q *exchange.ClosedOrdersQuery) ([]core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/allOrders")
	req.Query.Add("symbol", q.Symbol)
	req.Query.Add("limit", strconv.Itoa(q.Limit))
	if q.StartTime != nil {
		req.Query.Add("startTime", strconv.FormatInt(*q.StartTime, 10))
	}
	if q.EndTime != nil {
		req.Query.Add("endTime", strconv.FormatInt(*q.EndTime, 10))
	}
	e.stamp(req)

	var data []binanceOrder
	if err := e.do(ctx, core.OpGetClosedOrders, req, &data); err != nil {
		return nil, err
	}
	orders, err := e.normalizer.NormalizeClosedOrders(data)
	if err != nil {
		return nil, err
	}
	orders = exchange.FilterStatus(orders, q.Status)
	exchange.SortByCreated(orders, q.OrderBy)
	return orders, nil
}

// GetOrder retrieves a single order of symbol.
func (e *BinanceExchange) GetOrder(ctx context.Context, orderID, symbol string) (*core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/order")
	req.Query.Add("symbol", symbol)
	req.Query.Add("orderId", orderID)
	e.stamp(req)

	var data binanceOrder
	if err := e.do(ctx, core.OpGetOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

// GetOrderBook retrieves the depth snapshot of symbol.
func (e *BinanceExchange) GetOrderBook(ctx context.Context, symbol string) (*core.OrderBook, error) {
	req := transport.NewRequest(http.MethodGet, "/depth")
	req.Query.Add("symbol", symbol)

	var data binanceOrderBook
	if err := e.do(ctx, core.OpGetOrderBook, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrderBook(symbol, &data)
}

// PlaceOrder submits a new order. Limit orders rest until canceled (GTC);
// market orders carry only a quantity.
func (e *BinanceExchange) PlaceOrder(ctx context.Context, r *exchange.OrderRequest) (*core.Order, error) {
	req := transport.NewRequest(http.MethodPost, "/order")
	req.Query.Add("symbol", r.Symbol)
	req.Query.Add("side", formatSide(r.Side))
	req.Query.Add("type", formatType(r.Type))
	req.Query.Add("quantity", core.FormatDecimal(&r.Amount))
	if r.Type == core.TypeLimit {
		req.Query.Add("price", core.FormatDecimal(&r.Price))
		req.Query.Add("timeInForce", "GTC")
	}
	e.stamp(req)

	var data binanceOrder
	if err := e.do(ctx, core.OpPlaceOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

// CancelOrder cancels an order and returns its final state.
func (e *BinanceExchange) CancelOrder(ctx context.Context, orderID, symbol string) (*core.Order, error) {
	req := transport.NewRequest(http.MethodDelete, "/order")
	req.Query.Add("symbol", symbol)
	req.Query.Add("orderId", orderID)
	e.stamp(req)

	var data binanceOrder
	if err := e.do(ctx, core.OpCancelOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

// stamp adds the millisecond timestamp required by signed endpoints.
func (e *BinanceExchange) stamp(req *transport.Request) {
	req.Query.Add("timestamp", strconv.FormatInt(e.now().UnixMilli(), 10))
}

func (e *BinanceExchange) do(ctx context.Context, op core.Operation, req *transport.Request, out any) error {
	resp, err := e.client.Send(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !resp.IsSuccess() {
		fault := core.FaultFromResponse(Name, resp.StatusCode, resp.Body, messagePath)
		e.logger.Warn().
			Str("op", op.String()).
			Str("code", fault.Code).
			Str("message", fault.Message).
			Msg("exchange fault")
		return fault
	}

	if err := resp.Unmarshal(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
