package gateio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"cryptotrade/internal/transport"
	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
)

const (
	// Name is the registry key of the GateIO adapter.
	Name = "gateio"

	defaultBaseURL = "https://api.gateio.ws/api/v4"
	messagePath    = "message"
)

// GateIOExchange implements the Exchange interface for the GateIO spot market.
type GateIOExchange struct {
	client     *transport.Client
	normalizer *Normalizer
	logger     zerolog.Logger
}

// New creates a new GateIOExchange for creds.
func New(creds core.Credentials, opts ...exchange.Option) (*GateIOExchange, error) {
	options := exchange.ApplyOptions(opts...)

	client, err := transport.NewClient(transport.Config{
		Exchange: Name,
		BaseURL:  options.BaseURLOr(defaultBaseURL),
		Timeout:  options.Timeout,
	}, NewSigner(creds, options.Now), options.TransportOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	return &GateIOExchange{
		client:     client,
		normalizer: NewNormalizer(options.Now),
		logger:     options.Logger.With().Str("exchange", Name).Logger(),
	}, nil
}

// Register adds the GateIO constructor to r.
func Register(r *exchange.Registry) {
	r.Register(Name, func(creds core.Credentials, opts ...exchange.Option) (exchange.Exchange, error) {
		return New(creds, opts...)
	})
}

func (e *GateIOExchange) Name() string {
	return Name
}

func (e *GateIOExchange) GetSymbols(ctx context.Context) ([]core.TradingPair, error) {
	var data []gateioPair
	if err := e.do(ctx, core.OpGetSymbols, transport.NewRequest(http.MethodGet, "/spot/currency_pairs"), &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizePairs(data), nil
}

func (e *GateIOExchange) GetTickers(ctx context.Context, symbol string) ([]core.Ticker, error) {
	req := transport.NewRequest(http.MethodGet, "/spot/tickers")
	if symbol != "" {
		req.Query.Add("currency_pair", symbol)
	}

	var data []gateioTicker
	if err := e.do(ctx, core.OpGetTickers, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeTickers(data)
}

func (e *GateIOExchange) GetBalances(ctx context.Context) ([]core.Balance, error) {
	var data []gateioBalance
	if err := e.do(ctx, core.OpGetBalances, transport.NewRequest(http.MethodGet, "/spot/accounts"), &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeBalances(data)
}

// GetOpenOrders lists orders with status=open. GateIO pages server-side;
// the page is then sorted locally.
func (e *GateIOExchange) GetOpenOrders(ctx context.Context, q *exchange.OpenOrdersQuery) ([]core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/spot/orders")
	req.Query.Add("currency_pair", q.Symbol)
	req.Query.Add("page", strconv.Itoa(q.Page))
	req.Query.Add("limit", strconv.Itoa(q.Limit))
	req.Query.Add("status", "open")

	var data []gateioOrder
	if err := e.do(ctx, core.OpGetOpenOrders, req, &data); err != nil {
		return nil, err
	}
	orders, err := e.normalizer.NormalizeOrders(data)
	if err != nil {
		return nil, err
	}
	exchange.SortByCreated(orders, q.OrderBy)
	return orders, nil
}

// GetClosedOrders lists orders with status=finished. The time range is
// sent in epoch seconds; status and ordering are applied locally.
func (e *GateIOExchange) GetClosedOrders(ctx context.Context, q *exchange.ClosedOrdersQuery) ([]core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/spot/orders")
	req.Query.Add("currency_pair", q.Symbol)
	req.Query.Add("page", strconv.Itoa(q.Page))
	req.Query.Add("limit", strconv.Itoa(q.Limit))
	req.Query.Add("status", "finished")
	if q.StartTime != nil {
		req.Query.Add("from", strconv.FormatInt(*q.StartTime/1000, 10))
	}
	if q.EndTime != nil {
		req.Query.Add("to", strconv.FormatInt(*q.EndTime/1000, 10))
	}

	var data []gateioOrder
	if err := e.do(ctx, core.OpGetClosedOrders, req, &data); err != nil {
		return nil, err
	}
	orders, err := e.normalizer.NormalizeOrders(data)
	if err != nil {
		return nil, err
	}
	orders = exchange.FilterStatus(orders, q.Status)
	exchange.SortByCreated(orders, q.OrderBy)
	return orders, nil
}

func (e *GateIOExchange) GetOrder(ctx context.Context, orderID, symbol string) (*core.Order, error) {
	req := transport.NewRequest(http.MethodGet, orderPath(orderID))
	if symbol != "" {
		req.Query.Add("currency_pair", symbol)
	}

	var data gateioOrder
	if err := e.do(ctx, core.OpGetOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

func (e *GateIOExchange) GetOrderBook(ctx context.Context, symbol string) (*core.OrderBook, error) {
	req := transport.NewRequest(http.MethodGet, "/spot/order_book")
	req.Query.Add("currency_pair", symbol)

	var data gateioOrderBook
	if err := e.do(ctx, core.OpGetOrderBook, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrderBook(symbol, &data)
}

// PlaceOrder submits a spot order as a JSON body. Limit orders are good
// till canceled; market orders are immediate-or-cancel and carry no price.
func (e *GateIOExchange) PlaceOrder(ctx context.Context, r *exchange.OrderRequest) (*core.Order, error) {
	req := transport.NewRequest(http.MethodPost, "/spot/orders")
	req.Body.Add("currency_pair", r.Symbol)
	req.Body.Add("side", formatSide(r.Side))
	req.Body.Add("amount", core.FormatDecimal(&r.Amount))
	if r.Type == core.TypeLimit {
		req.Body.Add("price", core.FormatDecimal(&r.Price))
	}
	req.Body.Add("type", r.Type.String())
	req.Body.Add("time_in_force", timeInForce(r.Type))

	var data gateioOrder
	if err := e.do(ctx, core.OpPlaceOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

func (e *GateIOExchange) CancelOrder(ctx context.Context, orderID, symbol string) (*core.Order, error) {
	req := transport.NewRequest(http.MethodDelete, orderPath(orderID))
	req.Query.Add("currency_pair", symbol)

	var data gateioOrder
	if err := e.do(ctx, core.OpCancelOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

func orderPath(orderID string) string {
	return "/spot/orders/" + url.PathEscape(orderID)
}

func (e *GateIOExchange) do(ctx context.Context, op core.Operation, req *transport.Request, out any) error {
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
