package upbit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"cryptotrade/internal/transport"
	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
)

const (
	// Name is the registry key of the Upbit adapter.
	Name = "upbit"

	defaultBaseURL = "https://api.upbit.com/v1"
	messagePath    = "error.message"

	// timeZone is the zone Upbit expects for closed-order date bounds.
	timeZone = "Asia/Seoul"
)

// UpbitExchange implements the Exchange interface for Upbit.
type UpbitExchange struct {
	client     *transport.Client
	normalizer *Normalizer
	logger     zerolog.Logger
}

// New creates a new UpbitExchange for creds. exchange.WithNonce overrides
// the JWT nonce source.
func New(creds core.Credentials, opts ...exchange.Option) (*UpbitExchange, error) {
	options := exchange.ApplyOptions(opts...)

	client, err := transport.NewClient(transport.Config{
		Exchange: Name,
		BaseURL:  options.BaseURLOr(defaultBaseURL),
		Timeout:  options.Timeout,
	}, NewSigner(creds, options.Nonce), options.TransportOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	return &UpbitExchange{
		client:     client,
		normalizer: NewNormalizer(),
		logger:     options.Logger.With().Str("exchange", Name).Logger(),
	}, nil
}

// Register adds the Upbit constructor to r.
func Register(r *exchange.Registry) {
	r.Register(Name, func(creds core.Credentials, opts ...exchange.Option) (exchange.Exchange, error) {
		return New(creds, opts...)
	})
}

func (e *UpbitExchange) Name() string {
	return Name
}

func (e *UpbitExchange) GetSymbols(ctx context.Context) ([]core.TradingPair, error) {
	var data []upbitMarket
	if err := e.do(ctx, core.OpGetSymbols, transport.NewRequest(http.MethodGet, "/market/all"), &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeMarkets(data), nil
}

// GetTickers retrieves ticker snapshots. symbol may list several markets
// separated by commas.
func (e *UpbitExchange) GetTickers(ctx context.Context, symbol string) ([]core.Ticker, error) {
	req := transport.NewRequest(http.MethodGet, "/ticker")
	if symbol != "" {
		req.Query.Add("markets", symbol)
	}

	var data []upbitTicker
	if err := e.do(ctx, core.OpGetTickers, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeTickers(data)
}

func (e *UpbitExchange) GetBalances(ctx context.Context) ([]core.Balance, error) {
	var data []upbitBalance
	if err := e.do(ctx, core.OpGetBalances, transport.NewRequest(http.MethodGet, "/accounts"), &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeBalances(data)
}

// GetOpenOrders lists wait and watch orders. Paging and ordering are done
// by Upbit.
func (e *UpbitExchange) GetOpenOrders(ctx context.Context, q *exchange.OpenOrdersQuery) ([]core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/orders/open")
	req.Query.Add("market", q.Symbol)
	req.Query.Add("page", strconv.Itoa(q.Page))
	req.Query.Add("limit", strconv.Itoa(q.Limit))
	req.Query.Add("order_by", q.OrderBy.String())
	req.Query.Add("states[]", "wait")
	req.Query.Add("states[]", "watch")

	var data []upbitOrder
	if err := e.do(ctx, core.OpGetOpenOrders, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrders(data)
}

// GetClosedOrders lists done and cancel orders. A status narrows the
// request to a single state; time bounds are sent as KST ISO-8601.
func (e *UpbitExchange) GetClosedOrders(ctx context.Context, q *exchange.ClosedOrdersQuery) ([]core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/orders/closed")
	req.Query.Add("market", q.Symbol)
	req.Query.Add("limit", strconv.Itoa(q.Limit))
	req.Query.Add("order_by", q.OrderBy.String())
	if q.Status != nil {
		req.Query.Add("state", formatState(*q.Status))
	} else {
		req.Query.Add("states[]", "done")
		req.Query.Add("states[]", "cancel")
	}

	bounds := []struct {
		key string
		ms  *int64
	}{
		{"start_date", q.StartTime},
		{"end_date", q.EndTime},
	}
	for _, b := range bounds {
		if b.ms == nil {
			continue
		}
		iso, err := core.MillisToISO(*b.ms, timeZone)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", b.key, err)
		}
		req.Query.Add(b.key, iso)
	}

	var data []upbitOrder
	if err := e.do(ctx, core.OpGetClosedOrders, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrders(data)
}

// GetOrder fetches an order by uuid. Upbit keys orders by uuid alone, so
// symbol is ignored.
func (e *UpbitExchange) GetOrder(ctx context.Context, orderID, _ string) (*core.Order, error) {
	req := transport.NewRequest(http.MethodGet, "/order")
	req.Query.Add("uuid", orderID)

	var data orderResult
	if err := e.do(ctx, core.OpGetOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data.upbitOrder)
}

func (e *UpbitExchange) GetOrderBook(ctx context.Context, symbol string) (*core.OrderBook, error) {
	req := transport.NewRequest(http.MethodGet, "/orderbook")
	req.Query.Add("markets", symbol)

	var data []upbitOrderBook
	if err := e.do(ctx, core.OpGetOrderBook, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrderBook(data)
}

// PlaceOrder submits an order. A market bid is sent as ord_type "price"
// spending Price in quote currency; a market ask sells Amount and carries
// no price.
func (e *UpbitExchange) PlaceOrder(ctx context.Context, r *exchange.OrderRequest) (*core.Order, error) {
	ordType := r.Type.String()
	if r.Type == core.TypeMarket && r.Side == core.SideBid {
		ordType = "price"
	}

	req := transport.NewRequest(http.MethodPost, "/orders")
	req.Body.Add("market", r.Symbol)
	req.Body.Add("side", r.Side.String())
	if ordType != "price" {
		req.Body.Add("volume", core.FormatDecimal(&r.Amount))
	}
	if ordType != "market" {
		req.Body.Add("price", core.FormatDecimal(&r.Price))
	}
	req.Body.Add("ord_type", ordType)

	var data upbitOrder
	if err := e.do(ctx, core.OpPlaceOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

// CancelOrder cancels an order by uuid; symbol is ignored.
func (e *UpbitExchange) CancelOrder(ctx context.Context, orderID, _ string) (*core.Order, error) {
	req := transport.NewRequest(http.MethodDelete, "/order")
	req.Query.Add("uuid", orderID)

	var data upbitOrder
	if err := e.do(ctx, core.OpCancelOrder, req, &data); err != nil {
		return nil, err
	}
	return e.normalizer.NormalizeOrder(&data)
}

func formatState(s core.OrderStatus) string {
	if s == core.StatusCanceled {
		return "cancel"
	}
	return s.String()
}

func (e *UpbitExchange) do(ctx context.Context, op core.Operation, req *transport.Request, out any) error {
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
