package main

import (
	"context"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
	"cryptotrade/pkg/exchange/mock"
)

func defaultParams() *params {
	return &params{orderType: "limit", orderBy: "desc", page: 1, limit: 100}
}

func TestDispatch_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mock.NewMockExchange(ctrl)
	ctx := context.Background()

	pairs := []core.TradingPair{{Symbol: "KRW-BTC", Name: "Bitcoin"}}
	ex.EXPECT().GetSymbols(ctx).Return(pairs, nil)
	ex.EXPECT().GetTickers(ctx, "KRW-BTC").Return([]core.Ticker{{Symbol: "KRW-BTC"}}, nil)
	ex.EXPECT().GetBalances(ctx).Return([]core.Balance{{Currency: "KRW"}}, nil)
	ex.EXPECT().GetOrderBook(ctx, "KRW-BTC").Return(&core.OrderBook{Symbol: "KRW-BTC"}, nil)

	p := defaultParams()
	p.symbol = "KRW-BTC"

	got, err := dispatch(ctx, ex, core.OpGetSymbols, p)
	require.NoError(t, err)
	assert.Equal(t, pairs, got)

	got, err = dispatch(ctx, ex, core.OpGetTickers, p)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = dispatch(ctx, ex, core.OpGetBalances, p)
	require.NoError(t, err)

	got, err = dispatch(ctx, ex, core.OpGetOrderBook, p)
	require.NoError(t, err)
	assert.Equal(t, "KRW-BTC", got.(*core.OrderBook).Symbol)
}

func TestDispatch_OpenOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mock.NewMockExchange(ctrl)

	ex.EXPECT().
		GetOpenOrders(gomock.Any(), &exchange.OpenOrdersQuery{Symbol: "BTC_USDT", Page: 2, Limit: 5, OrderBy: core.OrderByAsc}).
		Return([]core.Order{}, nil)

	p := defaultParams()
	p.symbol, p.page, p.limit, p.orderBy = "BTC_USDT", 2, 5, "asc"

	_, err := dispatch(context.Background(), ex, core.OpGetOpenOrders, p)
	assert.NoError(t, err)
}

func TestDispatch_ClosedOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mock.NewMockExchange(ctrl)

	ex.EXPECT().
		GetClosedOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *exchange.ClosedOrdersQuery) ([]core.Order, error) {
			require.NotNil(t, q.Status)
			assert.Equal(t, core.StatusCanceled, *q.Status)
			require.NotNil(t, q.StartTime)
			assert.Equal(t, int64(1000), *q.StartTime)
			assert.Nil(t, q.EndTime)
			return nil, nil
		})

	p := defaultParams()
	p.symbol, p.status, p.start = "KRW-BTC", "canceled", 1000

	_, err := dispatch(context.Background(), ex, core.OpGetClosedOrders, p)
	assert.NoError(t, err)
}

func TestDispatch_PlaceOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mock.NewMockExchange(ctrl)

	ex.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *exchange.OrderRequest) (*core.Order, error) {
			assert.Equal(t, "BTCUSDT", r.Symbol)
			assert.Equal(t, core.SideAsk, r.Side)
			assert.Equal(t, core.TypeLimit, r.Type)
			assert.Equal(t, 0, r.Amount.Cmp(apd.New(1, -3)))
			assert.Equal(t, 0, r.Price.Cmp(apd.New(60000, 0)))
			return &core.Order{OrderID: "1"}, nil
		})

	p := defaultParams()
	p.symbol, p.side, p.amount, p.price = "BTCUSDT", "ask", "0.001", "60000"

	got, err := dispatch(context.Background(), ex, core.OpPlaceOrder, p)
	require.NoError(t, err)
	assert.Equal(t, "1", got.(*core.Order).OrderID)
}

func TestDispatch_OrderByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mock.NewMockExchange(ctrl)

	ex.EXPECT().GetOrder(gomock.Any(), "42", "BTCUSDT").Return(&core.Order{OrderID: "42"}, nil)
	ex.EXPECT().CancelOrder(gomock.Any(), "42", "BTCUSDT").Return(&core.Order{OrderID: "42", Status: core.StatusCanceled}, nil)

	p := defaultParams()
	p.symbol, p.orderID = "BTCUSDT", "42"

	_, err := dispatch(context.Background(), ex, core.OpGetOrder, p)
	require.NoError(t, err)
	got, err := dispatch(context.Background(), ex, core.OpCancelOrder, p)
	require.NoError(t, err)
	assert.Equal(t, core.StatusCanceled, got.(*core.Order).Status)
}

func TestDispatch_InvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		op     core.Operation
		modify func(p *params)
	}{
		{"order without id", core.OpGetOrder, func(p *params) {}},
		{"cancel without id", core.OpCancelOrder, func(p *params) {}},
		{"order book without symbol", core.OpGetOrderBook, func(p *params) {}},
		{"open orders without symbol", core.OpGetOpenOrders, func(p *params) {}},
		{"open orders bad page", core.OpGetOpenOrders, func(p *params) { p.symbol, p.page = "X", 0 }},
		{"closed orders wait status", core.OpGetClosedOrders, func(p *params) { p.symbol, p.status = "X", "wait" }},
		{"closed orders reversed range", core.OpGetClosedOrders, func(p *params) { p.symbol, p.start, p.end = "X", 2000, 1000 }},
		{"place bad side", core.OpPlaceOrder, func(p *params) { p.symbol, p.side = "X", "buy" }},
		{"place limit without price", core.OpPlaceOrder, func(p *params) { p.symbol, p.side, p.amount = "X", "bid", "1" }},
		{"place bad amount", core.OpPlaceOrder, func(p *params) { p.symbol, p.side, p.amount = "X", "bid", "one" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ex := mock.NewMockExchange(ctrl)

			p := defaultParams()
			tt.modify(p)

			_, err := dispatch(context.Background(), ex, tt.op, p)

			var argErr *argumentError
			assert.ErrorAs(t, err, &argErr)
		})
	}
}

func TestDispatch_FaultPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mock.NewMockExchange(ctrl)

	fault := core.FaultFromStatus("upbit", 401, "")
	ex.EXPECT().GetBalances(gomock.Any()).Return(nil, fault)

	_, err := dispatch(context.Background(), ex, core.OpGetBalances, defaultParams())

	assert.Same(t, fault, err)
}
