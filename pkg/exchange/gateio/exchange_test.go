package gateio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptotrade/pkg/core"
	"cryptotrade/pkg/exchange"
)

var _ exchange.Exchange = (*GateIOExchange)(nil)

var (
	fixedNow  = time.UnixMilli(1710488334000)
	testCreds = core.Credentials{AccessKey: "gate-key", SecretKey: testSecret}
)

const orderJSON = `{
	"id": "1852454420",
	"create_time": "1710488334",
	"create_time_ms": 1710488334073,
	"status": "%s",
	"currency_pair": "BTC_USDT",
	"type": "limit",
	"account": "unified",
	"side": "%s",
	"amount": "0.001",
	"price": "65000",
	"time_in_force": "gtc",
	"left": "0",
	"filled_amount": "0.001",
	"finish_as": "filled"
}`

func order(status, side string) string {
	return fmt.Sprintf(orderJSON, status, side)
}

func newTestExchange(t *testing.T, handler http.HandlerFunc) *GateIOExchange {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ex, err := New(testCreds,
		exchange.WithBaseURL(server.URL+"/api/v4"),
		exchange.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return ex
}

func assertSigned(t *testing.T, r *http.Request, body string) {
	t.Helper()
	assert.Equal(t, "gate-key", r.Header.Get("KEY"))
	assert.Equal(t, "1710488334", r.Header.Get("Timestamp"))

	query := r.URL.RawQuery
	if q, err := url.PathUnescape(query); err == nil {
		query = q
	}
	want := NewSigner(testCreds, nil).Signature(r.Method, r.URL.Path, query, body, 1710488334)
	assert.Equal(t, want, r.Header.Get("SIGN"))
}

func TestRegister(t *testing.T) {
	r := exchange.NewRegistry()
	Register(r)

	ex, err := r.New(Name, testCreds)
	require.NoError(t, err)
	assert.Equal(t, "gateio", ex.Name())
}

func TestGateIOExchange_GetSymbols(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/spot/currency_pairs", r.URL.Path)
		assertSigned(t, r, "")
		_, _ = w.Write([]byte(`[
			{"id":"ETH_USDT","base":"ETH","base_name":"Ethereum","quote":"USDT","trade_status":"tradable"},
			{"id":"OLD_USDT","base":"OLD","base_name":"Old","quote":"USDT","trade_status":"untradable"}
		]`))
	})

	pairs, err := ex.GetSymbols(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []core.TradingPair{{Symbol: "ETH_USDT", Name: "Ethereum"}}, pairs)
}

func TestGateIOExchange_GetTickers(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/spot/tickers", r.URL.Path)
		assert.Equal(t, "currency_pair=BTC3L_USDT", r.URL.RawQuery)
		_, _ = w.Write([]byte(`[{
			"currency_pair": "BTC3L_USDT",
			"last": "2.46140352",
			"lowest_ask": "2.477",
			"highest_bid": "2.4606821",
			"change_percentage": "-8.91",
			"base_volume": "656614.0845820589",
			"quote_volume": "1602221.66468375534639404191",
			"high_24h": "2.7431",
			"low_24h": "1.9863"
		}]`))
	})

	tickers, err := ex.GetTickers(context.Background(), "BTC3L_USDT")

	require.NoError(t, err)
	require.Len(t, tickers, 1)
	ticker := tickers[0]
	assert.Equal(t, "BTC3L_USDT", ticker.Symbol)
	assert.Equal(t, "2.46140352", ticker.TradePrice.String())
	assert.Equal(t, "656614.0845820589", ticker.TradeVolume.String())
	assert.Equal(t, "2.7431", ticker.HighPrice.String())
	assert.Equal(t, "1.9863", ticker.LowPrice.String())
	assert.Equal(t, "-8.91", ticker.ChangePercentage.String())
	assert.Equal(t, "1602221.66468375534639404191", ticker.AccTradeVolume.String())
	assert.Nil(t, ticker.OpeningPrice)
	assert.Nil(t, ticker.ChangePrice)
	assert.Equal(t, fixedNow.UnixMilli(), ticker.TradeTimestamp)
	assert.Equal(t, fixedNow.UnixMilli(), ticker.Timestamp)

	var want apd.Decimal
	require.NoError(t, core.MulDecimal(&want, &ticker.AccTradeVolume, &ticker.TradePrice))
	assert.Equal(t, 0, ticker.AccTradePrice.Cmp(&want))
}

func TestGateIOExchange_GetTickers_All(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	})

	tickers, err := ex.GetTickers(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, tickers)
}

func TestGateIOExchange_GetBalances(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/spot/accounts", r.URL.Path)
		assertSigned(t, r, "")
		_, _ = w.Write([]byte(`[{"currency":"ETH","available":"968.8","locked":"0","update_id":98}]`))
	})

	balances, err := ex.GetBalances(context.Background())

	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "ETH", balances[0].Currency)
	assert.Equal(t, "968.8", balances[0].Balance.String())
	assert.True(t, balances[0].Locked.IsZero())
	assert.Nil(t, balances[0].UnitCurrency)
	assert.Nil(t, balances[0].AvgBuyPrice)
	assert.Nil(t, balances[0].AvgBuyPriceModified)
}

func TestGateIOExchange_GetBalances_Unauthorized(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"label":"INVALID_KEY","message":"Invalid key provided"}`))
	})

	_, err := ex.GetBalances(context.Background())

	assert.True(t, core.IsAuthenticationError(err))
	var fault *core.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "Invalid key provided", fault.Message)
	assert.Equal(t, "401", fault.Code)
}

func TestGateIOExchange_GetOpenOrders(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/spot/orders", r.URL.Path)
		assert.Equal(t, "currency_pair=BTC_USDT&page=1&limit=100&status=open", r.URL.RawQuery)
		assertSigned(t, r, "")
		_, _ = w.Write([]byte(`[` + order("open", "buy") + `]`))
	})

	orders, err := ex.GetOpenOrders(context.Background(), exchange.NewOpenOrdersQuery("BTC_USDT"))

	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, "1852454420", o.OrderID)
	assert.Equal(t, core.SideBid, o.Side)
	assert.Equal(t, "0.001", o.Amount.String())
	assert.Equal(t, "65000", o.Price.String())
	assert.Equal(t, core.TypeLimit, o.OrderType)
	assert.Equal(t, core.StatusWait, o.Status)
	assert.Equal(t, "0.001", o.ExecutedVolume.String())
	assert.True(t, o.RemainingVolume.IsZero())
	assert.Equal(t, int64(1710488334073), o.CreatedAt)
}

func TestGateIOExchange_GetClosedOrders(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "currency_pair=BTC_USDT&page=2&limit=10&status=finished&from=1710488334&to=1710574734", r.URL.RawQuery)
		_, _ = w.Write([]byte(`[` + order("closed", "sell") + `,` + order("cancelled", "buy") + `]`))
	})

	start, end := int64(1710488334073), int64(1710574734999)
	q := exchange.NewClosedOrdersQuery("BTC_USDT")
	q.Page, q.Limit = 2, 10
	q.StartTime, q.EndTime = &start, &end

	orders, err := ex.GetClosedOrders(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, core.StatusDone, orders[0].Status)
	assert.Equal(t, core.SideAsk, orders[0].Side)
	assert.Equal(t, core.StatusCanceled, orders[1].Status)

	done := core.StatusDone
	q.Status = &done
	orders, err = ex.GetClosedOrders(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, core.StatusDone, orders[0].Status)
}

func TestGateIOExchange_GetOrder(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v4/spot/orders/1852454420", r.URL.Path)
		assert.Equal(t, "currency_pair=BTC_USDT", r.URL.RawQuery)
		assertSigned(t, r, "")
		_, _ = w.Write([]byte(order("closed", "buy")))
	})

	o, err := ex.GetOrder(context.Background(), "1852454420", "BTC_USDT")

	require.NoError(t, err)
	assert.Equal(t, "1852454420", o.OrderID)
	assert.Equal(t, core.SideBid, o.Side)
	assert.Equal(t, core.StatusDone, o.Status)
}

func TestGateIOExchange_GetOrder_UnknownStatus(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(order("pending", "buy")))
	})

	_, err := ex.GetOrder(context.Background(), "1852454420", "BTC_USDT")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "pending"`)
	var fault *core.Fault
	assert.False(t, errors.As(err, &fault))
}

func TestGateIOExchange_GetOrderBook(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/spot/order_book", r.URL.Path)
		assert.Equal(t, "currency_pair=BTC_USDT", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{
			"id": 123456,
			"current": 1623898993123,
			"update": 1623898993121,
			"asks": [["1.52", "1.151"], ["1.53", "1.218"]],
			"bids": [["1.17", "201.863"], ["1.16", "725.464"], ["1.15", "1"]]
		}`))
	})

	book, err := ex.GetOrderBook(context.Background(), "BTC_USDT")

	require.NoError(t, err)
	assert.Equal(t, "BTC_USDT", book.Symbol)
	assert.Equal(t, int64(1623898993123), book.Timestamp)
	require.Len(t, book.Items, 2)
	assert.Equal(t, "1.52", book.Items[0].AskPrice.String())
	assert.Equal(t, "1.151", book.Items[0].AskQuantity.String())
	assert.Equal(t, "1.17", book.Items[0].BidPrice.String())
	assert.Equal(t, "201.863", book.Items[0].BidQuantity.String())
	assert.Equal(t, "1.16", book.Items[1].BidPrice.String())
}

func TestGateIOExchange_PlaceOrder(t *testing.T) {
	tests := []struct {
		name      string
		orderType core.OrderType
		body      string
	}{
		{
			name:      "limit",
			orderType: core.TypeLimit,
			body:      `{"currency_pair":"BTC_USDT","side":"buy","amount":"0.001","price":"65000","type":"limit","time_in_force":"gtc"}`,
		},
		{
			name:      "market",
			orderType: core.TypeMarket,
			body:      `{"currency_pair":"BTC_USDT","side":"buy","amount":"0.001","type":"market","time_in_force":"ioc"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v4/spot/orders", r.URL.Path)
				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.Equal(t, tt.body, string(body))
				assertSigned(t, r, string(body))
				_, _ = w.Write([]byte(order("closed", "buy")))
			})

			req := &exchange.OrderRequest{Symbol: "BTC_USDT", Side: core.SideBid, Type: tt.orderType}
			_, _, err := req.Amount.SetString("0.001")
			require.NoError(t, err)
			req.Price.SetInt64(65000)

			o, err := ex.PlaceOrder(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, "1852454420", o.OrderID)
			assert.Equal(t, core.StatusDone, o.Status)
		})
	}
}

func TestGateIOExchange_CancelOrder(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v4/spot/orders/1852454420", r.URL.Path)
		assert.Equal(t, "currency_pair=BTC_USDT", r.URL.RawQuery)
		assertSigned(t, r, "")
		_, _ = w.Write([]byte(order("cancelled", "buy")))
	})

	o, err := ex.CancelOrder(context.Background(), "1852454420", "BTC_USDT")

	require.NoError(t, err)
	assert.Equal(t, core.StatusCanceled, o.Status)
}

func TestGateIOExchange_RateLimited(t *testing.T) {
	ex := newTestExchange(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := ex.GetSymbols(context.Background())

	assert.True(t, core.IsRateLimitError(err))
	var fault *core.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "Rate Limit Exceeded", fault.Message)
}
