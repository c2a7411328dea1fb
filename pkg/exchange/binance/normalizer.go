package binance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"cryptotrade/pkg/core"
)

// binanceSymbol is one entry of the exchangeInfo symbol list.
type binanceSymbol struct {
	Symbol    string `json:"symbol"`
	Status    string `json:"status"`
	BaseAsset string `json:"baseAsset"`
}

// binanceExchangeInfo represents the exchangeInfo response from Binance API.
type binanceExchangeInfo struct {
	Symbols []binanceSymbol `json:"symbols"`
}

// binanceTicker represents the raw 24hr ticker response from Binance API.
type binanceTicker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	OpenPrice          string `json:"openPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
}

// binanceBalance represents a single asset balance from Binance API.
type binanceBalance struct {
	Asset  string `json:"asset"`
	Free   string `json:"free"`
	Locked string `json:"locked"`
}

// binanceAccount represents the account information response from Binance API.
type binanceAccount struct {
	Balances []binanceBalance `json:"balances"`
}

// binanceOrder represents the raw order response from Binance API.
// Queries report creation in "time", placement and cancellation in "transactTime".
type binanceOrder struct {
	OrderID      int64  `json:"orderId"`
	Price        string `json:"price"`
	OrigQty      string `json:"origQty"`
	ExecutedQty  string `json:"executedQty"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Side         string `json:"side"`
	Time         int64  `json:"time"`
	TransactTime int64  `json:"transactTime"`
}

// binanceOrderBook represents the depth response from Binance API.
type binanceOrderBook struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// closedStatuses are the order states reported by allOrders for finished orders.
var closedStatuses = map[string]bool{
	"FILLED":           true,
	"CANCELED":         true,
	"REJECTED":         true,
	"EXPIRED":          true,
	"EXPIRED_IN_MATCH": true,
}

// Normalizer converts Binance-specific data structures to canonical core types.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a Normalizer that stamps snapshots using now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// NormalizeSymbols keeps only symbols whose status is TRADING.
func (n *Normalizer) NormalizeSymbols(data *binanceExchangeInfo) []core.TradingPair {
	pairs := make([]core.TradingPair, 0, len(data.Symbols))
	for _, s := range data.Symbols {
		if s.Status != "TRADING" {
			continue
		}
		pairs = append(pairs, core.TradingPair{Symbol: s.Symbol, Name: s.BaseAsset})
	}
	return pairs
}

// NormalizeTicker converts a Binance 24hr ticker to a canonical Ticker.
// Binance reports no trade time, so both timestamps are the current time.
// The accumulated trade price is quoteVolume multiplied by lastPrice.
func (n *Normalizer) NormalizeTicker(data *binanceTicker) (*core.Ticker, error) {
	now := n.now().UnixMilli()
	ticker := &core.Ticker{
		Symbol:         data.Symbol,
		TradeTimestamp: now,
		Timestamp:      now,
	}

	fields := []struct {
		dest *apd.Decimal
		src  string
		name string
	}{
		{&ticker.TradePrice, data.LastPrice, "lastPrice"},
		{&ticker.TradeVolume, data.Volume, "volume"},
		{&ticker.HighPrice, data.HighPrice, "highPrice"},
		{&ticker.LowPrice, data.LowPrice, "lowPrice"},
		{&ticker.AccTradeVolume, data.QuoteVolume, "quoteVolume"},
	}
	for _, f := range fields {
		if err := core.ParseDecimal(f.dest, f.src); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}

	var err error
	if ticker.OpeningPrice, err = core.ParseOptionalDecimal(data.OpenPrice); err != nil {
		return nil, fmt.Errorf("parse openPrice: %w", err)
	}
	if ticker.ChangePrice, err = core.ParseOptionalDecimal(data.PriceChange); err != nil {
		return nil, fmt.Errorf("parse priceChange: %w", err)
	}

	var pct apd.Decimal
	if err := core.ParseDecimal(&pct, data.PriceChangePercent); err != nil {
		return nil, fmt.Errorf("parse priceChangePercent: %w", err)
	}
	if err := core.RoundPercent(&ticker.ChangePercentage, &pct); err != nil {
		return nil, fmt.Errorf("round change percentage: %w", err)
	}

	if err := core.MulDecimal(&ticker.AccTradePrice, &ticker.AccTradeVolume, &ticker.TradePrice); err != nil {
		return nil, fmt.Errorf("calculate acc trade price: %w", err)
	}

	return ticker, nil
}

// NormalizeTickers converts multiple Binance tickers.
func (n *Normalizer) NormalizeTickers(data []binanceTicker) ([]core.Ticker, error) {
	tickers := make([]core.Ticker, 0, len(data))
	for i := range data {
		ticker, err := n.NormalizeTicker(&data[i])
		if err != nil {
			return nil, fmt.Errorf("normalize ticker %s: %w", data[i].Symbol, err)
		}
		tickers = append(tickers, *ticker)
	}
	return tickers, nil
}

// NormalizeBalances converts the account balances. Binance does not report
// a cost basis, so AvgBuyPrice and UnitCurrency stay nil.
func (n *Normalizer) NormalizeBalances(data *binanceAccount) ([]core.Balance, error) {
	balances := make([]core.Balance, 0, len(data.Balances))
	for _, b := range data.Balances {
		modified := false
		balance := core.Balance{
			Currency:            b.Asset,
			AvgBuyPriceModified: &modified,
		}
		if err := core.ParseDecimal(&balance.Balance, b.Free); err != nil {
			return nil, fmt.Errorf("parse free %s: %w", b.Asset, err)
		}
		if err := core.ParseDecimal(&balance.Locked, b.Locked); err != nil {
			return nil, fmt.Errorf("parse locked %s: %w", b.Asset, err)
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

// NormalizeOrder converts a Binance order response to a canonical Order.
// It calculates the remaining quantity from total and filled quantities.
func (n *Normalizer) NormalizeOrder(data *binanceOrder) (*core.Order, error) {
	order := &core.Order{
		OrderID:   strconv.FormatInt(data.OrderID, 10),
		Side:      parseOrderSide(data.Side),
		OrderType: parseOrderType(data.Type),
		Status:    parseOrderStatus(data.Status),
		CreatedAt: data.Time,
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = data.TransactTime
	}

	if err := core.ParseDecimal(&order.Price, data.Price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	if err := core.ParseDecimal(&order.Amount, data.OrigQty); err != nil {
		return nil, fmt.Errorf("parse origQty: %w", err)
	}
	if err := core.ParseDecimal(&order.ExecutedVolume, data.ExecutedQty); err != nil {
		return nil, fmt.Errorf("parse executedQty: %w", err)
	}

	_, err := apd.BaseContext.Sub(&order.RemainingVolume, &order.Amount, &order.ExecutedVolume)
	if err != nil {
		return nil, fmt.Errorf("calculate remaining: %w", err)
	}

	return order, nil
}

// NormalizeOrders converts multiple Binance orders to canonical Orders.
func (n *Normalizer) NormalizeOrders(data []binanceOrder) ([]core.Order, error) {
	orders := make([]core.Order, 0, len(data))
	for i := range data {
		order, err := n.NormalizeOrder(&data[i])
		if err != nil {
			return nil, fmt.Errorf("normalize order %d: %w", data[i].OrderID, err)
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// NormalizeClosedOrders drops orders that are still working on the book.
func (n *Normalizer) NormalizeClosedOrders(data []binanceOrder) ([]core.Order, error) {
	closed := make([]binanceOrder, 0, len(data))
	for _, o := range data {
		if closedStatuses[o.Status] {
			closed = append(closed, o)
		}
	}
	return n.NormalizeOrders(closed)
}

// NormalizeOrderBook pairs ask and bid levels position by position.
// Binance depth carries no timestamp, so the current time is used.
func (n *Normalizer) NormalizeOrderBook(symbol string, data *binanceOrderBook) (*core.OrderBook, error) {
	asks, err := n.normalizeOrderBookLevels(data.Asks)
	if err != nil {
		return nil, fmt.Errorf("normalize asks: %w", err)
	}

	bids, err := n.normalizeOrderBookLevels(data.Bids)
	if err != nil {
		return nil, fmt.Errorf("normalize bids: %w", err)
	}

	return &core.OrderBook{
		Symbol:    symbol,
		Timestamp: n.now().UnixMilli(),
		Items:     core.PairLevels(asks, bids),
	}, nil
}

func (n *Normalizer) normalizeOrderBookLevels(levels [][]string) ([]core.OrderBookLevel, error) {
	result := make([]core.OrderBookLevel, 0, len(levels))

	for _, level := range levels {
		if len(level) < 2 {
			continue
		}

		var obl core.OrderBookLevel
		if err := core.ParseDecimal(&obl.Price, level[0]); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}

		if err := core.ParseDecimal(&obl.Quantity, level[1]); err != nil {
			return nil, fmt.Errorf("parse quantity: %w", err)
		}

		result = append(result, obl)
	}

	return result, nil
}

func parseOrderSide(s string) core.OrderSide {
	if s == "SELL" {
		return core.SideAsk
	}
	return core.SideBid
}

// parseOrderType maps MARKET to market and every limit variant
// (LIMIT, LIMIT_MAKER, STOP_LOSS_LIMIT, ...) to limit.
func parseOrderType(s string) core.OrderType {
	if s == "MARKET" {
		return core.TypeMarket
	}
	return core.TypeLimit
}

func parseOrderStatus(s string) core.OrderStatus {
	switch s {
	case "NEW", "PENDING_NEW", "PARTIALLY_FILLED":
		return core.StatusWait
	case "FILLED":
		return core.StatusDone
	default:
		return core.StatusCanceled
	}
}

func formatSide(side core.OrderSide) string {
	if side == core.SideAsk {
		return "SELL"
	}
	return "BUY"
}

func formatType(t core.OrderType) string {
	return strings.ToUpper(t.String())
}
