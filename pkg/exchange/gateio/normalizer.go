package gateio

import (
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"

	"cryptotrade/pkg/core"
)

type gateioPair struct {
	ID          string `json:"id"`
	Base        string `json:"base"`
	BaseName    string `json:"base_name"`
	TradeStatus string `json:"trade_status"`
}

type gateioTicker struct {
	CurrencyPair     string `json:"currency_pair"`
	Last             string `json:"last"`
	ChangePercentage string `json:"change_percentage"`
	BaseVolume       string `json:"base_volume"`
	QuoteVolume      string `json:"quote_volume"`
	High24h          string `json:"high_24h"`
	Low24h           string `json:"low_24h"`
}

type gateioBalance struct {
	Currency  string `json:"currency"`
	Available string `json:"available"`
	Locked    string `json:"locked"`
}

// gateioOrder is the spot order object shared by every order endpoint.
type gateioOrder struct {
	ID           string `json:"id"`
	CurrencyPair string `json:"currency_pair"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	Side         string `json:"side"`
	Amount       string `json:"amount"`
	Price        string `json:"price"`
	Left         string `json:"left"`
	FilledAmount string `json:"filled_amount"`
	CreateTimeMs int64  `json:"create_time_ms"`
}

type gateioOrderBook struct {
	// Current is the snapshot time in epoch milliseconds.
	Current int64      `json:"current"`
	Asks    [][]string `json:"asks"`
	Bids    [][]string `json:"bids"`
}

var statusMap = map[string]core.OrderStatus{
	"open":      core.StatusWait,
	"closed":    core.StatusDone,
	"cancelled": core.StatusCanceled,
}

// Normalizer converts GateIO APIv4 payloads to canonical core types.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a Normalizer that stamps tickers using now.
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// NormalizePairs keeps the pairs whose trade_status is "tradable" and names
// each after its base currency.
func (n *Normalizer) NormalizePairs(data []gateioPair) []core.TradingPair {
	pairs := make([]core.TradingPair, 0, len(data))
	for _, p := range data {
		if p.TradeStatus != "tradable" {
			continue
		}
		name := p.BaseName
		if name == "" {
			name = p.Base
		}
		pairs = append(pairs, core.TradingPair{Symbol: p.ID, Name: name})
	}
	return pairs
}

// NormalizeTickers converts spot tickers. GateIO reports neither the
// opening price nor the absolute change, so both stay nil.
func (n *Normalizer) NormalizeTickers(data []gateioTicker) ([]core.Ticker, error) {
	now := n.now().UnixMilli()
	tickers := make([]core.Ticker, 0, len(data))

	for _, t := range data {
		ticker := core.Ticker{
			Symbol:         t.CurrencyPair,
			TradeTimestamp: now,
			Timestamp:      now,
		}

		fields := []struct {
			dest *apd.Decimal
			src  string
			name string
		}{
			{&ticker.TradePrice, t.Last, "last"},
			{&ticker.TradeVolume, t.BaseVolume, "base_volume"},
			{&ticker.HighPrice, t.High24h, "high_24h"},
			{&ticker.LowPrice, t.Low24h, "low_24h"},
			{&ticker.AccTradeVolume, t.QuoteVolume, "quote_volume"},
		}
		for _, f := range fields {
			if err := core.ParseDecimal(f.dest, f.src); err != nil {
				return nil, fmt.Errorf("ticker %s: parse %s: %w", t.CurrencyPair, f.name, err)
			}
		}

		var pct apd.Decimal
		if err := core.ParseDecimal(&pct, t.ChangePercentage); err != nil {
			return nil, fmt.Errorf("ticker %s: parse change_percentage: %w", t.CurrencyPair, err)
		}
		if err := core.RoundPercent(&ticker.ChangePercentage, &pct); err != nil {
			return nil, fmt.Errorf("ticker %s: round change_percentage: %w", t.CurrencyPair, err)
		}

		if err := core.MulDecimal(&ticker.AccTradePrice, &ticker.AccTradeVolume, &ticker.TradePrice); err != nil {
			return nil, fmt.Errorf("ticker %s: acc trade price: %w", t.CurrencyPair, err)
		}

		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

// NormalizeBalances maps available to Balance. The optional cost basis
// fields stay nil.
func (n *Normalizer) NormalizeBalances(data []gateioBalance) ([]core.Balance, error) {
	balances := make([]core.Balance, 0, len(data))
	for _, b := range data {
		balance := core.Balance{Currency: b.Currency}
		if err := core.ParseDecimal(&balance.Balance, b.Available); err != nil {
			return nil, fmt.Errorf("parse available %s: %w", b.Currency, err)
		}
		if err := core.ParseDecimal(&balance.Locked, b.Locked); err != nil {
			return nil, fmt.Errorf("parse locked %s: %w", b.Currency, err)
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

// NormalizeOrder converts a spot order. Unknown status or type values are
// errors rather than guesses.
func (n *Normalizer) NormalizeOrder(data *gateioOrder) (*core.Order, error) {
	status, ok := statusMap[data.Status]
	if !ok {
		return nil, fmt.Errorf("order %s: unknown status %q", data.ID, data.Status)
	}
	orderType, err := core.ParseOrderType(data.Type)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", data.ID, err)
	}

	order := &core.Order{
		OrderID:   data.ID,
		Side:      parseSide(data.Side),
		OrderType: orderType,
		Status:    status,
		CreatedAt: data.CreateTimeMs,
	}

	fields := []struct {
		dest *apd.Decimal
		src  string
		name string
	}{
		{&order.Amount, data.Amount, "amount"},
		{&order.Price, data.Price, "price"},
		{&order.ExecutedVolume, data.FilledAmount, "filled_amount"},
		{&order.RemainingVolume, data.Left, "left"},
	}
	for _, f := range fields {
		if err := core.ParseDecimal(f.dest, f.src); err != nil {
			return nil, fmt.Errorf("order %s: parse %s: %w", data.ID, f.name, err)
		}
	}
	return order, nil
}

// NormalizeOrders converts a list of spot orders.
func (n *Normalizer) NormalizeOrders(data []gateioOrder) ([]core.Order, error) {
	orders := make([]core.Order, 0, len(data))
	for i := range data {
		order, err := n.NormalizeOrder(&data[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// NormalizeOrderBook pairs ask and bid levels and keeps GateIO's own
// snapshot time.
func (n *Normalizer) NormalizeOrderBook(symbol string, data *gateioOrderBook) (*core.OrderBook, error) {
	asks, err := parseLevels(data.Asks)
	if err != nil {
		return nil, fmt.Errorf("normalize asks: %w", err)
	}
	bids, err := parseLevels(data.Bids)
	if err != nil {
		return nil, fmt.Errorf("normalize bids: %w", err)
	}
	return &core.OrderBook{
		Symbol:    symbol,
		Timestamp: data.Current,
		Items:     core.PairLevels(asks, bids),
	}, nil
}

func parseLevels(levels [][]string) ([]core.OrderBookLevel, error) {
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

func parseSide(s string) core.OrderSide {
	if s == "buy" {
		return core.SideBid
	}
	return core.SideAsk
}

func formatSide(side core.OrderSide) string {
	if side == core.SideBid {
		return "buy"
	}
	return "sell"
}

// timeInForce is gtc for limit orders; market orders must be ioc.
func timeInForce(t core.OrderType) string {
	if t == core.TypeLimit {
		return "gtc"
	}
	return "ioc"
}
