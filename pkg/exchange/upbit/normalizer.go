package upbit

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	"cryptotrade/pkg/core"
)

type upbitMarket struct {
	Market      string `json:"market"`
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
}

// upbitTicker carries bare JSON numbers; core.Number keeps their literal text.
type upbitTicker struct {
	Market           string      `json:"market"`
	TradeTimestamp   int64       `json:"trade_timestamp"`
	TradePrice       core.Number `json:"trade_price"`
	TradeVolume      core.Number `json:"trade_volume"`
	OpeningPrice     core.Number `json:"opening_price"`
	HighPrice        core.Number `json:"high_price"`
	LowPrice         core.Number `json:"low_price"`
	SignedChangeRate core.Number `json:"signed_change_rate"`
	ChangePrice      core.Number `json:"change_price"`
	AccTradeVolume   core.Number `json:"acc_trade_volume"`
	AccTradePrice    core.Number `json:"acc_trade_price"`
	Timestamp        int64       `json:"timestamp"`
}

type upbitBalance struct {
	Currency            string      `json:"currency"`
	Balance             core.Number `json:"balance"`
	Locked              core.Number `json:"locked"`
	AvgBuyPrice         core.Number `json:"avg_buy_price"`
	AvgBuyPriceModified bool        `json:"avg_buy_price_modified"`
	UnitCurrency        string      `json:"unit_currency"`
}

// upbitOrder is the order object. price and volume are null for market
// orders that do not use them.
type upbitOrder struct {
	UUID            string      `json:"uuid"`
	Side            string      `json:"side"`
	OrdType         string      `json:"ord_type"`
	Price           core.Number `json:"price"`
	State           string      `json:"state"`
	Market          string      `json:"market"`
	CreatedAt       string      `json:"created_at"`
	Volume          core.Number `json:"volume"`
	RemainingVolume core.Number `json:"remaining_volume"`
	ExecutedVolume  core.Number `json:"executed_volume"`
}

// orderResult decodes GET /order, which answers with either a single
// order object or a list holding it.
type orderResult struct {
	upbitOrder
}

func (o *orderResult) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []upbitOrder
		if err := sonic.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			return errors.New("empty order list")
		}
		o.upbitOrder = list[0]
		return nil
	}
	return sonic.Unmarshal(data, &o.upbitOrder)
}

type upbitOrderBookUnit struct {
	AskPrice core.Number `json:"ask_price"`
	BidPrice core.Number `json:"bid_price"`
	AskSize  core.Number `json:"ask_size"`
	BidSize  core.Number `json:"bid_size"`
}

type upbitOrderBook struct {
	Market         string               `json:"market"`
	Timestamp      int64                `json:"timestamp"`
	OrderbookUnits []upbitOrderBookUnit `json:"orderbook_units"`
}

var stateMap = map[string]core.OrderStatus{
	"wait":   core.StatusWait,
	"watch":  core.StatusWait,
	"done":   core.StatusDone,
	"cancel": core.StatusCanceled,
}

var ordTypeMap = map[string]core.OrderType{
	"limit":  core.TypeLimit,
	"price":  core.TypeMarket,
	"market": core.TypeMarket,
}

// Normalizer converts Upbit payloads to canonical core types. Upbit
// timestamps every snapshot itself, so no clock is needed.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeMarkets names each market by its English name.
func (n *Normalizer) NormalizeMarkets(data []upbitMarket) []core.TradingPair {
	pairs := make([]core.TradingPair, 0, len(data))
	for _, m := range data {
		pairs = append(pairs, core.TradingPair{Symbol: m.Market, Name: m.EnglishName})
	}
	return pairs
}

// NormalizeTickers converts tickers. signed_change_rate is a fraction and
// becomes a percentage rounded to two places.
func (n *Normalizer) NormalizeTickers(data []upbitTicker) ([]core.Ticker, error) {
	tickers := make([]core.Ticker, 0, len(data))
	for _, t := range data {
		ticker := core.Ticker{
			Symbol:         t.Market,
			TradeTimestamp: t.TradeTimestamp,
			Timestamp:      t.Timestamp,
		}

		fields := []struct {
			dest *apd.Decimal
			src  core.Number
			name string
		}{
			{&ticker.TradePrice, t.TradePrice, "trade_price"},
			{&ticker.TradeVolume, t.TradeVolume, "trade_volume"},
			{&ticker.HighPrice, t.HighPrice, "high_price"},
			{&ticker.LowPrice, t.LowPrice, "low_price"},
			{&ticker.AccTradeVolume, t.AccTradeVolume, "acc_trade_volume"},
			{&ticker.AccTradePrice, t.AccTradePrice, "acc_trade_price"},
		}
		for _, f := range fields {
			if err := f.src.Decimal(f.dest); err != nil {
				return nil, fmt.Errorf("ticker %s: parse %s: %w", t.Market, f.name, err)
			}
		}

		var err error
		if ticker.OpeningPrice, err = t.OpeningPrice.OptionalDecimal(); err != nil {
			return nil, fmt.Errorf("ticker %s: parse opening_price: %w", t.Market, err)
		}
		if ticker.ChangePrice, err = t.ChangePrice.OptionalDecimal(); err != nil {
			return nil, fmt.Errorf("ticker %s: parse change_price: %w", t.Market, err)
		}

		var rate apd.Decimal
		if err := t.SignedChangeRate.Decimal(&rate); err != nil {
			return nil, fmt.Errorf("ticker %s: parse signed_change_rate: %w", t.Market, err)
		}
		if err := core.RateToPercent(&ticker.ChangePercentage, &rate); err != nil {
			return nil, fmt.Errorf("ticker %s: change percentage: %w", t.Market, err)
		}

		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

// NormalizeBalances converts account balances including the cost basis.
func (n *Normalizer) NormalizeBalances(data []upbitBalance) ([]core.Balance, error) {
	balances := make([]core.Balance, 0, len(data))
	for _, b := range data {
		modified := b.AvgBuyPriceModified
		unit := b.UnitCurrency
		balance := core.Balance{
			Currency:            b.Currency,
			AvgBuyPriceModified: &modified,
			UnitCurrency:        &unit,
		}
		if err := b.Balance.Decimal(&balance.Balance); err != nil {
			return nil, fmt.Errorf("parse balance %s: %w", b.Currency, err)
		}
		if err := b.Locked.Decimal(&balance.Locked); err != nil {
			return nil, fmt.Errorf("parse locked %s: %w", b.Currency, err)
		}
		avg, err := b.AvgBuyPrice.OptionalDecimal()
		if err != nil {
			return nil, fmt.Errorf("parse avg_buy_price %s: %w", b.Currency, err)
		}
		balance.AvgBuyPrice = avg
		balances = append(balances, balance)
	}
	return balances, nil
}

// NormalizeOrder converts an order. created_at is ISO-8601 with an offset.
func (n *Normalizer) NormalizeOrder(data *upbitOrder) (*core.Order, error) {
	side, err := core.ParseOrderSide(data.Side)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", data.UUID, err)
	}
	orderType, ok := ordTypeMap[data.OrdType]
	if !ok {
		return nil, fmt.Errorf("order %s: unknown ord_type %q", data.UUID, data.OrdType)
	}
	status, ok := stateMap[data.State]
	if !ok {
		return nil, fmt.Errorf("order %s: unknown state %q", data.UUID, data.State)
	}
	createdAt, err := core.ISOToMillis(data.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", data.UUID, err)
	}

	order := &core.Order{
		OrderID:   data.UUID,
		Side:      side,
		OrderType: orderType,
		Status:    status,
		CreatedAt: createdAt,
	}

	fields := []struct {
		dest *apd.Decimal
		src  core.Number
		name string
	}{
		{&order.Amount, data.Volume, "volume"},
		{&order.Price, data.Price, "price"},
		{&order.ExecutedVolume, data.ExecutedVolume, "executed_volume"},
		{&order.RemainingVolume, data.RemainingVolume, "remaining_volume"},
	}
	for _, f := range fields {
		if err := f.src.Decimal(f.dest); err != nil {
			return nil, fmt.Errorf("order %s: parse %s: %w", data.UUID, f.name, err)
		}
	}
	return order, nil
}

func (n *Normalizer) NormalizeOrders(data []upbitOrder) ([]core.Order, error) {
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

// NormalizeOrderBook converts the first book of an orderbook response.
// Upbit already pairs asks and bids per unit.
func (n *Normalizer) NormalizeOrderBook(data []upbitOrderBook) (*core.OrderBook, error) {
	if len(data) == 0 {
		return nil, errors.New("empty order book response")
	}
	book := data[0]

	items := make([]core.OrderBookItem, 0, len(book.OrderbookUnits))
	for i, u := range book.OrderbookUnits {
		var item core.OrderBookItem
		fields := []struct {
			dest *apd.Decimal
			src  core.Number
			name string
		}{
			{&item.AskPrice, u.AskPrice, "ask_price"},
			{&item.AskQuantity, u.AskSize, "ask_size"},
			{&item.BidPrice, u.BidPrice, "bid_price"},
			{&item.BidQuantity, u.BidSize, "bid_size"},
		}
		for _, f := range fields {
			if err := f.src.Decimal(f.dest); err != nil {
				return nil, fmt.Errorf("unit %d: parse %s: %w", i, f.name, err)
			}
		}
		items = append(items, item)
	}

	return &core.OrderBook{
		Symbol:    book.Market,
		Timestamp: book.Timestamp,
		Items:     items,
	}, nil
}
