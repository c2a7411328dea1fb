package core

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// OrderSide represents the direction of an order (bid or ask).
type OrderSide int

// Order side constants define the direction of a trade.
const (
	// SideBid indicates an order to purchase the base asset.
	SideBid OrderSide = iota
	// SideAsk indicates an order to sell the base asset.
	SideAsk
)

// String returns the string representation of the order side ("bid" or "ask").
func (s OrderSide) String() string {
	return [...]string{"bid", "ask"}[s]
}

// MarshalJSON implements json.Marshaler for OrderSide.
func (s OrderSide) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderSide.
func (s *OrderSide) UnmarshalJSON(data []byte) error {
	side, err := ParseOrderSide(unquote(data))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// ParseOrderSide converts "bid" or "ask" into an OrderSide.
func ParseOrderSide(s string) (OrderSide, error) {
	switch s {
	case "bid":
		return SideBid, nil
	case "ask":
		return SideAsk, nil
	}
	return 0, fmt.Errorf("invalid order side %q", s)
}

// OrderType represents how an order is executed.
type OrderType int

// Order type constants.
const (
	// TypeLimit executes at a specified price or better.
	TypeLimit OrderType = iota
	// TypeMarket executes immediately at the best available price.
	TypeMarket
)

// String returns the string representation of the order type.
func (t OrderType) String() string {
	return [...]string{"limit", "market"}[t]
}

// MarshalJSON implements json.Marshaler for OrderType.
func (t OrderType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderType.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	typ, err := ParseOrderType(unquote(data))
	if err != nil {
		return err
	}
	*t = typ
	return nil
}

// ParseOrderType converts "limit" or "market" into an OrderType.
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "limit":
		return TypeLimit, nil
	case "market":
		return TypeMarket, nil
	}
	return 0, fmt.Errorf("invalid order type %q", s)
}

// OrderStatus represents the lifecycle state of an order. Every exchange
// status collapses into one of these three values.
type OrderStatus int

// Order status constants.
const (
	// StatusWait indicates the order is resting on the book, possibly partially filled.
	StatusWait OrderStatus = iota
	// StatusDone indicates the order has been completely filled.
	StatusDone
	// StatusCanceled indicates the order left the book without filling completely.
	StatusCanceled
)

// String returns the string representation of the order status.
func (s OrderStatus) String() string {
	return [...]string{"wait", "done", "canceled"}[s]
}

// IsTerminal returns true if the order can no longer change.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// MarshalJSON implements json.Marshaler for OrderStatus.
func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderStatus.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	status, err := ParseOrderStatus(unquote(data))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// ParseOrderStatus converts "wait", "done" or "canceled" into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch s {
	case "wait":
		return StatusWait, nil
	case "done":
		return StatusDone, nil
	case "canceled":
		return StatusCanceled, nil
	}
	return 0, fmt.Errorf("invalid order status %q", s)
}

// OrderBy is the sort direction for order listings, keyed on creation time.
type OrderBy int

// Sort directions.
const (
	OrderByDesc OrderBy = iota
	OrderByAsc
)

func (o OrderBy) String() string {
	return [...]string{"desc", "asc"}[o]
}

// ParseOrderBy converts "asc" or "desc" into an OrderBy. Empty input is desc.
func ParseOrderBy(s string) (OrderBy, error) {
	switch s {
	case "", "desc":
		return OrderByDesc, nil
	case "asc":
		return OrderByAsc, nil
	}
	return 0, fmt.Errorf("invalid order_by %q", s)
}

func unquote(data []byte) string {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return string(data[1 : len(data)-1])
	}
	return string(data)
}

// TradingPair is a tradable market on an exchange.
type TradingPair struct {
	// Symbol is the exchange-native market identifier (e.g. "KRW-BTC", "BTC_USDT").
	Symbol string `json:"symbol"`
	// Name is a human-readable label, usually the base asset.
	Name string `json:"name"`
}

// Ticker is a 24-hour market snapshot for one symbol.
type Ticker struct {
	Symbol         string      `json:"symbol"`
	TradeTimestamp int64       `json:"trade_timestamp"`
	TradePrice     apd.Decimal `json:"trade_price"`
	TradeVolume    apd.Decimal `json:"trade_volume"`
	// OpeningPrice is nil when the exchange does not report it.
	OpeningPrice *apd.Decimal `json:"opening_price"`
	HighPrice    apd.Decimal  `json:"high_price"`
	LowPrice     apd.Decimal  `json:"low_price"`
	// ChangePercentage is rounded to two decimal places.
	ChangePercentage apd.Decimal `json:"change_percentage"`
	// ChangePrice is nil when the exchange does not report it.
	ChangePrice    *apd.Decimal `json:"change_price"`
	AccTradeVolume apd.Decimal  `json:"acc_trade_volume"`
	AccTradePrice  apd.Decimal  `json:"acc_trade_price"`
	Timestamp      int64        `json:"timestamp"`
}

// Balance is the holding of one currency in the account.
type Balance struct {
	Currency string      `json:"currency"`
	Balance  apd.Decimal `json:"balance"`
	Locked   apd.Decimal `json:"locked"`

	// The remaining fields are only reported by some exchanges.
	AvgBuyPrice         *apd.Decimal `json:"avg_buy_price"`
	AvgBuyPriceModified *bool        `json:"avg_buy_price_modified"`
	UnitCurrency        *string      `json:"unit_currency"`
}

// Order is an exchange order in canonical form.
type Order struct {
	OrderID         string      `json:"order_id"`
	Side            OrderSide   `json:"side"`
	Amount          apd.Decimal `json:"amount"`
	Price           apd.Decimal `json:"price"`
	OrderType       OrderType   `json:"order_type"`
	Status          OrderStatus `json:"status"`
	ExecutedVolume  apd.Decimal `json:"executed_volume"`
	RemainingVolume apd.Decimal `json:"remaining_volume"`
	// CreatedAt is epoch milliseconds.
	CreatedAt int64 `json:"created_at"`
}

// OrderBookLevel represents a single price level on one side of the book.
type OrderBookLevel struct {
	Price    apd.Decimal `json:"price"`
	Quantity apd.Decimal `json:"quantity"`
}

// OrderBookItem pairs the i-th ask level with the i-th bid level.
type OrderBookItem struct {
	AskPrice    apd.Decimal `json:"ask_price"`
	AskQuantity apd.Decimal `json:"ask_quantity"`
	BidPrice    apd.Decimal `json:"bid_price"`
	BidQuantity apd.Decimal `json:"bid_quantity"`
}

// OrderBook is a depth snapshot for one symbol.
type OrderBook struct {
	Symbol    string          `json:"symbol"`
	Timestamp int64           `json:"timestamp"`
	Items     []OrderBookItem `json:"items"`
}

// apd.Decimal marshals through a pointer receiver, so entities encode
// through an addressable copy to keep decimals as strings when passed by value.

// MarshalJSON implements json.Marshaler for Ticker.
func (t Ticker) MarshalJSON() ([]byte, error) {
	type plain Ticker
	return sonic.ConfigStd.Marshal((*plain)(&t))
}

// MarshalJSON implements json.Marshaler for Balance.
func (b Balance) MarshalJSON() ([]byte, error) {
	type plain Balance
	return sonic.ConfigStd.Marshal((*plain)(&b))
}

// MarshalJSON implements json.Marshaler for Order.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return sonic.ConfigStd.Marshal((*plain)(&o))
}

// MarshalJSON implements json.Marshaler for OrderBookItem.
func (i OrderBookItem) MarshalJSON() ([]byte, error) {
	type plain OrderBookItem
	return sonic.ConfigStd.Marshal((*plain)(&i))
}

// PairLevels zips the ask and bid ladders position by position. The result
// has the length of the shorter ladder.
func PairLevels(asks, bids []OrderBookLevel) []OrderBookItem {
	n := min(len(asks), len(bids))
	items := make([]OrderBookItem, n)
	for i := range n {
		items[i] = OrderBookItem{
			AskPrice:    asks[i].Price,
			AskQuantity: asks[i].Quantity,
			BidPrice:    bids[i].Price,
			BidQuantity: bids[i].Quantity,
		}
	}
	return items
}
