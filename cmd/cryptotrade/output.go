package main

import (
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cryptotrade/pkg/core"
)

func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeTable renders known result types as a table and falls back to the
// JSON envelope for anything else.
func writeTable(w io.Writer, title string, env core.Envelope) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)

	switch data := env.Data.(type) {
	case []core.TradingPair:
		t.AppendHeader(table.Row{"Symbol", "Name"})
		for _, p := range data {
			t.AppendRow(table.Row{p.Symbol, p.Name})
		}
	case []core.Ticker:
		t.AppendHeader(table.Row{"Symbol", "Price", "Change %", "High", "Low", "Volume", "Time"})
		for i := range data {
			tk := &data[i]
			t.AppendRow(table.Row{
				tk.Symbol, dec(&tk.TradePrice), dec(&tk.ChangePercentage),
				dec(&tk.HighPrice), dec(&tk.LowPrice), dec(&tk.AccTradeVolume), millis(tk.Timestamp),
			})
		}
		alignRight(t, 2, 6)
	case []core.Balance:
		t.AppendHeader(table.Row{"Currency", "Balance", "Locked", "Avg Buy Price"})
		for i := range data {
			b := &data[i]
			avg := "-"
			if b.AvgBuyPrice != nil {
				avg = dec(b.AvgBuyPrice)
			}
			t.AppendRow(table.Row{b.Currency, dec(&b.Balance), dec(&b.Locked), avg})
		}
		alignRight(t, 2, 4)
	case []core.Order:
		appendOrders(t, data)
	case *core.Order:
		appendOrders(t, []core.Order{*data})
	case *core.OrderBook:
		t.AppendHeader(table.Row{"Ask Qty", "Ask Price", "Bid Price", "Bid Qty"})
		for i := range data.Items {
			it := &data.Items[i]
			t.AppendRow(table.Row{dec(&it.AskQuantity), dec(&it.AskPrice), dec(&it.BidPrice), dec(&it.BidQuantity)})
		}
		t.AppendFooter(table.Row{data.Symbol, "", "", millis(data.Timestamp)})
		alignRight(t, 1, 4)
	default:
		return writeJSON(w, env)
	}

	t.Render()
	return nil
}

func appendOrders(t table.Writer, orders []core.Order) {
	t.AppendHeader(table.Row{"ID", "Side", "Type", "Status", "Amount", "Price", "Executed", "Remaining", "Created"})
	for i := range orders {
		o := &orders[i]
		t.AppendRow(table.Row{
			o.OrderID, o.Side, o.OrderType, o.Status,
			dec(&o.Amount), dec(&o.Price), dec(&o.ExecutedVolume), dec(&o.RemainingVolume), millis(o.CreatedAt),
		})
	}
	alignRight(t, 5, 8)
}

func alignRight(t table.Writer, from, to int) {
	configs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
}

func dec(d *apd.Decimal) string {
	return core.FormatDecimal(d)
}

func millis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
