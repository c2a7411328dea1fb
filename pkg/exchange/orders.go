package exchange

import (
	"slices"

	"cryptotrade/pkg/core"
)

// FilterStatus keeps the orders whose status equals *status. A nil status
// keeps everything.
func FilterStatus(orders []core.Order, status *core.OrderStatus) []core.Order {
	if status == nil {
		return orders
	}
	kept := orders[:0:0]
	for _, o := range orders {
		if o.Status == *status {
			kept = append(kept, o)
		}
	}
	return kept
}

// SortByCreated orders in place by creation time. Ties keep their relative order.
func SortByCreated(orders []core.Order, by core.OrderBy) {
	slices.SortStableFunc(orders, func(a, b core.Order) int {
		if by == core.OrderByAsc {
			return cmpInt64(a.CreatedAt, b.CreatedAt)
		}
		return cmpInt64(b.CreatedAt, a.CreatedAt)
	})
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate returns the 1-based page of size limit. Out-of-range pages are empty.
func Paginate(orders []core.Order, page, limit int) []core.Order {
	if page < 1 || limit < 1 {
		return orders
	}
	start := (page - 1) * limit
	if start >= len(orders) {
		return []core.Order{}
	}
	end := min(start+limit, len(orders))
	return orders[start:end]
}
