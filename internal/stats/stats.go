// Package stats computes the figures shown on the trading dashboards. All
// functions are pure: they only look at the records they are given.
package stats

import (
	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/shopspring/decimal"
)

// InventorySummary totals a set of inventory lines.
type InventorySummary struct {
	TotalValue decimal.Decimal
	TotalItems int
	LowStock   int
}

// Inventory sums quantity times list price over items and counts the lines
// that are below their minimum stock level.
func Inventory(items []model.InventoryItem) InventorySummary {
	summary := InventorySummary{TotalValue: decimal.Zero, TotalItems: len(items)}
	for _, item := range items {
		summary.TotalValue = summary.TotalValue.Add(item.Value())
		if item.Quantity < item.MinStockLevel {
			summary.LowStock++
		}
	}
	return summary
}

// TradeSummary totals a set of trades.
type TradeSummary struct {
	TotalAmount  decimal.Decimal
	ByStatus     map[model.TradeStatus]int
	Count        int
	Pending      int
	Succeeded    int
	Unsuccessful int
}

// Trades sums trade amounts and counts trades per status. Trades without a
// status count toward no bucket.
func Trades(trades []model.Trade) TradeSummary {
	summary := TradeSummary{
		TotalAmount: decimal.Zero,
		ByStatus:    make(map[model.TradeStatus]int),
		Count:       len(trades),
	}
	for _, t := range trades {
		summary.TotalAmount = summary.TotalAmount.Add(t.Amount())
		if t.Status == "" {
			continue
		}
		summary.ByStatus[t.Status]++
		switch {
		case t.Status == model.TradePending:
			summary.Pending++
		case t.Status.Succeeded():
			summary.Succeeded++
		case t.Status.Unsuccessful():
			summary.Unsuccessful++
		}
	}
	return summary
}

// Overview is the headline numbers of one dashboard.
type Overview struct {
	Inventory InventorySummary
	Trades    TradeSummary
	Products  int
}

// Summarize builds the overview of one user's records.
func Summarize(items []model.InventoryItem, products []model.Product, trades []model.Trade) Overview {
	return Overview{
		Inventory: Inventory(items),
		Trades:    Trades(trades),
		Products:  len(products),
	}
}
