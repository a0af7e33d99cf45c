package stats

import (
	"testing"

	"github.com/Veraticus/agrotrade/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInventory(t *testing.T) {
	tests := []struct {
		name      string
		items     []model.InventoryItem
		wantValue string
		wantItems int
		wantLow   int
	}{
		{
			name: "two lines",
			items: []model.InventoryItem{
				{Quantity: 10, ListPrice: d("5")},
				{Quantity: 3, ListPrice: d("2")},
			},
			wantValue: "56",
			wantItems: 2,
		},
		{
			name:      "empty",
			wantValue: "0",
		},
		{
			name: "low stock is strictly below minimum",
			items: []model.InventoryItem{
				{Quantity: 50, MinStockLevel: 100, ListPrice: d("1")},
				{Quantity: 100, MinStockLevel: 100, ListPrice: d("1")},
				{Quantity: 150, MinStockLevel: 100, ListPrice: d("1")},
			},
			wantValue: "300",
			wantItems: 3,
			wantLow:   1,
		},
		{
			name: "unparsed cells count as zero",
			items: []model.InventoryItem{
				{Quantity: 0, ListPrice: d("9")},
				{Quantity: 4},
			},
			wantValue: "0",
			wantItems: 2,
		},
		{
			name: "fractional prices stay exact",
			items: []model.InventoryItem{
				{Quantity: 3, ListPrice: d("0.1")},
				{Quantity: 1.5, ListPrice: d("6.99")},
			},
			wantValue: "10.785",
			wantItems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inventory(tt.items)
			assert.Equal(t, tt.wantItems, got.TotalItems)
			assert.Equal(t, tt.wantLow, got.LowStock)
			assert.True(t, d(tt.wantValue).Equal(got.TotalValue), "total value %s", got.TotalValue)
		})
	}
}

func TestTrades(t *testing.T) {
	stored := d("100")
	trades := []model.Trade{
		{Status: model.TradePending, Quantity: 2, PricePerUnit: d("5")},
		{Status: model.TradeAccepted, StoredAmount: &stored},
		{Status: model.TradeCompleted, Quantity: 1, PricePerUnit: d("1.5")},
		{Status: model.TradeRejected},
		{Status: model.TradeFailed},
		{},
	}

	got := Trades(trades)
	assert.Equal(t, 6, got.Count)
	assert.True(t, d("111.5").Equal(got.TotalAmount))
	assert.Equal(t, 1, got.Pending)
	assert.Equal(t, 2, got.Succeeded)
	assert.Equal(t, 2, got.Unsuccessful)
	assert.Equal(t, map[model.TradeStatus]int{
		model.TradePending:   1,
		model.TradeAccepted:  1,
		model.TradeCompleted: 1,
		model.TradeRejected:  1,
		model.TradeFailed:    1,
	}, got.ByStatus)
}

func TestSummarize(t *testing.T) {
	overview := Summarize(
		[]model.InventoryItem{{Quantity: 10, ListPrice: d("5")}},
		[]model.Product{{ID: "p1"}, {ID: "p2"}},
		nil,
	)
	assert.Equal(t, 1, overview.Inventory.TotalItems)
	assert.Equal(t, 2, overview.Products)
	assert.Equal(t, 0, overview.Trades.Count)
	assert.True(t, overview.Trades.TotalAmount.IsZero())
}
