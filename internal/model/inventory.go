// Package model holds the trading entities stored in the spreadsheets.
package model

import (
	"github.com/shopspring/decimal"
)

// InventoryItem is one stock line owned by a farmer or a retailer.
type InventoryItem struct {
	ListPrice     decimal.Decimal `json:"price_per_unit" validate:"gte=0"`
	CostPrice     decimal.Decimal `json:"cost_price" validate:"gte=0"`
	ID            string          `json:"id" validate:"required"`
	ProductID     string          `json:"product_id,omitempty"`
	OwnerID       string          `json:"owner_id,omitempty"`
	ProductName   string          `json:"product_name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit,omitempty"`
	OwnerType     Role            `json:"owner_type,omitempty" validate:"omitempty,oneof=farmer retailer"`
	Quantity      float64         `json:"quantity" validate:"gte=0"`
	MinStockLevel float64         `json:"min_stock_level"`
}

// Status is derived on every read and never stored.
func (i InventoryItem) Status() StockStatus {
	if i.Quantity > i.MinStockLevel {
		return InStock
	}
	return LowStock
}

// Value is quantity times list price.
func (i InventoryItem) Value() decimal.Decimal {
	return decimal.NewFromFloat(i.Quantity).Mul(i.ListPrice)
}

// CatalogKey is the product catalogue id this line refers to.
func (i InventoryItem) CatalogKey() string {
	if i.ProductID != "" {
		return i.ProductID
	}
	return i.ID
}

// InventoryPatch carries the fields of a partial inventory update. Nil fields
// are left alone; the item id is not patchable.
type InventoryPatch struct {
	ProductName   *string
	Category      *string
	Unit          *string
	Quantity      *float64
	ListPrice     *decimal.Decimal
	CostPrice     *decimal.Decimal
	MinStockLevel *float64
	OwnerType     *Role
}

// Apply merges the patch over item and returns the result.
func (p InventoryPatch) Apply(item InventoryItem) InventoryItem {
	if p.ProductName != nil {
		item.ProductName = *p.ProductName
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.ListPrice != nil {
		item.ListPrice = *p.ListPrice
	}
	if p.CostPrice != nil {
		item.CostPrice = *p.CostPrice
	}
	if p.MinStockLevel != nil {
		item.MinStockLevel = *p.MinStockLevel
	}
	if p.OwnerType != nil {
		item.OwnerType = *p.OwnerType
	}
	return item
}

// IsEmpty reports whether the patch changes nothing.
func (p InventoryPatch) IsEmpty() bool {
	return p == InventoryPatch{}
}
