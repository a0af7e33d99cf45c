package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a row of the trade history.
type Trade struct {
	Date         time.Time        `json:"date"` // zero when the cell did not parse
	StoredAmount *decimal.Decimal `json:"amount,omitempty"`
	PricePerUnit decimal.Decimal  `json:"price_per_unit"`
	TradeID      string           `json:"trade_id"`
	FarmerUID    string           `json:"farmer_uid"`
	RetailerUID  string           `json:"retailer_uid"`
	ProductName  string           `json:"product_name,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	SellerName   string           `json:"seller_name,omitempty"`
	Details      string           `json:"details,omitempty"`
	Status       TradeStatus      `json:"status"`
	BuyerType    Role             `json:"buyer_type,omitempty"`
	Quantity     float64          `json:"quantity"`
}

// Amount is the stored amount when the sheet has one, otherwise
// quantity times price per unit.
func (t Trade) Amount() decimal.Decimal {
	if t.StoredAmount != nil {
		return *t.StoredAmount
	}
	return decimal.NewFromFloat(t.Quantity).Mul(t.PricePerUnit)
}

// Involves reports whether userID is the trade's party for role.
func (t Trade) Involves(userID string, role Role) bool {
	if role == RoleFarmer {
		return t.FarmerUID == userID
	}
	return t.RetailerUID == userID
}

// NewTrade is everything a caller supplies to record a trade; the trade id
// is assigned on creation.
type NewTrade struct {
	Date         time.Time
	Amount       *decimal.Decimal
	PricePerUnit decimal.Decimal `validate:"gte=0"`
	FarmerUID    string          `validate:"required"`
	RetailerUID  string          `validate:"required"`
	ProductName  string
	Unit         string
	SellerName   string
	Details      string
	Status       TradeStatus `validate:"omitempty,oneof=pending accepted completed rejected failed"`
	BuyerType    Role        `validate:"omitempty,oneof=farmer retailer"`
	Quantity     float64     `validate:"gte=0"`
}

// Trade builds the stored trade for id.
func (n NewTrade) Trade(id string) Trade {
	return Trade{
		TradeID:      id,
		Date:         n.Date,
		FarmerUID:    n.FarmerUID,
		RetailerUID:  n.RetailerUID,
		ProductName:  n.ProductName,
		Quantity:     n.Quantity,
		PricePerUnit: n.PricePerUnit,
		StoredAmount: n.Amount,
		Unit:         n.Unit,
		Status:       n.Status,
		BuyerType:    n.BuyerType,
		SellerName:   n.SellerName,
		Details:      n.Details,
	}
}
