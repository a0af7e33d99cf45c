package model

import "github.com/shopspring/decimal"

// Product is a catalogue entry.
type Product struct {
	Price        decimal.Decimal `json:"base_price"`
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id,omitempty"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit,omitempty"`
	ImageURL     string          `json:"image_url"`
	AvailableFor Availability    `json:"available_for,omitempty"`
}

// OfferedTo reports whether the product is listed for role.
func (p Product) OfferedTo(role Role) bool {
	return p.AvailableFor.Includes(role)
}
