package model

import (
	"strings"

	"github.com/Veraticus/agrotrade/internal/common"
)

// Role is the kind of user a profile, an inventory owner or a trade buyer is.
type Role string

// Roles.
const (
	RoleFarmer   Role = "farmer"
	RoleRetailer Role = "retailer"
)

// ParseRole accepts "farmer" or "retailer" in any case. An empty cell is the
// zero Role; anything else is a *common.ParseError.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(RoleFarmer):
		return RoleFarmer, nil
	case string(RoleRetailer):
		return RoleRetailer, nil
	}
	return "", &common.ParseError{Field: "role", Value: s}
}

// Counterpart is the role on the other side of a trade.
func (r Role) Counterpart() Role {
	switch r {
	case RoleFarmer:
		return RoleRetailer
	case RoleRetailer:
		return RoleFarmer
	}
	return ""
}

// Availability says which roles a catalogue product is offered to.
type Availability string

// Availabilities.
const (
	AvailableToFarmer   Availability = "farmer"
	AvailableToRetailer Availability = "retailer"
	AvailableToBoth     Availability = "both"
)

// ParseAvailability accepts farmer, retailer or both in any case.
func ParseAvailability(s string) (Availability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(AvailableToFarmer):
		return AvailableToFarmer, nil
	case string(AvailableToRetailer):
		return AvailableToRetailer, nil
	case string(AvailableToBoth):
		return AvailableToBoth, nil
	}
	return "", &common.ParseError{Field: "availableFor", Value: s}
}

// Includes reports whether a product with this availability is offered to role.
func (a Availability) Includes(role Role) bool {
	if a == AvailableToBoth {
		return true
	}
	return role != "" && string(a) == string(role)
}

// TradeStatus is the lifecycle state of a trade.
type TradeStatus string

// Trade statuses. Accepted and completed are both the successful outcome;
// rejected and failed are both the unsuccessful one.
const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeCompleted TradeStatus = "completed"
	TradeRejected  TradeStatus = "rejected"
	TradeFailed    TradeStatus = "failed"
)

// ParseTradeStatus accepts any of the trade statuses in any case.
func ParseTradeStatus(s string) (TradeStatus, error) {
	switch v := TradeStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return "", nil
	case TradePending, TradeAccepted, TradeCompleted, TradeRejected, TradeFailed:
		return v, nil
	}
	return "", &common.ParseError{Field: "status", Value: s}
}

// Succeeded reports accepted or completed.
func (s TradeStatus) Succeeded() bool {
	return s == TradeAccepted || s == TradeCompleted
}

// Unsuccessful reports rejected or failed.
func (s TradeStatus) Unsuccessful() bool {
	return s == TradeRejected || s == TradeFailed
}

// StockStatus is derived from quantity and minimum stock level at read time.
type StockStatus string

// Stock statuses.
const (
	InStock  StockStatus = "in_stock"
	LowStock StockStatus = "low_stock"
)
