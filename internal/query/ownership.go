package query

import (
	"strings"

	"github.com/Veraticus/agrotrade/internal/model"
)

// Ownership is the part of an inventory line or product that says who it
// belongs to.
type Ownership struct {
	ID        string
	OwnerID   string
	OwnerType model.Role
}

// InventoryOwnership extracts the ownership fields of an inventory line.
func InventoryOwnership(item model.InventoryItem) Ownership {
	return Ownership{ID: item.ID, OwnerID: item.OwnerID, OwnerType: item.OwnerType}
}

// ProductOwnership extracts the ownership fields of a catalogue product.
func ProductOwnership(p model.Product) Ownership {
	return Ownership{ID: p.ID, OwnerID: p.OwnerID}
}

// OwnershipPredicate decides whether a row belongs to userID.
type OwnershipPredicate func(o Ownership, userID string) bool

// IDPrefix matches rows whose id starts with the user id. The legacy sheets
// encode the owner that way. An empty user id matches nothing.
func IDPrefix() OwnershipPredicate {
	return func(o Ownership, userID string) bool {
		return userID != "" && strings.HasPrefix(o.ID, userID)
	}
}

// OwnerIDMatch matches rows whose owner_id column equals the user id.
func OwnerIDMatch() OwnershipPredicate {
	return func(o Ownership, userID string) bool {
		return userID != "" && o.OwnerID == userID
	}
}

// OwnerTypeMatch narrows base to rows owned by role.
func OwnerTypeMatch(base OwnershipPredicate, role model.Role) OwnershipPredicate {
	return func(o Ownership, userID string) bool {
		return o.OwnerType == role && base(o, userID)
	}
}
