package models

import "time"

const lowStockRatio = 0.2

// Availability labels derived from available-vs-total. The 20% threshold is a
// fixed business rule.
const (
	AvailabilityOutOfStock = "Out of Stock"
	AvailabilityLowStock   = "Low Stock"
	AvailabilityAvailable  = "Available"
)

type Item struct {
	ID                 int        `json:"item_id" db:"item_id"`
	Name               string     `json:"item_name" db:"item_name"`
	Category           string     `json:"category" db:"category"`
	Location           string     `json:"location" db:"location"`
	QuantityTotal      int        `json:"quantity_total" db:"quantity_total"`
	QuantityAvailable  int        `json:"quantity_available" db:"quantity_available"`
	QuantityCheckedOut int        `json:"quantity_checked_out" db:"quantity_checked_out"`
	PurchasePrice      *float64   `json:"purchase_price" db:"purchase_price"`
	RestockDate        *time.Time `json:"restock_date" db:"restock_date"`
	Condition          string     `json:"condition" db:"condition"`
	Status             string     `json:"status" db:"status"`
	LastAuditDate      *time.Time `json:"last_audit_date" db:"last_audit_date"`
	Notes              *string    `json:"notes" db:"notes"`
	ImageURL           *string    `json:"image_url" db:"image_url"`
}

// AvailabilityStatus is a pure derivation, never persisted.
func (i *Item) AvailabilityStatus() string {
	switch {
	case i.QuantityAvailable == 0:
		return AvailabilityOutOfStock
	case float64(i.QuantityAvailable) < float64(i.QuantityTotal)*lowStockRatio:
		return AvailabilityLowStock
	default:
		return AvailabilityAvailable
	}
}

// ItemView is the wire shape for inventory listings, the Item plus its
// derived availability label.
type ItemView struct {
	Item
	AvailabilityStatus string `json:"availability_status"`
}

func (i Item) View() ItemView {
	return ItemView{
		Item:               i,
		AvailabilityStatus: i.AvailabilityStatus(),
	}
}

func (i *Item) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "item",
	}
}
