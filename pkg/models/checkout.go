package models

import "time"

// Checkout is an open loan. It lives from checkout until check-in, at which
// point its data moves into CheckoutHistory and the row is removed.
type Checkout struct {
	ID                int       `json:"checkout_id" db:"checkout_id"`
	ItemID            int       `json:"item_id" db:"item_id"`
	UserID            int       `json:"user_id" db:"user_id"`
	Quantity          int       `json:"quantity" db:"quantity"`
	CheckoutDate      time.Time `json:"checkout_date" db:"checkout_date"`
	ExpectedReturn    time.Time `json:"expected_return_datetime" db:"expected_return_datetime"`
	CheckoutCondition string    `json:"checkout_condition" db:"checkout_condition"`
	Notes             *string   `json:"notes" db:"notes"`
}

func (c *Checkout) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "checkout",
	}
}

// ActiveCheckout is the read projection of an open loan joined with item and
// user display fields. IsOverdue and DaysOverdue are computed at read time.
type ActiveCheckout struct {
	CheckoutID     int       `json:"checkout_id" db:"checkout_id"`
	CheckoutDate   time.Time `json:"checkout_date" db:"checkout_date"`
	ExpectedReturn time.Time `json:"expected_return_datetime" db:"expected_return_datetime"`
	Quantity       int       `json:"quantity" db:"quantity"`
	LDAP           string    `json:"ldap" db:"ldap"`
	FullName       string    `json:"full_name" db:"full_name"`
	Email          *string   `json:"email" db:"email"`
	ItemID         int       `json:"item_id" db:"item_id"`
	ItemName       string    `json:"item_name" db:"item_name"`
	Category       string    `json:"category" db:"category"`
	Location       string    `json:"location" db:"location"`
	Notes          *string   `json:"notes" db:"notes"`
	IsOverdue      bool      `json:"is_overdue" db:"-"`
	DaysOverdue    int       `json:"days_overdue" db:"-"`
}

// CheckoutHistory is the immutable snapshot of a closed loan.
type CheckoutHistory struct {
	ID                int       `json:"history_id" db:"history_id"`
	CheckoutID        int       `json:"checkout_id" db:"checkout_id"`
	ItemID            int       `json:"item_id" db:"item_id"`
	UserID            int       `json:"user_id" db:"user_id"`
	Quantity          int       `json:"quantity" db:"quantity"`
	CheckoutDate      time.Time `json:"checkout_date" db:"checkout_date"`
	ReturnDate        time.Time `json:"return_date" db:"return_date"`
	ExpectedReturn    time.Time `json:"expected_return_datetime" db:"expected_return_datetime"`
	IsReturned        bool      `json:"is_returned" db:"is_returned"`
	LateReturn        bool      `json:"late_return" db:"late_return"`
	CheckoutCondition string    `json:"checkout_condition" db:"checkout_condition"`
	ReturnCondition   string    `json:"return_condition" db:"return_condition"`
	CheckoutNotes     *string   `json:"checkout_notes" db:"checkout_notes"`
	ReturnNotes       *string   `json:"return_notes" db:"return_notes"`
}

func (h *CheckoutHistory) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   h.ID,
		ResourceType: "checkout_history",
	}
}

// HistoryRecord is a closed loan joined with item and user display fields,
// served by the per-user and per-item history projections.
type HistoryRecord struct {
	HistoryID         int       `json:"history_id" db:"history_id"`
	CheckoutDate      time.Time `json:"checkout_date" db:"checkout_date"`
	ReturnDate        time.Time `json:"return_date" db:"return_date"`
	ExpectedReturn    time.Time `json:"expected_return_datetime" db:"expected_return_datetime"`
	Quantity          int       `json:"quantity" db:"quantity"`
	IsReturned        bool      `json:"is_returned" db:"is_returned"`
	LateReturn        bool      `json:"late_return" db:"late_return"`
	LDAP              string    `json:"ldap" db:"ldap"`
	FullName          string    `json:"full_name" db:"full_name"`
	ItemID            int       `json:"item_id" db:"item_id"`
	ItemName          string    `json:"item_name" db:"item_name"`
	Category          string    `json:"category" db:"category"`
	Location          string    `json:"location" db:"location"`
	CheckoutCondition string    `json:"checkout_condition" db:"checkout_condition"`
	ReturnCondition   string    `json:"return_condition" db:"return_condition"`
}
