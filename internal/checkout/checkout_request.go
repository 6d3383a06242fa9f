package checkout

import "time"

type CheckoutRequest struct {
	ItemID            int        `json:"item_id" binding:"required"`
	UserLDAP          string     `json:"user_ldap" binding:"required"`
	Quantity          int        `json:"quantity" binding:"required"`
	ExpectedReturn    *time.Time `json:"expected_return_datetime"`
	CheckoutCondition string     `json:"checkout_condition"`
	Notes             *string    `json:"notes"`
}

type CheckinRequest struct {
	CheckoutID      int     `json:"checkout_id" binding:"required"`
	ReturnCondition string  `json:"return_condition"`
	ReturnNotes     *string `json:"return_notes"`
}

type ActiveQuery struct {
	UserID int `form:"user_id"`
	ItemID int `form:"item_id"`
}

type HistoryQuery struct {
	Limit int `form:"limit,default=50"`
}

type UserHistoryURI struct {
	LDAP string `uri:"ldap" binding:"required"`
}

type ItemHistoryURI struct {
	ItemID int `uri:"item_id" binding:"required"`
}
