package model

import "github.com/shopspring/decimal"

// BookingDraft is the price quote for the item a user is about to buy.
// BookingFee and GST are carried for display and are always zero.
type BookingDraft struct {
	ItemKind    ItemKind        `json:"item_kind"`
	ItemID      string          `json:"item_id"`
	ItemTitle   string          `json:"item_title"`
	SeatType    string          `json:"seat_type,omitempty"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	BookingFee  decimal.Decimal `json:"booking_fee"`
	GST         decimal.Decimal `json:"gst"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Currency    string          `json:"currency"`
}

type Contact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

// Profile is the cached user profile kept in the resumable session.
type Profile struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}
