package model

import "github.com/shopspring/decimal"

type ItemKind string

const (
	ItemKindEvent ItemKind = "event"
	ItemKindVideo ItemKind = "video"
)

func (k ItemKind) Valid() bool {
	return k == ItemKindEvent || k == ItemKindVideo
}

// SeatType is a priced ticket tier of an event (e.g. "VIP", "Gold").
type SeatType struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// PurchasableItem is the read-only copy of an event or video fetched from the backend.
type PurchasableItem struct {
	Kind      ItemKind        `json:"kind"`
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Free      bool            `json:"free"`
	SeatTypes []SeatType      `json:"seat_types,omitempty"`
}

func (i *PurchasableItem) SeatPrice(name string) (decimal.Decimal, bool) {
	for _, st := range i.SeatTypes {
		if st.Name == name {
			return st.Price, true
		}
	}
	return decimal.Zero, false
}

type Bookmark struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}
