package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlowState string

const (
	StateIdle         FlowState = "idle"
	StateDraft        FlowState = "draft"
	StateOrderCreated FlowState = "order_created"
	StateGatewayOpen  FlowState = "gateway_open"
	StateVerifying    FlowState = "verifying"
	StateCompleted    FlowState = "completed"
	StateFailed       FlowState = "failed"
	StateProcessing   FlowState = "processing" // verification gave up, waiting on email confirmation
)

// Purchase is one checkout attempt of one session.
type Purchase struct {
	ID        string   `gorm:"primaryKey;size:36;not null"`
	SessionID string   `gorm:"size:64;index;not null"`
	ItemKind  ItemKind `gorm:"size:16;not null"`
	ItemID    string   `gorm:"size:64;not null"`
	ItemTitle string   `gorm:"size:255"`
	SeatType  string   `gorm:"size:64"`
	Quantity  int32    `gorm:"not null"`

	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency    string          `gorm:"size:8;not null"`

	ContactName  string `gorm:"size:128"`
	ContactEmail string `gorm:"size:255"`
	ContactPhone string `gorm:"size:32"`

	State      FlowState `gorm:"size:32;index;not null"`
	Processing bool      `gorm:"not null;default:false"`

	OrderID        string      `gorm:"size:64;index"` // cleared whenever the flow restarts
	BookingID      string      `gorm:"size:64"`
	Gateway        GatewayKind `gorm:"size:16"`
	GatewayPayload string      `gorm:"type:text"` // GatewayOrder as JSON
	PaymentProof   string      `gorm:"type:text"` // PaymentProof as JSON, set on gateway completion
	VerifyAttempts int32       `gorm:"not null;default:0"`
	LastError      string      `gorm:"size:512"`
	Result         string      `gorm:"type:text"` // PurchaseResult as JSON, fetched once

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Purchase) Contact() Contact {
	return Contact{Name: p.ContactName, Email: p.ContactEmail, Phone: p.ContactPhone}
}

func (p *Purchase) SetContact(c Contact) {
	p.ContactName = c.Name
	p.ContactEmail = c.Email
	p.ContactPhone = c.Phone
}

func (p *Purchase) ApplyDraft(d *BookingDraft) {
	p.ItemKind = d.ItemKind
	p.ItemID = d.ItemID
	p.ItemTitle = d.ItemTitle
	p.SeatType = d.SeatType
	p.Quantity = d.Quantity
	p.UnitPrice = d.UnitPrice
	p.FinalAmount = d.FinalAmount
	p.Currency = d.Currency
}

// Draft rebuilds the quote stored on the purchase.
func (p *Purchase) Draft() *BookingDraft {
	return &BookingDraft{
		ItemKind:    p.ItemKind,
		ItemID:      p.ItemID,
		ItemTitle:   p.ItemTitle,
		SeatType:    p.SeatType,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		Subtotal:    p.FinalAmount,
		BookingFee:  decimal.Zero,
		GST:         decimal.Zero,
		FinalAmount: p.FinalAmount,
		Currency:    p.Currency,
	}
}

// SessionEntry is one key of a client's resumable session.
type SessionEntry struct {
	SessionID string    `gorm:"primaryKey;size:64;not null"`
	Name      string    `gorm:"primaryKey;size:64;not null"` // session key
	Value     string    `gorm:"type:text;not null"`          // JSON encoded
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
