package dto

import (
	"moviemart-checkout/internal/model"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	ItemKind model.ItemKind `json:"item_kind"`
	ItemID   string         `json:"item_id"`
	SeatType string         `json:"seat_type"`
	Quantity int32          `json:"quantity"`
}

type StartFlowRequest struct {
	QuoteRequest
	Contact *model.Contact `json:"contact,omitempty"`
}

type UpdateDraftRequest struct {
	SeatType *string `json:"seat_type,omitempty"`
	Quantity *int32  `json:"quantity,omitempty"`
}

type PayRequest struct {
	Contact     model.Contact `json:"contact"`
	CountryCode string        `json:"country_code,omitempty"`
}

// GatewayCallback is what the browser relays after the gateway UI returns.
// Cashfree resolves with error, redirect or paymentDetails; Razorpay calls
// its handler with the payment triple or ondismiss.
type GatewayCallback struct {
	Dismissed      bool           `json:"dismissed,omitempty"`
	Redirect       bool           `json:"redirect,omitempty"`
	Error          *GatewayError  `json:"error,omitempty"`
	PaymentDetails map[string]any `json:"paymentDetails,omitempty"`

	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpayOrderID   string `json:"razorpay_order_id,omitempty"`
	RazorpaySignature string `json:"razorpay_signature,omitempty"`
}

type GatewayError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type FlowView struct {
	ID             string          `json:"id"`
	State          model.FlowState `json:"state"`
	Processing     bool            `json:"processing"`
	ItemKind       model.ItemKind  `json:"item_kind"`
	ItemID         string          `json:"item_id"`
	ItemTitle      string          `json:"item_title"`
	SeatType       string          `json:"seat_type,omitempty"`
	Quantity       int32           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	BookingFee     decimal.Decimal `json:"booking_fee"`
	GST            decimal.Decimal `json:"gst"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	Currency       string          `json:"currency"`
	OrderID        string          `json:"order_id,omitempty"`
	Gateway        string          `json:"gateway,omitempty"`
	VerifyAttempts int32           `json:"verify_attempts"`
	LastError      string          `json:"last_error,omitempty"`
}

func NewFlowView(p *model.Purchase) *FlowView {
	return &FlowView{
		ID:             p.ID,
		State:          p.State,
		Processing:     p.Processing,
		ItemKind:       p.ItemKind,
		ItemID:         p.ItemID,
		ItemTitle:      p.ItemTitle,
		SeatType:       p.SeatType,
		Quantity:       p.Quantity,
		UnitPrice:      p.UnitPrice,
		BookingFee:     decimal.Zero,
		GST:            decimal.Zero,
		FinalAmount:    p.FinalAmount,
		Currency:       p.Currency,
		OrderID:        p.OrderID,
		Gateway:        string(p.Gateway),
		VerifyAttempts: p.VerifyAttempts,
		LastError:      p.LastError,
	}
}

// LaunchDescriptor tells the browser how to open the gateway UI.
type LaunchDescriptor struct {
	Gateway     model.GatewayKind `json:"gateway"`
	Mode        string            `json:"mode"` // modal, checkout, redirect
	ScriptURL   string            `json:"script_url,omitempty"`
	RedirectURL string            `json:"redirect_url,omitempty"`
	Options     map[string]any    `json:"options,omitempty"`
}

type PayResponse struct {
	Flow   *FlowView         `json:"flow"`
	Launch *LaunchDescriptor `json:"launch"`
}

type FlowResponse struct {
	Flow        *FlowView             `json:"flow"`
	Result      *model.PurchaseResult `json:"result,omitempty"`
	Message     string                `json:"message,omitempty"`
	RedirectURL string                `json:"redirect_url,omitempty"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
