package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type GatewayKind string

const (
	GatewayCashfree GatewayKind = "cashfree"
	GatewayCCAvenue GatewayKind = "ccavenue"
	GatewayRazorpay GatewayKind = "razorpay"
)

var ErrNoGatewayOrder = errors.New("order response carries no gateway order")

type CashfreeOrder struct {
	PaymentSessionID string `json:"payment_session_id"`
	OrderID          string `json:"order_id"`
}

type CCAvenueOrder struct {
	EncRequest string `json:"enc_request"`
	AccessCode string `json:"access_code"`
	GatewayURL string `json:"gateway_url,omitempty"`
}

type RazorpayOrder struct {
	OrderID  string `json:"order_id"`
	KeyID    string `json:"key_id,omitempty"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
}

// GatewayOrder is a tagged union: Kind names the one payload that is set.
type GatewayOrder struct {
	Kind     GatewayKind    `json:"kind"`
	Cashfree *CashfreeOrder `json:"cashfree,omitempty"`
	CCAvenue *CCAvenueOrder `json:"ccavenue,omitempty"`
	Razorpay *RazorpayOrder `json:"razorpay,omitempty"`
}

func (g *GatewayOrder) Validate() error {
	if g == nil {
		return ErrNoGatewayOrder
	}
	var ok bool
	switch g.Kind {
	case GatewayCashfree:
		ok = g.Cashfree != nil && g.Cashfree.PaymentSessionID != ""
	case GatewayCCAvenue:
		ok = g.CCAvenue != nil && g.CCAvenue.EncRequest != "" && g.CCAvenue.AccessCode != ""
	case GatewayRazorpay:
		ok = g.Razorpay != nil && g.Razorpay.OrderID != ""
	case "":
		return ErrNoGatewayOrder
	default:
		return fmt.Errorf("unsupported payment gateway %q", g.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: incomplete %s payload", ErrNoGatewayOrder, g.Kind)
	}
	return nil
}

// PaymentOrder is what the backend hands back from an order-creation call.
// It is consumed by exactly one gateway launch.
type PaymentOrder struct {
	OrderID   string          `json:"order_id"`
	BookingID string          `json:"booking_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Gateway   GatewayOrder    `json:"gateway"`
}
