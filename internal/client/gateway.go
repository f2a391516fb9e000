package client

import (
	"fmt"
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/dto"
	"moviemart-checkout/internal/model"
	"strings"

	"github.com/razorpay/razorpay-go/utils"
)

type SignalOutcome string

const (
	SignalCompleted SignalOutcome = "completed"
	SignalDismissed SignalOutcome = "dismissed"
	SignalRedirect  SignalOutcome = "redirect"
	SignalError     SignalOutcome = "error"
)

// GatewaySignal is the normalized result of a gateway UI interaction.
type GatewaySignal struct {
	Outcome SignalOutcome
	Message string
	Proof   model.PaymentProof
}

// GatewayAdapter wraps one payment provider's browser-side checkout.
type GatewayAdapter interface {
	Kind() model.GatewayKind
	// Launch builds what the browser needs to open the gateway UI.
	Launch(p *model.Purchase, order *model.GatewayOrder) (*dto.LaunchDescriptor, error)
	// Interpret maps the callback relayed by the browser to a signal.
	Interpret(p *model.Purchase, order *model.GatewayOrder, cb *dto.GatewayCallback) GatewaySignal
}

type Gateways struct {
	adapters map[model.GatewayKind]GatewayAdapter
}

func NewGateways(baseURL string, cashfreeCfg *config.Cashfree, razorpayCfg *config.Razorpay, ccavenueCfg *config.CCAvenue) *Gateways {
	return &Gateways{
		adapters: map[model.GatewayKind]GatewayAdapter{
			model.GatewayCashfree: &cashfreeAdapter{cfg: cashfreeCfg},
			model.GatewayRazorpay: &razorpayAdapter{cfg: razorpayCfg},
			model.GatewayCCAvenue: &ccavenueAdapter{cfg: ccavenueCfg, baseURL: strings.TrimRight(baseURL, "/")},
		},
	}
}

// Select returns the adapter for the gateway the backend picked.
func (g *Gateways) Select(order *model.GatewayOrder) (GatewayAdapter, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	adapter, ok := g.adapters[order.Kind]
	if !ok {
		return nil, fmt.Errorf("no adapter for payment gateway %q", order.Kind)
	}
	return adapter, nil
}

func errorSignal(e *dto.GatewayError) GatewaySignal {
	msg := e.Message
	if msg == "" {
		msg = "Payment failed at the gateway. Please try again."
	}
	return GatewaySignal{Outcome: SignalError, Message: msg}
}

// --- cashfree ---

type cashfreeAdapter struct {
	cfg *config.Cashfree
}

func (a *cashfreeAdapter) Kind() model.GatewayKind { return model.GatewayCashfree }

func (a *cashfreeAdapter) Launch(p *model.Purchase, order *model.GatewayOrder) (*dto.LaunchDescriptor, error) {
	return &dto.LaunchDescriptor{
		Gateway:   model.GatewayCashfree,
		Mode:      "modal",
		ScriptURL: a.cfg.ScriptURL,
		Options: map[string]any{
			"mode":             a.cfg.Mode,
			"paymentSessionId": order.Cashfree.PaymentSessionID,
			"redirectTarget":   "_modal",
		},
	}, nil
}

func (a *cashfreeAdapter) Interpret(p *model.Purchase, order *model.GatewayOrder, cb *dto.GatewayCallback) GatewaySignal {
	switch {
	case cb.Error != nil:
		return errorSignal(cb.Error)
	case cb.Redirect:
		return GatewaySignal{Outcome: SignalRedirect}
	case cb.PaymentDetails != nil:
		proof := model.PaymentProof{GatewayOrderID: order.Cashfree.OrderID}
		if id, ok := cb.PaymentDetails["cf_payment_id"]; ok {
			proof.GatewayPaymentID = fmt.Sprint(id)
		}
		return GatewaySignal{Outcome: SignalCompleted, Proof: proof}
	default:
		return GatewaySignal{Outcome: SignalDismissed}
	}
}

// --- razorpay ---

type razorpayAdapter struct {
	cfg *config.Razorpay
}

func (a *razorpayAdapter) Kind() model.GatewayKind { return model.GatewayRazorpay }

func (a *razorpayAdapter) Launch(p *model.Purchase, order *model.GatewayOrder) (*dto.LaunchDescriptor, error) {
	key := order.Razorpay.KeyID
	if key == "" {
		key = a.cfg.KeyID
	}
	if key == "" {
		return nil, fmt.Errorf("razorpay key id is not configured")
	}

	return &dto.LaunchDescriptor{
		Gateway:   model.GatewayRazorpay,
		Mode:      "checkout",
		ScriptURL: a.cfg.ScriptURL,
		Options: map[string]any{
			"key":         key,
			"amount":      order.Razorpay.Amount,
			"currency":    order.Razorpay.Currency,
			"order_id":    order.Razorpay.OrderID,
			"name":        a.cfg.StoreName,
			"description": p.ItemTitle,
			"prefill": map[string]string{
				"name":    p.ContactName,
				"email":   p.ContactEmail,
				"contact": p.ContactPhone,
			},
			"theme": map[string]string{
				"color": a.cfg.ThemeColor,
			},
		},
	}, nil
}

func (a *razorpayAdapter) Interpret(p *model.Purchase, order *model.GatewayOrder, cb *dto.GatewayCallback) GatewaySignal {
	if cb.Error != nil {
		return errorSignal(cb.Error)
	}
	if cb.Dismissed || cb.RazorpayPaymentID == "" {
		return GatewaySignal{Outcome: SignalDismissed}
	}
	if cb.RazorpayOrderID != "" && cb.RazorpayOrderID != order.Razorpay.OrderID {
		return GatewaySignal{Outcome: SignalError, Message: "Payment does not belong to this order."}
	}

	if a.cfg.KeySecret != "" {
		params := map[string]interface{}{
			"razorpay_order_id":   order.Razorpay.OrderID,
			"razorpay_payment_id": cb.RazorpayPaymentID,
		}
		if !utils.VerifyPaymentSignature(params, cb.RazorpaySignature, a.cfg.KeySecret) {
			return GatewaySignal{Outcome: SignalError, Message: "Payment signature mismatch."}
		}
	}

	return GatewaySignal{
		Outcome: SignalCompleted,
		Proof: model.PaymentProof{
			GatewayPaymentID: cb.RazorpayPaymentID,
			GatewayOrderID:   order.Razorpay.OrderID,
			Signature:        cb.RazorpaySignature,
		},
	}
}

// --- ccavenue ---

// ccavenueAdapter is a full-page form redirect; completion arrives on the
// success route, never through the callback.
type ccavenueAdapter struct {
	cfg     *config.CCAvenue
	baseURL string
}

func (a *ccavenueAdapter) Kind() model.GatewayKind { return model.GatewayCCAvenue }

func (a *ccavenueAdapter) Launch(p *model.Purchase, order *model.GatewayOrder) (*dto.LaunchDescriptor, error) {
	return &dto.LaunchDescriptor{
		Gateway:     model.GatewayCCAvenue,
		Mode:        "redirect",
		RedirectURL: fmt.Sprintf("%s/api/checkout/ccavenue/%s", a.baseURL, p.ID),
	}, nil
}

func (a *ccavenueAdapter) Interpret(p *model.Purchase, order *model.GatewayOrder, cb *dto.GatewayCallback) GatewaySignal {
	switch {
	case cb.Error != nil:
		return errorSignal(cb.Error)
	case cb.Dismissed:
		return GatewaySignal{Outcome: SignalDismissed}
	default:
		return GatewaySignal{Outcome: SignalRedirect}
	}
}

// FormAction is the gateway URL the auto-submitting form posts to.
func (g *Gateways) FormAction(order *model.CCAvenueOrder) string {
	if order.GatewayURL != "" {
		return order.GatewayURL
	}
	if a, ok := g.adapters[model.GatewayCCAvenue].(*ccavenueAdapter); ok {
		return a.cfg.GatewayURL
	}
	return ""
}
