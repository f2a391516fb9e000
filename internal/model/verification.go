package model

type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "pending"
	VerificationCompleted VerificationStatus = "completed"
	VerificationFailed    VerificationStatus = "failed"
)

// PaymentProof holds whatever the gateway handed the browser on completion.
type PaymentProof struct {
	GatewayPaymentID string `json:"gateway_payment_id,omitempty"`
	GatewayOrderID   string `json:"gateway_order_id,omitempty"`
	Signature        string `json:"signature,omitempty"`
}
