package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/model"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const fallbackErrorMessage = "Something went wrong. Please try again."

// BackendError is a non-success answer from the MovieMart API.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("moviemart api error %d: %s", e.StatusCode, e.Message)
}

// UserMessage is safe to show to the end user.
func (e *BackendError) UserMessage() string {
	if e.Message == "" {
		return fallbackErrorMessage
	}
	return e.Message
}

type EventOrderRequest struct {
	EventID     string
	SeatType    string
	Quantity    int32
	Amount      decimal.Decimal
	Contact     model.Contact
	CountryCode string
}

type VideoOrderRequest struct {
	VideoID string
	Amount  decimal.Decimal
	Contact model.Contact
}

type VerifyPaymentRequest struct {
	ItemKind model.ItemKind
	OrderID  string
	Proof    model.PaymentProof
}

type MoviemartClient interface {
	GetEvent(ctx context.Context, eventID string) (*model.PurchasableItem, error)
	GetVideo(ctx context.Context, videoID string) (*model.PurchasableItem, error)
	CreateEventOrder(ctx context.Context, req *EventOrderRequest) (*model.PaymentOrder, error)
	CreateVideoOrder(ctx context.Context, req *VideoOrderRequest) (*model.PaymentOrder, error)
	VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (model.VerificationStatus, error)
	GetETicket(ctx context.Context, orderID string) (*model.ETicket, error)
	GetPlaybackGrant(ctx context.Context, orderID string) (*model.PlaybackGrant, error)
}

type moviemartClientImpl struct {
	httpClient *http.Client
	baseApiURL string
}

func NewMoviemartClient(cfg *config.Backend) MoviemartClient {
	return &moviemartClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseApiURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

type accessTokenKey struct{}

// WithAccessToken forwards the caller's bearer token to the backend.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, accessTokenKey{}, token)
}

func (c *moviemartClientImpl) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseApiURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := ctx.Value(accessTokenKey{}).(string); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	// the backend signals failure either with a status code or with success=false
	success := gjson.GetBytes(respBody, "success")
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (success.Exists() && !success.Bool()) {
		return nil, &BackendError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(respBody, "message").String(),
		}
	}

	return respBody, nil
}

// payload returns the "data" envelope when present, the whole body otherwise.
func payload(body []byte) gjson.Result {
	if data := gjson.GetBytes(body, "data"); data.Exists() && data.IsObject() {
		return data
	}
	return gjson.ParseBytes(body)
}

type seatTypeResult struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type itemResult struct {
	ID        string           `json:"_id"`
	AltID     string           `json:"id"`
	Title     string           `json:"title"`
	Price     decimal.Decimal  `json:"price"`
	Currency  string           `json:"currency"`
	IsFree    bool             `json:"isFree"`
	SeatTypes []seatTypeResult `json:"seatTypes"`
}

func (r *itemResult) toModel(kind model.ItemKind) *model.PurchasableItem {
	id := r.ID
	if id == "" {
		id = r.AltID
	}
	currency := r.Currency
	if currency == "" {
		currency = "INR"
	}
	item := &model.PurchasableItem{
		Kind:     kind,
		ID:       id,
		Title:    r.Title,
		Price:    r.Price,
		Currency: currency,
		Free:     r.IsFree,
	}
	for _, st := range r.SeatTypes {
		item.SeatTypes = append(item.SeatTypes, model.SeatType{Name: st.Name, Price: st.Price})
	}
	return item
}

func (c *moviemartClientImpl) getItem(ctx context.Context, kind model.ItemKind, path string) (*model.PurchasableItem, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result itemResult
	if err := json.Unmarshal([]byte(payload(body).Raw), &result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}

	return result.toModel(kind), nil
}

func (c *moviemartClientImpl) GetEvent(ctx context.Context, eventID string) (*model.PurchasableItem, error) {
	return c.getItem(ctx, model.ItemKindEvent, "/events/"+url.PathEscape(eventID))
}

func (c *moviemartClientImpl) GetVideo(ctx context.Context, videoID string) (*model.PurchasableItem, error) {
	return c.getItem(ctx, model.ItemKindVideo, "/videos/"+url.PathEscape(videoID))
}

func (c *moviemartClientImpl) CreateEventOrder(ctx context.Context, req *EventOrderRequest) (*model.PaymentOrder, error) {
	body, err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(req.EventID)+"/book", map[string]any{
		"seatType":    req.SeatType,
		"quantity":    req.Quantity,
		"totalAmount": req.Amount.StringFixed(2),
		"name":        req.Contact.Name,
		"email":       req.Contact.Email,
		"phone":       req.Contact.Phone,
		"countryCode": req.CountryCode,
	})
	if err != nil {
		return nil, fmt.Errorf("moviemart api create event order: %w", err)
	}

	data := payload(body)
	order := &model.PaymentOrder{
		OrderID:   data.Get("orderId").String(),
		BookingID: data.Get("bookingId").String(),
		Amount:    req.Amount,
	}

	// the gateway is whatever the backend chose; we only look at what it sent
	gateway := model.GatewayKind(data.Get("paymentGateway").String())
	cashfree := data.Get("cashfreeOrder")
	ccavenue := data.Get("ccavenueOrder")
	switch {
	case gateway == model.GatewayCCAvenue && ccavenue.Exists():
		order.Gateway = ccavenueOrder(ccavenue)
	case cashfree.Exists():
		order.Gateway = cashfreeOrder(cashfree)
	case ccavenue.Exists():
		order.Gateway = ccavenueOrder(ccavenue)
	default:
		return nil, model.ErrNoGatewayOrder
	}

	if order.OrderID == "" {
		switch order.Gateway.Kind {
		case model.GatewayCashfree:
			order.OrderID = order.Gateway.Cashfree.OrderID
		case model.GatewayCCAvenue:
			order.OrderID = ccavenue.Get("orderId").String()
		}
	}
	if order.OrderID == "" {
		return nil, errors.New("order response carries no order id")
	}

	return order, nil
}

func cashfreeOrder(res gjson.Result) model.GatewayOrder {
	return model.GatewayOrder{
		Kind: model.GatewayCashfree,
		Cashfree: &model.CashfreeOrder{
			PaymentSessionID: res.Get("payment_session_id").String(),
			OrderID:          res.Get("order_id").String(),
		},
	}
}

func ccavenueOrder(res gjson.Result) model.GatewayOrder {
	return model.GatewayOrder{
		Kind: model.GatewayCCAvenue,
		CCAvenue: &model.CCAvenueOrder{
			EncRequest: res.Get("encRequest").String(),
			AccessCode: res.Get("access_code").String(),
			GatewayURL: res.Get("gatewayUrl").String(),
		},
	}
}

func (c *moviemartClientImpl) CreateVideoOrder(ctx context.Context, req *VideoOrderRequest) (*model.PaymentOrder, error) {
	body, err := c.do(ctx, http.MethodPost, "/videos/"+url.PathEscape(req.VideoID)+"/purchase", map[string]any{
		"amount": req.Amount.StringFixed(2),
		"name":   req.Contact.Name,
		"email":  req.Contact.Email,
		"phone":  req.Contact.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("moviemart api create video order: %w", err)
	}

	data := payload(body)
	orderID := data.Get("orderId").String()
	if orderID == "" {
		orderID = data.Get("order.id").String()
	}
	if orderID == "" {
		return nil, model.ErrNoGatewayOrder
	}

	amount := data.Get("amount").Int()
	if amount == 0 {
		amount = req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	}
	currency := data.Get("currency").String()
	if currency == "" {
		currency = "INR"
	}

	return &model.PaymentOrder{
		OrderID: orderID,
		Amount:  req.Amount,
		Gateway: model.GatewayOrder{
			Kind: model.GatewayRazorpay,
			Razorpay: &model.RazorpayOrder{
				OrderID:  orderID,
				KeyID:    data.Get("keyId").String(),
				Amount:   amount,
				Currency: currency,
			},
		},
	}, nil
}

func (c *moviemartClientImpl) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (model.VerificationStatus, error) {
	body, err := c.do(ctx, http.MethodPost, "/payments/verify", map[string]any{
		"orderId":   req.OrderID,
		"itemType":  req.ItemKind,
		"paymentId": req.Proof.GatewayPaymentID,
		"signature": req.Proof.Signature,
	})
	if err != nil {
		return "", fmt.Errorf("moviemart api verify payment: %w", err)
	}

	return parseVerificationStatus(payload(body).Get("status").String()), nil
}

func parseVerificationStatus(raw string) model.VerificationStatus {
	switch strings.ToLower(raw) {
	case "completed", "success", "paid":
		return model.VerificationCompleted
	case "pending", "processing", "active":
		return model.VerificationPending
	default:
		// absent or unknown is treated as failed
		return model.VerificationFailed
	}
}

func (c *moviemartClientImpl) GetETicket(ctx context.Context, orderID string) (*model.ETicket, error) {
	body, err := c.do(ctx, http.MethodGet, "/bookings/order/"+url.PathEscape(orderID)+"/ticket", nil)
	if err != nil {
		return nil, fmt.Errorf("moviemart api get e-ticket: %w", err)
	}

	data := payload(body)
	return &model.ETicket{
		OrderID:       orderID,
		BookingID:     data.Get("bookingId").String(),
		ReferenceCode: data.Get("referenceCode").String(),
		QRCodeURL:     data.Get("qrCodeUrl").String(),
		TicketCount:   int32(data.Get("ticketCount").Int()),
		ItemTitle:     data.Get("eventTitle").String(),
		SeatType:      data.Get("seatType").String(),
	}, nil
}

func (c *moviemartClientImpl) GetPlaybackGrant(ctx context.Context, orderID string) (*model.PlaybackGrant, error) {
	body, err := c.do(ctx, http.MethodGet, "/videos/purchases/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("moviemart api get playback grant: %w", err)
	}

	data := payload(body)
	return &model.PlaybackGrant{
		OrderID:   orderID,
		VideoID:   data.Get("videoId").String(),
		Title:     data.Get("title").String(),
		StreamURL: data.Get("streamUrl").String(),
	}, nil
}
