package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/dto"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/repository"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	successPath = "/purchase/success"

	msgPaymentSuccess   = "Payment successful!"
	msgPaymentCancelled = "Payment cancelled."
	msgPaymentFailed    = "Payment failed. Please try again."
	msgContinueGateway  = "Continue on the payment page."
	msgProcessing       = "Your payment is being processed. You will receive a confirmation email shortly."
)

type CheckoutService interface {
	GetItem(ctx context.Context, kind model.ItemKind, id string) (*model.PurchasableItem, error)
	Quote(ctx context.Context, req *dto.QuoteRequest) (*model.BookingDraft, error)
	StartFlow(ctx context.Context, sessionID string, req *dto.StartFlowRequest) (*model.Purchase, error)
	GetFlow(ctx context.Context, sessionID, flowID string) (*model.Purchase, error)
	UpdateDraft(ctx context.Context, sessionID, flowID string, req *dto.UpdateDraftRequest) (*model.Purchase, error)
	Pay(ctx context.Context, sessionID, flowID string, req *dto.PayRequest) (*dto.PayResponse, error)
	HandleGatewayResult(ctx context.Context, sessionID, flowID string, cb *dto.GatewayCallback) (*dto.FlowResponse, error)
	Recheck(ctx context.Context, sessionID, flowID string) (*dto.FlowResponse, error)
	Reset(ctx context.Context, sessionID, flowID string) (*model.Purchase, error)
	Result(ctx context.Context, sessionID, flowID string) (*model.PurchaseResult, error)
	Resume(ctx context.Context, sessionID, orderID string) (*dto.FlowResponse, error)
	CCAvenueForm(ctx context.Context, sessionID, flowID string) (*CCAvenueForm, error)
}

// CCAvenueForm is the auto-submitting POST that hands the user to CCAvenue.
type CCAvenueForm struct {
	Action     string
	EncRequest string
	AccessCode string
}

type checkoutServiceImpl struct {
	backend      client.MoviemartClient
	gateways     *client.Gateways
	purchaseRepo repository.PurchaseRepository
	sessions     SessionService
	contacts     *ContactValidator
	verifier     *Verifier
	presenter    *Presenter
	log          *logrus.Logger
}

func NewCheckoutService(
	backend client.MoviemartClient,
	gateways *client.Gateways,
	purchaseRepo repository.PurchaseRepository,
	sessions SessionService,
	contacts *ContactValidator,
	verifier *Verifier,
	presenter *Presenter,
	log *logrus.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		backend:      backend,
		gateways:     gateways,
		purchaseRepo: purchaseRepo,
		sessions:     sessions,
		contacts:     contacts,
		verifier:     verifier,
		presenter:    presenter,
		log:          log,
	}
}

func (s *checkoutServiceImpl) GetItem(ctx context.Context, kind model.ItemKind, id string) (*model.PurchasableItem, error) {
	switch kind {
	case model.ItemKindEvent:
		return s.backend.GetEvent(ctx, id)
	case model.ItemKindVideo:
		return s.backend.GetVideo(ctx, id)
	default:
		return nil, ErrInvalidItemKind
	}
}

func (s *checkoutServiceImpl) Quote(ctx context.Context, req *dto.QuoteRequest) (*model.BookingDraft, error) {
	item, err := s.GetItem(ctx, req.ItemKind, req.ItemID)
	if err != nil {
		return nil, err
	}
	return Quote(item, req.SeatType, req.Quantity)
}

func (s *checkoutServiceImpl) StartFlow(ctx context.Context, sessionID string, req *dto.StartFlowRequest) (*model.Purchase, error) {
	draft, err := s.Quote(ctx, &req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		State:     model.StateIdle,
	}
	purchase.ApplyDraft(draft)
	if req.Contact != nil {
		purchase.SetContact(*req.Contact)
	}
	if err := transition(purchase, model.StateDraft); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("store purchase: %w", err)
	}

	return purchase, nil
}

func (s *checkoutServiceImpl) GetFlow(ctx context.Context, sessionID, flowID string) (*model.Purchase, error) {
	return s.load(ctx, sessionID, flowID)
}

func (s *checkoutServiceImpl) load(ctx context.Context, sessionID, flowID string) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.Get(ctx, flowID)
	if errors.Is(err, repository.ErrPurchaseNotFound) {
		return nil, ErrFlowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if purchase.SessionID != sessionID {
		return nil, ErrFlowNotFound
	}
	return purchase, nil
}

func (s *checkoutServiceImpl) save(ctx context.Context, purchase *model.Purchase) error {
	// a cancelled request must not lose a state change
	if err := s.purchaseRepo.Save(context.WithoutCancel(ctx), purchase); err != nil {
		return fmt.Errorf("store purchase: %w", err)
	}
	return nil
}

func (s *checkoutServiceImpl) UpdateDraft(ctx context.Context, sessionID, flowID string, req *dto.UpdateDraftRequest) (*model.Purchase, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	if !canTransition(purchase.State, model.StateDraft) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, purchase.State, model.StateDraft)
	}

	seatType, quantity := purchase.SeatType, purchase.Quantity
	if req.SeatType != nil {
		seatType = *req.SeatType
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	draft, err := s.Quote(ctx, &dto.QuoteRequest{
		ItemKind: purchase.ItemKind,
		ItemID:   purchase.ItemID,
		SeatType: seatType,
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}

	purchase.ApplyDraft(draft)
	clearOrder(purchase)
	purchase.LastError = ""
	if err := transition(purchase, model.StateDraft); err != nil {
		return nil, err
	}
	if err := s.save(ctx, purchase); err != nil {
		return nil, err
	}

	return purchase, nil
}

func (s *checkoutServiceImpl) Pay(ctx context.Context, sessionID, flowID string, req *dto.PayRequest) (*dto.PayResponse, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	// only a draft may pay: every attempt gets a fresh order
	if purchase.State != model.StateDraft {
		return nil, fmt.Errorf("%w: pay from %s", ErrInvalidTransition, purchase.State)
	}

	contact := req.Contact
	if err := s.contacts.Validate(&contact); err != nil {
		return nil, err
	}
	purchase.SetContact(contact)

	order, err := s.createOrder(ctx, purchase, req.CountryCode)
	if err != nil {
		s.abortPay(ctx, purchase, err)
		return nil, err
	}
	if err := transition(purchase, model.StateOrderCreated); err != nil {
		return nil, err
	}

	adapter, err := s.gateways.Select(&order.Gateway)
	if err != nil {
		s.abortPay(ctx, purchase, err)
		return nil, err
	}

	launch, err := adapter.Launch(purchase, &order.Gateway)
	if err != nil {
		s.abortPay(ctx, purchase, err)
		return nil, fmt.Errorf("launch %s: %w", adapter.Kind(), err)
	}

	payload, err := json.Marshal(order.Gateway)
	if err != nil {
		return nil, fmt.Errorf("encode gateway order: %w", err)
	}
	purchase.OrderID = order.OrderID
	purchase.BookingID = order.BookingID
	purchase.Gateway = order.Gateway.Kind
	purchase.GatewayPayload = string(payload)
	purchase.VerifyAttempts = 0
	purchase.LastError = ""
	if err := transition(purchase, model.StateGatewayOpen); err != nil {
		return nil, err
	}
	if err := s.save(ctx, purchase); err != nil {
		return nil, err
	}

	if err := s.sessions.SetPendingOrder(ctx, sessionID, order.OrderID, order.BookingID); err != nil {
		s.log.WithError(err).WithField("order_id", order.OrderID).Warn("remember pending order")
	}

	s.log.WithFields(logrus.Fields{
		"flow_id":  purchase.ID,
		"order_id": order.OrderID,
		"gateway":  order.Gateway.Kind,
		"amount":   purchase.FinalAmount.String(),
	}).Info("payment order created")

	return &dto.PayResponse{
		Flow:   dto.NewFlowView(purchase),
		Launch: launch,
	}, nil
}

func (s *checkoutServiceImpl) createOrder(ctx context.Context, purchase *model.Purchase, countryCode string) (*model.PaymentOrder, error) {
	switch purchase.ItemKind {
	case model.ItemKindEvent:
		if countryCode == "" {
			code, err := s.sessions.CountryCode(ctx, purchase.SessionID)
			if err != nil {
				s.log.WithError(err).Warn("read country code")
			}
			countryCode = code
		}
		return s.backend.CreateEventOrder(ctx, &client.EventOrderRequest{
			EventID:     purchase.ItemID,
			SeatType:    purchase.SeatType,
			Quantity:    purchase.Quantity,
			Amount:      purchase.FinalAmount,
			Contact:     purchase.Contact(),
			CountryCode: countryCode,
		})
	case model.ItemKindVideo:
		return s.backend.CreateVideoOrder(ctx, &client.VideoOrderRequest{
			VideoID: purchase.ItemID,
			Amount:  purchase.FinalAmount,
			Contact: purchase.Contact(),
		})
	default:
		return nil, ErrInvalidItemKind
	}
}

// abortPay leaves the purchase a draft so the user can press pay again.
func (s *checkoutServiceImpl) abortPay(ctx context.Context, purchase *model.Purchase, cause error) {
	if purchase.State == model.StateOrderCreated {
		_ = transition(purchase, model.StateDraft)
	}
	clearOrder(purchase)
	purchase.Processing = false
	purchase.LastError = UserMessage(cause)
	if err := s.save(ctx, purchase); err != nil {
		s.log.WithError(err).WithField("flow_id", purchase.ID).Error("store aborted purchase")
	}
	s.log.WithError(cause).WithField("flow_id", purchase.ID).Warn("payment order creation failed")
}

func (s *checkoutServiceImpl) HandleGatewayResult(ctx context.Context, sessionID, flowID string, cb *dto.GatewayCallback) (*dto.FlowResponse, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	if purchase.State != model.StateGatewayOpen {
		return nil, fmt.Errorf("%w: gateway result in %s", ErrInvalidTransition, purchase.State)
	}

	order, err := decodeGatewayOrder(purchase)
	if err != nil {
		return nil, err
	}
	adapter, err := s.gateways.Select(order)
	if err != nil {
		return nil, err
	}

	signal := adapter.Interpret(purchase, order, cb)
	entry := s.log.WithFields(logrus.Fields{
		"flow_id":  purchase.ID,
		"order_id": purchase.OrderID,
		"outcome":  signal.Outcome,
	})

	switch signal.Outcome {
	case client.SignalRedirect:
		entry.Info("gateway redirecting")
		return &dto.FlowResponse{Flow: dto.NewFlowView(purchase), Message: msgContinueGateway}, nil

	case client.SignalDismissed:
		// the order stays pending on the backend; we simply stop using it
		if err := transition(purchase, model.StateIdle); err != nil {
			return nil, err
		}
		orderID := purchase.OrderID
		clearOrder(purchase)
		if err := s.finish(ctx, purchase, orderID); err != nil {
			return nil, err
		}
		entry.Info("gateway dismissed")
		return &dto.FlowResponse{Flow: dto.NewFlowView(purchase), Message: msgPaymentCancelled}, nil

	case client.SignalError:
		if err := transition(purchase, model.StateFailed); err != nil {
			return nil, err
		}
		purchase.LastError = signal.Message
		if err := s.finish(ctx, purchase, purchase.OrderID); err != nil {
			return nil, err
		}
		entry.WithField("reason", signal.Message).Warn("gateway reported error")
		return &dto.FlowResponse{Flow: dto.NewFlowView(purchase), Message: signal.Message}, nil

	case client.SignalCompleted:
		if err := transition(purchase, model.StateVerifying); err != nil {
			return nil, err
		}
		proof, err := json.Marshal(signal.Proof)
		if err != nil {
			return nil, fmt.Errorf("encode payment proof: %w", err)
		}
		purchase.PaymentProof = string(proof)
		if err := s.save(ctx, purchase); err != nil {
			return nil, err
		}
		entry.Info("gateway completed, verifying")
		return s.verify(ctx, purchase, signal.Proof)
	}

	return nil, fmt.Errorf("unknown gateway outcome %q", signal.Outcome)
}

// finish stores a purchase whose order orderID no longer needs its
// pending-order session entry.
func (s *checkoutServiceImpl) finish(ctx context.Context, purchase *model.Purchase, orderID string) error {
	if err := s.save(ctx, purchase); err != nil {
		return err
	}
	if err := s.sessions.ClearPendingOrder(context.WithoutCancel(ctx), purchase.SessionID, orderID); err != nil {
		s.log.WithError(err).WithField("flow_id", purchase.ID).Warn("clear pending order")
	}
	return nil
}

// verify polls settlement of a purchase in StateVerifying.
func (s *checkoutServiceImpl) verify(ctx context.Context, purchase *model.Purchase, proof model.PaymentProof) (*dto.FlowResponse, error) {
	res, err := s.verifier.Poll(ctx, purchase.ItemKind, purchase.OrderID, proof)
	if res != nil {
		purchase.VerifyAttempts += int32(res.Attempts)
	}
	if err != nil {
		if ctx.Err() != nil {
			// the caller went away; the purchase stays verifying and can be resumed
			_ = s.save(ctx, purchase)
			return nil, ctx.Err()
		}
		s.log.WithError(err).WithField("order_id", purchase.OrderID).Warn("payment verification unavailable")
		return s.markProcessing(ctx, purchase)
	}

	switch {
	case res.Status == model.VerificationCompleted:
		return s.complete(ctx, purchase)
	case res.TimedOut:
		return s.markProcessing(ctx, purchase)
	default:
		if err := transition(purchase, model.StateFailed); err != nil {
			return nil, err
		}
		purchase.LastError = msgPaymentFailed
		if err := s.finish(ctx, purchase, purchase.OrderID); err != nil {
			return nil, err
		}
		return &dto.FlowResponse{Flow: dto.NewFlowView(purchase), Message: msgPaymentFailed}, nil
	}
}

// markProcessing gives up polling and leans on the backend's webhook
// reconciliation plus the confirmation email.
func (s *checkoutServiceImpl) markProcessing(ctx context.Context, purchase *model.Purchase) (*dto.FlowResponse, error) {
	if err := transition(purchase, model.StateProcessing); err != nil {
		return nil, err
	}
	if err := s.save(ctx, purchase); err != nil {
		return nil, err
	}
	return &dto.FlowResponse{
		Flow:        dto.NewFlowView(purchase),
		Message:     msgProcessing,
		RedirectURL: successURL(purchase.OrderID),
	}, nil
}

func (s *checkoutServiceImpl) complete(ctx context.Context, purchase *model.Purchase) (*dto.FlowResponse, error) {
	if err := transition(purchase, model.StateCompleted); err != nil {
		return nil, err
	}
	purchase.LastError = ""

	result, err := s.presenter.Present(ctx, purchase)
	if err != nil {
		// the result can still be fetched later from the result endpoint
		s.log.WithError(err).WithField("order_id", purchase.OrderID).Warn("fetch purchase result")
	}
	if err := s.finish(ctx, purchase, purchase.OrderID); err != nil {
		return nil, err
	}

	s.log.WithField("order_id", purchase.OrderID).Info("purchase completed")
	return &dto.FlowResponse{
		Flow:        dto.NewFlowView(purchase),
		Result:      result,
		Message:     msgPaymentSuccess,
		RedirectURL: successURL(purchase.OrderID),
	}, nil
}

func (s *checkoutServiceImpl) Recheck(ctx context.Context, sessionID, flowID string) (*dto.FlowResponse, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	// an open gateway has not reported completion; only a return from it may verify
	if purchase.State == model.StateGatewayOpen {
		return nil, fmt.Errorf("%w: verify from %s", ErrInvalidTransition, purchase.State)
	}
	return s.reverify(ctx, purchase)
}

func (s *checkoutServiceImpl) reverify(ctx context.Context, purchase *model.Purchase) (*dto.FlowResponse, error) {
	switch purchase.State {
	case model.StateCompleted:
		result, err := s.result(ctx, purchase)
		if err != nil {
			return nil, err
		}
		return &dto.FlowResponse{Flow: dto.NewFlowView(purchase), Result: result, Message: msgPaymentSuccess}, nil
	case model.StateVerifying:
	case model.StateGatewayOpen, model.StateProcessing:
		if err := transition(purchase, model.StateVerifying); err != nil {
			return nil, err
		}
		if err := s.save(ctx, purchase); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: verify from %s", ErrInvalidTransition, purchase.State)
	}
	proof, err := decodePaymentProof(purchase)
	if err != nil {
		return nil, err
	}
	return s.verify(ctx, purchase, proof)
}

func (s *checkoutServiceImpl) Reset(ctx context.Context, sessionID, flowID string) (*model.Purchase, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	if err := transition(purchase, model.StateIdle); err != nil {
		return nil, err
	}
	clearOrder(purchase)
	purchase.LastError = ""
	if err := s.save(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *checkoutServiceImpl) Result(ctx context.Context, sessionID, flowID string) (*model.PurchaseResult, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	return s.result(ctx, purchase)
}

func (s *checkoutServiceImpl) result(ctx context.Context, purchase *model.Purchase) (*model.PurchaseResult, error) {
	if purchase.State != model.StateCompleted {
		return nil, ErrNotCompleted
	}

	fetched := purchase.Result == ""
	result, err := s.presenter.Present(ctx, purchase)
	if err != nil {
		return nil, err
	}
	if fetched {
		if err := s.save(ctx, purchase); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Resume picks up a purchase after a gateway redirect or a page reload. The
// order id comes from the return URL, else from the session.
func (s *checkoutServiceImpl) Resume(ctx context.Context, sessionID, orderID string) (*dto.FlowResponse, error) {
	if orderID == "" && sessionID != "" {
		pending, err := s.sessions.PendingOrderID(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		orderID = pending
	}
	if orderID == "" {
		return nil, ErrNothingToResume
	}

	purchase, err := s.purchaseRepo.FindByOrderID(ctx, orderID)
	if errors.Is(err, repository.ErrPurchaseNotFound) {
		return nil, ErrNothingToResume
	}
	if err != nil {
		return nil, fmt.Errorf("find purchase by order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"flow_id":  purchase.ID,
		"order_id": orderID,
		"state":    purchase.State,
	}).Info("resuming purchase")

	return s.reverify(ctx, purchase)
}

func (s *checkoutServiceImpl) CCAvenueForm(ctx context.Context, sessionID, flowID string) (*CCAvenueForm, error) {
	purchase, err := s.load(ctx, sessionID, flowID)
	if err != nil {
		return nil, err
	}
	if purchase.State != model.StateGatewayOpen || purchase.Gateway != model.GatewayCCAvenue {
		return nil, fmt.Errorf("%w: no ccavenue order open", ErrInvalidTransition)
	}

	order, err := decodeGatewayOrder(purchase)
	if err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	return &CCAvenueForm{
		Action:     s.gateways.FormAction(order.CCAvenue),
		EncRequest: order.CCAvenue.EncRequest,
		AccessCode: order.CCAvenue.AccessCode,
	}, nil
}

func decodeGatewayOrder(purchase *model.Purchase) (*model.GatewayOrder, error) {
	var order model.GatewayOrder
	if err := json.Unmarshal([]byte(purchase.GatewayPayload), &order); err != nil {
		return nil, fmt.Errorf("decode gateway order: %w", err)
	}
	return &order, nil
}

func decodePaymentProof(purchase *model.Purchase) (model.PaymentProof, error) {
	var proof model.PaymentProof
	if purchase.PaymentProof == "" {
		return proof, nil
	}
	if err := json.Unmarshal([]byte(purchase.PaymentProof), &proof); err != nil {
		return proof, fmt.Errorf("decode payment proof: %w", err)
	}
	return proof, nil
}

func successURL(orderID string) string {
	return successPath + "?order_id=" + url.QueryEscape(orderID)
}

// UserMessage turns err into text fit for a toast.
func UserMessage(err error) string {
	var backendErr *client.BackendError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &backendErr):
		return backendErr.UserMessage()
	case errors.As(err, &validationErr):
		return "Please check the highlighted fields."
	case errors.Is(err, model.ErrNoGatewayOrder):
		return "Unable to start payment. Please try again."
	case errors.Is(err, ErrFreeItem),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrUnknownSeatType),
		errors.Is(err, ErrInvalidItemKind):
		return err.Error()
	default:
		return "Something went wrong. Please try again."
	}
}
