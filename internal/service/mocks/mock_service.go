package mocks

import (
	"context"
	"moviemart-checkout/internal/dto"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockCheckoutService is a mock implementation of service.CheckoutService
type MockCheckoutService struct {
	mock.Mock
}

var _ service.CheckoutService = (*MockCheckoutService)(nil)

func (m *MockCheckoutService) GetItem(ctx context.Context, kind model.ItemKind, id string) (*model.PurchasableItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchasableItem), args.Error(1)
}

func (m *MockCheckoutService) Quote(ctx context.Context, req *dto.QuoteRequest) (*model.BookingDraft, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BookingDraft), args.Error(1)
}

func (m *MockCheckoutService) StartFlow(ctx context.Context, sessionID string, req *dto.StartFlowRequest) (*model.Purchase, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockCheckoutService) GetFlow(ctx context.Context, sessionID, flowID string) (*model.Purchase, error) {
	args := m.Called(ctx, sessionID, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockCheckoutService) UpdateDraft(ctx context.Context, sessionID, flowID string, req *dto.UpdateDraftRequest) (*model.Purchase, error) {
	args := m.Called(ctx, sessionID, flowID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockCheckoutService) Pay(ctx context.Context, sessionID, flowID string, req *dto.PayRequest) (*dto.PayResponse, error) {
	args := m.Called(ctx, sessionID, flowID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PayResponse), args.Error(1)
}

func (m *MockCheckoutService) HandleGatewayResult(ctx context.Context, sessionID, flowID string, cb *dto.GatewayCallback) (*dto.FlowResponse, error) {
	args := m.Called(ctx, sessionID, flowID, cb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FlowResponse), args.Error(1)
}

func (m *MockCheckoutService) Recheck(ctx context.Context, sessionID, flowID string) (*dto.FlowResponse, error) {
	args := m.Called(ctx, sessionID, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FlowResponse), args.Error(1)
}

func (m *MockCheckoutService) Reset(ctx context.Context, sessionID, flowID string) (*model.Purchase, error) {
	args := m.Called(ctx, sessionID, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockCheckoutService) Result(ctx context.Context, sessionID, flowID string) (*model.PurchaseResult, error) {
	args := m.Called(ctx, sessionID, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseResult), args.Error(1)
}

func (m *MockCheckoutService) Resume(ctx context.Context, sessionID, orderID string) (*dto.FlowResponse, error) {
	args := m.Called(ctx, sessionID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FlowResponse), args.Error(1)
}

func (m *MockCheckoutService) CCAvenueForm(ctx context.Context, sessionID, flowID string) (*service.CCAvenueForm, error) {
	args := m.Called(ctx, sessionID, flowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CCAvenueForm), args.Error(1)
}
