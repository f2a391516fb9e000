package mocks

import (
	"context"
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockMoviemartClient is a mock implementation of client.MoviemartClient
type MockMoviemartClient struct {
	mock.Mock
}

var _ client.MoviemartClient = (*MockMoviemartClient)(nil)

func (m *MockMoviemartClient) GetEvent(ctx context.Context, eventID string) (*model.PurchasableItem, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchasableItem), args.Error(1)
}

func (m *MockMoviemartClient) GetVideo(ctx context.Context, videoID string) (*model.PurchasableItem, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchasableItem), args.Error(1)
}

func (m *MockMoviemartClient) CreateEventOrder(ctx context.Context, req *client.EventOrderRequest) (*model.PaymentOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentOrder), args.Error(1)
}

func (m *MockMoviemartClient) CreateVideoOrder(ctx context.Context, req *client.VideoOrderRequest) (*model.PaymentOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentOrder), args.Error(1)
}

func (m *MockMoviemartClient) VerifyPayment(ctx context.Context, req *client.VerifyPaymentRequest) (model.VerificationStatus, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.VerificationStatus), args.Error(1)
}

func (m *MockMoviemartClient) GetETicket(ctx context.Context, orderID string) (*model.ETicket, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ETicket), args.Error(1)
}

func (m *MockMoviemartClient) GetPlaybackGrant(ctx context.Context, orderID string) (*model.PlaybackGrant, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaybackGrant), args.Error(1)
}
