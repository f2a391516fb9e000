package mocks

import (
	"context"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockSessionService is a mock implementation of service.SessionService
type MockSessionService struct {
	mock.Mock
}

var _ service.SessionService = (*MockSessionService)(nil)

func (m *MockSessionService) PendingOrderID(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) PendingBookingID(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) SetPendingOrder(ctx context.Context, sessionID, orderID, bookingID string) error {
	args := m.Called(ctx, sessionID, orderID, bookingID)
	return args.Error(0)
}

func (m *MockSessionService) ClearPendingOrder(ctx context.Context, sessionID, orderID string) error {
	args := m.Called(ctx, sessionID, orderID)
	return args.Error(0)
}

func (m *MockSessionService) Profile(ctx context.Context, sessionID string) (*model.Profile, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockSessionService) SetProfile(ctx context.Context, sessionID string, profile *model.Profile) error {
	args := m.Called(ctx, sessionID, profile)
	return args.Error(0)
}

func (m *MockSessionService) ClearProfile(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionService) Bookmarks(ctx context.Context, sessionID string) ([]model.Bookmark, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bookmark), args.Error(1)
}

func (m *MockSessionService) AddBookmark(ctx context.Context, sessionID string, bookmark model.Bookmark) ([]model.Bookmark, error) {
	args := m.Called(ctx, sessionID, bookmark)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bookmark), args.Error(1)
}

func (m *MockSessionService) RemoveBookmark(ctx context.Context, sessionID string, bookmark model.Bookmark) ([]model.Bookmark, error) {
	args := m.Called(ctx, sessionID, bookmark)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bookmark), args.Error(1)
}

func (m *MockSessionService) ClearBookmarks(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionService) CountryCode(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) SetCountryCode(ctx context.Context, sessionID, code string) error {
	args := m.Called(ctx, sessionID, code)
	return args.Error(0)
}

func (m *MockSessionService) GuessCountryCode(ctx context.Context, sessionID, hint string) (string, error) {
	args := m.Called(ctx, sessionID, hint)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
