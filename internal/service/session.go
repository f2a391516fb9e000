package service

import (
	"context"
	"encoding/json"
	"fmt"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/repository"
	"strings"
	"time"
)

const (
	keyPendingOrderID   = "pending_order_id"
	keyPendingBookingID = "pending_booking_id"
	keyProfile          = "user_profile"
	keyBookmarks        = "bookmarks"
	keyCountryCode      = "country_code"

	defaultCountryCode = "IN"
)

// SessionService is the typed face of a client's resumable session. Every
// entry is a best-effort cache with a TTL and no schema versioning.
type SessionService interface {
	PendingOrderID(ctx context.Context, sessionID string) (string, error)
	PendingBookingID(ctx context.Context, sessionID string) (string, error)
	SetPendingOrder(ctx context.Context, sessionID, orderID, bookingID string) error
	// ClearPendingOrder forgets the pending order only while it is still orderID.
	ClearPendingOrder(ctx context.Context, sessionID, orderID string) error

	Profile(ctx context.Context, sessionID string) (*model.Profile, error)
	SetProfile(ctx context.Context, sessionID string, profile *model.Profile) error
	ClearProfile(ctx context.Context, sessionID string) error

	Bookmarks(ctx context.Context, sessionID string) ([]model.Bookmark, error)
	AddBookmark(ctx context.Context, sessionID string, bookmark model.Bookmark) ([]model.Bookmark, error)
	RemoveBookmark(ctx context.Context, sessionID string, bookmark model.Bookmark) ([]model.Bookmark, error)
	ClearBookmarks(ctx context.Context, sessionID string) error

	CountryCode(ctx context.Context, sessionID string) (string, error)
	SetCountryCode(ctx context.Context, sessionID, code string) error
	GuessCountryCode(ctx context.Context, sessionID, hint string) (string, error)

	Clear(ctx context.Context, sessionID string) error
}

type sessionServiceImpl struct {
	store repository.SessionStore
	ttl   time.Duration
}

func NewSessionService(store repository.SessionStore, ttl time.Duration) SessionService {
	return &sessionServiceImpl{
		store: store,
		ttl:   ttl,
	}
}

func (s *sessionServiceImpl) getJSON(ctx context.Context, sessionID, key string, dst any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, sessionID, key)
	if err != nil {
		return false, fmt.Errorf("get session %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		// a corrupt cache entry is dropped, not fatal
		_ = s.store.Delete(ctx, sessionID, key)
		return false, nil
	}
	return true, nil
}

func (s *sessionServiceImpl) setJSON(ctx context.Context, sessionID, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}
	if err := s.store.Set(ctx, sessionID, key, string(b), s.ttl); err != nil {
		return fmt.Errorf("set session %s: %w", key, err)
	}
	return nil
}

func (s *sessionServiceImpl) getString(ctx context.Context, sessionID, key string) (string, error) {
	var v string
	if _, err := s.getJSON(ctx, sessionID, key, &v); err != nil {
		return "", err
	}
	return v, nil
}

func (s *sessionServiceImpl) PendingOrderID(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, sessionID, keyPendingOrderID)
}

func (s *sessionServiceImpl) PendingBookingID(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, sessionID, keyPendingBookingID)
}

func (s *sessionServiceImpl) SetPendingOrder(ctx context.Context, sessionID, orderID, bookingID string) error {
	if err := s.setJSON(ctx, sessionID, keyPendingOrderID, orderID); err != nil {
		return err
	}
	if bookingID == "" {
		return s.store.Delete(ctx, sessionID, keyPendingBookingID)
	}
	return s.setJSON(ctx, sessionID, keyPendingBookingID, bookingID)
}

func (s *sessionServiceImpl) ClearPendingOrder(ctx context.Context, sessionID, orderID string) error {
	pending, err := s.PendingOrderID(ctx, sessionID)
	if err != nil {
		return err
	}
	if pending == "" || pending != orderID {
		return nil
	}
	return s.store.Delete(ctx, sessionID, keyPendingOrderID, keyPendingBookingID)
}

func (s *sessionServiceImpl) Profile(ctx context.Context, sessionID string) (*model.Profile, error) {
	var profile model.Profile
	ok, err := s.getJSON(ctx, sessionID, keyProfile, &profile)
	if err != nil || !ok {
		return nil, err
	}
	return &profile, nil
}

func (s *sessionServiceImpl) SetProfile(ctx context.Context, sessionID string, profile *model.Profile) error {
	return s.setJSON(ctx, sessionID, keyProfile, profile)
}

func (s *sessionServiceImpl) ClearProfile(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID, keyProfile)
}

func (s *sessionServiceImpl) Bookmarks(ctx context.Context, sessionID string) ([]model.Bookmark, error) {
	bookmarks := []model.Bookmark{}
	if _, err := s.getJSON(ctx, sessionID, keyBookmarks, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (s *sessionServiceImpl) AddBookmark(ctx context.Context, sessionID string, bookmark model.Bookmark) ([]model.Bookmark, error) {
	if !bookmark.Kind.Valid() || bookmark.ID == "" {
		return nil, ErrInvalidItemKind
	}
	bookmarks, err := s.Bookmarks(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, b := range bookmarks {
		if b == bookmark {
			return bookmarks, nil
		}
	}
	bookmarks = append(bookmarks, bookmark)
	if err := s.setJSON(ctx, sessionID, keyBookmarks, bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (s *sessionServiceImpl) RemoveBookmark(ctx context.Context, sessionID string, bookmark model.Bookmark) ([]model.Bookmark, error) {
	bookmarks, err := s.Bookmarks(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kept := bookmarks[:0]
	for _, b := range bookmarks {
		if b != bookmark {
			kept = append(kept, b)
		}
	}
	if err := s.setJSON(ctx, sessionID, keyBookmarks, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *sessionServiceImpl) ClearBookmarks(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID, keyBookmarks)
}

func (s *sessionServiceImpl) CountryCode(ctx context.Context, sessionID string) (string, error) {
	return s.getString(ctx, sessionID, keyCountryCode)
}

func (s *sessionServiceImpl) SetCountryCode(ctx context.Context, sessionID, code string) error {
	code = normalizeCountryCode(code)
	if code == "" {
		return &ValidationError{Fields: map[string]string{"country_code": "Please use a two-letter country code"}}
	}
	return s.setJSON(ctx, sessionID, keyCountryCode, code)
}

// GuessCountryCode returns the stored code, else the hint (an edge
// geolocation header), else the default; the guess is stored.
func (s *sessionServiceImpl) GuessCountryCode(ctx context.Context, sessionID, hint string) (string, error) {
	code, err := s.CountryCode(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if code != "" {
		return code, nil
	}

	code = normalizeCountryCode(hint)
	if code == "" {
		code = defaultCountryCode
	}
	if err := s.setJSON(ctx, sessionID, keyCountryCode, code); err != nil {
		return "", err
	}
	return code, nil
}

func (s *sessionServiceImpl) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID,
		keyPendingOrderID,
		keyPendingBookingID,
		keyProfile,
		keyBookmarks,
		keyCountryCode,
	)
}

func normalizeCountryCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 || code == "XX" {
		return ""
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return code
}
