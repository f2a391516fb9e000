package service

import (
	"context"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T) (SessionService, repository.SessionStore) {
	store := repository.NewGormSessionStore(newTestDB(t))
	return NewSessionService(store, time.Hour), store
}

func TestSessionService_PendingOrder(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPendingOrder(ctx, testSession, "ORD123", "BK1"))

	orderID, err := svc.PendingOrderID(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, "ORD123", orderID)

	bookingID, err := svc.PendingBookingID(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, "BK1", bookingID)

	// a newer order without booking drops the stale booking id
	require.NoError(t, svc.SetPendingOrder(ctx, testSession, "ORD124", ""))
	bookingID, err = svc.PendingBookingID(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, bookingID)

	// clearing a superseded order leaves the newer one in place
	require.NoError(t, svc.ClearPendingOrder(ctx, testSession, "ORD123"))
	orderID, err = svc.PendingOrderID(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, "ORD124", orderID)

	require.NoError(t, svc.ClearPendingOrder(ctx, testSession, "ORD124"))
	orderID, err = svc.PendingOrderID(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, orderID)
}

func TestSessionService_Profile(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	profile, err := svc.Profile(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, profile)

	want := &model.Profile{UserID: "u1", Name: "Priya", Email: "priya@example.com", Phone: "9876543210"}
	require.NoError(t, svc.SetProfile(ctx, testSession, want))

	profile, err = svc.Profile(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, want, profile)

	require.NoError(t, svc.ClearProfile(ctx, testSession))
	profile, err = svc.Profile(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSessionService_CorruptEntryIsDropped(t *testing.T) {
	svc, store := newTestSessionService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, testSession, "user_profile", "{not json", time.Hour))

	profile, err := svc.Profile(ctx, testSession)
	require.NoError(t, err)
	assert.Nil(t, profile)

	_, ok, err := store.Get(ctx, testSession, "user_profile")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionService_Bookmarks(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	event := model.Bookmark{Kind: model.ItemKindEvent, ID: "evt-1"}
	video := model.Bookmark{Kind: model.ItemKindVideo, ID: "vid-1"}

	_, err := svc.AddBookmark(ctx, testSession, event)
	require.NoError(t, err)
	_, err = svc.AddBookmark(ctx, testSession, video)
	require.NoError(t, err)
	bookmarks, err := svc.AddBookmark(ctx, testSession, event)
	require.NoError(t, err)
	assert.Equal(t, []model.Bookmark{event, video}, bookmarks)

	_, err = svc.AddBookmark(ctx, testSession, model.Bookmark{Kind: "podcast", ID: "p1"})
	assert.ErrorIs(t, err, ErrInvalidItemKind)

	bookmarks, err = svc.RemoveBookmark(ctx, testSession, event)
	require.NoError(t, err)
	assert.Equal(t, []model.Bookmark{video}, bookmarks)

	require.NoError(t, svc.ClearBookmarks(ctx, testSession))
	bookmarks, err = svc.Bookmarks(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestSessionService_CountryCode(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	code, err := svc.GuessCountryCode(ctx, testSession, "xx")
	require.NoError(t, err)
	assert.Equal(t, "IN", code)

	// the first guess sticks
	code, err = svc.GuessCountryCode(ctx, testSession, "US")
	require.NoError(t, err)
	assert.Equal(t, "IN", code)

	require.NoError(t, svc.SetCountryCode(ctx, testSession, " us "))
	code, err = svc.CountryCode(ctx, testSession)
	require.NoError(t, err)
	assert.Equal(t, "US", code)

	var validationErr *ValidationError
	assert.ErrorAs(t, svc.SetCountryCode(ctx, testSession, "USA"), &validationErr)
}

func TestSessionService_GuessFromHint(t *testing.T) {
	svc, _ := newTestSessionService(t)

	code, err := svc.GuessCountryCode(context.Background(), testSession, "ae")
	require.NoError(t, err)
	assert.Equal(t, "AE", code)
}

func TestSessionService_Clear(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPendingOrder(ctx, testSession, "ORD1", "BK1"))
	require.NoError(t, svc.SetCountryCode(ctx, testSession, "IN"))
	require.NoError(t, svc.Clear(ctx, testSession))

	orderID, err := svc.PendingOrderID(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, orderID)

	code, err := svc.CountryCode(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, code)
}
