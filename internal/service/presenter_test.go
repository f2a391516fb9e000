package service

import (
	"context"
	"errors"
	"moviemart-checkout/internal/client/mocks"
	"moviemart-checkout/internal/model"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPresenter_RendersMissingQRCode(t *testing.T) {
	backend := new(mocks.MockMoviemartClient)
	dir := t.TempDir()
	pr := NewPresenter(backend, dir, newTestLogger())

	backend.On("GetETicket", mock.Anything, "ORD/77").Return(&model.ETicket{
		OrderID:       "ORD/77",
		ReferenceCode: "MM-77",
		TicketCount:   2,
	}, nil).Once()

	p := &model.Purchase{ItemKind: model.ItemKindEvent, OrderID: "ORD/77", ItemTitle: "Sunburn"}
	res, err := pr.Present(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "/assets/qr/ORD-77.jpeg", res.Ticket.QRCodeURL)
	assert.FileExists(t, filepath.Join(dir, "qr", "ORD-77.jpeg"))
	assert.Equal(t, "Sunburn", res.Ticket.ItemTitle)
	assert.False(t, res.Celebrate)
	assert.NotEmpty(t, p.Result)
}

func TestPresenter_StoredResultIsNotRefetched(t *testing.T) {
	backend := new(mocks.MockMoviemartClient)
	pr := NewPresenter(backend, t.TempDir(), newTestLogger())

	backend.On("GetPlaybackGrant", mock.Anything, "order_rp1").Return(&model.PlaybackGrant{
		OrderID:   "order_rp1",
		Title:     "The Long Night",
		StreamURL: "https://stream.moviemart.test/vid-1.m3u8",
	}, nil).Once()

	p := &model.Purchase{ItemKind: model.ItemKindVideo, ItemID: "vid-1", OrderID: "order_rp1"}

	first, err := pr.Present(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, first.Celebrate)
	assert.Equal(t, "vid-1", first.Playback.VideoID)

	second, err := pr.Present(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, second.Celebrate)
	assert.Equal(t, first.Playback.StreamURL, second.Playback.StreamURL)

	backend.AssertNumberOfCalls(t, "GetPlaybackGrant", 1)
}

func TestPresenter_BackendError(t *testing.T) {
	backend := new(mocks.MockMoviemartClient)
	pr := NewPresenter(backend, t.TempDir(), newTestLogger())

	boom := errors.New("ticket not ready")
	backend.On("GetETicket", mock.Anything, "ORD1").Return(nil, boom).Once()

	p := &model.Purchase{ItemKind: model.ItemKindEvent, OrderID: "ORD1"}
	_, err := pr.Present(context.Background(), p)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, p.Result)
}
