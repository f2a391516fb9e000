package repository

import (
	"context"
	"moviemart-checkout/internal/model"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchase(state model.FlowState) *model.Purchase {
	return &model.Purchase{
		ID:          uuid.NewString(),
		SessionID:   "session-1",
		ItemKind:    model.ItemKindEvent,
		ItemID:      "evt-1",
		ItemTitle:   "Arijit Live",
		SeatType:    "VIP",
		Quantity:    3,
		UnitPrice:   decimal.NewFromInt(480),
		FinalAmount: decimal.NewFromInt(1440),
		Currency:    "INR",
		State:       state,
	}
}

func TestPurchaseRepository_CreateGetSave(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	ctx := context.Background()

	p := newPurchase(model.StateDraft)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StateDraft, got.State)
	assert.True(t, got.FinalAmount.Equal(decimal.NewFromInt(1440)))

	got.State = model.StateGatewayOpen
	got.Processing = true
	got.OrderID = "ORD123"
	require.NoError(t, repo.Save(ctx, got))

	again, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StateGatewayOpen, again.State)
	assert.True(t, again.Processing)
	assert.Equal(t, "ORD123", again.OrderID)
}

func TestPurchaseRepository_NotFound(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPurchaseNotFound)

	_, err = repo.FindByOrderID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestPurchaseRepository_FindByOrderID(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	ctx := context.Background()

	p := newPurchase(model.StateGatewayOpen)
	p.OrderID = "ORD123"
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, newPurchase(model.StateDraft)))

	got, err := repo.FindByOrderID(ctx, "ORD123")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestPurchaseRepository_DeleteStale(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	ctx := context.Background()

	failed := newPurchase(model.StateFailed)
	completed := newPurchase(model.StateCompleted)
	require.NoError(t, repo.Create(ctx, failed))
	require.NoError(t, repo.Create(ctx, completed))

	n, err := repo.DeleteStale(ctx, []model.FlowState{model.StateIdle, model.StateDraft, model.StateFailed}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, failed.ID)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
	_, err = repo.Get(ctx, completed.ID)
	assert.NoError(t, err)

	// nothing is old enough yet
	n, err = repo.DeleteStale(ctx, []model.FlowState{model.StateCompleted}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}
