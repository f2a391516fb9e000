package repository

import (
	"context"
	"errors"
	"moviemart-checkout/internal/model"
	"time"

	"gorm.io/gorm"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	Get(ctx context.Context, id string) (*model.Purchase, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.Purchase, error)
	Save(ctx context.Context, purchase *model.Purchase) error
	DeleteStale(ctx context.Context, states []model.FlowState, before time.Time) (int64, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepoImpl) Get(ctx context.Context, id string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("updated_at DESC").
		First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) Save(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// DeleteStale removes flows sitting in one of states since before.
func (r *purchaseRepoImpl) DeleteStale(ctx context.Context, states []model.FlowState, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where(`
			state IN ?
			AND updated_at < ?
		`,
			states,
			before,
		).
		Delete(&model.Purchase{})

	return result.RowsAffected, result.Error
}
