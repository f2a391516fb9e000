package service

import (
	"context"
	"fmt"
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/model"
	"moviemart-checkout/internal/repository"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

var staleFlowStates = []model.FlowState{
	model.StateIdle,
	model.StateDraft,
	model.StateFailed,
}

// Janitor periodically drops expired session entries and abandoned flows.
type Janitor struct {
	scheduler    gocron.Scheduler
	purchaseRepo repository.PurchaseRepository
	store        repository.SessionStore
	flowTTL      time.Duration
	log          *logrus.Logger
}

func NewJanitor(cfg *config.Janitor, purchaseRepo repository.PurchaseRepository, store repository.SessionStore, log *logrus.Logger) (*Janitor, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}

	j := &Janitor{
		scheduler:    scheduler,
		purchaseRepo: purchaseRepo,
		store:        store,
		flowTTL:      cfg.FlowTTL,
		log:          log,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Interval),
		gocron.NewTask(func() {
			j.Sweep(context.Background(), time.Now())
		}),
		gocron.WithName("checkout-janitor"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule janitor: %w", err)
	}

	return j, nil
}

func (j *Janitor) Start() {
	j.scheduler.Start()
}

func (j *Janitor) Shutdown() error {
	return j.scheduler.Shutdown()
}

func (j *Janitor) Sweep(ctx context.Context, now time.Time) {
	sessions, err := j.store.PurgeExpired(ctx, now)
	if err != nil {
		j.log.WithError(err).Error("purge expired session entries")
	}

	flows, err := j.purchaseRepo.DeleteStale(ctx, staleFlowStates, now.Add(-j.flowTTL))
	if err != nil {
		j.log.WithError(err).Error("delete stale checkout flows")
	}

	j.log.WithFields(logrus.Fields{
		"session_entries": sessions,
		"flows":           flows,
	}).Debug("janitor sweep done")
}
