package service

import (
	"context"
	"fmt"
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/config"
	"moviemart-checkout/internal/model"
	"time"

	"github.com/sirupsen/logrus"
)

// Clock is the part of github.com/facebookgo/clock the verifier needs.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type PollPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

type PollResult struct {
	Status   model.VerificationStatus
	Attempts int
	TimedOut bool // still pending after MaxAttempts
}

// Verifier asks the backend whether an order has settled, retrying pending
// answers on a fixed delay up to a fixed number of attempts.
type Verifier struct {
	backend  client.MoviemartClient
	clock    Clock
	policies map[model.ItemKind]PollPolicy
	log      *logrus.Logger
}

func NewVerifier(backend client.MoviemartClient, clk Clock, cfg *config.Verification, log *logrus.Logger) *Verifier {
	return &Verifier{
		backend: backend,
		clock:   clk,
		policies: map[model.ItemKind]PollPolicy{
			model.ItemKindVideo: {Delay: cfg.Delay, MaxAttempts: cfg.VideoAttempts},
			model.ItemKindEvent: {Delay: cfg.Delay, MaxAttempts: cfg.EventAttempts},
		},
		log: log,
	}
}

func (v *Verifier) Policy(kind model.ItemKind) PollPolicy {
	policy := v.policies[kind]
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return policy
}

// Poll stops on the first non-pending answer, on ctx cancellation, or once
// the attempt cap is reached.
func (v *Verifier) Poll(ctx context.Context, kind model.ItemKind, orderID string, proof model.PaymentProof) (*PollResult, error) {
	policy := v.Policy(kind)
	req := &client.VerifyPaymentRequest{
		ItemKind: kind,
		OrderID:  orderID,
		Proof:    proof,
	}

	for attempt := 1; ; attempt++ {
		status, err := v.backend.VerifyPayment(ctx, req)
		if err != nil {
			return &PollResult{Attempts: attempt}, fmt.Errorf("verify payment attempt %d: %w", attempt, err)
		}

		entry := v.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"attempt":  attempt,
			"status":   status,
		})

		if status != model.VerificationPending {
			entry.Info("payment verification settled")
			return &PollResult{Status: status, Attempts: attempt}, nil
		}
		if attempt >= policy.MaxAttempts {
			entry.Warn("payment still pending, giving up polling")
			return &PollResult{Status: status, Attempts: attempt, TimedOut: true}, nil
		}

		entry.Debug("payment pending, retrying")
		select {
		case <-ctx.Done():
			return &PollResult{Status: status, Attempts: attempt}, ctx.Err()
		case <-v.clock.After(policy.Delay):
		}
	}
}
