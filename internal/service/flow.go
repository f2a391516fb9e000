package service

import (
	"fmt"
	"moviemart-checkout/internal/model"
)

var transitions = map[model.FlowState][]model.FlowState{
	model.StateIdle:         {model.StateDraft},
	model.StateDraft:        {model.StateDraft, model.StateOrderCreated},
	model.StateOrderCreated: {model.StateGatewayOpen, model.StateDraft},
	model.StateGatewayOpen:  {model.StateVerifying, model.StateIdle, model.StateFailed},
	model.StateVerifying:    {model.StateCompleted, model.StateFailed, model.StateProcessing},
	model.StateProcessing:   {model.StateVerifying},
	model.StateFailed:       {model.StateIdle},
}

func canTransition(from, to model.FlowState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transition(p *model.Purchase, to model.FlowState) error {
	if !canTransition(p.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.State, to)
	}
	p.State = to
	p.Processing = to == model.StateOrderCreated ||
		to == model.StateGatewayOpen ||
		to == model.StateVerifying
	return nil
}

// clearOrder forgets the current payment order; the next attempt creates a new one.
func clearOrder(p *model.Purchase) {
	p.OrderID = ""
	p.BookingID = ""
	p.Gateway = ""
	p.GatewayPayload = ""
	p.PaymentProof = ""
	p.VerifyAttempts = 0
}
