// Package scripted is a deterministic gateway double: tests and controlled
// environments enqueue the exact results each call should return.
package scripted

import (
	"context"
	"sync"

	"github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway replays queued results in FIFO order per operation. An empty queue
// yields a failed result rather than blocking, so an under-scripted test
// fails loudly on assertions instead of hanging.
type Gateway struct {
	mu sync.Mutex

	initiations []ports.InitiationResult
	statuses    []ports.Outcome
	intents     []ports.IntentResult
	confirms    []ports.Outcome

	// Calls records every invocation for assertion.
	Calls []string
}

func New() *Gateway { return &Gateway{} }

// QueueInitiation schedules the next InitiateMpesa result.
func (g *Gateway) QueueInitiation(res ports.InitiationResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initiations = append(g.initiations, res)
}

// QueueStatus schedules the next CheckMpesaStatus outcome.
func (g *Gateway) QueueStatus(out ports.Outcome) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses = append(g.statuses, out)
}

// QueueIntent schedules the next CreateCardIntent result.
func (g *Gateway) QueueIntent(res ports.IntentResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents = append(g.intents, res)
}

// QueueConfirm schedules the next ConfirmCardPayment outcome.
func (g *Gateway) QueueConfirm(out ports.Outcome) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.confirms = append(g.confirms, out)
}

func (g *Gateway) InitiateMpesa(ctx context.Context, phone string, amount int64, orderID string) (ports.InitiationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "InitiateMpesa")
	if len(g.initiations) == 0 {
		return ports.InitiationResult{Success: false, ResponseDescription: "no scripted initiation"}, nil
	}
	res := g.initiations[0]
	g.initiations = g.initiations[1:]
	return res, nil
}

func (g *Gateway) CheckMpesaStatus(ctx context.Context, checkoutRequestID string) (ports.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "CheckMpesaStatus")
	if len(g.statuses) == 0 {
		return ports.Outcome{Rail: ports.RailMpesa, Status: ports.OutcomeFailed}, nil
	}
	out := g.statuses[0]
	g.statuses = g.statuses[1:]
	return out, nil
}

func (g *Gateway) CreateCardIntent(ctx context.Context, amount int64, orderID string) (ports.IntentResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "CreateCardIntent")
	if len(g.intents) == 0 {
		return ports.IntentResult{Success: false, Reason: "no scripted intent"}, nil
	}
	res := g.intents[0]
	g.intents = g.intents[1:]
	return res, nil
}

func (g *Gateway) ConfirmCardPayment(ctx context.Context, intentID, paymentMethodRef string) (ports.Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "ConfirmCardPayment")
	if len(g.confirms) == 0 {
		return ports.Outcome{Rail: ports.RailCard, Status: ports.OutcomeFailed, IntentID: intentID}, nil
	}
	out := g.confirms[0]
	g.confirms = g.confirms[1:]
	return out, nil
}
