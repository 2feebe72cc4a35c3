// Package simulated stands in for a real email provider during development.
package simulated

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"
)

var _ ports.Deliverer = (*Deliverer)(nil)

// ErrDeliveryRefused is the simulated provider failure.
var ErrDeliveryRefused = errors.New("simulated provider refused delivery")

// Deliverer succeeds with the configured rate and refuses otherwise.
type Deliverer struct {
	successRate float64
	latency     time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a deliverer with the given success rate in [0,1].
func New(successRate float64, latency time.Duration) *Deliverer {
	return &Deliverer{
		successRate: successRate,
		latency:     latency,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewAlwaysFailing refuses every delivery, useful in tests.
func NewAlwaysFailing() *Deliverer {
	return New(0, 0)
}

// NewAlwaysSucceeding accepts every delivery, useful in tests.
func NewAlwaysSucceeding() *Deliverer {
	return New(1, 0)
}

func (d *Deliverer) Deliver(ctx context.Context, _ *domain.Record) error {
	if d.latency > 0 {
		timer := time.NewTimer(d.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	d.mu.Lock()
	ok := d.rng.Float64() < d.successRate
	d.mu.Unlock()
	if !ok {
		return ErrDeliveryRefused
	}
	return nil
}
