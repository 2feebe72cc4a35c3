// Package mock simulates the payment provider with randomized outcomes and
// artificial latency, standing in for real network behavior in development.
package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
	platformmetrics "github.com/afyakit/pharmacy-api-server/internal/platform/metrics"
)

var _ ports.Gateway = (*Gateway)(nil)

// Config tunes the simulated provider. Rates are probabilities in [0,1] and
// are a development knob, not a contract callers may rely on.
type Config struct {
	InitiateSuccessRate float64
	MpesaCompletionRate float64
	IntentSuccessRate   float64
	ConfirmSuccessRate  float64
	Latency             time.Duration
	Currency            string
}

// DefaultConfig mirrors the provider simulation rates of the storefront.
func DefaultConfig() Config {
	return Config{
		InitiateSuccessRate: 0.90,
		MpesaCompletionRate: 0.80,
		IntentSuccessRate:   0.95,
		ConfirmSuccessRate:  0.90,
		Latency:             150 * time.Millisecond,
		Currency:            "KES",
	}
}

// Gateway is the randomized mock provider.
type Gateway struct {
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a mock gateway seeded from the wall clock.
func New(cfg Config) *Gateway {
	return &Gateway{cfg: cfg, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSeed builds a mock gateway with a fixed seed for reproducible runs.
func NewWithSeed(cfg Config, seed int64) *Gateway {
	return &Gateway{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

func (g *Gateway) InitiateMpesa(ctx context.Context, phone string, amount int64, orderID string) (ports.InitiationResult, error) {
	if err := g.simulateRoundTrip(ctx); err != nil {
		return ports.InitiationResult{}, err
	}
	platformmetrics.PaymentInitiationsTotal.WithLabelValues(string(ports.RailMpesa)).Inc()
	if !g.roll(g.cfg.InitiateSuccessRate) {
		return ports.InitiationResult{
			Success:             false,
			ResponseCode:        "1",
			ResponseDescription: "Request failed",
			CustomerMessage:     "Payment request failed. Please try again.",
		}, nil
	}
	return ports.InitiationResult{
		Success:             true,
		CheckoutRequestID:   fmt.Sprintf("ws_CO_%d", time.Now().UnixMilli()),
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     fmt.Sprintf("A payment request has been sent to %s. Please enter your M-Pesa PIN to complete the transaction.", phone),
	}, nil
}

func (g *Gateway) CheckMpesaStatus(ctx context.Context, checkoutRequestID string) (ports.Outcome, error) {
	if err := g.simulateRoundTrip(ctx); err != nil {
		return ports.Outcome{}, err
	}
	if !g.roll(g.cfg.MpesaCompletionRate) {
		platformmetrics.PaymentOutcomesTotal.WithLabelValues(string(ports.RailMpesa), string(ports.OutcomeFailed)).Inc()
		return ports.Outcome{Rail: ports.RailMpesa, Status: ports.OutcomeFailed}, nil
	}
	paidAt := time.Now().UTC()
	platformmetrics.PaymentOutcomesTotal.WithLabelValues(string(ports.RailMpesa), string(ports.OutcomeCompleted)).Inc()
	return ports.Outcome{
		Rail:          ports.RailMpesa,
		Status:        ports.OutcomeCompleted,
		TransactionID: fmt.Sprintf("MP%d", time.Now().UnixMilli()),
		PaidAt:        &paidAt,
	}, nil
}

func (g *Gateway) CreateCardIntent(ctx context.Context, amount int64, orderID string) (ports.IntentResult, error) {
	if err := g.simulateRoundTrip(ctx); err != nil {
		return ports.IntentResult{}, err
	}
	platformmetrics.PaymentInitiationsTotal.WithLabelValues(string(ports.RailCard)).Inc()
	if !g.roll(g.cfg.IntentSuccessRate) {
		return ports.IntentResult{Success: false, Reason: "failed to create payment intent"}, nil
	}
	intentID := fmt.Sprintf("pi_%d", time.Now().UnixMilli())
	return ports.IntentResult{
		Success:      true,
		IntentID:     intentID,
		ClientSecret: fmt.Sprintf("%s_secret_%s", intentID, uuid.NewString()[:9]),
		Status:       "requires_payment_method",
	}, nil
}

func (g *Gateway) ConfirmCardPayment(ctx context.Context, intentID, paymentMethodRef string) (ports.Outcome, error) {
	if err := g.simulateRoundTrip(ctx); err != nil {
		return ports.Outcome{}, err
	}
	if !g.roll(g.cfg.ConfirmSuccessRate) {
		platformmetrics.PaymentOutcomesTotal.WithLabelValues(string(ports.RailCard), string(ports.OutcomeFailed)).Inc()
		return ports.Outcome{Rail: ports.RailCard, Status: ports.OutcomeFailed, IntentID: intentID}, nil
	}
	paidAt := time.Now().UTC()
	platformmetrics.PaymentOutcomesTotal.WithLabelValues(string(ports.RailCard), string(ports.OutcomeCompleted)).Inc()
	return ports.Outcome{
		Rail:     ports.RailCard,
		Status:   ports.OutcomeCompleted,
		IntentID: intentID,
		PaidAt:   &paidAt,
	}, nil
}

func (g *Gateway) roll(rate float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < rate
}

func (g *Gateway) simulateRoundTrip(ctx context.Context) error {
	if g.cfg.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(g.cfg.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
