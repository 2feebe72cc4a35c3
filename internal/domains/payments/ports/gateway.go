package ports

import (
	"context"
	"time"
)

// Rail identifies one of the two payment integration paths.
type Rail string

const (
	RailMpesa Rail = "mpesa"
	RailCard  Rail = "card"
)

// OutcomeStatus is the resolution of a payment round trip.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeFailed    OutcomeStatus = "failed"
)

// InitiationResult is the first-phase response of the mobile-money rail.
// A declined initiation is a value, not an error, so callers can surface the
// customer message directly.
type InitiationResult struct {
	Success             bool
	CheckoutRequestID   string
	ResponseCode        string
	ResponseDescription string
	CustomerMessage     string
}

// IntentResult is the first-phase response of the card rail.
type IntentResult struct {
	Success      bool
	IntentID     string
	ClientSecret string
	Status       string
	Reason       string
}

// Outcome is the terminal resolution of either rail's second phase.
type Outcome struct {
	Rail          Rail
	Status        OutcomeStatus
	TransactionID string
	IntentID      string
	PaidAt        *time.Time
}

// Completed reports whether the payment settled.
func (o Outcome) Completed() bool { return o.Status == OutcomeCompleted }

// Gateway abstracts the payment provider. Neither rail guarantees synchronous
// completion; callers treat both as asynchronous with polling or callback
// continuation. Errors are returned only for context cancellation or
// transport breakage, never for a declined payment.
type Gateway interface {
	// InitiateMpesa pushes a payment prompt to the customer's phone and
	// returns a pending checkout request, or an immediate decline.
	InitiateMpesa(ctx context.Context, phone string, amount int64, orderID string) (InitiationResult, error)
	// CheckMpesaStatus polls a pending checkout request for resolution.
	CheckMpesaStatus(ctx context.Context, checkoutRequestID string) (Outcome, error)
	// CreateCardIntent provisions a card payment intent for the order amount.
	CreateCardIntent(ctx context.Context, amount int64, orderID string) (IntentResult, error)
	// ConfirmCardPayment confirms an intent with the given payment method reference.
	ConfirmCardPayment(ctx context.Context, intentID, paymentMethodRef string) (Outcome, error)
}
