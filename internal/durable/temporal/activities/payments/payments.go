package payments

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

const (
	// InitiateMpesaActivityName pushes the payment prompt for an order.
	InitiateMpesaActivityName = "payments.activities.InitiateMpesa"
	// PollMpesaActivityName checks a pending checkout request and folds any
	// resolution into the order.
	PollMpesaActivityName = "payments.activities.PollMpesa"
	// ResolveTimeoutActivityName marks a checkout request that never resolved
	// within the polling budget as failed.
	ResolveTimeoutActivityName = "payments.activities.ResolveTimeout"
	// LoadOrderActivityName reads the order snapshot.
	LoadOrderActivityName = "payments.activities.LoadOrder"
)

// InitiateInput identifies the order and the phone receiving the prompt.
type InitiateInput struct {
	OrderID string
	Phone   string
}

// PollInput identifies the pending checkout request being polled.
type PollInput struct {
	OrderID           string
	CheckoutRequestID string
}

// Activities groups the order-payment activities executed by the worker.
type Activities struct {
	orders ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(orders ordersports.Service) *Activities {
	return &Activities{orders: orders}
}

// InitiateMpesa pushes the payment prompt and returns the checkout request.
func (a *Activities) InitiateMpesa(ctx context.Context, input InitiateInput) (payports.InitiationResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("payment activities not initialized", "orderId", input.OrderID)
		return payports.InitiationResult{}, errors.New("payment activities not initialized")
	}
	logger.Info("InitiateMpesa activity started", "orderId", input.OrderID)
	result, err := a.orders.InitiateMpesaPayment(ctx, input.OrderID, input.Phone)
	if err != nil {
		logger.Error("InitiateMpesa activity failed", "orderId", input.OrderID, "error", err)
		return payports.InitiationResult{}, err
	}
	logger.Info("InitiateMpesa activity completed", "orderId", input.OrderID, "accepted", result.Success)
	return result, nil
}

// PollMpesa checks the checkout request once and returns the updated order.
func (a *Activities) PollMpesa(ctx context.Context, input PollInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("payment activities not initialized", "orderId", input.OrderID)
		return nil, errors.New("payment activities not initialized")
	}
	order, err := a.orders.PollMpesaPayment(ctx, input.OrderID, input.CheckoutRequestID)
	if err != nil {
		logger.Error("PollMpesa activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("PollMpesa activity completed", "orderId", input.OrderID, "paymentStatus", string(order.PaymentInfo.Status))
	return order, nil
}

// ResolveTimeout folds a failed outcome into an order whose checkout request
// exhausted the polling budget.
func (a *Activities) ResolveTimeout(ctx context.Context, input PollInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.orders == nil {
		logger.Error("payment activities not initialized", "orderId", input.OrderID)
		return nil, errors.New("payment activities not initialized")
	}
	logger.Info("ResolveTimeout activity started", "orderId", input.OrderID)
	outcome := payports.Outcome{
		Rail:   payports.RailMpesa,
		Status: payports.OutcomeFailed,
	}
	order, err := a.orders.ApplyPaymentOutcome(ctx, input.OrderID, outcome)
	if err != nil {
		logger.Error("ResolveTimeout activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	return order, nil
}

// LoadOrder reads the order snapshot.
func (a *Activities) LoadOrder(ctx context.Context, orderID string) (*ordersdomain.Order, error) {
	if a == nil || a.orders == nil {
		return nil, errors.New("payment activities not initialized")
	}
	return a.orders.GetOrder(ctx, orderID)
}
