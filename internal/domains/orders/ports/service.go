package ports

import (
	"context"

	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	payports "github.com/afyakit/pharmacy-api-server/internal/domains/payments/ports"
)

// Actor is the authenticated identity driving a change, used for audit
// attribution. Status updates without an actor are persisted but not audited.
type Actor struct {
	ID   string
	Name string
}

// CreateOrderInput is the checkout submission. Totals are computed by the
// caller; creation validates their consistency.
type CreateOrderInput struct {
	UserID               string
	Items                []domain.OrderItem
	Shipping             domain.ShippingInfo
	PaymentMethod        domain.PaymentMethod
	MpesaPhone           string
	TotalAmount          domain.Money
	DeliveryFee          domain.Money
	FinalTotal           domain.Money
	Currency             string
	DeliveryInstructions string
	PrescriptionFiles    []string
}

// Service exposes the order lifecycle engine to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, actor *Actor) (*domain.Order, error)

	InitiateMpesaPayment(ctx context.Context, orderID, phone string) (payports.InitiationResult, error)
	PollMpesaPayment(ctx context.Context, orderID, checkoutRequestID string) (*domain.Order, error)
	CreateCardIntent(ctx context.Context, orderID string) (payports.IntentResult, error)
	ConfirmCardPayment(ctx context.Context, orderID, intentID, paymentMethodRef string) (*domain.Order, error)
	ApplyPaymentOutcome(ctx context.Context, orderID string, outcome payports.Outcome) (*domain.Order, error)
}
