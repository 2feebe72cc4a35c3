package ports

import (
	"context"

	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
)

// Notifier fans out lifecycle email after a primary write commits. All calls
// are best-effort: the engine logs failures and never rolls back state.
type Notifier interface {
	// OrderStatusChanged sends the notification mapped to the new status.
	// Statuses with no mapping (pending, cancelled) are a no-op.
	OrderStatusChanged(ctx context.Context, order *domain.Order, status domain.OrderStatus) error
	// PaymentResult sends payment_completed or payment_failed.
	PaymentResult(ctx context.Context, order *domain.Order, completed bool) error
}

// AuditLog records who changed an order and how.
type AuditLog interface {
	OrderStatusChanged(ctx context.Context, actor Actor, orderID string, oldStatus, newStatus domain.OrderStatus) error
}

// PaymentOrchestrator drives the mobile-money round trip end to end:
// initiation, the polling continuation with bounded retries, and relaying the
// outcome back into the order.
type PaymentOrchestrator interface {
	RunMpesaPayment(ctx context.Context, orderID, phone string) (*domain.Order, error)
}
