// Package notify binds the order lifecycle engine to the notification
// dispatcher: it maps statuses to notification types and flattens order data
// into template placeholders.
package notify

import (
	"context"
	"strconv"
	"strings"

	notifdomain "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
	notifports "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// statusNotifications maps lifecycle transitions to notification types.
// Pending and cancelled deliberately have no mapping.
var statusNotifications = map[domain.OrderStatus]notifdomain.Type{
	domain.StatusConfirmed:  notifdomain.TypeOrderConfirmed,
	domain.StatusProcessing: notifdomain.TypeOrderProcessing,
	domain.StatusShipped:    notifdomain.TypeOrderShipped,
	domain.StatusDelivered:  notifdomain.TypeOrderDelivered,
}

// Notifier adapts the generic dispatcher to the engine's notifier port.
type Notifier struct {
	dispatcher notifports.Dispatcher
}

func New(dispatcher notifports.Dispatcher) *Notifier {
	return &Notifier{dispatcher: dispatcher}
}

func (n *Notifier) OrderStatusChanged(ctx context.Context, order *domain.Order, status domain.OrderStatus) error {
	notificationType, ok := statusNotifications[status]
	if !ok {
		return nil
	}
	_, err := n.dispatcher.Send(ctx, notificationType, order.ShippingInfo.Email, orderData(order))
	return err
}

func (n *Notifier) PaymentResult(ctx context.Context, order *domain.Order, completed bool) error {
	notificationType := notifdomain.TypePaymentFailed
	if completed {
		notificationType = notifdomain.TypePaymentCompleted
	}
	_, err := n.dispatcher.Send(ctx, notificationType, order.ShippingInfo.Email, orderData(order))
	return err
}

func orderData(order *domain.Order) map[string]string {
	transactionID := order.PaymentInfo.TransactionID
	if transactionID == "" {
		transactionID = "N/A"
	}
	return map[string]string{
		"orderId":         order.ID,
		"customerName":    order.ShippingInfo.FullName,
		"totalAmount":     order.FinalTotal.Format(order.PaymentInfo.Currency),
		"itemCount":       strconv.Itoa(order.ItemCount()),
		"shippingAddress": order.ShippingInfo.Address + ", " + order.ShippingInfo.City,
		"paymentMethod":   strings.ToUpper(string(order.PaymentInfo.Method)),
		"transactionId":   transactionID,
	}
}
