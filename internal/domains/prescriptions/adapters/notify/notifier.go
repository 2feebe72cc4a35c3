// Package notify binds the prescription workflow to the notification
// dispatcher.
package notify

import (
	"context"

	notifdomain "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
	notifports "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier sends prescription review outcomes to the order's shipping email.
type Notifier struct {
	dispatcher notifports.Dispatcher
}

func New(dispatcher notifports.Dispatcher) *Notifier {
	return &Notifier{dispatcher: dispatcher}
}

func (n *Notifier) PrescriptionReviewed(ctx context.Context, order ports.LinkedOrder, approved bool, rejectionReason string) error {
	notificationType := notifdomain.TypePrescriptionRejected
	if approved {
		notificationType = notifdomain.TypePrescriptionApproved
	}
	data := map[string]string{
		"orderId":         order.ID,
		"customerName":    order.CustomerName,
		"rejectionReason": rejectionReason,
	}
	_, err := n.dispatcher.Send(ctx, notificationType, order.Email, data)
	return err
}
