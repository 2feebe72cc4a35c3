// Package auditlog binds the order lifecycle engine to the audit recorder.
package auditlog

import (
	"context"

	auditapp "github.com/afyakit/pharmacy-api-server/internal/domains/audit/application"
	auditdomain "github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

var _ ports.AuditLog = (*AuditLog)(nil)

// AuditLog adapts the audit recorder to the engine's audit port.
type AuditLog struct {
	recorder *auditapp.Recorder
}

func New(recorder *auditapp.Recorder) *AuditLog {
	return &AuditLog{recorder: recorder}
}

func (a *AuditLog) OrderStatusChanged(ctx context.Context, actor ports.Actor, orderID string, oldStatus, newStatus domain.OrderStatus) error {
	return a.recorder.OrderStatusChanged(ctx,
		auditdomain.Actor{ID: actor.ID, Name: actor.Name},
		orderID, string(oldStatus), string(newStatus))
}
