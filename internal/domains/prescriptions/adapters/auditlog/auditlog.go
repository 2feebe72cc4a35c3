// Package auditlog binds the prescription workflow to the audit recorder.
package auditlog

import (
	"context"

	auditapp "github.com/afyakit/pharmacy-api-server/internal/domains/audit/application"
	auditdomain "github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
	prescdomain "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

var _ ports.AuditLog = (*AuditLog)(nil)

// AuditLog adapts the audit recorder to the workflow's audit port.
type AuditLog struct {
	recorder *auditapp.Recorder
}

func New(recorder *auditapp.Recorder) *AuditLog {
	return &AuditLog{recorder: recorder}
}

func (a *AuditLog) PrescriptionValidated(ctx context.Context, reviewer ports.Reviewer, prescriptionID string, approved bool, rejectionReason string) error {
	status := string(prescdomain.StatusRejected)
	if approved {
		status = string(prescdomain.StatusApproved)
	}
	return a.recorder.PrescriptionValidated(ctx,
		auditdomain.Actor{ID: reviewer.ID, Name: reviewer.Name},
		prescriptionID, status, rejectionReason)
}
