package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/memory"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

type fakeDirectory struct {
	orders map[string]ports.LinkedOrder
}

func (d *fakeDirectory) Find(_ context.Context, orderID string) (*ports.LinkedOrder, error) {
	order, ok := d.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

type reviewNotice struct {
	order           ports.LinkedOrder
	approved        bool
	rejectionReason string
}

type recordingNotifier struct {
	notices []reviewNotice
}

func (n *recordingNotifier) PrescriptionReviewed(_ context.Context, order ports.LinkedOrder, approved bool, rejectionReason string) error {
	n.notices = append(n.notices, reviewNotice{order: order, approved: approved, rejectionReason: rejectionReason})
	return nil
}

type auditCall struct {
	reviewer        ports.Reviewer
	prescriptionID  string
	approved        bool
	rejectionReason string
}

type recordingAudit struct {
	calls []auditCall
}

func (a *recordingAudit) PrescriptionValidated(_ context.Context, reviewer ports.Reviewer, prescriptionID string, approved bool, rejectionReason string) error {
	a.calls = append(a.calls, auditCall{reviewer: reviewer, prescriptionID: prescriptionID, approved: approved, rejectionReason: rejectionReason})
	return nil
}

type workflowFixture struct {
	service  *Service
	notifier *recordingNotifier
	audit    *recordingAudit
}

func newWorkflowFixture(t *testing.T, linked map[string]ports.LinkedOrder) *workflowFixture {
	t.Helper()
	notifier := &recordingNotifier{}
	audit := &recordingAudit{}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(
		memory.NewRepository(),
		&fakeDirectory{orders: linked},
		notifier,
		audit,
		WithLogger(quiet),
	)
	return &workflowFixture{service: service, notifier: notifier, audit: audit}
}

var pharmacist = ports.Reviewer{ID: "ADMIN-1", Name: "Dr. Otieno"}

func linkedOrder() map[string]ports.LinkedOrder {
	return map[string]ports.LinkedOrder{
		"ORD-1": {ID: "ORD-1", CustomerName: "Jane Wanjiku", Email: "jane@example.com"},
	}
}

func TestUpload_CreatesPendingRecord(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())

	file, err := fixture.service.Upload(context.Background(), "ORD-1", "prescription.pdf", 204800)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(file.ID, "PRESC-"))
	assert.Equal(t, domain.StatusPending, file.Status)
	assert.Equal(t, "ORD-1", file.OrderID)

	pending, err := fixture.service.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, file.ID, pending[0].ID)
}

func TestUpload_RejectsMissingFileName(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())

	_, err := fixture.service.Upload(context.Background(), "ORD-1", "", 1024)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingFileName)
}

func TestValidate_ApprovalNotifiesAndAudits(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())
	ctx := context.Background()
	file, err := fixture.service.Upload(ctx, "ORD-1", "prescription.pdf", 204800)
	require.NoError(t, err)

	decision := domain.Decision{
		Approve:       true,
		DoctorName:    "Dr. Achieng",
		LicenseNumber: "KMP-12345",
		ExpiryDate:    "2025-03-01",
	}
	validated, err := fixture.service.Validate(ctx, file.ID, decision, pharmacist)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, validated.Status)
	assert.Equal(t, "Dr. Otieno", validated.ValidatedBy)

	require.Len(t, fixture.notifier.notices, 1)
	notice := fixture.notifier.notices[0]
	assert.True(t, notice.approved)
	assert.Equal(t, "jane@example.com", notice.order.Email)

	require.Len(t, fixture.audit.calls, 1)
	call := fixture.audit.calls[0]
	assert.Equal(t, pharmacist, call.reviewer)
	assert.Equal(t, file.ID, call.prescriptionID)
	assert.True(t, call.approved)
}

func TestValidate_RejectionCarriesReason(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())
	ctx := context.Background()
	file, err := fixture.service.Upload(ctx, "ORD-1", "prescription.pdf", 204800)
	require.NoError(t, err)

	decision := domain.Decision{Approve: false, RejectionReason: "Illegible prescription"}
	validated, err := fixture.service.Validate(ctx, file.ID, decision, pharmacist)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, validated.Status)

	require.Len(t, fixture.notifier.notices, 1)
	assert.False(t, fixture.notifier.notices[0].approved)
	assert.Equal(t, "Illegible prescription", fixture.notifier.notices[0].rejectionReason)

	require.Len(t, fixture.audit.calls, 1)
	assert.Equal(t, "Illegible prescription", fixture.audit.calls[0].rejectionReason)
}

func TestValidate_SecondDecisionRejected(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())
	ctx := context.Background()
	file, err := fixture.service.Upload(ctx, "ORD-1", "prescription.pdf", 204800)
	require.NoError(t, err)

	decision := domain.Decision{Approve: false, RejectionReason: "Illegible prescription"}
	_, err = fixture.service.Validate(ctx, file.ID, decision, pharmacist)
	require.NoError(t, err)

	_, err = fixture.service.Validate(ctx, file.ID, decision, pharmacist)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrAlreadyValidated)
	assert.Len(t, fixture.notifier.notices, 1)
	assert.Len(t, fixture.audit.calls, 1)
}

func TestValidate_MissingLinkedOrderSkipsSideEffects(t *testing.T) {
	fixture := newWorkflowFixture(t, nil)
	ctx := context.Background()
	file, err := fixture.service.Upload(ctx, "ORD-orphan", "prescription.pdf", 204800)
	require.NoError(t, err)

	decision := domain.Decision{
		Approve:       true,
		DoctorName:    "Dr. Achieng",
		LicenseNumber: "KMP-12345",
		ExpiryDate:    "2025-03-01",
	}
	validated, err := fixture.service.Validate(ctx, file.ID, decision, pharmacist)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, validated.Status)

	assert.Empty(t, fixture.notifier.notices)
	assert.Empty(t, fixture.audit.calls)
}

func TestValidate_UnknownPrescription(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())

	_, err := fixture.service.Validate(context.Background(), "PRESC-missing", domain.Decision{Approve: false, RejectionReason: "x"}, pharmacist)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListForOrder_ReturnsOnlyThatOrder(t *testing.T) {
	fixture := newWorkflowFixture(t, linkedOrder())
	ctx := context.Background()

	first, err := fixture.service.Upload(ctx, "ORD-1", "a.pdf", 100)
	require.NoError(t, err)
	_, err = fixture.service.Upload(ctx, "ORD-2", "b.pdf", 100)
	require.NoError(t, err)

	files, err := fixture.service.ListForOrder(ctx, "ORD-1")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, first.ID, files[0].ID)
}
