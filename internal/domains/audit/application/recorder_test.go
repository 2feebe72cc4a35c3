package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/adapters/memory"
	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
)

var reviewer = domain.Actor{ID: "ADMIN-1", Name: "Dr. Otieno"}

func TestOrderStatusChanged_RecordsTransition(t *testing.T) {
	repo := memory.NewRepository()
	frozen := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	recorder := NewRecorder(repo, WithClock(func() time.Time { return frozen }), WithOrigin("10.0.0.9"))
	ctx := context.Background()

	require.NoError(t, recorder.OrderStatusChanged(ctx, reviewer, "ORD-1", "pending", "confirmed"))

	trail, err := recorder.Trail(ctx, domain.EntityOrder, "ORD-1")
	require.NoError(t, err)
	require.Len(t, trail, 1)

	entry := trail[0]
	assert.True(t, strings.HasPrefix(entry.ID, "AUDIT-"))
	assert.Equal(t, "Order status changed from pending to confirmed", entry.Action)
	assert.Equal(t, reviewer, entry.Actor)
	assert.Equal(t, domain.EntityOrder, entry.EntityType)
	assert.Equal(t, map[string]any{"status": "pending"}, entry.OldValue)
	assert.Equal(t, map[string]any{"status": "confirmed"}, entry.NewValue)
	assert.Equal(t, frozen, entry.Timestamp)
	assert.Equal(t, "10.0.0.9", entry.IPAddress)
}

func TestPrescriptionValidated_Approved(t *testing.T) {
	recorder := NewRecorder(memory.NewRepository())
	ctx := context.Background()

	require.NoError(t, recorder.PrescriptionValidated(ctx, reviewer, "PRESC-1", "approved", ""))

	trail, err := recorder.Trail(ctx, domain.EntityPrescription, "PRESC-1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "Prescription approved", trail[0].Action)
	assert.Equal(t, map[string]any{"status": "pending"}, trail[0].OldValue)
	assert.Equal(t, map[string]any{"status": "approved"}, trail[0].NewValue)
}

func TestPrescriptionValidated_RejectionCarriesReason(t *testing.T) {
	recorder := NewRecorder(memory.NewRepository())
	ctx := context.Background()

	require.NoError(t, recorder.PrescriptionValidated(ctx, reviewer, "PRESC-1", "rejected", "Illegible prescription"))

	trail, err := recorder.Trail(ctx, domain.EntityPrescription, "PRESC-1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "Prescription rejected: Illegible prescription", trail[0].Action)
	assert.Equal(t, map[string]any{"status": "rejected", "reason": "Illegible prescription"}, trail[0].NewValue)
}

func TestTrail_FiltersByEntityTypeAndID(t *testing.T) {
	recorder := NewRecorder(memory.NewRepository())
	ctx := context.Background()

	require.NoError(t, recorder.OrderStatusChanged(ctx, reviewer, "ORD-1", "pending", "confirmed"))
	require.NoError(t, recorder.OrderStatusChanged(ctx, reviewer, "ORD-2", "pending", "cancelled"))
	require.NoError(t, recorder.PrescriptionValidated(ctx, reviewer, "PRESC-1", "approved", ""))

	orders, err := recorder.Trail(ctx, domain.EntityOrder, "")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-1", orders[0].EntityID)
	assert.Equal(t, "ORD-2", orders[1].EntityID)

	one, err := recorder.Trail(ctx, domain.EntityOrder, "ORD-2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Order status changed from pending to cancelled", one[0].Action)
}

func TestRecord_EntriesAreImmutableSnapshots(t *testing.T) {
	recorder := NewRecorder(memory.NewRepository())
	ctx := context.Background()

	oldValue := map[string]any{"status": "pending"}
	require.NoError(t, recorder.Record(ctx, reviewer, "Order status changed from pending to confirmed", domain.EntityOrder, "ORD-1", oldValue, map[string]any{"status": "confirmed"}))

	// Mutating the caller's map after recording must not alter the trail.
	oldValue["status"] = "tampered"

	trail, err := recorder.Trail(ctx, domain.EntityOrder, "ORD-1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, map[string]any{"status": "pending"}, trail[0].OldValue)
}
