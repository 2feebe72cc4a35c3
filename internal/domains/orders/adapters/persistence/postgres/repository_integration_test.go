//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	"github.com/afyakit/pharmacy-api-server/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("pharmacy_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func persistedOrder(t *testing.T, id string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(id, "USER-1",
		[]domain.OrderItem{
			{ProductID: "PROD-1", ProductName: "Paracetamol 500mg", Quantity: 2, UnitPrice: 25000},
			{ProductID: "PROD-2", ProductName: "Amoxicillin 250mg", Quantity: 1, UnitPrice: 80000, RequiresPrescription: true},
		},
		domain.ShippingInfo{
			FullName:   "Jane Wanjiku",
			Email:      "jane@example.com",
			Phone:      "254712345678",
			Address:    "12 Riverside Drive",
			City:       "Nairobi",
			PostalCode: "00100",
		},
		domain.PaymentInfo{Method: domain.MethodMpesa, Status: domain.PaymentPending, Amount: 150000, Currency: "KES"},
		130000, 20000, 150000, time.Now().UTC())
	require.NoError(t, err)
	order.PrescriptionFiles = []string{"prescription.pdf"}
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := persistedOrder(t, "ORD-pg-1")
	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, fetched.ID)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, "Paracetamol 500mg", fetched.Items[0].ProductName)
	assert.True(t, fetched.Items[1].RequiresPrescription)
	assert.Equal(t, []string{"prescription.pdf"}, fetched.PrescriptionFiles)
	assert.Equal(t, domain.Money(150000), fetched.PaymentInfo.Amount)
}

func TestRepository_SaveUpdatesMutableColumnsOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := persistedOrder(t, "ORD-pg-2")
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, order.TransitionTo(domain.StatusConfirmed, time.Now().UTC()))
	paidAt := time.Now().UTC().Truncate(time.Millisecond)
	info := order.PaymentInfo
	info.Status = domain.PaymentCompleted
	info.TransactionID = "MP12345"
	info.PaidAt = &paidAt
	require.NoError(t, order.ApplyPayment(info, time.Now().UTC()))

	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, domain.PaymentCompleted, updated.PaymentInfo.Status)
	assert.Equal(t, "MP12345", updated.PaymentInfo.TransactionID)
	require.NotNil(t, updated.PaymentInfo.PaidAt)

	// Checkout snapshots survive the update untouched.
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "Jane Wanjiku", updated.ShippingInfo.FullName)
	assert.Equal(t, domain.Money(150000), updated.FinalTotal)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)

	_, err := repo.GetByID(context.Background(), "ORD-missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListOldestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	first := persistedOrder(t, "ORD-pg-3")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	_, err := repo.Save(ctx, first)
	require.NoError(t, err)

	second := persistedOrder(t, "ORD-pg-4")
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ORD-pg-3", list[0].ID)
	assert.Equal(t, "ORD-pg-4", list[1].ID)
}
