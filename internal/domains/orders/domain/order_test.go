package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems() []OrderItem {
	return []OrderItem{
		{ProductID: "PROD-1", ProductName: "Paracetamol 500mg", Quantity: 2, UnitPrice: 25000},
		{ProductID: "PROD-2", ProductName: "Amoxicillin 250mg", Quantity: 1, UnitPrice: 80000, RequiresPrescription: true},
	}
}

func validShipping() ShippingInfo {
	return ShippingInfo{
		FullName:   "Jane Wanjiku",
		Email:      "jane@example.com",
		Phone:      "254712345678",
		Address:    "12 Riverside Drive",
		City:       "Nairobi",
		PostalCode: "00100",
	}
}

func validPayment() PaymentInfo {
	return PaymentInfo{Method: MethodMpesa, Status: PaymentPending, Amount: 150000, Currency: "KES"}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("ORD-1", "USER-1", validItems(), validShipping(), validPayment(), 130000, 20000, 150000, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return order
}

func TestNewOrder_StartsPending(t *testing.T) {
	order := newTestOrder(t)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PaymentPending, order.PaymentInfo.Status)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
	assert.Equal(t, 2, order.ItemCount())
}

func TestNewOrder_RequiresItems(t *testing.T) {
	_, err := NewOrder("ORD-1", "USER-1", nil, validShipping(), validPayment(), 0, 0, 0, time.Now())
	require.ErrorIs(t, err, ErrNoItems)
}

func TestNewOrder_RejectsNonPositiveQuantity(t *testing.T) {
	items := validItems()
	items[0].Quantity = 0

	_, err := NewOrder("ORD-1", "USER-1", items, validShipping(), validPayment(), 130000, 20000, 150000, time.Now())
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewOrder_RejectsTotalsMismatch(t *testing.T) {
	_, err := NewOrder("ORD-1", "USER-1", validItems(), validShipping(), validPayment(), 130000, 20000, 140000, time.Now())
	require.ErrorIs(t, err, ErrTotalsMismatch)
}

func TestNewOrder_RejectsIncompleteShipping(t *testing.T) {
	shipping := validShipping()
	shipping.City = "  "

	_, err := NewOrder("ORD-1", "USER-1", validItems(), shipping, validPayment(), 130000, 20000, 150000, time.Now())
	require.ErrorIs(t, err, ErrMissingShipping)
}

func TestNewOrder_RejectsUnknownPaymentMethod(t *testing.T) {
	payment := validPayment()
	payment.Method = "cheque"

	_, err := NewOrder("ORD-1", "USER-1", validItems(), validShipping(), payment, 130000, 20000, 150000, time.Now())
	require.ErrorIs(t, err, ErrInvalidPayMethod)
}

func TestTransitionTo_AdvancesStatus(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.TransitionTo(StatusConfirmed, time.Now().UTC()))
	assert.Equal(t, StatusConfirmed, order.Status)
}

func TestTransitionTo_RejectsUnknownStatus(t *testing.T) {
	order := newTestOrder(t)

	err := order.TransitionTo("archived", time.Now().UTC())
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusPending, order.Status)
}

func TestTransitionTo_TerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		order := newTestOrder(t)
		require.NoError(t, order.TransitionTo(terminal, time.Now().UTC()))

		err := order.TransitionTo(StatusConfirmed, time.Now().UTC())
		require.ErrorIs(t, err, ErrTerminalStatus)
		assert.Equal(t, terminal, order.Status)
	}
}

func TestTransitionTo_UpdatedAtStrictlyIncreases(t *testing.T) {
	// A frozen clock must not produce identical UpdatedAt values across
	// consecutive mutations.
	frozen := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	order, err := NewOrder("ORD-1", "USER-1", validItems(), validShipping(), validPayment(), 130000, 20000, 150000, frozen)
	require.NoError(t, err)

	require.NoError(t, order.TransitionTo(StatusConfirmed, frozen))
	first := order.UpdatedAt
	require.NoError(t, order.TransitionTo(StatusProcessing, frozen))

	assert.True(t, first.After(frozen) || first.Equal(frozen))
	assert.True(t, order.UpdatedAt.After(first))
}

func TestApplyPayment_CompletedIsFinal(t *testing.T) {
	order := newTestOrder(t)

	info := order.PaymentInfo
	info.Status = PaymentCompleted
	info.TransactionID = "MP123"
	require.NoError(t, order.ApplyPayment(info, time.Now().UTC()))

	info.TransactionID = "MP456"
	err := order.ApplyPayment(info, time.Now().UTC())
	require.ErrorIs(t, err, ErrPaymentSettled)
	assert.Equal(t, "MP123", order.PaymentInfo.TransactionID)
}

func TestClone_IsolatesMutableState(t *testing.T) {
	order := newTestOrder(t)
	paidAt := time.Now().UTC()
	order.PaymentInfo.PaidAt = &paidAt

	clone := order.Clone()
	clone.Items[0].Quantity = 99
	*clone.PaymentInfo.PaidAt = paidAt.Add(time.Hour)

	assert.Equal(t, int32(2), order.Items[0].Quantity)
	assert.Equal(t, paidAt, *order.PaymentInfo.PaidAt)
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "KES 1500.00", Money(150000).Format("KES"))
	assert.Equal(t, "KES 0.05", Money(5).Format("KES"))
	assert.Equal(t, "KES -1.50", Money(-150).Format("KES"))
}
