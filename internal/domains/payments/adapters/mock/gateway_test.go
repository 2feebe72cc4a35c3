package mock

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantConfig(rate float64) Config {
	return Config{
		InitiateSuccessRate: rate,
		MpesaCompletionRate: rate,
		IntentSuccessRate:   rate,
		ConfirmSuccessRate:  rate,
		Latency:             0,
		Currency:            "KES",
	}
}

func TestGateway_AlwaysSucceedingRates(t *testing.T) {
	gateway := NewWithSeed(instantConfig(1), 42)
	ctx := context.Background()

	initiation, err := gateway.InitiateMpesa(ctx, "254712345678", 150000, "ORD-1")
	require.NoError(t, err)
	assert.True(t, initiation.Success)
	assert.True(t, strings.HasPrefix(initiation.CheckoutRequestID, "ws_CO_"))
	assert.Equal(t, "0", initiation.ResponseCode)
	assert.Contains(t, initiation.CustomerMessage, "254712345678")

	outcome, err := gateway.CheckMpesaStatus(ctx, initiation.CheckoutRequestID)
	require.NoError(t, err)
	assert.True(t, outcome.Completed())
	assert.True(t, strings.HasPrefix(outcome.TransactionID, "MP"))
	require.NotNil(t, outcome.PaidAt)

	intent, err := gateway.CreateCardIntent(ctx, 150000, "ORD-1")
	require.NoError(t, err)
	assert.True(t, intent.Success)
	assert.True(t, strings.HasPrefix(intent.IntentID, "pi_"))
	assert.Contains(t, intent.ClientSecret, "_secret_")
	assert.Equal(t, "requires_payment_method", intent.Status)

	confirm, err := gateway.ConfirmCardPayment(ctx, intent.IntentID, "pm_card_visa")
	require.NoError(t, err)
	assert.True(t, confirm.Completed())
	assert.Equal(t, intent.IntentID, confirm.IntentID)
}

func TestGateway_AlwaysFailingRates(t *testing.T) {
	gateway := NewWithSeed(instantConfig(0), 42)
	ctx := context.Background()

	initiation, err := gateway.InitiateMpesa(ctx, "254712345678", 150000, "ORD-1")
	require.NoError(t, err)
	assert.False(t, initiation.Success)
	assert.NotEmpty(t, initiation.CustomerMessage)

	outcome, err := gateway.CheckMpesaStatus(ctx, "ws_CO_1")
	require.NoError(t, err)
	assert.False(t, outcome.Completed())

	intent, err := gateway.CreateCardIntent(ctx, 150000, "ORD-1")
	require.NoError(t, err)
	assert.False(t, intent.Success)
	assert.NotEmpty(t, intent.Reason)

	confirm, err := gateway.ConfirmCardPayment(ctx, "pi_1", "pm_card_visa")
	require.NoError(t, err)
	assert.False(t, confirm.Completed())
	assert.Equal(t, "pi_1", confirm.IntentID)
}

func TestGateway_CancelledContext(t *testing.T) {
	gateway := New(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gateway.InitiateMpesa(ctx, "254712345678", 150000, "ORD-1")
	require.ErrorIs(t, err, context.Canceled)

	_, err = gateway.CheckMpesaStatus(ctx, "ws_CO_1")
	require.ErrorIs(t, err, context.Canceled)
}
