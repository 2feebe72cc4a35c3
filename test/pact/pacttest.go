//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pharmacy-api"
	ConsumerName = "pharmacy-storefront"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order with id ORD-301 exists"
	StateOrderMissing   = "no order with id ORD-404"
)

const (
	ExistingOrderID = "ORD-301"
	MissingOrderID  = "ORD-404"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCheckoutPayload provides stable checkout data for pact interactions.
func ExampleCheckoutPayload() map[string]any {
	return map[string]any{
		"userId": "USER-pact",
		"items": []map[string]any{
			{"productId": "PROD-1", "name": "Paracetamol 500mg", "quantity": 2, "price": 25000},
		},
		"shippingInfo": map[string]any{
			"fullName":   "Jane Wanjiku",
			"email":      "jane@example.com",
			"phone":      "254712345678",
			"address":    "12 Riverside Drive",
			"city":       "Nairobi",
			"postalCode": "00100",
		},
		"paymentMethod": "mpesa",
		"mpesaPhone":    "254712345678",
		"totalAmount":   50000,
		"deliveryFee":   2000,
		"finalTotal":    52000,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
