//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/afyakit/pharmacy-api-server/test/pact"

	auditmemory "github.com/afyakit/pharmacy-api-server/internal/domains/audit/adapters/memory"
	auditapp "github.com/afyakit/pharmacy-api-server/internal/domains/audit/application"
	notifmemory "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/adapters/memory"
	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/adapters/simulated"
	notifapp "github.com/afyakit/pharmacy-api-server/internal/domains/notifications/application"
	ordersauditlog "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/auditlog"
	ordersmemory "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/afyakit/pharmacy-api-server/internal/domains/orders/adapters/notify"
	ordersapp "github.com/afyakit/pharmacy-api-server/internal/domains/orders/application"
	ordersdomain "github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/payments/adapters/mock"
	prescauditlog "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/auditlog"
	prescmemory "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/memory"
	prescnotify "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/notify"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/orderdir"
	prescapp "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/application"
	httpapi "github.com/afyakit/pharmacy-api-server/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestPharmacyProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		// Orders are never deleted, so a missing id simply stays unseeded.
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *ordersmemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	ordersRepo := ordersmemory.NewRepository()
	dispatcher := notifapp.NewDispatcher(notifmemory.NewRepository(), simulated.NewAlwaysSucceeding(), notifapp.WithLogger(quiet))
	recorder := auditapp.NewRecorder(auditmemory.NewRepository())

	gatewayCfg := mock.DefaultConfig()
	gatewayCfg.Latency = 0
	gateway := mock.NewWithSeed(gatewayCfg, 1)

	ordersService := ordersapp.NewService(
		ordersRepo,
		gateway,
		ordersnotify.New(dispatcher),
		ordersauditlog.New(recorder),
		ordersapp.WithLogger(quiet),
	)
	prescService := prescapp.NewService(
		prescmemory.NewRepository(),
		orderdir.New(ordersRepo),
		prescnotify.New(dispatcher),
		prescauditlog.New(recorder),
		prescapp.WithLogger(quiet),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router = httpapi.NewRouterWithGinEngine(router, httpapi.ApiHandleFunctions{
		OrdersAPI:        httpapi.NewOrdersAPI(ordersService),
		PaymentsAPI:      httpapi.NewPaymentsAPI(ordersService, nil),
		PrescriptionsAPI: httpapi.NewPrescriptionsAPI(prescService),
		AuditAPI:         httpapi.NewAuditAPI(recorder),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   ordersRepo,
		server: server,
	}
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	order, err := ordersdomain.NewOrder(id, "USER-pact",
		[]ordersdomain.OrderItem{{ProductID: "PROD-1", ProductName: "Paracetamol 500mg", Quantity: 2, UnitPrice: 25000}},
		ordersdomain.ShippingInfo{
			FullName:   "Jane Wanjiku",
			Email:      "jane@example.com",
			Phone:      "254712345678",
			Address:    "12 Riverside Drive",
			City:       "Nairobi",
			PostalCode: "00100",
		},
		ordersdomain.PaymentInfo{Method: ordersdomain.MethodMpesa, Status: ordersdomain.PaymentPending, Amount: 52000, Currency: "KES"},
		50000, 2000, 52000, time.Now().UTC())
	require.NoError(t, err)
	_, err = a.repo.Save(context.Background(), order)
	require.NoError(t, err)
}
