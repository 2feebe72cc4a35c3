// Package httpapi exposes the order lifecycle engine over HTTP using gin.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route binds an HTTP method and path to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handler sets wired into the router.
type ApiHandleFunctions struct {
	OrdersAPI        OrdersAPI
	PaymentsAPI      PaymentsAPI
	PrescriptionsAPI PrescriptionsAPI
	AuditAPI         AuditAPI
}

// NewRouter returns a new gin engine with all routes registered.
func NewRouter(handlers ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handlers)
}

// NewRouterWithGinEngine registers all routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handlers ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

func defaultFunc(c *gin.Context) {}

func getRoutes(handlers ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "CreateOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			HandlerFunc: handlers.OrdersAPI.CreateOrder,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders",
			HandlerFunc: handlers.OrdersAPI.ListOrders,
		},
		{
			Name:        "GetOrder",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handlers.OrdersAPI.GetOrder,
		},
		{
			Name:        "UpdateOrderStatus",
			Method:      http.MethodPut,
			Pattern:     "/v1/orders/:orderId/status",
			HandlerFunc: handlers.OrdersAPI.UpdateOrderStatus,
		},
		{
			Name:        "InitiatePayment",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders/:orderId/payments",
			HandlerFunc: handlers.PaymentsAPI.InitiatePayment,
		},
		{
			Name:        "PollPayment",
			Method:      http.MethodPost,
			Pattern:     "/v1/payments/poll",
			HandlerFunc: handlers.PaymentsAPI.PollPayment,
		},
		{
			Name:        "ConfirmCardPayment",
			Method:      http.MethodPost,
			Pattern:     "/v1/payments/confirm",
			HandlerFunc: handlers.PaymentsAPI.ConfirmCardPayment,
		},
		{
			Name:        "UploadPrescription",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders/:orderId/prescriptions",
			HandlerFunc: handlers.PrescriptionsAPI.UploadPrescription,
		},
		{
			Name:        "ValidatePrescription",
			Method:      http.MethodPut,
			Pattern:     "/v1/prescriptions/:prescriptionId/validation",
			HandlerFunc: handlers.PrescriptionsAPI.ValidatePrescription,
		},
		{
			Name:        "ListPendingPrescriptions",
			Method:      http.MethodGet,
			Pattern:     "/v1/prescriptions/pending",
			HandlerFunc: handlers.PrescriptionsAPI.ListPending,
		},
		{
			Name:        "GetAuditTrail",
			Method:      http.MethodGet,
			Pattern:     "/v1/audit/:entityType",
			HandlerFunc: handlers.AuditAPI.GetTrail,
		},
	}
}
