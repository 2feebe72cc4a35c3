package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/afyakit/pharmacy-api-server/internal/domains/orders/application"
	ordersports "github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
	prescapp "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/application"
	prescports "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
	apierrors "github.com/afyakit/pharmacy-api-server/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves status-first call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError translates application-layer errors from the order and
// prescription services into problem responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersports.ErrNotFound), errors.Is(err, prescports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput), errors.Is(err, prescapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
