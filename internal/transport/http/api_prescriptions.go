package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	prescmapper "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/adapters/http/mapper"
	prescports "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

// PrescriptionsAPI wires HTTP transport with the prescription validation workflow.
type PrescriptionsAPI struct {
	service prescports.Service
}

// NewPrescriptionsAPI creates a PrescriptionsAPI backed by the provided service.
func NewPrescriptionsAPI(service prescports.Service) PrescriptionsAPI {
	return PrescriptionsAPI{service: service}
}

// Post /v1/orders/:orderId/prescriptions
// Register an uploaded prescription file against an order
func (api *PrescriptionsAPI) UploadPrescription(c *gin.Context) {
	var payload prescmapper.UploadRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	file, err := api.service.Upload(c.Request.Context(), c.Param("orderId"), payload.FileName, payload.FileSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prescmapper.FromDomainFile(file))
}

// Put /v1/prescriptions/:prescriptionId/validation
// Record a pharmacist's verdict on a pending prescription
func (api *PrescriptionsAPI) ValidatePrescription(c *gin.Context) {
	actor := actorFrom(c)
	if actor == nil {
		respondError(c, http.StatusUnauthorized, errors.New("prescription validation requires an authenticated reviewer"))
		return
	}
	var payload prescmapper.ValidationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	reviewer := prescports.Reviewer{ID: actor.ID, Name: actor.Name}
	file, err := api.service.Validate(c.Request.Context(), c.Param("prescriptionId"), prescmapper.ToDecision(payload), reviewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prescmapper.FromDomainFile(file))
}

// Get /v1/prescriptions/pending
// List prescriptions awaiting validation
func (api *PrescriptionsAPI) ListPending(c *gin.Context) {
	files, err := api.service.ListPending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prescmapper.FromDomainFiles(files))
}
