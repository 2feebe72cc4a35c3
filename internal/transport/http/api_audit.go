package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	auditmapper "github.com/afyakit/pharmacy-api-server/internal/domains/audit/adapters/http/mapper"
	auditdomain "github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
)

// AuditTrail reads the recorded audit entries for an entity.
type AuditTrail interface {
	Trail(ctx context.Context, entityType auditdomain.EntityType, entityID string) ([]*auditdomain.Entry, error)
}

// AuditAPI wires HTTP transport with the audit trail.
type AuditAPI struct {
	trail AuditTrail
}

// NewAuditAPI creates an AuditAPI backed by the provided trail reader.
func NewAuditAPI(trail AuditTrail) AuditAPI {
	return AuditAPI{trail: trail}
}

var knownEntityTypes = map[auditdomain.EntityType]bool{
	auditdomain.EntityOrder:        true,
	auditdomain.EntityPrescription: true,
	auditdomain.EntityProduct:      true,
	auditdomain.EntityUser:         true,
}

// Get /v1/audit/:entityType
// Read the audit trail for an entity type, optionally filtered by ?entityId=
func (api *AuditAPI) GetTrail(c *gin.Context) {
	entityType := auditdomain.EntityType(c.Param("entityType"))
	if !knownEntityTypes[entityType] {
		respondError(c, http.StatusBadRequest, errors.New("unknown audit entity type"))
		return
	}
	entries, err := api.trail.Trail(c.Request.Context(), entityType, c.Query("entityId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, auditmapper.FromDomainEntries(entries))
}
