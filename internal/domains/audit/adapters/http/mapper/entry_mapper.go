package mapper

import (
	"time"

	auditdomain "github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
)

// Entry is the transport-layer audit trail line.
type Entry struct {
	ID         string         `json:"id"`
	ActorID    string         `json:"actorId"`
	ActorName  string         `json:"actorName"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	OldValue   map[string]any `json:"oldValue,omitempty"`
	NewValue   map[string]any `json:"newValue,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	IPAddress  string         `json:"ipAddress,omitempty"`
}

// FromDomainEntry converts a domain audit entry to the transport shape.
func FromDomainEntry(entry *auditdomain.Entry) Entry {
	if entry == nil {
		return Entry{}
	}
	return Entry{
		ID:         entry.ID,
		ActorID:    entry.Actor.ID,
		ActorName:  entry.Actor.Name,
		Action:     entry.Action,
		EntityType: string(entry.EntityType),
		EntityID:   entry.EntityID,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		Timestamp:  entry.Timestamp,
		IPAddress:  entry.IPAddress,
	}
}

// FromDomainEntries converts a list of domain audit entries.
func FromDomainEntries(entries []*auditdomain.Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, FromDomainEntry(entry))
	}
	return result
}
