package domain

import "time"

// EntityType identifies the kind of record an audit entry refers to.
type EntityType string

const (
	EntityOrder        EntityType = "order"
	EntityPrescription EntityType = "prescription"
	EntityProduct      EntityType = "product"
	EntityUser         EntityType = "user"
)

// Actor is the identity a change is attributed to.
type Actor struct {
	ID   string
	Name string
}

// Entry is one immutable line of the audit trail: what changed, who changed
// it, and the before/after snapshots. Entries are never mutated or deleted.
type Entry struct {
	ID         string
	Actor      Actor
	Action     string
	EntityType EntityType
	EntityID   string
	OldValue   map[string]any
	NewValue   map[string]any
	Timestamp  time.Time
	IPAddress  string
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	clone := *e
	clone.OldValue = cloneValues(e.OldValue)
	clone.NewValue = cloneValues(e.NewValue)
	return &clone
}

func cloneValues(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return copied
}
