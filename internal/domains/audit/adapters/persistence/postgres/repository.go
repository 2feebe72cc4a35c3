package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/audit/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the append-only audit trail in PostgreSQL. Rows are only ever
// inserted; there is no update or delete path.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&auditRecord{})
	}
	return repo
}

// Value snapshots are stored as JSON: they are opaque to every query and only
// ever read back whole.
type auditRecord struct {
	Seq        int64          `gorm:"column:seq;autoIncrement;uniqueIndex"`
	ID         string         `gorm:"primaryKey;column:id"`
	ActorID    string         `gorm:"column:actor_id;index"`
	ActorName  string         `gorm:"column:actor_name"`
	Action     string         `gorm:"column:action"`
	EntityType string         `gorm:"column:entity_type;type:varchar(32);index:idx_audit_entity"`
	EntityID   string         `gorm:"column:entity_id;index:idx_audit_entity"`
	OldValue   map[string]any `gorm:"column:old_value;serializer:json"`
	NewValue   map[string]any `gorm:"column:new_value;serializer:json"`
	Timestamp  time.Time      `gorm:"column:timestamp;index"`
	IPAddress  string         `gorm:"column:ip_address"`
}

func (auditRecord) TableName() string { return "audit_log" }

func (r *Repository) Append(ctx context.Context, entry *domain.Entry) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if entry == nil {
		return errors.New("audit entry is nil")
	}
	return r.db.WithContext(ctx).Create(toRecord(entry)).Error
}

func (r *Repository) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID string) ([]*domain.Entry, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&auditRecord{})
	if entityType != "" {
		query = query.Where("entity_type = ?", string(entityType))
	}
	if entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}
	var rows []auditRecord
	if err := query.Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]*domain.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, toDomain(&rows[i]))
	}
	return entries, nil
}

func toRecord(entry *domain.Entry) *auditRecord {
	return &auditRecord{
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

func toDomain(row *auditRecord) *domain.Entry {
	return &domain.Entry{
		ID:         row.ID,
		Actor:      domain.Actor{ID: row.ActorID, Name: row.ActorName},
		Action:     row.Action,
		EntityType: domain.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		OldValue:   row.OldValue,
		NewValue:   row.NewValue,
		Timestamp:  row.Timestamp,
		IPAddress:  row.IPAddress,
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres audit repository not configured")
	}
	return nil
}
