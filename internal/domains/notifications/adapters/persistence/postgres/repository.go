package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the append-only notification log in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&notificationRecord{})
	}
	return repo
}

type notificationRecord struct {
	Seq     int64     `gorm:"column:seq;autoIncrement;uniqueIndex"`
	ID      string    `gorm:"primaryKey;column:id"`
	To      string    `gorm:"column:to_address"`
	Subject string    `gorm:"column:subject"`
	Content string    `gorm:"column:content;type:text"`
	Type    string    `gorm:"column:type;type:varchar(32);index"`
	OrderID string    `gorm:"column:order_id;index"`
	SentAt  time.Time `gorm:"column:sent_at"`
	Status  string    `gorm:"column:status;type:varchar(16)"`
}

func (notificationRecord) TableName() string { return "notifications" }

func (r *Repository) Append(ctx context.Context, record *domain.Record) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if record == nil {
		return errors.New("notification record is nil")
	}
	row := notificationRecord{
		ID:      record.ID,
		To:      record.To,
		Subject: record.Subject,
		Content: record.Content,
		Type:    string(record.Type),
		OrderID: record.OrderID,
		SentAt:  record.SentAt,
		Status:  string(record.Status),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) List(ctx context.Context) ([]*domain.Record, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rows []notificationRecord
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]*domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, &domain.Record{
			ID:      row.ID,
			To:      row.To,
			Subject: row.Subject,
			Content: row.Content,
			Type:    domain.Type(row.Type),
			OrderID: row.OrderID,
			SentAt:  row.SentAt,
			Status:  domain.Status(row.Status),
		})
	}
	return records, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres notification repository not configured")
	}
	return nil
}
