package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists prescription records in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&prescriptionRecord{})
	}
	return repo
}

type prescriptionRecord struct {
	ID              string     `gorm:"primaryKey;column:id"`
	OrderID         string     `gorm:"column:order_id;index"`
	FileName        string     `gorm:"column:file_name"`
	FileSize        int64      `gorm:"column:file_size"`
	UploadedAt      time.Time  `gorm:"column:uploaded_at;index"`
	Status          string     `gorm:"column:status;type:varchar(16);index"`
	ValidatedBy     string     `gorm:"column:validated_by"`
	ValidatedAt     *time.Time `gorm:"column:validated_at"`
	DoctorName      string     `gorm:"column:doctor_name"`
	LicenseNumber   string     `gorm:"column:license_number"`
	ExpiryDate      string     `gorm:"column:expiry_date"`
	RejectionReason string     `gorm:"column:rejection_reason"`
}

func (prescriptionRecord) TableName() string { return "prescriptions" }

func (r *Repository) Save(ctx context.Context, file *domain.File) (*domain.File, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, errors.New("prescription file is nil")
	}
	record := toRecord(file)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":           record.Status,
				"validated_by":     record.ValidatedBy,
				"validated_at":     record.ValidatedAt,
				"doctor_name":      record.DoctorName,
				"license_number":   record.LicenseNumber,
				"expiry_date":      record.ExpiryDate,
				"rejection_reason": record.RejectionReason,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.File, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record prescriptionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]*domain.File, error) {
	return r.list(ctx, "order_id = ?", orderID)
}

func (r *Repository) ListPending(ctx context.Context) ([]*domain.File, error) {
	return r.list(ctx, "status = ?", string(domain.StatusPending))
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]*domain.File, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []prescriptionRecord
	if err := r.db.WithContext(ctx).Where(query, arg).Order("uploaded_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	files := make([]*domain.File, 0, len(records))
	for i := range records {
		files = append(files, records[i].toDomain())
	}
	return files, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres prescription repository not configured")
	}
	return nil
}

func toRecord(file *domain.File) prescriptionRecord {
	return prescriptionRecord{
		ID:              file.ID,
		OrderID:         file.OrderID,
		FileName:        file.FileName,
		FileSize:        file.FileSize,
		UploadedAt:      file.UploadedAt,
		Status:          string(file.Status),
		ValidatedBy:     file.ValidatedBy,
		ValidatedAt:     file.ValidatedAt,
		DoctorName:      file.DoctorName,
		LicenseNumber:   file.LicenseNumber,
		ExpiryDate:      file.ExpiryDate,
		RejectionReason: file.RejectionReason,
	}
}

func (record prescriptionRecord) toDomain() *domain.File {
	return &domain.File{
		ID:              record.ID,
		OrderID:         record.OrderID,
		FileName:        record.FileName,
		FileSize:        record.FileSize,
		UploadedAt:      record.UploadedAt,
		Status:          domain.Status(record.Status),
		ValidatedBy:     record.ValidatedBy,
		ValidatedAt:     record.ValidatedAt,
		DoctorName:      record.DoctorName,
		LicenseNumber:   record.LicenseNumber,
		ExpiryDate:      record.ExpiryDate,
		RejectionReason: record.RejectionReason,
	}
}
