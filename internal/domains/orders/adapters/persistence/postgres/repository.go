package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table. Line items are
// stored as a JSON snapshot: they are immutable after creation and only ever
// read back whole.
type orderRecord struct {
	ID                   string             `gorm:"primaryKey;column:id"`
	UserID               string             `gorm:"column:user_id;index"`
	Items                []itemRecord       `gorm:"column:items;serializer:json"`
	ShipFullName         string             `gorm:"column:ship_full_name"`
	ShipEmail            string             `gorm:"column:ship_email"`
	ShipPhone            string             `gorm:"column:ship_phone"`
	ShipAddress          string             `gorm:"column:ship_address"`
	ShipCity             string             `gorm:"column:ship_city"`
	ShipPostalCode       string             `gorm:"column:ship_postal_code"`
	PaymentMethod        string             `gorm:"column:payment_method;type:varchar(16)"`
	PaymentStatus        string             `gorm:"column:payment_status;type:varchar(16);index"`
	PaymentTransactionID string             `gorm:"column:payment_transaction_id"`
	PaymentMpesaPhone    string             `gorm:"column:payment_mpesa_phone"`
	PaymentCardIntentID  string             `gorm:"column:payment_card_intent_id"`
	PaymentAmount        int64              `gorm:"column:payment_amount"`
	PaymentCurrency      string             `gorm:"column:payment_currency;type:varchar(8)"`
	PaymentPaidAt        *time.Time         `gorm:"column:payment_paid_at"`
	Status               string             `gorm:"column:status;type:varchar(16);index"`
	TotalAmount          int64              `gorm:"column:total_amount"`
	DeliveryFee          int64              `gorm:"column:delivery_fee"`
	FinalTotal           int64              `gorm:"column:final_total"`
	DeliveryInstructions string             `gorm:"column:delivery_instructions"`
	PrescriptionFiles    pq.StringArray     `gorm:"column:prescription_files;type:text[]"`
	CreatedAt            time.Time          `gorm:"column:created_at;index"`
	UpdatedAt            time.Time          `gorm:"column:updated_at"`
}

type itemRecord struct {
	ProductID            string `json:"productId"`
	ProductName          string `json:"productName"`
	ProductImage         string `json:"productImage"`
	Quantity             int32  `json:"quantity"`
	UnitPrice            int64  `json:"unitPrice"`
	RequiresPrescription bool   `json:"requiresPrescription"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order. Only the mutable columns are assigned on
// conflict; item and shipping snapshots stay as written at creation.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":                 record.Status,
				"payment_method":         record.PaymentMethod,
				"payment_status":         record.PaymentStatus,
				"payment_transaction_id": record.PaymentTransactionID,
				"payment_mpesa_phone":    record.PaymentMpesaPhone,
				"payment_card_intent_id": record.PaymentCardIntentID,
				"payment_paid_at":        record.PaymentPaidAt,
				"updated_at":             record.UpdatedAt,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders, oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]itemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemRecord{
			ProductID:            item.ProductID,
			ProductName:          item.ProductName,
			ProductImage:         item.ProductImage,
			Quantity:             item.Quantity,
			UnitPrice:            int64(item.UnitPrice),
			RequiresPrescription: item.RequiresPrescription,
		})
	}
	return orderRecord{
		ID:                   order.ID,
		UserID:               order.UserID,
		Items:                items,
		ShipFullName:         order.ShippingInfo.FullName,
		ShipEmail:            order.ShippingInfo.Email,
		ShipPhone:            order.ShippingInfo.Phone,
		ShipAddress:          order.ShippingInfo.Address,
		ShipCity:             order.ShippingInfo.City,
		ShipPostalCode:       order.ShippingInfo.PostalCode,
		PaymentMethod:        string(order.PaymentInfo.Method),
		PaymentStatus:        string(order.PaymentInfo.Status),
		PaymentTransactionID: order.PaymentInfo.TransactionID,
		PaymentMpesaPhone:    order.PaymentInfo.MpesaPhone,
		PaymentCardIntentID:  order.PaymentInfo.CardIntentID,
		PaymentAmount:        int64(order.PaymentInfo.Amount),
		PaymentCurrency:      order.PaymentInfo.Currency,
		PaymentPaidAt:        order.PaymentInfo.PaidAt,
		Status:               string(order.Status),
		TotalAmount:          int64(order.TotalAmount),
		DeliveryFee:          int64(order.DeliveryFee),
		FinalTotal:           int64(order.FinalTotal),
		DeliveryInstructions: order.DeliveryInstructions,
		PrescriptionFiles:    pq.StringArray(order.PrescriptionFiles),
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

func (record orderRecord) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, domain.OrderItem{
			ProductID:            item.ProductID,
			ProductName:          item.ProductName,
			ProductImage:         item.ProductImage,
			Quantity:             item.Quantity,
			UnitPrice:            domain.Money(item.UnitPrice),
			RequiresPrescription: item.RequiresPrescription,
		})
	}
	return &domain.Order{
		ID:     record.ID,
		UserID: record.UserID,
		Items:  items,
		ShippingInfo: domain.ShippingInfo{
			FullName:   record.ShipFullName,
			Email:      record.ShipEmail,
			Phone:      record.ShipPhone,
			Address:    record.ShipAddress,
			City:       record.ShipCity,
			PostalCode: record.ShipPostalCode,
		},
		PaymentInfo: domain.PaymentInfo{
			Method:        domain.PaymentMethod(record.PaymentMethod),
			Status:        domain.PaymentStatus(record.PaymentStatus),
			TransactionID: record.PaymentTransactionID,
			MpesaPhone:    record.PaymentMpesaPhone,
			CardIntentID:  record.PaymentCardIntentID,
			Amount:        domain.Money(record.PaymentAmount),
			Currency:      record.PaymentCurrency,
			PaidAt:        record.PaymentPaidAt,
		},
		Status:               domain.OrderStatus(record.Status),
		TotalAmount:          domain.Money(record.TotalAmount),
		DeliveryFee:          domain.Money(record.DeliveryFee),
		FinalTotal:           domain.Money(record.FinalTotal),
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
		DeliveryInstructions: record.DeliveryInstructions,
		PrescriptionFiles:    []string(record.PrescriptionFiles),
	}
}
