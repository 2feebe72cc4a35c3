package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&prescriptionRecord{},
		&notificationRecord{},
		&auditRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                   string         `gorm:"primaryKey;column:id"`
	UserID               string         `gorm:"column:user_id;index"`
	Items                []itemRecord   `gorm:"column:items;serializer:json"`
	ShipFullName         string         `gorm:"column:ship_full_name"`
	ShipEmail            string         `gorm:"column:ship_email"`
	ShipPhone            string         `gorm:"column:ship_phone"`
	ShipAddress          string         `gorm:"column:ship_address"`
	ShipCity             string         `gorm:"column:ship_city"`
	ShipPostalCode       string         `gorm:"column:ship_postal_code"`
	PaymentMethod        string         `gorm:"column:payment_method;type:varchar(16)"`
	PaymentStatus        string         `gorm:"column:payment_status;type:varchar(16);index"`
	PaymentTransactionID string         `gorm:"column:payment_transaction_id"`
	PaymentMpesaPhone    string         `gorm:"column:payment_mpesa_phone"`
	PaymentCardIntentID  string         `gorm:"column:payment_card_intent_id"`
	PaymentAmount        int64          `gorm:"column:payment_amount"`
	PaymentCurrency      string         `gorm:"column:payment_currency;type:varchar(8)"`
	PaymentPaidAt        *time.Time     `gorm:"column:payment_paid_at"`
	Status               string         `gorm:"column:status;type:varchar(16);index"`
	TotalAmount          int64          `gorm:"column:total_amount"`
	DeliveryFee          int64          `gorm:"column:delivery_fee"`
	FinalTotal           int64          `gorm:"column:final_total"`
	DeliveryInstructions string         `gorm:"column:delivery_instructions"`
	PrescriptionFiles    pq.StringArray `gorm:"column:prescription_files;type:text[]"`
	CreatedAt            time.Time      `gorm:"column:created_at;index"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type itemRecord struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Prescription schema mirrors the prescriptions Postgres adapter.
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

// Notification schema mirrors the notifications Postgres adapter.
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

// Audit schema mirrors the audit Postgres adapter.
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
