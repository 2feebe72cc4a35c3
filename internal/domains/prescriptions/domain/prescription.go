package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates prescription review states. Pending moves exactly once to
// approved or rejected. Expired is declared for forward compatibility but no
// expiry sweep exists yet, so nothing transitions into it.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

var (
	ErrInvalidFileSize       = errors.New("file size must not be negative")
	ErrMissingFileName       = errors.New("file name is required")
	ErrAlreadyValidated      = errors.New("prescription has already been validated")
	ErrMissingDoctorDetails  = errors.New("approval requires doctor name, license number, and expiry date")
	ErrMissingRejectionReason = errors.New("rejection requires a reason")
)

// File is an uploaded prescription record. The blob itself lives in external
// storage; this tracks the review workflow around it.
type File struct {
	ID              string
	OrderID         string
	FileName        string
	FileSize        int64
	UploadedAt      time.Time
	Status          Status
	ValidatedBy     string
	ValidatedAt     *time.Time
	DoctorName      string
	LicenseNumber   string
	ExpiryDate      string
	RejectionReason string
}

// Decision is a reviewer's verdict on a pending prescription.
type Decision struct {
	Approve         bool
	DoctorName      string
	LicenseNumber   string
	ExpiryDate      string
	RejectionReason string
}

// NewFile validates and constructs a pending prescription record.
func NewFile(id, orderID, fileName string, fileSize int64, now time.Time) (*File, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, ErrMissingFileName
	}
	if fileSize < 0 {
		return nil, ErrInvalidFileSize
	}
	return &File{
		ID:         id,
		OrderID:    orderID,
		FileName:   fileName,
		FileSize:   fileSize,
		UploadedAt: now,
		Status:     StatusPending,
	}, nil
}

// ApplyDecision mutates the record exactly once. Approval carries the doctor
// details; rejection carries a reason. Re-validation of a non-pending record
// is rejected rather than silently overwritten.
func (f *File) ApplyDecision(decision Decision, reviewerName string, now time.Time) error {
	if f.Status != StatusPending {
		return ErrAlreadyValidated
	}
	if decision.Approve {
		if strings.TrimSpace(decision.DoctorName) == "" ||
			strings.TrimSpace(decision.LicenseNumber) == "" ||
			strings.TrimSpace(decision.ExpiryDate) == "" {
			return ErrMissingDoctorDetails
		}
		f.Status = StatusApproved
		f.DoctorName = decision.DoctorName
		f.LicenseNumber = decision.LicenseNumber
		f.ExpiryDate = decision.ExpiryDate
	} else {
		if strings.TrimSpace(decision.RejectionReason) == "" {
			return ErrMissingRejectionReason
		}
		f.Status = StatusRejected
		f.RejectionReason = decision.RejectionReason
	}
	f.ValidatedBy = reviewerName
	validatedAt := now
	f.ValidatedAt = &validatedAt
	return nil
}

// Clone returns a deep copy of the record.
func (f *File) Clone() *File {
	clone := *f
	if f.ValidatedAt != nil {
		validatedAt := *f.ValidatedAt
		clone.ValidatedAt = &validatedAt
	}
	return &clone
}
