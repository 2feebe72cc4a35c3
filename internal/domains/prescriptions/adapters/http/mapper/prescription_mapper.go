package mapper

import (
	"time"

	prescdomain "github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
)

// UploadRequest registers a prescription file against an order.
type UploadRequest struct {
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

// ValidationRequest carries a reviewer's verdict on a pending prescription.
type ValidationRequest struct {
	Approve         bool   `json:"approve"`
	DoctorName      string `json:"doctorName,omitempty"`
	LicenseNumber   string `json:"licenseNumber,omitempty"`
	ExpiryDate      string `json:"expiryDate,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// Prescription is the transport-layer prescription representation.
type Prescription struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"orderId"`
	FileName        string     `json:"fileName"`
	FileSize        int64      `json:"fileSize"`
	UploadedAt      time.Time  `json:"uploadedAt"`
	Status          string     `json:"status"`
	ValidatedBy     string     `json:"validatedBy,omitempty"`
	ValidatedAt     *time.Time `json:"validatedAt,omitempty"`
	DoctorName      string     `json:"doctorName,omitempty"`
	LicenseNumber   string     `json:"licenseNumber,omitempty"`
	ExpiryDate      string     `json:"expiryDate,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// ToDecision converts the validation payload into the domain decision.
func ToDecision(req ValidationRequest) prescdomain.Decision {
	return prescdomain.Decision{
		Approve:         req.Approve,
		DoctorName:      req.DoctorName,
		LicenseNumber:   req.LicenseNumber,
		ExpiryDate:      req.ExpiryDate,
		RejectionReason: req.RejectionReason,
	}
}

// FromDomainFile converts a domain prescription file to the transport shape.
func FromDomainFile(file *prescdomain.File) Prescription {
	if file == nil {
		return Prescription{}
	}
	return Prescription{
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

// FromDomainFiles converts a list of domain prescription files.
func FromDomainFiles(files []*prescdomain.File) []Prescription {
	result := make([]Prescription, 0, len(files))
	for _, file := range files {
		result = append(result, FromDomainFile(file))
	}
	return result
}
