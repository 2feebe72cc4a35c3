package application

import (
	"errors"
	"fmt"

	"github.com/afyakit/pharmacy-api-server/internal/domains/prescriptions/domain"
)

var (
	// ErrInvalidInput signals the request violated a workflow invariant.
	ErrInvalidInput = errors.New("invalid prescription input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidFileSize) ||
		errors.Is(err, domain.ErrMissingFileName) ||
		errors.Is(err, domain.ErrAlreadyValidated) ||
		errors.Is(err, domain.ErrMissingDoctorDetails) ||
		errors.Is(err, domain.ErrMissingRejectionReason) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
