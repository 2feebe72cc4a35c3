package application

import (
	"errors"
	"fmt"

	"github.com/afyakit/pharmacy-api-server/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrTotalsMismatch) ||
		errors.Is(err, domain.ErrMissingShipping) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrTerminalStatus) ||
		errors.Is(err, domain.ErrPaymentSettled) ||
		errors.Is(err, domain.ErrInvalidPayMethod) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
