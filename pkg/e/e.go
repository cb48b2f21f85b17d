package e

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrAlreadyProcessed  = errors.New("payment already processed")
	ErrAmountMismatch    = errors.New("amount mismatch")
	ErrSignatureMismatch = errors.New("invalid signature")
	ErrMissingFields     = errors.New("missing required fields")
)

func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
