package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrice is returned when no in-range price could be found in a document
	ErrNoPrice = errors.New("no valid price found")

	// ErrUnknownCaliber is returned when no canonical caliber matched the document
	ErrUnknownCaliber = errors.New("unknown caliber")

	// ErrPriceOutOfRange is returned when the parsed price falls outside the domain-valid band
	ErrPriceOutOfRange = errors.New("price outside valid range")

	// ErrZeroQuantity guards the price-per-round division; defaults should make this unreachable
	ErrZeroQuantity = errors.New("quantity resolved to zero")

	// ErrLowConfidence is returned when an extraction scores below the persist threshold
	ErrLowConfidence = errors.New("confidence below threshold")

	// ErrDuplicateDeal is returned when a deal with the same message ID was already stored
	ErrDuplicateDeal = errors.New("deal already recorded for message")

	// ErrRetailerNotFound is returned when a referenced retailer does not exist
	ErrRetailerNotFound = errors.New("retailer not found")

	// ErrRateLimited is returned when a client exceeds the per-IP rate limit
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RejectedRecordError is the typed negative result of extraction. It is not
// an exceptional condition: callers consume it to skip the document and move
// on with the batch.
type RejectedRecordError struct {
	Reason error
	Detail string
}

func (e *RejectedRecordError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("record rejected: %v", e.Reason)
	}
	return fmt.Sprintf("record rejected: %v (%s)", e.Reason, e.Detail)
}

func (e *RejectedRecordError) Unwrap() error { return e.Reason }

// Reject wraps a sentinel rejection reason with optional detail.
func Reject(reason error, detail string) *RejectedRecordError {
	return &RejectedRecordError{Reason: reason, Detail: detail}
}

// IsRejection reports whether err is a normal extraction rejection as opposed
// to an unexpected failure.
func IsRejection(err error) bool {
	var rejected *RejectedRecordError
	return errors.As(err, &rejected)
}
