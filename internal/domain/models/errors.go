package models

import (
	"fmt"
	"github.com/pkg/errors"
)

var (
	ErrConnection          = errors.New("store connection failed")
	ErrValidation          = errors.New("invalid listing")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// ValidationError rejects a single raw listing.
type ValidationError struct {
	ListingID string
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("listing %q: field %s: %s", e.ListingID, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StoreError carries one of ErrConnection, ErrConstraintViolation or ErrStoreUnavailable
// together with the driver error that caused it.
type StoreError struct {
	Kind error
	Op   string
	Err  error
}

func NewStoreError(kind error, op string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
