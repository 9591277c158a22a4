package services

import (
	"errors"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrServiceInUse    = errors.New("service in use")
	ErrCustomerInUse   = errors.New("customer in use")
	ErrCapacityReached = errors.New("capacity reached")

	ErrNotificationNotConfigured = errors.New("notification bot token and chat id are required")
)

// ValidationError lists the fields that made a create or update request invalid.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) missing(field string) { e.Missing = append(e.Missing, field) }
func (e *ValidationError) invalid(field string) { e.Invalid = append(e.Invalid, field) }

// err returns nil when nothing was recorded.
func (e *ValidationError) err() error {
	if len(e.Missing) == 0 && len(e.Invalid) == 0 {
		return nil
	}
	return e
}
