package errors

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrSchoolNotFound      = errors.New("school not found")
	ErrSchoolAlreadyExists = errors.New("school already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidInput        = errors.New("invalid input")

	// Subscription errors
	ErrSubscriptionNotFound     = errors.New("subscription not found")
	ErrSubscriptionNotActive    = errors.New("subscription is not active")
	ErrActiveSubscriptionExists = errors.New("active subscription already exists")

	// Access code errors
	ErrAccessCodeNotFound = errors.New("access code not found")
	ErrAccessCodeConsumed = errors.New("access code was redeemed by another request")

	// Marketplace errors
	ErrTeacherNotFound        = errors.New("teacher not found")
	ErrProfileRequestNotFound = errors.New("profile request not found")
)

// NotFoundError wraps an error with not found context
type NotFoundError struct {
	Entity string
	ID     string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found: %v", e.Entity, e.ID, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ConflictError wraps an error with conflict context
type ConflictError struct {
	Entity string
	Reason string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s - %v", e.Entity, e.Reason, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
