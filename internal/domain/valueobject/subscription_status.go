package valueobject

import (
	"errors"
)

var (
	ErrInvalidSubscriptionStatus = errors.New("invalid subscription status")
)

type SubscriptionStatus string

const (
	StatusNone     SubscriptionStatus = "no_subscription"
	StatusTrial    SubscriptionStatus = "trial"
	StatusActive   SubscriptionStatus = "active"
	StatusExpired  SubscriptionStatus = "expired"
	StatusCanceled SubscriptionStatus = "canceled"
)

// NewSubscriptionStatus creates a new SubscriptionStatus value object
func NewSubscriptionStatus(status string) (SubscriptionStatus, error) {
	s := SubscriptionStatus(status)
	switch s {
	case StatusNone, StatusTrial, StatusActive, StatusExpired, StatusCanceled:
		return s, nil
	default:
		return "", ErrInvalidSubscriptionStatus
	}
}

// ParseSubscriptionStatus maps a raw status string to a known status.
// Unknown or empty input maps to StatusNone so downstream access
// decisions fail closed instead of failing on a garbage value.
func ParseSubscriptionStatus(status string) (SubscriptionStatus, bool) {
	s, err := NewSubscriptionStatus(status)
	if err != nil {
		return StatusNone, false
	}
	return s, true
}

// String returns the string representation of the status
func (s SubscriptionStatus) String() string {
	return string(s)
}

// GrantsAccess returns true if the status entitles the holder to
// protected content. Only active and trial qualify.
func (s SubscriptionStatus) GrantsAccess() bool {
	return s == StatusActive || s == StatusTrial
}

// IsTerminated returns true if the subscription is canceled or expired
func (s SubscriptionStatus) IsTerminated() bool {
	return s == StatusCanceled || s == StatusExpired
}
