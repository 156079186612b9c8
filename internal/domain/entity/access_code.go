package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AccessCodeValidityWindow is how long a redeemed trial code stays
// valid. The window is half-open: a code activated exactly 24h ago is
// already invalid.
const AccessCodeValidityWindow = 24 * time.Hour

// AccessCodeStatus represents the stored status of a trial access code
type AccessCodeStatus string

const (
	CodeStatusUnused  AccessCodeStatus = "unused"
	CodeStatusActive  AccessCodeStatus = "active"
	CodeStatusExpired AccessCodeStatus = "expired"
	CodeStatusRevoked AccessCodeStatus = "revoked"
)

var (
	ErrCodeAlreadyRedeemed = errors.New("access code has already been redeemed")
	ErrCodeRevoked         = errors.New("access code has been revoked")
	ErrCodeExpired         = errors.New("access code has expired")
)

// AccessCode is a one-time 24-hour trial credential issued by an admin.
// Expiry is derived from ActivatedAt, not stored as a transition; the
// worker sweep only catches the stored status up for reporting.
type AccessCode struct {
	ID          uuid.UUID
	Code        string
	Status      AccessCodeStatus
	IssuedBy    uuid.UUID
	SchoolID    *uuid.UUID
	ActivatedAt *time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// NewAccessCode creates an unused code issued by an admin
func NewAccessCode(code string, issuedBy uuid.UUID) *AccessCode {
	return &AccessCode{
		ID:        uuid.New(),
		Code:      code,
		Status:    CodeStatusUnused,
		IssuedBy:  issuedBy,
		CreatedAt: time.Now(),
	}
}

// Redeem stamps the activation on first use. A second redemption, a
// revoked code or a lapsed window all fail.
func (c *AccessCode) Redeem(schoolID uuid.UUID, now time.Time) error {
	switch c.Status {
	case CodeStatusRevoked:
		return ErrCodeRevoked
	case CodeStatusExpired:
		return ErrCodeExpired
	case CodeStatusActive:
		return ErrCodeAlreadyRedeemed
	}
	c.Status = CodeStatusActive
	c.SchoolID = &schoolID
	c.ActivatedAt = &now
	return nil
}

// Revoke terminates the code regardless of its state
func (c *AccessCode) Revoke(now time.Time) {
	c.Status = CodeStatusRevoked
	c.RevokedAt = &now
}

// IsValid reports whether the code grants access at now:
// activated, not revoked, and now < activated_at + 24h.
func (c *AccessCode) IsValid(now time.Time) bool {
	if c.Status != CodeStatusActive || c.ActivatedAt == nil {
		return false
	}
	return now.Sub(*c.ActivatedAt) < AccessCodeValidityWindow
}

// ExpiresAt returns when the redeemed window closes, nil if unredeemed
func (c *AccessCode) ExpiresAt() *time.Time {
	if c.ActivatedAt == nil {
		return nil
	}
	t := c.ActivatedAt.Add(AccessCodeValidityWindow)
	return &t
}

// EffectiveStatus derives the status at now. An active code whose
// window has elapsed reads as expired even before the sweep stores it.
func (c *AccessCode) EffectiveStatus(now time.Time) AccessCodeStatus {
	if c.Status == CodeStatusActive && !c.IsValid(now) {
		return CodeStatusExpired
	}
	return c.Status
}
