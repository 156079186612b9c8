package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProfileRequestStatus tracks the back-office review of a contact request
type ProfileRequestStatus string

const (
	RequestPending  ProfileRequestStatus = "pending"
	RequestApproved ProfileRequestStatus = "approved"
	RequestDeclined ProfileRequestStatus = "declined"
)

var ErrRequestAlreadyResolved = errors.New("profile request has already been resolved")

// ProfileRequest is a school asking to contact a listed teacher
type ProfileRequest struct {
	ID        uuid.UUID
	SchoolID  uuid.UUID
	TeacherID uuid.UUID
	Status    ProfileRequestStatus
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfileRequest creates a pending request
func NewProfileRequest(schoolID, teacherID uuid.UUID, message string) *ProfileRequest {
	now := time.Now()
	return &ProfileRequest{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		TeacherID: teacherID,
		Status:    RequestPending,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Resolve moves a pending request to approved or declined
func (r *ProfileRequest) Resolve(status ProfileRequestStatus, now time.Time) error {
	if r.Status != RequestPending {
		return ErrRequestAlreadyResolved
	}
	r.Status = status
	r.UpdatedAt = now
	return nil
}
