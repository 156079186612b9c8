package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/evaluator"
	"github.com/bivex/school-access/internal/domain/valueobject"
)

// Subscription is a school's paid or trial access window. EndAt is nil
// for recurring plans with no fixed end.
type Subscription struct {
	ID           uuid.UUID
	SchoolID     uuid.UUID
	Status       valueobject.SubscriptionStatus
	Plan         valueobject.PlanType
	StartedAt    *time.Time
	EndAt        *time.Time
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewSubscription creates an active subscription for a school
func NewSubscription(schoolID uuid.UUID, plan valueobject.PlanType, startedAt time.Time, endAt *time.Time) *Subscription {
	now := time.Now()
	return &Subscription{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		Status:    valueobject.StatusActive,
		Plan:      plan,
		StartedAt: &startedAt,
		EndAt:     endAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTrialSubscription creates the 24-hour trial granted by an access code
func NewTrialSubscription(schoolID uuid.UUID, activatedAt time.Time, window time.Duration) *Subscription {
	end := activatedAt.Add(window)
	now := time.Now()
	return &Subscription{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		Status:    valueobject.StatusTrial,
		Plan:      valueobject.PlanTrialAccess,
		StartedAt: &activatedAt,
		EndAt:     &end,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsCurrent returns true if the subscription still grants access at now
func (s *Subscription) IsCurrent(now time.Time) bool {
	if s.DeletedAt != nil {
		return false
	}
	if !s.Status.GrantsAccess() {
		return false
	}
	return s.EndAt == nil || s.EndAt.After(now)
}

// HasLapsed returns true if a fixed end has passed but the stored
// status has not caught up yet. The worker sweep uses this to flip
// the stored row to expired.
func (s *Subscription) HasLapsed(now time.Time) bool {
	if !s.Status.GrantsAccess() {
		return false
	}
	return s.EndAt != nil && !s.EndAt.After(now)
}

// Cancel marks the subscription canceled with the school's stated reason
func (s *Subscription) Cancel(reason string, now time.Time) {
	s.Status = valueobject.StatusCanceled
	s.CancelReason = reason
	s.UpdatedAt = now
}

// Snapshot renders the subscription in the evaluator's wire form
func (s *Subscription) Snapshot() evaluator.Snapshot {
	snap := evaluator.Snapshot{
		Status: s.Status.String(),
		Plan:   s.Plan.String(),
	}
	if s.StartedAt != nil {
		snap.StartedAt = s.StartedAt.UTC().Format(time.RFC3339)
	}
	if s.EndAt != nil {
		snap.EndAt = s.EndAt.UTC().Format(time.RFC3339)
	}
	return snap
}

// EffectiveSnapshot renders the subscription as it stands at now. A
// lapsed window reads as expired even before the sweep catches the
// stored status up.
func (s *Subscription) EffectiveSnapshot(now time.Time) evaluator.Snapshot {
	snap := s.Snapshot()
	if s.HasLapsed(now) {
		snap.Status = valueobject.StatusExpired.String()
	}
	return snap
}

// EmptySnapshot is the snapshot for a school with no subscription row
func EmptySnapshot() evaluator.Snapshot {
	return evaluator.Snapshot{Status: valueobject.StatusNone.String()}
}
