package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/valueobject"
)

func tp(t time.Time) *time.Time { return &t }

func TestNewSubscription(t *testing.T) {
	schoolID := uuid.New()
	started := time.Now()
	end := started.Add(30 * 24 * time.Hour)

	sub := entity.NewSubscription(schoolID, valueobject.PlanMonthly, started, &end)

	assert.Equal(t, schoolID, sub.SchoolID)
	assert.Equal(t, valueobject.StatusActive, sub.Status)
	assert.Equal(t, valueobject.PlanMonthly, sub.Plan)
	require.NotNil(t, sub.EndAt)
	assert.True(t, sub.EndAt.Equal(end))
}

func TestSubscription_IsCurrent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		status   valueobject.SubscriptionStatus
		endAt    *time.Time
		deleted  *time.Time
		expected bool
	}{
		{"active with future end", valueobject.StatusActive, tp(now.Add(time.Hour)), nil, true},
		{"trial with future end", valueobject.StatusTrial, tp(now.Add(time.Hour)), nil, true},
		{"active recurring without end", valueobject.StatusActive, nil, nil, true},
		{"active past end", valueobject.StatusActive, tp(now.Add(-time.Hour)), nil, false},
		{"canceled with future end", valueobject.StatusCanceled, tp(now.Add(time.Hour)), nil, false},
		{"expired", valueobject.StatusExpired, tp(now.Add(-time.Hour)), nil, false},
		{"soft deleted", valueobject.StatusActive, tp(now.Add(time.Hour)), tp(now), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &entity.Subscription{
				ID:        uuid.New(),
				SchoolID:  uuid.New(),
				Status:    tt.status,
				EndAt:     tt.endAt,
				DeletedAt: tt.deleted,
			}
			assert.Equal(t, tt.expected, sub.IsCurrent(now))
		})
	}
}

func TestSubscription_HasLapsed(t *testing.T) {
	now := time.Now()

	active := &entity.Subscription{Status: valueobject.StatusActive, EndAt: tp(now.Add(-time.Minute))}
	assert.True(t, active.HasLapsed(now))

	recurring := &entity.Subscription{Status: valueobject.StatusActive}
	assert.False(t, recurring.HasLapsed(now))

	alreadyExpired := &entity.Subscription{Status: valueobject.StatusExpired, EndAt: tp(now.Add(-time.Minute))}
	assert.False(t, alreadyExpired.HasLapsed(now))
}

func TestSubscription_Cancel(t *testing.T) {
	now := time.Now()
	end := now.Add(10 * 24 * time.Hour)
	sub := entity.NewSubscription(uuid.New(), valueobject.PlanYearly, now, &end)

	sub.Cancel("too expensive", now)

	assert.Equal(t, valueobject.StatusCanceled, sub.Status)
	assert.Equal(t, "too expensive", sub.CancelReason)
	assert.False(t, sub.IsCurrent(now))
}

func TestSubscription_Snapshot(t *testing.T) {
	started := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := started.Add(30 * 24 * time.Hour)
	sub := entity.NewSubscription(uuid.New(), valueobject.PlanMonthly, started, &end)

	snap := sub.Snapshot()
	assert.Equal(t, "active", snap.Status)
	assert.Equal(t, "monthly", snap.Plan)
	assert.Equal(t, "2025-06-01T00:00:00Z", snap.StartedAt)
	assert.Equal(t, "2025-07-01T00:00:00Z", snap.EndAt)

	empty := entity.EmptySnapshot()
	assert.Equal(t, "no_subscription", empty.Status)
	assert.Empty(t, empty.EndAt)
}

func TestSubscription_EffectiveSnapshot(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	lapsed := entity.NewSubscription(uuid.New(), valueobject.PlanMonthly, now.Add(-31*24*time.Hour), tp(now.Add(-time.Minute)))
	assert.Equal(t, "expired", lapsed.EffectiveSnapshot(now).Status)

	live := entity.NewSubscription(uuid.New(), valueobject.PlanMonthly, now, tp(now.Add(time.Hour)))
	assert.Equal(t, "active", live.EffectiveSnapshot(now).Status)

	recurring := entity.NewSubscription(uuid.New(), valueobject.PlanYearly, now, nil)
	assert.Equal(t, "active", recurring.EffectiveSnapshot(now).Status)
}

func TestNewTrialSubscription(t *testing.T) {
	activated := time.Now()
	sub := entity.NewTrialSubscription(uuid.New(), activated, entity.AccessCodeValidityWindow)

	assert.Equal(t, valueobject.StatusTrial, sub.Status)
	assert.Equal(t, valueobject.PlanTrialAccess, sub.Plan)
	require.NotNil(t, sub.EndAt)
	assert.True(t, sub.EndAt.Equal(activated.Add(24*time.Hour)))
	assert.True(t, sub.IsCurrent(activated.Add(23*time.Hour)))
	assert.False(t, sub.IsCurrent(activated.Add(24*time.Hour)))
}
