package evaluator_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bivex/school-access/internal/domain/evaluator"
	"github.com/bivex/school-access/internal/domain/valueobject"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ts(t time.Time) *time.Time { return &t }

func TestHasAccess_FailsClosed(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{"active", true},
		{"trial", true},
		{"expired", false},
		{"canceled", false},
		{"no_subscription", false},
		{"", false},
		{"ACTIVE", false},
		{"premium", false},
		{"drop table subscriptions", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status=%q", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, evaluator.HasAccess(tt.status))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	parsed := evaluator.ParseTimestamp("2025-06-15T12:00:00Z")
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(now))

	assert.Nil(t, evaluator.ParseTimestamp(""))
	assert.Nil(t, evaluator.ParseTimestamp("not-a-date"))
	assert.Nil(t, evaluator.ParseTimestamp("2025-13-45"))
}

func TestComputeTimeRemaining(t *testing.T) {
	t.Run("nil end means indefinite", func(t *testing.T) {
		assert.Nil(t, evaluator.ComputeTimeRemaining(nil, now))
	})

	t.Run("expired at and after end", func(t *testing.T) {
		for _, end := range []time.Time{now, now.Add(-time.Hour), now.Add(-30 * 24 * time.Hour)} {
			rem := evaluator.ComputeTimeRemaining(ts(end), now)
			require.NotNil(t, rem)
			assert.Equal(t, &evaluator.TimeRemaining{Expired: true}, rem)
		}
	})

	t.Run("decomposes 50h15m into 2d 2h 15m", func(t *testing.T) {
		end := now.Add(50*time.Hour + 15*time.Minute)
		rem := evaluator.ComputeTimeRemaining(ts(end), now)
		require.NotNil(t, rem)
		assert.Equal(t, &evaluator.TimeRemaining{Days: 2, Hours: 2, Minutes: 15}, rem)
	})

	t.Run("seconds are floored not rounded up", func(t *testing.T) {
		end := now.Add(time.Minute + 59*time.Second)
		rem := evaluator.ComputeTimeRemaining(ts(end), now)
		require.NotNil(t, rem)
		assert.Equal(t, 1, rem.Minutes)
	})
}

func TestComputeProgress(t *testing.T) {
	started := now.Add(-15 * 24 * time.Hour)
	end := now.Add(15 * 24 * time.Hour)

	tests := []struct {
		name     string
		status   valueobject.SubscriptionStatus
		started  *time.Time
		end      *time.Time
		expected int
	}{
		{"no subscription always zero", valueobject.StatusNone, ts(started), ts(end), 0},
		{"indefinite plan reads fully active", valueobject.StatusActive, ts(started), nil, 100},
		{"missing start, not yet lapsed", valueobject.StatusActive, nil, ts(end), 100},
		{"missing start, already lapsed", valueobject.StatusActive, nil, ts(now.Add(-time.Hour)), 0},
		{"degenerate window, not lapsed", valueobject.StatusActive, ts(end), ts(started), 0},
		{"degenerate window equal bounds", valueobject.StatusActive, ts(end), ts(end), 100},
		{"midway through window", valueobject.StatusActive, ts(started), ts(end), 50},
		{"window fully elapsed clamps to zero", valueobject.StatusExpired, ts(started), ts(now.Add(-time.Minute)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.ComputeProgress(tt.status, tt.started, tt.end, now)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestComputeProgress_MonotonicCountdown(t *testing.T) {
	started := now
	end := now.Add(30 * 24 * time.Hour)

	prev := 101
	for cursor := started; !cursor.After(end.Add(time.Hour)); cursor = cursor.Add(6 * time.Hour) {
		pct := evaluator.ComputeProgress(valueobject.StatusActive, ts(started), ts(end), cursor)
		assert.LessOrEqual(t, pct, prev, "progress must not increase as time advances")
		prev = pct
	}
	assert.Equal(t, 0, evaluator.ComputeProgress(valueobject.StatusActive, ts(started), ts(end), end))
}

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name     string
		status   valueobject.SubscriptionStatus
		pct      int
		expected valueobject.Severity
	}{
		{"no subscription is neutral even at full", valueobject.StatusNone, 100, valueobject.SeverityNeutral},
		{"67 is healthy", valueobject.StatusActive, 67, valueobject.SeverityHealthy},
		{"100 is healthy", valueobject.StatusActive, 100, valueobject.SeverityHealthy},
		{"66 is warning", valueobject.StatusActive, 66, valueobject.SeverityWarning},
		{"34 is warning", valueobject.StatusActive, 34, valueobject.SeverityWarning},
		{"33 is critical", valueobject.StatusActive, 33, valueobject.SeverityCritical},
		{"0 is critical", valueobject.StatusTrial, 0, valueobject.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, evaluator.ClassifySeverity(tt.status, tt.pct))
		})
	}
}

func TestEvaluate_BrandNewActiveSubscription(t *testing.T) {
	view := evaluator.Evaluate(evaluator.Snapshot{
		Status:    "active",
		Plan:      "monthly",
		StartedAt: now.Format(time.RFC3339),
		EndAt:     now.Add(30 * 24 * time.Hour).Format(time.RFC3339),
	}, now)

	assert.True(t, view.HasAccess)
	assert.Equal(t, 100, view.ProgressPct)
	assert.Equal(t, valueobject.SeverityHealthy, view.Severity)
	assert.Equal(t, "30d 0h", view.Label)
	assert.Contains(t, view.ExpiryText, "Expires on")
}

func TestEvaluate_ExpiredSubscription(t *testing.T) {
	view := evaluator.Evaluate(evaluator.Snapshot{
		Status: "expired",
		Plan:   "yearly",
		EndAt:  now.Add(-time.Hour).Format(time.RFC3339),
	}, now)

	assert.False(t, view.HasAccess)
	assert.Equal(t, "Expired", view.Label)
	assert.Contains(t, view.ExpiryText, "Ended on")
}

func TestEvaluate_NoSubscription(t *testing.T) {
	// Timestamps supplied alongside no_subscription must be ignored.
	view := evaluator.Evaluate(evaluator.Snapshot{
		Status:    "no_subscription",
		Plan:      "yearly",
		StartedAt: now.Add(-time.Hour).Format(time.RFC3339),
		EndAt:     now.Add(time.Hour).Format(time.RFC3339),
	}, now)

	assert.False(t, view.HasAccess)
	assert.Equal(t, 0, view.ProgressPct)
	assert.Equal(t, "Not Subscribed", view.Label)
	assert.Equal(t, "No active billing cycle", view.ExpiryText)
	assert.Equal(t, valueobject.SeverityNeutral, view.Severity)
}

func TestEvaluate_MalformedTimestamps(t *testing.T) {
	view := evaluator.Evaluate(evaluator.Snapshot{
		Status:    "active",
		StartedAt: "not-a-date",
		EndAt:     "not-a-date",
	}, now)

	// Unparsable end degrades to the indefinite defaults.
	assert.Equal(t, 100, view.ProgressPct)
	assert.Equal(t, "Active (Recurring)", view.Label)
	assert.Equal(t, "Renews automatically", view.ExpiryText)
	assert.True(t, view.HasAccess)
}

func TestEvaluate_RecurringActive(t *testing.T) {
	view := evaluator.Evaluate(evaluator.Snapshot{Status: "active", Plan: "monthly"}, now)

	assert.Equal(t, "Active (Recurring)", view.Label)
	assert.Equal(t, "Renews automatically", view.ExpiryText)
	assert.Equal(t, 100, view.ProgressPct)
}

func TestFormatLabel_CountdownForms(t *testing.T) {
	tests := []struct {
		name     string
		rem      *evaluator.TimeRemaining
		expected string
	}{
		{"days and hours", &evaluator.TimeRemaining{Days: 12, Hours: 5, Minutes: 30}, "12d 5h"},
		{"hours and minutes", &evaluator.TimeRemaining{Hours: 5, Minutes: 30}, "5h 30m"},
		{"minutes only", &evaluator.TimeRemaining{Minutes: 42}, "42m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, evaluator.FormatLabel(valueobject.StatusActive, tt.rem))
		})
	}
}
