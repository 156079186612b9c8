// Package evaluator derives the view a school sees of its own
// subscription: remaining time, a depleting progress percentage, a
// severity tier and the access decision input. Every function is pure
// and total — malformed timestamps, null plans and unknown statuses
// degrade to conservative defaults instead of errors, because the
// output feeds an access decision.
package evaluator

import (
	"fmt"
	"math"
	"time"

	"github.com/bivex/school-access/internal/domain/valueobject"
)

const (
	minutesPerDay  = 24 * 60
	expiryDateForm = "Jan 2, 2006"
)

// Snapshot is the raw subscription state as it crosses the wire:
// a status string and RFC3339 timestamps that may be absent or garbage.
type Snapshot struct {
	Status    string
	Plan      string
	StartedAt string
	EndAt     string
}

// TimeRemaining is a floor-to-the-minute countdown decomposition.
// Seconds are discarded, not rounded up, so the label never promises
// more time than is actually left.
type TimeRemaining struct {
	Expired bool
	Days    int
	Hours   int
	Minutes int
}

// View is the derived view model. It is computed fresh on every
// evaluation and never stored.
type View struct {
	Status      valueobject.SubscriptionStatus `json:"status"`
	Plan        valueobject.PlanType           `json:"plan,omitempty"`
	Label       string                         `json:"time_remaining_label"`
	ProgressPct int                            `json:"progress_pct"`
	Severity    valueobject.Severity           `json:"severity"`
	HasAccess   bool                           `json:"has_access"`
	ExpiryText  string                         `json:"expiry_text"`
}

// ParseTimestamp parses an RFC3339 timestamp, treating absent or
// unparsable input as "no timestamp".
func ParseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

// ComputeTimeRemaining decomposes the time until end into whole days,
// hours and minutes. A nil end means no fixed end and yields nil,
// which callers read as "indefinite".
func ComputeTimeRemaining(end *time.Time, now time.Time) *TimeRemaining {
	if end == nil {
		return nil
	}

	diff := end.Sub(now)
	if diff <= 0 {
		return &TimeRemaining{Expired: true}
	}

	totalMinutes := int(diff / time.Minute)
	return &TimeRemaining{
		Days:    totalMinutes / minutesPerDay,
		Hours:   (totalMinutes % minutesPerDay) / 60,
		Minutes: totalMinutes % 60,
	}
}

// ComputeProgress returns the remaining fraction of the billing window
// as an integer percentage. The bar counts down: 100 at the start of
// the window, 0 at expiry.
//
// Without a usable window the result collapses to the extremes:
// no subscription is always 0, a missing end reads as fully active,
// and a missing start or degenerate window (end <= start) is 0 or 100
// depending on whether the end has already passed.
func ComputeProgress(status valueobject.SubscriptionStatus, started, end *time.Time, now time.Time) int {
	if status == valueobject.StatusNone {
		return 0
	}
	if end == nil {
		return 100
	}
	if started == nil || !end.After(*started) {
		if !end.After(now) {
			return 0
		}
		return 100
	}

	remaining := end.Sub(now)
	total := end.Sub(*started)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > total {
		remaining = total
	}

	pct := int(math.Round(100 * float64(remaining) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ClassifySeverity maps the remaining percentage onto a severity tier.
// No subscription is neutral regardless of the percentage.
func ClassifySeverity(status valueobject.SubscriptionStatus, progressPct int) valueobject.Severity {
	if status == valueobject.StatusNone {
		return valueobject.SeverityNeutral
	}
	switch {
	case progressPct >= 67:
		return valueobject.SeverityHealthy
	case progressPct >= 34:
		return valueobject.SeverityWarning
	default:
		return valueobject.SeverityCritical
	}
}

// HasAccess reports whether a raw status string grants access to
// protected content. Unknown statuses fail closed.
func HasAccess(rawStatus string) bool {
	status, ok := valueobject.ParseSubscriptionStatus(rawStatus)
	if !ok {
		return false
	}
	return status.GrantsAccess()
}

// DescribeExpiry renders the expiry line shown under the countdown.
func DescribeExpiry(status valueobject.SubscriptionStatus, end *time.Time, rem *TimeRemaining) string {
	if status == valueobject.StatusNone {
		return "No active billing cycle"
	}
	if end == nil {
		return "Renews automatically"
	}
	if rem == nil {
		return "—"
	}
	if rem.Expired {
		return "Ended on " + end.Format(expiryDateForm)
	}
	return "Expires on " + end.Format(expiryDateForm)
}

// FormatLabel renders the remaining-time label.
func FormatLabel(status valueobject.SubscriptionStatus, rem *TimeRemaining) string {
	if status == valueobject.StatusNone {
		return "Not Subscribed"
	}
	if status.IsTerminated() || (rem != nil && rem.Expired) {
		return "Expired"
	}
	if rem == nil {
		return "Active (Recurring)"
	}
	switch {
	case rem.Days > 0:
		return fmt.Sprintf("%dd %dh", rem.Days, rem.Hours)
	case rem.Hours > 0:
		return fmt.Sprintf("%dh %dm", rem.Hours, rem.Minutes)
	default:
		return fmt.Sprintf("%dm", rem.Minutes)
	}
}

// Evaluate turns a raw snapshot into the full view model. A
// no-subscription status discards plan and timestamps regardless of
// what was supplied alongside it.
func Evaluate(snap Snapshot, now time.Time) View {
	status, _ := valueobject.ParseSubscriptionStatus(snap.Status)
	if status == valueobject.StatusNone {
		snap.Plan = ""
		snap.StartedAt = ""
		snap.EndAt = ""
	}

	plan, _ := valueobject.ParsePlanType(snap.Plan)
	started := ParseTimestamp(snap.StartedAt)
	end := ParseTimestamp(snap.EndAt)

	rem := ComputeTimeRemaining(end, now)
	pct := ComputeProgress(status, started, end, now)

	return View{
		Status:      status,
		Plan:        plan,
		Label:       FormatLabel(status, rem),
		ProgressPct: pct,
		Severity:    ClassifySeverity(status, pct),
		HasAccess:   status.GrantsAccess(),
		ExpiryText:  DescribeExpiry(status, end, rem),
	}
}
