// Package gate turns evaluated subscription state into a render/deny
// decision. It is a UX convenience, not the security boundary: handlers
// still authenticate, and every uncertain input locks.
package gate

import (
	"time"

	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/domain/evaluator"
)

// Lock reasons surfaced to the client alongside a locked decision.
const (
	ReasonNoActiveSubscription = "no_active_subscription"
	ReasonCodeNotActivated     = "code_not_activated"
	ReasonCodeRevoked          = "code_revoked"
	ReasonCodeWindowElapsed    = "code_window_elapsed"
)

// Decision is the resolved gate outcome for one snapshot
type Decision struct {
	Granted bool           `json:"granted"`
	Reason  string         `json:"reason,omitempty"`
	View    evaluator.View `json:"view"`
}

// Decide evaluates a subscription snapshot and grants or locks
func Decide(snap evaluator.Snapshot, now time.Time) Decision {
	view := evaluator.Evaluate(snap, now)
	if view.HasAccess {
		return Decision{Granted: true, View: view}
	}
	return Decision{Granted: false, Reason: ReasonNoActiveSubscription, View: view}
}

// Locked is the decision used when state could not be loaded at all.
// Errors lock, they never grant.
func Locked(now time.Time) Decision {
	return Decision{
		Granted: false,
		Reason:  ReasonNoActiveSubscription,
		View:    evaluator.Evaluate(entity.EmptySnapshot(), now),
	}
}

// DecideCode gates on a 24-hour trial code's validity window
func DecideCode(code *entity.AccessCode, now time.Time) Decision {
	d := Decision{View: evaluator.Evaluate(entity.EmptySnapshot(), now)}
	if code == nil {
		d.Reason = ReasonCodeNotActivated
		return d
	}

	switch code.EffectiveStatus(now) {
	case entity.CodeStatusRevoked:
		d.Reason = ReasonCodeRevoked
	case entity.CodeStatusExpired:
		d.Reason = ReasonCodeWindowElapsed
	case entity.CodeStatusUnused:
		d.Reason = ReasonCodeNotActivated
	default:
		snap := evaluator.Snapshot{
			Status: "trial",
			Plan:   "trial_access",
		}
		if code.ActivatedAt != nil {
			snap.StartedAt = code.ActivatedAt.UTC().Format(time.RFC3339)
		}
		if exp := code.ExpiresAt(); exp != nil {
			snap.EndAt = exp.UTC().Format(time.RFC3339)
		}
		return Decision{Granted: true, View: evaluator.Evaluate(snap, now)}
	}
	return d
}
