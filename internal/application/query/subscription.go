package query

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/evaluator"
	"github.com/bivex/school-access/internal/domain/gate"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/cache"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

// SubscriptionQuery serves the evaluated lifecycle view and the access
// decision for a school.
//
// Each database fetch is tagged with a sequence number taken at fetch
// start. The cache write is conditional on that sequence, so when two
// reads overlap, the view computed from the older fetch can never
// overwrite the one computed from the newer fetch.
type SubscriptionQuery struct {
	subscriptionRepo repository.SubscriptionRepository
	statusCache      *cache.StatusCache
	logger           *zap.Logger
	now              func() time.Time
}

// NewSubscriptionQuery creates a new subscription query
func NewSubscriptionQuery(
	subscriptionRepo repository.SubscriptionRepository,
	statusCache *cache.StatusCache,
	now func() time.Time,
) *SubscriptionQuery {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionQuery{
		subscriptionRepo: subscriptionRepo,
		statusCache:      statusCache,
		logger:           logging.Logger,
		now:              now,
	}
}

// GetStatus returns the raw subscription snapshot and its evaluated
// view for a school, serving from cache when a fresh entry is available
func (q *SubscriptionQuery) GetStatus(ctx context.Context, schoolID uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	if cached, err := q.statusCache.Get(ctx, schoolID); err == nil && cached != nil {
		return statusResponse(cached.Snapshot, cached.View), nil
	} else if err != nil {
		q.logger.Warn("status cache read failed",
			zap.String("school_id", schoolID.String()),
			zap.Error(err),
		)
	}

	snap, view, err := q.evaluate(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return statusResponse(snap, view), nil
}

// CheckAccess returns the gate decision for a school. Load errors lock.
func (q *SubscriptionQuery) CheckAccess(ctx context.Context, schoolID uuid.UUID) *dto.AccessDecisionResponse {
	now := q.now()

	snap, err := q.fetchSnapshot(ctx, schoolID, now)
	if err != nil {
		q.logger.Error("failed to load subscription for access check",
			zap.String("school_id", schoolID.String()),
			zap.Error(err),
		)
		d := gate.Locked(now)
		return &dto.AccessDecisionResponse{Granted: d.Granted, Reason: d.Reason, View: d.View}
	}

	d := gate.Decide(snap, now)
	return &dto.AccessDecisionResponse{Granted: d.Granted, Reason: d.Reason, View: d.View}
}

// evaluate fetches the stored subscription, evaluates it at now and
// caches the snapshot and view under the fetch's sequence number
func (q *SubscriptionQuery) evaluate(ctx context.Context, schoolID uuid.UUID) (evaluator.Snapshot, evaluator.View, error) {
	now := q.now()
	seq := uint64(now.UnixNano())

	snap, err := q.fetchSnapshot(ctx, schoolID, now)
	if err != nil {
		return evaluator.Snapshot{}, evaluator.View{}, err
	}

	view := evaluator.Evaluate(snap, now)

	if _, err := q.statusCache.Set(ctx, schoolID, snap, view, seq); err != nil {
		q.logger.Warn("status cache write failed",
			zap.String("school_id", schoolID.String()),
			zap.Error(err),
		)
	}
	return snap, view, nil
}

// fetchSnapshot loads the current subscription row as an evaluator
// snapshot. A school with no row at all evaluates as not subscribed,
// and a lapsed window reads as expired ahead of the sweep.
func (q *SubscriptionQuery) fetchSnapshot(ctx context.Context, schoolID uuid.UUID, now time.Time) (evaluator.Snapshot, error) {
	sub, err := q.subscriptionRepo.GetCurrentBySchoolID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSubscriptionNotFound) {
			return entity.EmptySnapshot(), nil
		}
		return evaluator.Snapshot{}, err
	}
	return sub.EffectiveSnapshot(now), nil
}

func statusResponse(snap evaluator.Snapshot, view evaluator.View) *dto.SubscriptionStatusResponse {
	return &dto.SubscriptionStatusResponse{
		SubscriptionStatus:    snap.Status,
		SubscriptionPlan:      snap.Plan,
		SubscriptionStartedAt: snap.StartedAt,
		SubscriptionEndAt:     snap.EndAt,
		View:                  view,
	}
}
