package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bivex/school-access/internal/domain/entity"
	domainErrors "github.com/bivex/school-access/internal/domain/errors"
	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/domain/valueobject"
)

type subscriptionRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository implementation
func NewSubscriptionRepository(db *pgxpool.Pool) repository.SubscriptionRepository {
	return &subscriptionRepositoryImpl{db: db}
}

func (r *subscriptionRepositoryImpl) Create(ctx context.Context, sub *entity.Subscription) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO subscriptions (id, school_id, status, plan, started_at, end_at, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sub.ID, sub.SchoolID, sub.Status.String(), sub.Plan.String(),
		sub.StartedAt, sub.EndAt, sub.CancelReason, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepositoryImpl) GetCurrentBySchoolID(ctx context.Context, schoolID uuid.UUID) (*entity.Subscription, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, school_id, status, plan, started_at, end_at, cancel_reason, created_at, updated_at, deleted_at
		FROM subscriptions
		WHERE school_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`,
		schoolID,
	)

	sub, err := scanSubscription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("subscription not found: %w", domainErrors.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func (r *subscriptionRepositoryImpl) Cancel(ctx context.Context, id uuid.UUID, reason string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE subscriptions
		SET status = $2, cancel_reason = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`,
		id, valueobject.StatusCanceled.String(), reason, now,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepositoryImpl) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE subscriptions
		SET status = $2, updated_at = $1
		WHERE status IN ($3, $4) AND end_at IS NOT NULL AND end_at <= $1 AND deleted_at IS NULL`,
		now, valueobject.StatusExpired.String(),
		valueobject.StatusActive.String(), valueobject.StatusTrial.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire lapsed subscriptions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *subscriptionRepositoryImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*) FROM subscriptions WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan subscription count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanSubscription(row pgx.Row) (*entity.Subscription, error) {
	var sub entity.Subscription
	var status, plan string
	if err := row.Scan(
		&sub.ID, &sub.SchoolID, &status, &plan,
		&sub.StartedAt, &sub.EndAt, &sub.CancelReason,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.DeletedAt,
	); err != nil {
		return nil, err
	}
	sub.Status = valueobject.SubscriptionStatus(status)
	sub.Plan = valueobject.PlanType(plan)
	return &sub, nil
}
