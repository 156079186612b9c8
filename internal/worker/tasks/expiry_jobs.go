// Package tasks holds the asynq background jobs. The sweeps only catch
// stored statuses up with what the evaluator already derives at read
// time, so a delayed run never extends anyone's access.
package tasks

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/bivex/school-access/internal/domain/repository"
	"github.com/bivex/school-access/internal/infrastructure/logging"
)

const (
	TypeExpireSubscriptions = "subscription:expire_lapsed"
	TypeExpireAccessCodes   = "access_code:expire_lapsed"
)

// TaskHandlers bundles the repositories the jobs sweep over
type TaskHandlers struct {
	subscriptionRepo repository.SubscriptionRepository
	codeRepo         repository.AccessCodeRepository
	logger           *zap.Logger
	now              func() time.Time
}

// NewTaskHandlers creates the worker's task handlers
func NewTaskHandlers(
	subscriptionRepo repository.SubscriptionRepository,
	codeRepo repository.AccessCodeRepository,
) *TaskHandlers {
	return &TaskHandlers{
		subscriptionRepo: subscriptionRepo,
		codeRepo:         codeRepo,
		logger:           logging.Logger,
		now:              time.Now,
	}
}

// HandleExpireSubscriptions flips active and trial rows whose end has
// passed to expired
func (h *TaskHandlers) HandleExpireSubscriptions(ctx context.Context, t *asynq.Task) error {
	n, err := h.subscriptionRepo.ExpireLapsed(ctx, h.now())
	if err != nil {
		return err
	}
	if n > 0 {
		h.logger.Info("expired lapsed subscriptions", zap.Int64("count", n))
	}
	return nil
}

// HandleExpireAccessCodes flips active codes whose 24h window has
// elapsed to expired
func (h *TaskHandlers) HandleExpireAccessCodes(ctx context.Context, t *asynq.Task) error {
	n, err := h.codeRepo.ExpireLapsed(ctx, h.now())
	if err != nil {
		return err
	}
	if n > 0 {
		h.logger.Info("expired lapsed access codes", zap.Int64("count", n))
	}
	return nil
}

// RegisterHandlers wires the task types to their handlers
func RegisterHandlers(mux *asynq.ServeMux, h *TaskHandlers) {
	mux.HandleFunc(TypeExpireSubscriptions, h.HandleExpireSubscriptions)
	mux.HandleFunc(TypeExpireAccessCodes, h.HandleExpireAccessCodes)
}

// RegisterScheduledTasks registers the recurring sweeps
func RegisterScheduledTasks(scheduler *asynq.Scheduler) error {
	if _, err := scheduler.Register("*/5 * * * *", asynq.NewTask(TypeExpireSubscriptions, nil)); err != nil {
		return err
	}
	if _, err := scheduler.Register("*/5 * * * *", asynq.NewTask(TypeExpireAccessCodes, nil)); err != nil {
		return err
	}
	return nil
}
