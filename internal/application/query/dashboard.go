package query

import (
	"context"
	"fmt"

	"github.com/bivex/school-access/internal/application/dto"
	"github.com/bivex/school-access/internal/domain/repository"
)

// DashboardQuery aggregates back-office counters
type DashboardQuery struct {
	schoolRepo       repository.SchoolRepository
	teacherRepo      repository.TeacherRepository
	requestRepo      repository.ProfileRequestRepository
	subscriptionRepo repository.SubscriptionRepository
}

// NewDashboardQuery creates a new dashboard query
func NewDashboardQuery(
	schoolRepo repository.SchoolRepository,
	teacherRepo repository.TeacherRepository,
	requestRepo repository.ProfileRequestRepository,
	subscriptionRepo repository.SubscriptionRepository,
) *DashboardQuery {
	return &DashboardQuery{
		schoolRepo:       schoolRepo,
		teacherRepo:      teacherRepo,
		requestRepo:      requestRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Metrics returns the dashboard counters
func (q *DashboardQuery) Metrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	schools, err := q.schoolRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count schools: %w", err)
	}

	teachers, err := q.teacherRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count teachers: %w", err)
	}

	pending, err := q.requestRepo.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}

	byStatus, err := q.subscriptionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	return &dto.DashboardMetricsResponse{
		Schools:               schools,
		Teachers:              teachers,
		PendingRequests:       pending,
		SubscriptionsByStatus: byStatus,
	}, nil
}
