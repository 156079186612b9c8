// Package dto defines request and response shapes for the application layer
package dto

import "github.com/bivex/school-access/internal/domain/evaluator"

// RegisterRequest is the school sign-up payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// RegisterResponse returns the created account with a session token
type RegisterResponse struct {
	SchoolID    string `json:"school_id"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// LoginRequest is the credentials payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns a session token on successful login
type LoginResponse struct {
	SchoolID    string `json:"school_id"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// SchoolResponse is the account profile shape
type SchoolResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// RedeemAccessCodeRequest carries the trial code being redeemed
type RedeemAccessCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemAccessCodeResponse returns the trial granted by a redeemed code
type RedeemAccessCodeResponse struct {
	ExpiresAt string         `json:"expires_at"`
	View      evaluator.View `json:"view"`
}

// SubscriptionStatusResponse carries the raw subscription snapshot a
// client evaluator could consume, plus the server-evaluated view
type SubscriptionStatusResponse struct {
	SubscriptionStatus    string         `json:"subscription_status"`
	SubscriptionPlan      string         `json:"subscription_plan,omitempty"`
	SubscriptionStartedAt string         `json:"subscription_started_at,omitempty"`
	SubscriptionEndAt     string         `json:"subscription_end_at,omitempty"`
	View                  evaluator.View `json:"view"`
}

// AccessDecisionResponse is the gate outcome for the requesting school
type AccessDecisionResponse struct {
	Granted bool           `json:"granted"`
	Reason  string         `json:"reason,omitempty"`
	View    evaluator.View `json:"view"`
}

// CancelSubscriptionRequest carries the school's stated cancellation reason
type CancelSubscriptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// GrantSubscriptionRequest is the admin payload assigning a plan to the
// school named in the route
type GrantSubscriptionRequest struct {
	Plan         string `json:"plan" binding:"required"`
	DurationDays int    `json:"duration_days"`
}

// SubscriptionResponse is the stored subscription row shape
type SubscriptionResponse struct {
	ID           string `json:"id"`
	SchoolID     string `json:"school_id"`
	Status       string `json:"status"`
	Plan         string `json:"plan"`
	StartedAt    string `json:"started_at,omitempty"`
	EndAt        string `json:"end_at,omitempty"`
	CancelReason string `json:"cancel_reason,omitempty"`
}

// IssueAccessCodeResponse returns a freshly minted trial code
type IssueAccessCodeResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// AccessCodeResponse is the admin-facing code listing shape
type AccessCodeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Status      string `json:"status"`
	SchoolID    string `json:"school_id,omitempty"`
	ActivatedAt string `json:"activated_at,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// TeacherResponse is the marketplace listing shape
type TeacherResponse struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Subjects        []string `json:"subjects"`
	Region          string   `json:"region"`
	ExperienceYears int      `json:"experience_years"`
	HourlyRate      float64  `json:"hourly_rate"`
	Bio             string   `json:"bio"`
	Visible         bool     `json:"visible"`
}

// CreateTeacherRequest is the admin payload for a new listing
type CreateTeacherRequest struct {
	FullName        string   `json:"full_name" binding:"required"`
	Subjects        []string `json:"subjects" binding:"required,min=1"`
	Region          string   `json:"region" binding:"required"`
	ExperienceYears int      `json:"experience_years"`
	HourlyRate      float64  `json:"hourly_rate"`
	Bio             string   `json:"bio"`
}

// UpdateTeacherRequest is the admin payload editing a listing
type UpdateTeacherRequest struct {
	FullName        string   `json:"full_name" binding:"required"`
	Subjects        []string `json:"subjects" binding:"required,min=1"`
	Region          string   `json:"region" binding:"required"`
	ExperienceYears int      `json:"experience_years"`
	HourlyRate      float64  `json:"hourly_rate"`
	Bio             string   `json:"bio"`
	Visible         bool     `json:"visible"`
}

// RequestProfileRequest is a school asking to contact the teacher named
// in the route
type RequestProfileRequest struct {
	Message string `json:"message"`
}

// ProfileRequestResponse is the contact request shape
type ProfileRequestResponse struct {
	ID        string `json:"id"`
	SchoolID  string `json:"school_id"`
	TeacherID string `json:"teacher_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ResolveProfileRequestRequest is the admin decision on a contact request
type ResolveProfileRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=approved declined"`
}

// DashboardMetricsResponse aggregates back-office counters
type DashboardMetricsResponse struct {
	Schools               int64            `json:"schools"`
	Teachers              int64            `json:"teachers"`
	PendingRequests       int64            `json:"pending_requests"`
	SubscriptionsByStatus map[string]int64 `json:"subscriptions_by_status"`
}
