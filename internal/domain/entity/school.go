package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/bivex/school-access/internal/domain/valueobject"
)

// Role distinguishes school accounts from back-office admins
type Role string

const (
	RoleSchool Role = "school"
	RoleAdmin  Role = "admin"
)

// School is an account that browses teachers and holds a subscription
type School struct {
	ID           uuid.UUID
	Email        string
	PasswordHash valueobject.PasswordHash
	Name         string
	Role         Role
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// NewSchool creates a school account
func NewSchool(email string, passwordHash valueobject.PasswordHash, name string) *School {
	return &School{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         RoleSchool,
		CreatedAt:    time.Now(),
	}
}

// IsDeleted returns true if the account has been soft deleted
func (s *School) IsDeleted() bool {
	return s.DeletedAt != nil
}

// IsAdmin returns true for back-office accounts
func (s *School) IsAdmin() bool {
	return s.Role == RoleAdmin
}
