package entity

import (
	"time"

	"github.com/google/uuid"
)

// Teacher is a marketplace listing a subscribed school can browse
type Teacher struct {
	ID              uuid.UUID
	FullName        string
	Subjects        []string
	Region          string
	ExperienceYears int
	HourlyRate      float64
	Bio             string
	Visible         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// NewTeacher creates a visible teacher listing
func NewTeacher(fullName string, subjects []string, region string, experienceYears int, hourlyRate float64, bio string) *Teacher {
	now := time.Now()
	return &Teacher{
		ID:              uuid.New(),
		FullName:        fullName,
		Subjects:        subjects,
		Region:          region,
		ExperienceYears: experienceYears,
		HourlyRate:      hourlyRate,
		Bio:             bio,
		Visible:         true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsListed returns true if the teacher shows up in school-facing browsing
func (t *Teacher) IsListed() bool {
	return t.Visible && t.DeletedAt == nil
}
