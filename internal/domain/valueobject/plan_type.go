package valueobject

import (
	"errors"
)

var (
	ErrInvalidPlanType = errors.New("invalid plan type")
)

type PlanType string

const (
	PlanMonthly     PlanType = "monthly"
	PlanYearly      PlanType = "yearly"
	PlanTrialAccess PlanType = "trial_access"
)

// NewPlanType creates a new PlanType value object
func NewPlanType(planType string) (PlanType, error) {
	pt := PlanType(planType)
	switch pt {
	case PlanMonthly, PlanYearly, PlanTrialAccess:
		return pt, nil
	default:
		return "", ErrInvalidPlanType
	}
}

// ParsePlanType maps a raw plan string to a known plan. Unknown or
// absent input yields an empty plan with ok=false.
func ParsePlanType(planType string) (PlanType, bool) {
	pt, err := NewPlanType(planType)
	if err != nil {
		return "", false
	}
	return pt, true
}

// String returns the string representation of the plan type
func (p PlanType) String() string {
	return string(p)
}

// IsValid returns true if the plan type is valid
func (p PlanType) IsValid() bool {
	switch p {
	case PlanMonthly, PlanYearly, PlanTrialAccess:
		return true
	default:
		return false
	}
}
