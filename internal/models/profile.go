package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User roles selectable during onboarding.
const (
	RoleCreator  = "creator"
	RoleEmployer = "employer"
)

// Onboarding advances linearly through steps 1-5. Step 2 and 3 mean
// different things per role:
//
//	creator:  role_selection -> profile_info -> social_links -> username -> completed
//	employer: role_selection -> organization_info -> profile_info -> username -> completed
const (
	StepRoleSelection = 1
	StepUsername      = 4
	StepCompleted     = 5
)

type Profile struct {
	ID                  uuid.UUID
	FirstName           sql.NullString
	LastName            sql.NullString
	UserRole            sql.NullString
	OnboardingStep      int
	OnboardingCompleted bool
	OrganizationID      uuid.NullUUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OnboardingStepName returns the name of the step a profile must complete
// next. Handlers use it to reject out-of-order requests, so no step can be
// skipped.
func OnboardingStepName(role string, step int) string {
	switch step {
	case StepRoleSelection:
		return "role_selection"
	case 2:
		if role == RoleEmployer {
			return "organization_info"
		}
		return "profile_info"
	case 3:
		if role == RoleEmployer {
			return "profile_info"
		}
		return "social_links"
	case StepUsername:
		return "username"
	default:
		return "completed"
	}
}

// NextOnboardingStep advances the step counter, clamped at completion.
func NextOnboardingStep(step int) int {
	if step >= StepCompleted {
		return StepCompleted
	}
	return step + 1
}
