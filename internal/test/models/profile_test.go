package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talentfolio-backend/internal/models"
)

func TestOnboardingStepName_Creator(t *testing.T) {
	steps := map[int]string{
		1: "role_selection",
		2: "profile_info",
		3: "social_links",
		4: "username",
		5: "completed",
	}
	for step, want := range steps {
		assert.Equal(t, want, models.OnboardingStepName(models.RoleCreator, step), "step %d", step)
	}
}

func TestOnboardingStepName_Employer(t *testing.T) {
	steps := map[int]string{
		1: "role_selection",
		2: "organization_info",
		3: "profile_info",
		4: "username",
		5: "completed",
	}
	for step, want := range steps {
		assert.Equal(t, want, models.OnboardingStepName(models.RoleEmployer, step), "step %d", step)
	}
}

func TestOnboardingStepName_NoRoleYet(t *testing.T) {
	// Before role selection only step 1 is reachable; the name must still
	// resolve without a role.
	assert.Equal(t, "role_selection", models.OnboardingStepName("", models.StepRoleSelection))
}

func TestNextOnboardingStep(t *testing.T) {
	assert.Equal(t, 2, models.NextOnboardingStep(1))
	assert.Equal(t, 5, models.NextOnboardingStep(4))
	assert.Equal(t, 5, models.NextOnboardingStep(5))
	assert.Equal(t, 5, models.NextOnboardingStep(9))
}
