package supabase

import (
	"github.com/google/uuid"

	"talentfolio-backend/internal/models"
)

const profileColumns = `id, first_name, last_name, user_role, onboarding_step,
	onboarding_completed, organization_id, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.UserRole, &p.OnboardingStep,
		&p.OnboardingCompleted, &p.OrganizationID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr("profile", err)
	}
	return &p, nil
}

func (d *DatabaseClient) GetProfile(id uuid.UUID) (*models.Profile, error) {
	return scanProfile(d.db.QueryRow(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = $1
	`, id))
}

// EnsureProfile returns the profile for the auth user, creating the row on
// first contact. Signup normally creates it via an auth trigger; this covers
// environments without one.
func (d *DatabaseClient) EnsureProfile(id uuid.UUID) (*models.Profile, error) {
	_, err := d.db.Exec(`
		INSERT INTO profiles (id)
		VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, id)
	if err != nil {
		return nil, rowErr("profile", err)
	}
	return d.GetProfile(id)
}

func (d *DatabaseClient) SetProfileRole(id uuid.UUID, role string, step int) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET user_role = $1, onboarding_step = $2, updated_at = NOW()
		WHERE id = $3
	`, role, step, id)
	if err != nil {
		return rowErr("profile", err)
	}
	return nil
}

func (d *DatabaseClient) SetProfileNames(id uuid.UUID, firstName, lastName string, step int) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET first_name = $1, last_name = $2, onboarding_step = $3, updated_at = NOW()
		WHERE id = $4
	`, firstName, lastName, step, id)
	if err != nil {
		return rowErr("profile", err)
	}
	return nil
}

func (d *DatabaseClient) SetProfileOrganization(id, organizationID uuid.UUID, step int) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET organization_id = $1, onboarding_step = $2, updated_at = NOW()
		WHERE id = $3
	`, organizationID, step, id)
	if err != nil {
		return rowErr("profile", err)
	}
	return nil
}

func (d *DatabaseClient) AdvanceOnboardingStep(id uuid.UUID, step int) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET onboarding_step = $1, updated_at = NOW()
		WHERE id = $2
	`, step, id)
	if err != nil {
		return rowErr("profile", err)
	}
	return nil
}

func (d *DatabaseClient) CompleteOnboarding(id uuid.UUID) error {
	_, err := d.db.Exec(`
		UPDATE profiles
		SET onboarding_step = $1, onboarding_completed = TRUE, updated_at = NOW()
		WHERE id = $2
	`, models.StepCompleted, id)
	if err != nil {
		return rowErr("profile", err)
	}
	return nil
}
