package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkallio/splitlog/internal/contexthelpers"
	"github.com/mkallio/splitlog/internal/sqlite"
	"github.com/mkallio/splitlog/internal/workout"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository stores user accounts.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{db: db, logger: logger}
}

const profileColumns = `id, email, name, plan_type, gender, age, height_cm,
	has_completed_onboarding, has_configured_plan`

func scanProfile(row *sql.Row) (Profile, error) {
	var (
		profile  Profile
		planType sql.NullString
		gender   sql.NullString
		age      sql.NullInt64
		heightCm sql.NullInt64
	)
	err := row.Scan(&profile.ID, &profile.Email, &profile.Name, &planType, &gender,
		&age, &heightCm, &profile.HasCompletedOnboarding, &profile.HasConfiguredPlan)
	if err != nil {
		return Profile{}, err
	}
	profile.PlanType = planType.String
	if gender.Valid {
		profile.Gender = &gender.String
	}
	if age.Valid {
		v := int(age.Int64)
		profile.Age = &v
	}
	if heightCm.Valid {
		v := int(heightCm.Int64)
		profile.HeightCm = &v
	}
	return profile, nil
}

// byEmail returns the user with the given email.
func (r *sqliteRepository) byEmail(ctx context.Context, email string) (Profile, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE email = ?`, email)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, workout.ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query user by email: %w", err)
	}
	return profile, nil
}

// byID returns the authenticated user's profile.
func (r *sqliteRepository) byID(ctx context.Context) (Profile, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = ?`, userID)
	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, workout.ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query user %d: %w", userID, err)
	}
	return profile, nil
}

// create inserts a new account.
func (r *sqliteRepository) create(ctx context.Context, email, name string) (Profile, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (email, name, created_at)
		VALUES (?, ?, ?)`, email, name, time.Now().UTC().Format(timestampFormat))
	if err != nil {
		return Profile{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Profile{}, fmt.Errorf("user insert id: %w", err)
	}
	return Profile{ID: int(id), Email: email, Name: name}, nil
}

// completeOnboarding stores the answers and flips the onboarding flag.
func (r *sqliteRepository) completeOnboarding(ctx context.Context, input OnboardingInput) (Profile, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var gender any
	if input.Gender != "" {
		gender = input.Gender
	}
	var age, heightCm any
	if input.Age != nil {
		age = *input.Age
	}
	if input.HeightCm != nil {
		heightCm = *input.HeightCm
	}

	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE users
		SET plan_type                = ?,
		    gender                   = COALESCE(?, gender),
		    age                      = COALESCE(?, age),
		    height_cm                = COALESCE(?, height_cm),
		    has_completed_onboarding = 1
		WHERE id = ?`, input.PlanType, gender, age, heightCm, userID); err != nil {
		return Profile{}, fmt.Errorf("update user %d: %w", userID, err)
	}
	return r.byID(ctx)
}
