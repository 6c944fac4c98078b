package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/mkallio/splitlog/internal/sqlite"
	"github.com/mkallio/splitlog/internal/workout"
)

const (
	minAge    = 10
	maxAge    = 100
	minHeight = 120
	maxHeight = 230
)

var allowedGenders = []string{"MALE", "FEMALE"}

// Profile is the user's account and onboarding state.
type Profile struct {
	ID                     int     `json:"id"`
	Email                  string  `json:"email"`
	Name                   string  `json:"name"`
	PlanType               string  `json:"planType,omitempty"`
	Gender                 *string `json:"gender"`
	Age                    *int    `json:"age"`
	HeightCm               *int    `json:"heightCm"`
	HasCompletedOnboarding bool    `json:"hasCompletedOnboarding"`
	HasConfiguredPlan      bool    `json:"hasConfiguredPlan"`
}

// OnboardingInput carries the answers of the onboarding flow. PlanType is
// required, the body measurements are optional.
type OnboardingInput struct {
	PlanType string `json:"planType"`
	Gender   string `json:"gender"`
	Age      *int   `json:"age"`
	HeightCm *int   `json:"heightCm"`
}

// Service handles user accounts and onboarding.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
}

// NewService creates a new profile service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// LoginOrRegister resolves an email to a user, creating the account on first
// login. It returns the profile; the caller owns the session.
func (s *Service) LoginOrRegister(ctx context.Context, email, name string) (Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Profile{}, fmt.Errorf("invalid email %q: %w", email, workout.ErrInvalidInput)
	}

	profile, err := s.repo.byEmail(ctx, email)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, workout.ErrNotFound) {
		return Profile{}, fmt.Errorf("look up user: %w", err)
	}

	profile, err = s.repo.create(ctx, email, strings.TrimSpace(name))
	if err != nil {
		return Profile{}, fmt.Errorf("create user: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "user registered", slog.Int("user_id", profile.ID))
	return profile, nil
}

// Get returns the authenticated user's profile.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	profile, err := s.repo.byID(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// CompleteOnboarding stores the onboarding answers and marks onboarding done.
func (s *Service) CompleteOnboarding(ctx context.Context, input OnboardingInput) (Profile, error) {
	if input.PlanType == "" {
		return Profile{}, fmt.Errorf("plan type is required: %w", workout.ErrInvalidInput)
	}
	switch workout.PlanType(input.PlanType) {
	case workout.PlanTypeAB, workout.PlanTypeABC, workout.PlanTypeABCD, workout.PlanTypeFullBody:
	default:
		return Profile{}, fmt.Errorf("invalid plan type %q: %w", input.PlanType, workout.ErrInvalidInput)
	}
	if input.Gender != "" && !contains(allowedGenders, input.Gender) {
		return Profile{}, fmt.Errorf("invalid gender %q: %w", input.Gender, workout.ErrInvalidInput)
	}
	if input.Age != nil && (*input.Age < minAge || *input.Age > maxAge) {
		return Profile{}, fmt.Errorf("age must be between %d and %d: %w", minAge, maxAge, workout.ErrInvalidInput)
	}
	if input.HeightCm != nil && (*input.HeightCm < minHeight || *input.HeightCm > maxHeight) {
		return Profile{}, fmt.Errorf("height must be between %d and %d cm: %w", minHeight, maxHeight, workout.ErrInvalidInput)
	}

	profile, err := s.repo.completeOnboarding(ctx, input)
	if err != nil {
		return Profile{}, fmt.Errorf("complete onboarding: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "onboarding completed",
		slog.Int("user_id", profile.ID), slog.String("plan_type", input.PlanType))
	return profile, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
