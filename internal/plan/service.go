package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkallio/splitlog/internal/sqlite"
	"github.com/mkallio/splitlog/internal/workout"
)

// Service handles training plan configuration and the exercise catalog. It
// also serves as the workout engine's plan store.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
}

// NewService creates a new plan service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// Split implements workout.PlanStore.
func (s *Service) Split(ctx context.Context) (workout.PlanType, bool, error) {
	return s.repo.split(ctx)
}

// Day implements workout.PlanStore.
func (s *Service) Day(ctx context.Context, dayKey string) (workout.PlanDay, error) {
	return s.repo.day(ctx, dayKey)
}

// Get returns the user's configured plan.
func (s *Service) Get(ctx context.Context) (Plan, error) {
	days, err := s.repo.days(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("load training days: %w", err)
	}
	if days == nil {
		days = []Day{}
	}
	return Plan{Days: days}, nil
}

// GenerateDefault replaces the user's plan with the built-in template for
// their split. Template exercises missing from the catalog are created as the
// user's own.
func (s *Service) GenerateDefault(ctx context.Context) (Plan, error) {
	planType, _, err := s.repo.split(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("plan split: %w", err)
	}
	template, ok := defaultTemplates[string(planType)]
	if !ok {
		return Plan{}, fmt.Errorf("no default template for split %q: %w", planType, workout.ErrInvalidInput)
	}

	var records []dayRecord
	for _, day := range template {
		record := dayRecord{dayKey: day.dayKey, label: day.label, notes: day.notes}
		for _, name := range day.exercises {
			exerciseID, findErr := s.repo.findExerciseByName(ctx, name)
			if errors.Is(findErr, workout.ErrNotFound) {
				created, createErr := s.repo.createUserExercise(ctx, name, templateMuscleGroup(day.dayKey))
				if createErr != nil {
					return Plan{}, fmt.Errorf("create exercise %q: %w", name, createErr)
				}
				exerciseID = created.ID
			} else if findErr != nil {
				return Plan{}, fmt.Errorf("find exercise %q: %w", name, findErr)
			}
			record.exerciseIDs = append(record.exerciseIDs, exerciseID)
		}
		records = append(records, record)
	}

	if err = s.repo.replacePlan(ctx, records); err != nil {
		return Plan{}, fmt.Errorf("replace plan: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "default plan generated", slog.String("plan_type", string(planType)))
	return s.Get(ctx)
}

// SaveCustom replaces the user's plan with the given days.
func (s *Service) SaveCustom(ctx context.Context, days []DayInput) (Plan, error) {
	if len(days) == 0 {
		return Plan{}, fmt.Errorf("days is required: %w", workout.ErrInvalidInput)
	}

	var records []dayRecord
	for _, day := range days {
		if day.DayKey == "" {
			return Plan{}, fmt.Errorf("day key is required: %w", workout.ErrInvalidInput)
		}
		ok, err := s.repo.exercisesExist(ctx, day.ExerciseIDs)
		if err != nil {
			return Plan{}, fmt.Errorf("check exercises: %w", err)
		}
		if !ok {
			return Plan{}, fmt.Errorf("day %q references an unknown exercise: %w", day.DayKey, workout.ErrInvalidInput)
		}

		label := "Day " + day.DayKey
		if len(day.MuscleGroups) > 0 {
			label = strings.Join(day.MuscleGroups, " / ")
		}
		records = append(records, dayRecord{
			dayKey:      day.DayKey,
			label:       label,
			exerciseIDs: day.ExerciseIDs,
		})
	}

	if err := s.repo.replacePlan(ctx, records); err != nil {
		return Plan{}, fmt.Errorf("replace plan: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "custom plan saved", slog.Int("days", len(days)))
	return s.Get(ctx)
}

// ListExercises returns the catalog visible to the user.
func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	exercises, err := s.repo.listExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	return exercises, nil
}

// CreateExercise adds a user-owned exercise to the catalog.
func (s *Service) CreateExercise(ctx context.Context, name, muscleGroup string) (Exercise, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 60 {
		return Exercise{}, fmt.Errorf("name must be 2-60 characters: %w", workout.ErrInvalidInput)
	}
	if !validMuscleGroup(muscleGroup) {
		return Exercise{}, fmt.Errorf("invalid muscle group %q: %w", muscleGroup, workout.ErrInvalidInput)
	}

	exists, err := s.repo.userExerciseExists(ctx, name)
	if err != nil {
		return Exercise{}, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return Exercise{}, fmt.Errorf("exercise %q: %w", name, ErrDuplicateName)
	}

	exercise, err := s.repo.createUserExercise(ctx, name, muscleGroup)
	if err != nil {
		return Exercise{}, fmt.Errorf("create exercise: %w", err)
	}
	return exercise, nil
}
