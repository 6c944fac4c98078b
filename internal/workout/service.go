package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkallio/splitlog/internal/sqlite"
)

// activeWindow is how long a planned workout counts as "in progress" after it
// was started.
const activeWindow = 24 * time.Hour

const (
	maxWeight   = 999.0
	maxReps     = 200
	maxSetIndex = 200
)

// PlanStore provides the authenticated user's configured training plan.
type PlanStore interface {
	// Split returns the user's plan type and whether a plan is configured.
	Split(ctx context.Context) (PlanType, bool, error)
	// Day returns the configured training day for the given day key. It
	// returns an error wrapping ErrNotFound when the day is not configured.
	Day(ctx context.Context, dayKey string) (PlanDay, error)
}

// Service handles the business logic for workout sessions and their set
// ledger.
type Service struct {
	repo   *repository
	plans  PlanStore
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service's notion of the current time. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new workout service.
func NewService(db *sqlite.Database, logger *slog.Logger, plans PlanStore, opts ...Option) *Service {
	s := &Service{
		repo:   newRepository(db, logger),
		plans:  plans,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today reports where the user stands in their rotation and the workout in
// progress, if any.
func (s *Service) Today(ctx context.Context) (TodayOverview, error) {
	planType, keys, err := s.configuredSplit(ctx)
	if err != nil {
		return TodayOverview{}, err
	}

	lastDayKey, err := s.repo.workouts.lastCompletedDayKey(ctx)
	if err != nil {
		return TodayOverview{}, fmt.Errorf("last completed day key: %w", err)
	}

	overview := TodayOverview{
		PlanType:            planType,
		DayKeys:             keys,
		RecommendedDayKey:   NextDayKey(planType, lastDayKey),
		LastCompletedDayKey: lastDayKey,
		ActiveWorkout:       nil,
	}

	active, err := s.repo.workouts.active(ctx, s.now().Add(-activeWindow))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return TodayOverview{}, fmt.Errorf("active workout: %w", err)
	}
	if err == nil {
		overview.ActiveWorkout = &active
	}
	return overview, nil
}

// Start begins a new planned workout. An empty dayKey starts the recommended
// day. When a workout is already in progress it is returned together with
// ErrWorkoutInProgress.
func (s *Service) Start(ctx context.Context, dayKey string) (Workout, error) {
	planType, keys, err := s.configuredSplit(ctx)
	if err != nil {
		return Workout{}, err
	}

	active, err := s.repo.workouts.active(ctx, s.now().Add(-activeWindow))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Workout{}, fmt.Errorf("active workout: %w", err)
	}
	if err == nil {
		return active, ErrWorkoutInProgress
	}

	if dayKey == "" {
		lastDayKey, lastErr := s.repo.workouts.lastCompletedDayKey(ctx)
		if lastErr != nil {
			return Workout{}, fmt.Errorf("last completed day key: %w", lastErr)
		}
		dayKey = NextDayKey(planType, lastDayKey)
	}
	valid := false
	for _, key := range keys {
		if key == dayKey {
			valid = true
			break
		}
	}
	if !valid {
		return Workout{}, fmt.Errorf("day key %q not in split %s: %w", dayKey, planType, ErrInvalidInput)
	}

	workout, err := s.repo.workouts.create(ctx, dayKey, s.now())
	if err != nil {
		return Workout{}, fmt.Errorf("create workout: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout started",
		slog.Int("workout_id", workout.ID), slog.String("day_key", dayKey))
	return workout, nil
}

// Abandon discards the workout currently in progress.
func (s *Service) Abandon(ctx context.Context) error {
	active, err := s.repo.workouts.active(ctx, s.now().Add(-activeWindow))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("no workout in progress: %w", ErrNotFound)
		}
		return fmt.Errorf("active workout: %w", err)
	}
	if err = s.repo.workouts.delete(ctx, active.ID); err != nil {
		return fmt.Errorf("delete workout %d: %w", active.ID, err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout abandoned", slog.Int("workout_id", active.ID))
	return nil
}

// Complete marks a workout as completed. Completing an already completed
// workout is a no-op.
func (s *Service) Complete(ctx context.Context, workoutID int) (Workout, error) {
	workout, err := s.repo.workouts.get(ctx, workoutID)
	if err != nil {
		return Workout{}, fmt.Errorf("get workout %d: %w", workoutID, err)
	}
	if workout.Status == StatusCompleted {
		return workout, nil
	}
	if err = s.repo.workouts.complete(ctx, workoutID); err != nil {
		return Workout{}, fmt.Errorf("complete workout %d: %w", workoutID, err)
	}
	workout.Status = StatusCompleted
	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout completed", slog.Int("workout_id", workout.ID))
	return workout, nil
}

// Get returns a workout with its exercises, logged sets, and reference stats.
// Exercise slots are materialized from the plan on first access.
func (s *Service) Get(ctx context.Context, workoutID int) (Detail, error) {
	workout, err := s.repo.workouts.get(ctx, workoutID)
	if err != nil {
		return Detail{}, fmt.Errorf("get workout %d: %w", workoutID, err)
	}

	exercises, err := s.repo.workouts.exercises(ctx, workoutID)
	if err != nil {
		return Detail{}, fmt.Errorf("workout exercises: %w", err)
	}
	if len(exercises) == 0 {
		day, dayErr := s.plans.Day(ctx, workout.PlanDay)
		if dayErr != nil {
			if errors.Is(dayErr, ErrNotFound) {
				return Detail{}, fmt.Errorf("no plan for day key %q: %w", workout.PlanDay, ErrInvalidState)
			}
			return Detail{}, fmt.Errorf("plan day %q: %w", workout.PlanDay, dayErr)
		}
		if err = s.repo.workouts.materialize(ctx, workoutID, day); err != nil {
			return Detail{}, fmt.Errorf("materialize workout %d: %w", workoutID, err)
		}
		if exercises, err = s.repo.workouts.exercises(ctx, workoutID); err != nil {
			return Detail{}, fmt.Errorf("workout exercises: %w", err)
		}
	}

	exerciseIDs := make([]int, len(exercises))
	for i, we := range exercises {
		exerciseIDs[i] = we.ExerciseID
	}
	stats, err := s.statsFor(ctx, exerciseIDs)
	if err != nil {
		return Detail{}, fmt.Errorf("exercise stats: %w", err)
	}

	return Detail{Workout: workout, Exercises: exercises, Stats: stats}, nil
}

// UpsertNormalSet logs or overwrites the normal set at the given index of an
// exercise slot.
func (s *Service) UpsertNormalSet(
	ctx context.Context,
	workoutID, workoutExerciseID, setIndex int,
	weight float64,
	reps int,
) (Set, error) {
	if setIndex < 0 || setIndex > maxSetIndex {
		return Set{}, fmt.Errorf("set index %d out of range: %w", setIndex, ErrInvalidInput)
	}
	if err := validateMeasure(weight, reps); err != nil {
		return Set{}, err
	}
	if err := s.editableWorkout(ctx, workoutID); err != nil {
		return Set{}, err
	}
	if err := s.repo.sets.exerciseSlot(ctx, workoutID, workoutExerciseID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Set{}, fmt.Errorf("workout exercise %d: %w", workoutExerciseID, ErrNotFound)
		}
		return Set{}, fmt.Errorf("workout exercise %d: %w", workoutExerciseID, err)
	}

	existing, err := s.repo.sets.findNormal(ctx, workoutExerciseID, setIndex)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Set{}, fmt.Errorf("find normal set: %w", err)
	}
	if err == nil {
		if err = s.repo.sets.updateValues(ctx, existing.ID, weight, reps); err != nil {
			return Set{}, fmt.Errorf("update set: %w", err)
		}
		existing.Weight = weight
		existing.Reps = reps
		return existing, nil
	}

	set, err := s.repo.sets.insertNormal(ctx, workoutExerciseID, setIndex, weight, reps)
	if err != nil {
		return Set{}, fmt.Errorf("insert set: %w", err)
	}
	return set, nil
}

// UpdateSet overwrites weight and reps of any set, drop-set members included.
func (s *Service) UpdateSet(ctx context.Context, workoutID, setID int, weight float64, reps int) (Set, error) {
	if err := validateMeasure(weight, reps); err != nil {
		return Set{}, err
	}
	if err := s.editableWorkout(ctx, workoutID); err != nil {
		return Set{}, err
	}
	set, err := s.repo.sets.get(ctx, workoutID, setID)
	if err != nil {
		return Set{}, fmt.Errorf("get set %d: %w", setID, err)
	}
	if err = s.repo.sets.updateValues(ctx, set.ID, weight, reps); err != nil {
		return Set{}, fmt.Errorf("update set %d: %w", setID, err)
	}
	set.Weight = weight
	set.Reps = reps
	return set, nil
}

// DeleteSet removes a single set. Members of a drop-set group can be deleted
// individually, though deleting the whole group is the expected path.
func (s *Service) DeleteSet(ctx context.Context, workoutID, setID int) error {
	if err := s.editableWorkout(ctx, workoutID); err != nil {
		return err
	}
	set, err := s.repo.sets.get(ctx, workoutID, setID)
	if err != nil {
		return fmt.Errorf("get set %d: %w", setID, err)
	}
	if err = s.repo.sets.delete(ctx, set.ID); err != nil {
		return fmt.Errorf("delete set %d: %w", setID, err)
	}
	return nil
}

// CreateDropSetGroup logs a drop set: one main set followed by its drops. It
// returns the new group's ID.
func (s *Service) CreateDropSetGroup(
	ctx context.Context,
	workoutID, workoutExerciseID int,
	main Measure,
	drops []Measure,
) (int, error) {
	if err := validateMeasure(main.Weight, main.Reps); err != nil {
		return 0, fmt.Errorf("main set: %w", err)
	}
	for i, drop := range drops {
		if err := validateMeasure(drop.Weight, drop.Reps); err != nil {
			return 0, fmt.Errorf("drop %d: %w", i, err)
		}
	}
	if err := s.editableWorkout(ctx, workoutID); err != nil {
		return 0, err
	}
	if err := s.repo.sets.exerciseSlot(ctx, workoutID, workoutExerciseID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, fmt.Errorf("workout exercise %d: %w", workoutExerciseID, ErrNotFound)
		}
		return 0, fmt.Errorf("workout exercise %d: %w", workoutExerciseID, err)
	}

	startIndex, err := s.repo.sets.nextSetIndex(ctx, workoutExerciseID)
	if err != nil {
		return 0, fmt.Errorf("next set index: %w", err)
	}
	groupID, err := s.repo.sets.createDropGroup(ctx, workoutExerciseID, main, drops, startIndex)
	if err != nil {
		return 0, fmt.Errorf("create drop set group: %w", err)
	}
	return groupID, nil
}

// DeleteDropSetGroup removes a drop-set group and all its sets.
func (s *Service) DeleteDropSetGroup(ctx context.Context, workoutID, groupID int) error {
	if err := s.editableWorkout(ctx, workoutID); err != nil {
		return err
	}
	if err := s.repo.sets.dropGroup(ctx, workoutID, groupID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("drop set group %d: %w", groupID, ErrNotFound)
		}
		return fmt.Errorf("drop set group %d: %w", groupID, err)
	}
	if err := s.repo.sets.deleteDropGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete drop set group %d: %w", groupID, err)
	}
	return nil
}

// configuredSplit resolves the user's plan type and its day keys.
func (s *Service) configuredSplit(ctx context.Context) (PlanType, []string, error) {
	planType, configured, err := s.plans.Split(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("plan split: %w", err)
	}
	if !configured {
		return "", nil, fmt.Errorf("no configured plan: %w", ErrInvalidState)
	}
	return planType, DayKeys(planType), nil
}

// editableWorkout ensures the workout exists, belongs to the user, and is
// still planned. Completed workouts are read-only.
func (s *Service) editableWorkout(ctx context.Context, workoutID int) error {
	workout, err := s.repo.workouts.get(ctx, workoutID)
	if err != nil {
		return fmt.Errorf("get workout %d: %w", workoutID, err)
	}
	if workout.Status != StatusPlanned {
		return fmt.Errorf("workout %d is already completed: %w", workoutID, ErrInvalidState)
	}
	return nil
}

func validateMeasure(weight float64, reps int) error {
	if weight < 0 || weight > maxWeight {
		return fmt.Errorf("weight %v out of range: %w", weight, ErrInvalidInput)
	}
	if reps < 0 || reps > maxReps {
		return fmt.Errorf("reps %d out of range: %w", reps, ErrInvalidInput)
	}
	return nil
}
