package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkallio/splitlog/internal/contexthelpers"
)

// sqliteWorkoutRepository handles workout rows and their exercise slots.
type sqliteWorkoutRepository struct {
	baseRepository
}

func (r *sqliteWorkoutRepository) scanWorkout(row *sql.Row) (Workout, error) {
	var (
		w         Workout
		date      string
		createdAt string
	)
	if err := row.Scan(&w.ID, &w.PlanDay, &date, &w.Status, &createdAt); err != nil {
		return Workout{}, err
	}
	var err error
	if w.Date, err = parseTimestamp(date); err != nil {
		return Workout{}, fmt.Errorf("parse workout date: %w", err)
	}
	if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return Workout{}, fmt.Errorf("parse workout created_at: %w", err)
	}
	return w, nil
}

// active returns the most recent planned workout created at or after cutoff.
func (r *sqliteWorkoutRepository) active(ctx context.Context, cutoff time.Time) (Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, plan_day, workout_date, status, created_at
		FROM workouts
		WHERE user_id = ? AND status = 'PLANNED' AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT 1`, userID, formatTimestamp(cutoff))
	workout, err := r.scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrNotFound
	}
	if err != nil {
		return Workout{}, fmt.Errorf("query active workout: %w", err)
	}
	return workout, nil
}

// lastCompletedDayKey returns the plan day of the most recently completed
// workout, or the empty string when none exists.
func (r *sqliteWorkoutRepository) lastCompletedDayKey(ctx context.Context) (string, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var dayKey string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT plan_day
		FROM workouts
		WHERE user_id = ? AND status = 'COMPLETED'
		ORDER BY workout_date DESC, id DESC
		LIMIT 1`, userID).Scan(&dayKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query last completed day key: %w", err)
	}
	return dayKey, nil
}

// create inserts a new planned workout for the given plan day.
func (r *sqliteWorkoutRepository) create(ctx context.Context, planDay string, now time.Time) (Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workouts (user_id, plan_day, workout_date, status, created_at)
		VALUES (?, ?, ?, 'PLANNED', ?)`,
		userID, planDay, formatTimestamp(now), formatTimestamp(now))
	if err != nil {
		return Workout{}, fmt.Errorf("insert workout: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Workout{}, fmt.Errorf("workout insert id: %w", err)
	}
	return Workout{
		ID:        int(id),
		PlanDay:   planDay,
		Date:      now.UTC().Truncate(time.Millisecond),
		Status:    StatusPlanned,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}, nil
}

// get returns a workout owned by the authenticated user.
func (r *sqliteWorkoutRepository) get(ctx context.Context, id int) (Workout, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, plan_day, workout_date, status, created_at
		FROM workouts
		WHERE id = ? AND user_id = ?`, id, userID)
	workout, err := r.scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrNotFound
	}
	if err != nil {
		return Workout{}, fmt.Errorf("query workout %d: %w", id, err)
	}
	return workout, nil
}

// complete marks a workout as completed.
func (r *sqliteWorkoutRepository) complete(ctx context.Context, id int) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workouts SET status = 'COMPLETED'
		WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("complete workout %d: %w", id, err)
	}
	return nil
}

// delete removes a workout and everything logged under it.
func (r *sqliteWorkoutRepository) delete(ctx context.Context, id int) (err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	// Children first to satisfy foreign keys.
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM sets
		WHERE workout_exercise_id IN (SELECT id FROM workout_exercises WHERE workout_id = ?)`, id); err != nil {
		return fmt.Errorf("delete sets: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM drop_set_groups
		WHERE workout_exercise_id IN (SELECT id FROM workout_exercises WHERE workout_id = ?)`, id); err != nil {
		return fmt.Errorf("delete drop set groups: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM workout_exercises WHERE workout_id = ?`, id); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM workouts WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// exercises returns the workout's exercise slots with catalog info and logged
// sets, ordered the way the plan laid them out.
func (r *sqliteWorkoutRepository) exercises(ctx context.Context, workoutID int) (_ []WorkoutExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT we.id, we.exercise_id, we.order_index, we.target_sets,
		       e.name, e.muscle_group, e.image_url
		FROM workout_exercises we
		JOIN exercises e ON we.exercise_id = e.id
		WHERE we.workout_id = ?
		ORDER BY we.order_index, we.id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query workout exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []WorkoutExercise
	for rows.Next() {
		var we WorkoutExercise
		if err = rows.Scan(&we.ID, &we.ExerciseID, &we.OrderIndex, &we.TargetSets,
			&we.Exercise.Name, &we.Exercise.MuscleGroup, &we.Exercise.ImageURL); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		we.Exercise.ID = we.ExerciseID
		we.Sets = []Set{}
		exercises = append(exercises, we)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	setRows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT s.id, s.workout_exercise_id, s.set_index, s.kind, s.weight, s.reps, s.drop_group_id
		FROM sets s
		JOIN workout_exercises we ON s.workout_exercise_id = we.id
		WHERE we.workout_id = ?
		ORDER BY s.set_index, s.id`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	sets, err := scanSets(setRows)
	if err != nil {
		return nil, fmt.Errorf("scan sets: %w", err)
	}

	bySlot := make(map[int]int, len(exercises))
	for i, we := range exercises {
		bySlot[we.ID] = i
	}
	for _, set := range sets {
		if i, ok := bySlot[set.WorkoutExerciseID]; ok {
			exercises[i].Sets = append(exercises[i].Sets, set)
		}
	}
	return exercises, nil
}

// materialize copies the plan day's exercise slots into the workout.
func (r *sqliteWorkoutRepository) materialize(ctx context.Context, workoutID int, day PlanDay) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	for _, slot := range day.Exercises {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO workout_exercises (workout_id, exercise_id, order_index, target_sets)
			VALUES (?, ?, ?, 0)`, workoutID, slot.ExerciseID, slot.OrderIndex); err != nil {
			return fmt.Errorf("insert workout exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
