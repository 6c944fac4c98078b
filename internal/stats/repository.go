package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkallio/splitlog/internal/contexthelpers"
	"github.com/mkallio/splitlog/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository reads completed training history for aggregation.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{db: db, logger: logger}
}

// completedSet mirrors PR so the service can convert directly.
type completedSet struct {
	ExerciseID   int
	ExerciseName string
	Weight       float64
	Reps         int
}

type recentWorkout struct {
	id      int
	planDay string
	date    time.Time
}

// totals fills the count fields of an overview.
func (r *sqliteRepository) totals(ctx context.Context) (Overview, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var overview Overview
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM workouts w
			 WHERE w.user_id = ? AND w.status = 'COMPLETED'),
			(SELECT COUNT(*) FROM workout_exercises we
			 JOIN workouts w ON we.workout_id = w.id
			 WHERE w.user_id = ? AND w.status = 'COMPLETED'),
			(SELECT COUNT(*) FROM sets s
			 JOIN workout_exercises we ON s.workout_exercise_id = we.id
			 JOIN workouts w ON we.workout_id = w.id
			 WHERE w.user_id = ? AND w.status = 'COMPLETED'),
			(SELECT COUNT(*) FROM training_days td WHERE td.user_id = ?)`,
		userID, userID, userID, userID).Scan(
		&overview.TotalWorkouts,
		&overview.TotalExercises,
		&overview.TotalSets,
		&overview.TrainingDays,
	)
	if err != nil {
		return Overview{}, fmt.Errorf("query totals: %w", err)
	}
	return overview, nil
}

// completedSets returns every set from completed workouts with its exercise,
// oldest first so that earlier sets win ties.
func (r *sqliteRepository) completedSets(ctx context.Context) (_ []completedSet, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT we.exercise_id, e.name, s.weight, s.reps
		FROM sets s
		JOIN workout_exercises we ON s.workout_exercise_id = we.id
		JOIN workouts w ON we.workout_id = w.id
		JOIN exercises e ON we.exercise_id = e.id
		WHERE w.user_id = ? AND w.status = 'COMPLETED'
		ORDER BY s.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query completed sets: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var sets []completedSet
	for rows.Next() {
		var set completedSet
		if err = rows.Scan(&set.ExerciseID, &set.ExerciseName, &set.Weight, &set.Reps); err != nil {
			return nil, fmt.Errorf("scan completed set: %w", err)
		}
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return sets, nil
}

// recentWorkouts returns the latest completed workouts, newest first.
func (r *sqliteRepository) recentWorkouts(ctx context.Context, limit int) (_ []recentWorkout, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, plan_day, workout_date
		FROM workouts
		WHERE user_id = ? AND status = 'COMPLETED'
		ORDER BY workout_date DESC, id DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent workouts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var workouts []recentWorkout
	for rows.Next() {
		var (
			workout recentWorkout
			date    string
		)
		if err = rows.Scan(&workout.id, &workout.planDay, &date); err != nil {
			return nil, fmt.Errorf("scan recent workout: %w", err)
		}
		if workout.date, err = time.Parse(timestampFormat, date); err != nil {
			return nil, fmt.Errorf("parse workout date %q: %w", date, err)
		}
		workouts = append(workouts, workout)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return workouts, nil
}
