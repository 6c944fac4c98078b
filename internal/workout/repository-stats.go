package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkallio/splitlog/internal/contexthelpers"
)

// sqliteStatsRepository reads completed training history for reference stats.
type sqliteStatsRepository struct {
	baseRepository
}

// completedSets returns every set of the exercise across the user's completed
// workouts, oldest first.
func (r *sqliteStatsRepository) completedSets(ctx context.Context, exerciseID int) ([]Set, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT s.id, s.workout_exercise_id, s.set_index, s.kind, s.weight, s.reps, s.drop_group_id
		FROM sets s
		JOIN workout_exercises we ON s.workout_exercise_id = we.id
		JOIN workouts w ON we.workout_id = w.id
		WHERE w.user_id = ? AND w.status = 'COMPLETED' AND we.exercise_id = ?
		ORDER BY s.id`, userID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query completed sets: %w", err)
	}
	sets, err := scanSets(rows)
	if err != nil {
		return nil, fmt.Errorf("scan completed sets: %w", err)
	}
	return sets, nil
}

// lastCompletedWorkoutSets returns the exercise's sets from the most recent
// completed workout that included it, or nil when there is no such workout.
func (r *sqliteStatsRepository) lastCompletedWorkoutSets(ctx context.Context, exerciseID int) ([]Set, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var workoutID int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT w.id
		FROM workouts w
		WHERE w.user_id = ? AND w.status = 'COMPLETED'
		  AND EXISTS (SELECT 1 FROM workout_exercises we
		              WHERE we.workout_id = w.id AND we.exercise_id = ?)
		ORDER BY w.workout_date DESC, w.id DESC
		LIMIT 1`, userID, exerciseID).Scan(&workoutID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query last completed workout: %w", err)
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT s.id, s.workout_exercise_id, s.set_index, s.kind, s.weight, s.reps, s.drop_group_id
		FROM sets s
		JOIN workout_exercises we ON s.workout_exercise_id = we.id
		WHERE we.workout_id = ? AND we.exercise_id = ?
		ORDER BY s.id`, workoutID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query last workout sets: %w", err)
	}
	sets, err := scanSets(rows)
	if err != nil {
		return nil, fmt.Errorf("scan last workout sets: %w", err)
	}
	return sets, nil
}
