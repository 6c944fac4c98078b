package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkallio/splitlog/internal/contexthelpers"
)

// sqliteSetRepository handles the set ledger of a workout.
type sqliteSetRepository struct {
	baseRepository
}

// exerciseSlot verifies that the workout exercise belongs to the workout.
func (r *sqliteSetRepository) exerciseSlot(ctx context.Context, workoutID, workoutExerciseID int) error {
	var id int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM workout_exercises
		WHERE id = ? AND workout_id = ?`, workoutExerciseID, workoutID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query workout exercise %d: %w", workoutExerciseID, err)
	}
	return nil
}

// findNormal returns the normal set at the given index of an exercise slot.
func (r *sqliteSetRepository) findNormal(ctx context.Context, workoutExerciseID, setIndex int) (Set, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, workout_exercise_id, set_index, kind, weight, reps, drop_group_id
		FROM sets
		WHERE workout_exercise_id = ? AND set_index = ? AND kind = 'NORMAL'`,
		workoutExerciseID, setIndex)

	var (
		set         Set
		dropGroupID sql.NullInt64
	)
	err := row.Scan(&set.ID, &set.WorkoutExerciseID, &set.SetIndex, &set.Kind,
		&set.Weight, &set.Reps, &dropGroupID)
	if errors.Is(err, sql.ErrNoRows) {
		return Set{}, ErrNotFound
	}
	if err != nil {
		return Set{}, fmt.Errorf("query normal set: %w", err)
	}
	return set, nil
}

// insertNormal logs a new normal set.
func (r *sqliteSetRepository) insertNormal(ctx context.Context, workoutExerciseID, setIndex int, weight float64, reps int) (Set, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO sets (workout_exercise_id, set_index, kind, weight, reps)
		VALUES (?, ?, 'NORMAL', ?, ?)`, workoutExerciseID, setIndex, weight, reps)
	if err != nil {
		return Set{}, fmt.Errorf("insert set: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Set{}, fmt.Errorf("set insert id: %w", err)
	}
	return Set{
		ID:                int(id),
		WorkoutExerciseID: workoutExerciseID,
		SetIndex:          setIndex,
		Kind:              SetKindNormal,
		Weight:            weight,
		Reps:              reps,
	}, nil
}

// updateValues overwrites weight and reps of an existing set.
func (r *sqliteSetRepository) updateValues(ctx context.Context, setID int, weight float64, reps int) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE sets SET weight = ?, reps = ? WHERE id = ?`, weight, reps, setID); err != nil {
		return fmt.Errorf("update set %d: %w", setID, err)
	}
	return nil
}

// get returns a set after verifying it belongs to the user's workout.
func (r *sqliteSetRepository) get(ctx context.Context, workoutID, setID int) (Set, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT s.id, s.workout_exercise_id, s.set_index, s.kind, s.weight, s.reps, s.drop_group_id
		FROM sets s
		JOIN workout_exercises we ON s.workout_exercise_id = we.id
		JOIN workouts w ON we.workout_id = w.id
		WHERE s.id = ? AND w.id = ? AND w.user_id = ?`, setID, workoutID, userID)

	var (
		set         Set
		dropGroupID sql.NullInt64
	)
	err := row.Scan(&set.ID, &set.WorkoutExerciseID, &set.SetIndex, &set.Kind,
		&set.Weight, &set.Reps, &dropGroupID)
	if errors.Is(err, sql.ErrNoRows) {
		return Set{}, ErrNotFound
	}
	if err != nil {
		return Set{}, fmt.Errorf("query set %d: %w", setID, err)
	}
	if dropGroupID.Valid {
		groupID := int(dropGroupID.Int64)
		set.DropGroupID = &groupID
	}
	return set, nil
}

// delete removes a single set.
func (r *sqliteSetRepository) delete(ctx context.Context, setID int) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM sets WHERE id = ?`, setID); err != nil {
		return fmt.Errorf("delete set %d: %w", setID, err)
	}
	return nil
}

// nextSetIndex returns the first unused set index of an exercise slot,
// counting sets of every kind.
func (r *sqliteSetRepository) nextSetIndex(ctx context.Context, workoutExerciseID int) (int, error) {
	var next int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(set_index) + 1, 0)
		FROM sets
		WHERE workout_exercise_id = ?`, workoutExerciseID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("query next set index: %w", err)
	}
	return next, nil
}

// createDropGroup inserts a drop-set group with its main set and drop parts at
// consecutive set indexes starting from startIndex.
func (r *sqliteSetRepository) createDropGroup(
	ctx context.Context,
	workoutExerciseID int,
	main Measure,
	drops []Measure,
	startIndex int,
) (_ int, err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO drop_set_groups (workout_exercise_id) VALUES (?)`, workoutExerciseID)
	if err != nil {
		return 0, fmt.Errorf("insert drop set group: %w", err)
	}
	groupID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("drop set group insert id: %w", err)
	}

	index := startIndex
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO sets (workout_exercise_id, set_index, kind, weight, reps, drop_group_id)
		VALUES (?, ?, 'DROP_MAIN', ?, ?, ?)`,
		workoutExerciseID, index, main.Weight, main.Reps, groupID); err != nil {
		return 0, fmt.Errorf("insert main set: %w", err)
	}
	index++

	for _, drop := range drops {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO sets (workout_exercise_id, set_index, kind, weight, reps, drop_group_id)
			VALUES (?, ?, 'DROP_PART', ?, ?, ?)`,
			workoutExerciseID, index, drop.Weight, drop.Reps, groupID); err != nil {
			return 0, fmt.Errorf("insert drop part: %w", err)
		}
		index++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return int(groupID), nil
}

// dropGroup verifies that the group belongs to the user's workout.
func (r *sqliteSetRepository) dropGroup(ctx context.Context, workoutID, groupID int) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var id int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT g.id
		FROM drop_set_groups g
		JOIN workout_exercises we ON g.workout_exercise_id = we.id
		JOIN workouts w ON we.workout_id = w.id
		WHERE g.id = ? AND w.id = ? AND w.user_id = ?`, groupID, workoutID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query drop set group %d: %w", groupID, err)
	}
	return nil
}

// deleteDropGroup removes the group. Its sets go with it through the foreign
// key cascade.
func (r *sqliteSetRepository) deleteDropGroup(ctx context.Context, groupID int) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM drop_set_groups WHERE id = ?`, groupID); err != nil {
		return fmt.Errorf("delete drop set group %d: %w", groupID, err)
	}
	return nil
}
