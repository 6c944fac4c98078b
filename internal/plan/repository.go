package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkallio/splitlog/internal/contexthelpers"
	"github.com/mkallio/splitlog/internal/sqlite"
	"github.com/mkallio/splitlog/internal/workout"
)

// sqliteRepository handles training plan and exercise catalog storage.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{db: db, logger: logger}
}

// split returns the user's plan type and whether a plan is configured.
func (r *sqliteRepository) split(ctx context.Context) (workout.PlanType, bool, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		planType   sql.NullString
		configured bool
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT plan_type, has_configured_plan
		FROM users
		WHERE id = ?`, userID).Scan(&planType, &configured)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, workout.ErrNotFound
	}
	if err != nil {
		return "", false, fmt.Errorf("query user plan: %w", err)
	}
	return workout.PlanType(planType.String), configured, nil
}

// days returns the user's training days ordered by day key with their
// exercise slots.
func (r *sqliteRepository) days(ctx context.Context) (_ []Day, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, day_key, label
		FROM training_days
		WHERE user_id = ?
		ORDER BY day_key`, userID)
	if err != nil {
		return nil, fmt.Errorf("query training days: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var (
		days   []Day
		dayIDs []int
	)
	for rows.Next() {
		var (
			id  int
			day Day
		)
		if err = rows.Scan(&id, &day.DayKey, &day.Label); err != nil {
			return nil, fmt.Errorf("scan training day: %w", err)
		}
		day.MuscleGroups = []string{}
		day.Exercises = []DayExercise{}
		days = append(days, day)
		dayIDs = append(dayIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i, dayID := range dayIDs {
		if days[i].Exercises, err = r.dayExercises(ctx, dayID); err != nil {
			return nil, fmt.Errorf("day %s exercises: %w", days[i].DayKey, err)
		}
		seen := map[string]bool{}
		for _, ex := range days[i].Exercises {
			if !seen[ex.MuscleGroup] {
				seen[ex.MuscleGroup] = true
				days[i].MuscleGroups = append(days[i].MuscleGroups, ex.MuscleGroup)
			}
		}
	}
	return days, nil
}

func (r *sqliteRepository) dayExercises(ctx context.Context, trainingDayID int) (_ []DayExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT tde.exercise_id, e.name, e.muscle_group, tde.order_index
		FROM training_day_exercises tde
		JOIN exercises e ON tde.exercise_id = e.id
		WHERE tde.training_day_id = ?
		ORDER BY tde.order_index, tde.id`, trainingDayID)
	if err != nil {
		return nil, fmt.Errorf("query day exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	exercises := []DayExercise{}
	for rows.Next() {
		var ex DayExercise
		if err = rows.Scan(&ex.ExerciseID, &ex.Name, &ex.MuscleGroup, &ex.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan day exercise: %w", err)
		}
		exercises = append(exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}

// day returns a single configured training day in the shape the workout
// engine consumes.
func (r *sqliteRepository) day(ctx context.Context, dayKey string) (workout.PlanDay, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var trainingDayID int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM training_days
		WHERE user_id = ? AND day_key = ?`, userID, dayKey).Scan(&trainingDayID)
	if errors.Is(err, sql.ErrNoRows) {
		return workout.PlanDay{}, workout.ErrNotFound
	}
	if err != nil {
		return workout.PlanDay{}, fmt.Errorf("query training day %q: %w", dayKey, err)
	}

	exercises, err := r.dayExercises(ctx, trainingDayID)
	if err != nil {
		return workout.PlanDay{}, fmt.Errorf("day %q exercises: %w", dayKey, err)
	}
	day := workout.PlanDay{DayKey: dayKey}
	for _, ex := range exercises {
		day.Exercises = append(day.Exercises, workout.PlanDayExercise{
			ExerciseID: ex.ExerciseID,
			OrderIndex: ex.OrderIndex,
		})
	}
	return day, nil
}

// dayRecord is what replacePlan persists for one training day.
type dayRecord struct {
	dayKey      string
	label       string
	notes       string
	exerciseIDs []int
}

// replacePlan wipes the user's current plan, stores the given days, and marks
// the plan configured.
func (r *sqliteRepository) replacePlan(ctx context.Context, days []dayRecord) (err error) {
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

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM training_day_exercises
		WHERE training_day_id IN (SELECT id FROM training_days WHERE user_id = ?)`, userID); err != nil {
		return fmt.Errorf("delete training day exercises: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM training_days WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete training days: %w", err)
	}

	for _, day := range days {
		var result sql.Result
		if result, err = tx.ExecContext(ctx, `
			INSERT INTO training_days (user_id, day_key, label, notes)
			VALUES (?, ?, ?, ?)`, userID, day.dayKey, day.label, day.notes); err != nil {
			return fmt.Errorf("insert training day %q: %w", day.dayKey, err)
		}
		var trainingDayID int64
		if trainingDayID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("training day insert id: %w", err)
		}
		for i, exerciseID := range day.exerciseIDs {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO training_day_exercises (training_day_id, exercise_id, order_index)
				VALUES (?, ?, ?)`, trainingDayID, exerciseID, i); err != nil {
				return fmt.Errorf("insert day exercise: %w", err)
			}
		}
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE users SET has_configured_plan = 1 WHERE id = ?`, userID); err != nil {
		return fmt.Errorf("mark plan configured: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// listExercises returns global exercises and the user's own, globals first.
func (r *sqliteRepository) listExercises(ctx context.Context) (_ []Exercise, err error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, muscle_group, image_url, is_global, created_by_user_id
		FROM exercises
		WHERE is_global = 1 OR created_by_user_id = ?
		ORDER BY is_global DESC, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var (
			ex      Exercise
			creator sql.NullInt64
		)
		if err = rows.Scan(&ex.ID, &ex.Name, &ex.MuscleGroup, &ex.ImageURL, &ex.IsGlobal, &creator); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if creator.Valid {
			creatorID := int(creator.Int64)
			ex.CreatedByUserID = &creatorID
		}
		exercises = append(exercises, ex)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}

// findExerciseByName looks up an exercise visible to the user, preferring the
// global catalog entry.
func (r *sqliteRepository) findExerciseByName(ctx context.Context, name string) (int, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var id int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM exercises
		WHERE name = ? AND (is_global = 1 OR created_by_user_id = ?)
		ORDER BY is_global DESC
		LIMIT 1`, name, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, workout.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query exercise %q: %w", name, err)
	}
	return id, nil
}

// userExerciseExists reports whether the user already created an exercise with
// the given name.
func (r *sqliteRepository) userExerciseExists(ctx context.Context, name string) (bool, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var id int
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id FROM exercises
		WHERE name = ? AND created_by_user_id = ?`, name, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user exercise %q: %w", name, err)
	}
	return true, nil
}

// createUserExercise stores a new exercise owned by the user.
func (r *sqliteRepository) createUserExercise(ctx context.Context, name, muscleGroup string) (Exercise, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (name, muscle_group, is_global, created_by_user_id)
		VALUES (?, ?, 0, ?)`, name, muscleGroup, userID)
	if err != nil {
		return Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Exercise{}, fmt.Errorf("exercise insert id: %w", err)
	}
	return Exercise{
		ID:              int(id),
		Name:            name,
		MuscleGroup:     muscleGroup,
		IsGlobal:        false,
		CreatedByUserID: &userID,
	}, nil
}

// exercisesExist reports whether every given exercise ID is visible to the
// user.
func (r *sqliteRepository) exercisesExist(ctx context.Context, ids []int) (bool, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	for _, id := range ids {
		var found int
		err := r.db.ReadOnly.QueryRowContext(ctx, `
			SELECT id FROM exercises
			WHERE id = ? AND (is_global = 1 OR created_by_user_id = ?)`, id, userID).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("query exercise %d: %w", id, err)
		}
	}
	return true, nil
}
