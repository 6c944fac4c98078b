package workout

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkallio/splitlog/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// repository bundles the SQLite-backed stores used by the service.
type repository struct {
	workouts *sqliteWorkoutRepository
	sets     *sqliteSetRepository
	stats    *sqliteStatsRepository
}

type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	base := newBaseRepository(db, logger)
	return &repository{
		workouts: &sqliteWorkoutRepository{baseRepository: base},
		sets:     &sqliteSetRepository{baseRepository: base},
		stats:    &sqliteStatsRepository{baseRepository: base},
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// scanSets reads set rows in the column order
// id, workout_exercise_id, set_index, kind, weight, reps, drop_group_id.
func scanSets(rows *sql.Rows) (_ []Set, err error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var sets []Set
	for rows.Next() {
		var (
			set         Set
			dropGroupID sql.NullInt64
		)
		if err = rows.Scan(&set.ID, &set.WorkoutExerciseID, &set.SetIndex, &set.Kind,
			&set.Weight, &set.Reps, &dropGroupID); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		if dropGroupID.Valid {
			groupID := int(dropGroupID.Int64)
			set.DropGroupID = &groupID
		}
		sets = append(sets, set)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return sets, nil
}
