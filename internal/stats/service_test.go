package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mkallio/splitlog/internal/contexthelpers"
	"github.com/mkallio/splitlog/internal/plan"
	"github.com/mkallio/splitlog/internal/sqlite"
	"github.com/mkallio/splitlog/internal/stats"
	"github.com/mkallio/splitlog/internal/testhelpers"
	"github.com/mkallio/splitlog/internal/workout"
)

type fixture struct {
	svc     *stats.Service
	workout *workout.Service
	plans   *plan.Service
	ctx     context.Context
	now     time.Time
}

// newFixture wires the real services against an in-memory database so the
// overview is computed over organically logged history.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close database: %v", closeErr)
		}
	})

	result, err := db.ReadWrite.ExecContext(ctx,
		"INSERT INTO users (email, name, plan_type, created_at) VALUES (?, ?, ?, ?)",
		"lifter@example.com", "Lifter", "ABC", "2026-01-01T00:00:00.000Z")
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	userID64, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("user insert id: %v", err)
	}

	ctx = context.WithValue(ctx, contexthelpers.AuthenticatedUserIDContextKey, int(userID64))
	ctx = context.WithValue(ctx, contexthelpers.IsAuthenticatedContextKey, true)

	f := &fixture{
		plans: plan.NewService(db, logger),
		svc:   stats.NewService(db, logger),
		ctx:   ctx,
		now:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	f.workout = workout.NewService(db, logger, f.plans, workout.WithClock(func() time.Time { return f.now }))

	if _, err = f.plans.GenerateDefault(ctx); err != nil {
		t.Fatalf("GenerateDefault: %v", err)
	}
	return f
}

// completeSession starts a workout, logs the given sets against its first
// exercise, and completes it.
func (f *fixture) completeSession(t *testing.T, dayKey string, sets []workout.Measure) workout.Detail {
	t.Helper()

	started, err := f.workout.Start(f.ctx, dayKey)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	detail, err := f.workout.Get(f.ctx, started.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i, set := range sets {
		if _, err = f.workout.UpsertNormalSet(f.ctx, started.ID, detail.Exercises[0].ID, i, set.Weight, set.Reps); err != nil {
			t.Fatalf("UpsertNormalSet: %v", err)
		}
	}
	if _, err = f.workout.Complete(f.ctx, started.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	f.now = f.now.Add(25 * time.Hour)
	return detail
}

func Test_Overview_Empty(t *testing.T) {
	f := newFixture(t)

	overview, err := f.svc.Overview(f.ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.TotalWorkouts != 0 || overview.TotalSets != 0 || overview.TotalExercises != 0 {
		t.Errorf("expected zero totals, got %+v", overview)
	}
	if overview.TrainingDays != 3 {
		t.Errorf("training days = %d, want 3 for the ABC plan", overview.TrainingDays)
	}
	if len(overview.PRs) != 0 || len(overview.RecentWorkouts) != 0 {
		t.Errorf("expected empty lists, got %+v", overview)
	}
}

func Test_Overview(t *testing.T) {
	f := newFixture(t)

	first := f.completeSession(t, "A", []workout.Measure{{Weight: 60, Reps: 10}, {Weight: 80, Reps: 6}})
	f.completeSession(t, "B", []workout.Measure{{Weight: 50, Reps: 12}})

	overview, err := f.svc.Overview(f.ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if overview.TotalWorkouts != 2 {
		t.Errorf("total workouts = %d, want 2", overview.TotalWorkouts)
	}
	if overview.TotalSets != 3 {
		t.Errorf("total sets = %d, want 3", overview.TotalSets)
	}
	// Materialized slots count even without logged sets.
	wantExercises := len(first.Exercises) + 7
	if overview.TotalExercises != wantExercises {
		t.Errorf("total exercises = %d, want %d", overview.TotalExercises, wantExercises)
	}

	if len(overview.PRs) != 2 {
		t.Fatalf("got %d PRs, want 2", len(overview.PRs))
	}
	// Sorted by weight, then reps.
	wantBest := stats.PR{
		ExerciseID:   first.Exercises[0].ExerciseID,
		ExerciseName: first.Exercises[0].Exercise.Name,
		Weight:       80,
		Reps:         6,
	}
	if diff := cmp.Diff(wantBest, overview.PRs[0]); diff != "" {
		t.Errorf("top PR mismatch (-want +got):\n%s", diff)
	}

	if len(overview.RecentWorkouts) != 2 {
		t.Fatalf("got %d recent workouts, want 2", len(overview.RecentWorkouts))
	}
	// Newest first.
	if overview.RecentWorkouts[0].Label != "Workout B" || overview.RecentWorkouts[1].Label != "Workout A" {
		t.Errorf("recent workout labels = %q, %q, want Workout B, Workout A",
			overview.RecentWorkouts[0].Label, overview.RecentWorkouts[1].Label)
	}
	if overview.RecentWorkouts[0].Date != "2026-03-03" {
		t.Errorf("recent workout date = %q, want 2026-03-03", overview.RecentWorkouts[0].Date)
	}
}

func Test_Overview_PlannedWorkoutsExcluded(t *testing.T) {
	f := newFixture(t)

	started, err := f.workout.Start(f.ctx, "A")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	detail, err := f.workout.Get(f.ctx, started.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err = f.workout.UpsertNormalSet(f.ctx, started.ID, detail.Exercises[0].ID, 0, 100, 10); err != nil {
		t.Fatalf("UpsertNormalSet: %v", err)
	}

	overview, err := f.svc.Overview(f.ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if overview.TotalWorkouts != 0 || overview.TotalSets != 0 || len(overview.PRs) != 0 {
		t.Errorf("planned workout leaked into overview: %+v", overview)
	}
}
