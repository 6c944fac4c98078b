package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mkallio/splitlog/internal/sqlite"
)

// topPRCount caps how many personal records the overview lists.
const topPRCount = 10

// recentWorkoutCount caps the recent workout list.
const recentWorkoutCount = 8

// PR is a personal record: the best set the user ever logged for an exercise
// in a completed workout.
type PR struct {
	ExerciseID   int     `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	Weight       float64 `json:"weight"`
	Reps         int     `json:"reps"`
}

// RecentWorkout is a completed workout for the overview history list.
type RecentWorkout struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Date  string `json:"date"`
}

// Overview aggregates the user's completed training history.
type Overview struct {
	TotalWorkouts  int             `json:"totalWorkouts"`
	TotalExercises int             `json:"totalExercises"`
	TotalSets      int             `json:"totalSets"`
	TrainingDays   int             `json:"trainingDays"`
	PRs            []PR            `json:"prs"`
	RecentWorkouts []RecentWorkout `json:"recentWorkouts"`
}

// Service computes aggregate statistics over completed workouts.
type Service struct {
	repo   *sqliteRepository
	logger *slog.Logger
}

// NewService creates a new stats service.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newSQLiteRepository(db, logger),
		logger: logger,
	}
}

// Overview returns totals, top personal records, and recent workouts.
//
// A personal record here is the single best set by weight, ties broken by
// reps. Drop-set members count like any other set.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	overview, err := s.repo.totals(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("totals: %w", err)
	}

	sets, err := s.repo.completedSets(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("completed sets: %w", err)
	}
	byExercise := map[int]PR{}
	var order []int
	for _, set := range sets {
		current, seen := byExercise[set.ExerciseID]
		if !seen {
			order = append(order, set.ExerciseID)
			byExercise[set.ExerciseID] = PR(set)
			continue
		}
		if betterSet(set, current) {
			byExercise[set.ExerciseID] = PR(set)
		}
	}

	prs := make([]PR, 0, len(order))
	for _, exerciseID := range order {
		prs = append(prs, byExercise[exerciseID])
	}
	sort.SliceStable(prs, func(i, j int) bool {
		if prs[i].Weight != prs[j].Weight {
			return prs[i].Weight > prs[j].Weight
		}
		return prs[i].Reps > prs[j].Reps
	})
	if len(prs) > topPRCount {
		prs = prs[:topPRCount]
	}
	overview.PRs = prs

	recent, err := s.repo.recentWorkouts(ctx, recentWorkoutCount)
	if err != nil {
		return Overview{}, fmt.Errorf("recent workouts: %w", err)
	}
	overview.RecentWorkouts = make([]RecentWorkout, 0, len(recent))
	for _, workout := range recent {
		label := "Workout " + workout.planDay
		if workout.planDay == "FULL" {
			label = "Workout Full Body"
		}
		overview.RecentWorkouts = append(overview.RecentWorkouts, RecentWorkout{
			ID:    workout.id,
			Label: label,
			Date:  workout.date.Format(time.DateOnly),
		})
	}

	return overview, nil
}

// betterSet reports whether candidate beats current: higher weight wins, equal
// weight falls back to more reps. The current holder keeps full ties.
func betterSet(candidate completedSet, current PR) bool {
	if candidate.Weight != current.Weight {
		return candidate.Weight > current.Weight
	}
	return candidate.Reps > current.Reps
}
