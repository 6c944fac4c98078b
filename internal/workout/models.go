package workout

import "time"

// PlanType identifies the workout split a user trains with.
type PlanType string

const (
	PlanTypeAB       PlanType = "AB"
	PlanTypeABC      PlanType = "ABC"
	PlanTypeABCD     PlanType = "ABCD"
	PlanTypeFullBody PlanType = "FULL_BODY"
)

// Status is the lifecycle state of a workout.
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusCompleted Status = "COMPLETED"
)

// SetKind distinguishes standalone sets from the members of a drop-set group.
type SetKind string

const (
	SetKindNormal   SetKind = "NORMAL"
	SetKindDropMain SetKind = "DROP_MAIN"
	SetKindDropPart SetKind = "DROP_PART"
)

// Workout is a single training session following one day of the user's plan.
type Workout struct {
	ID        int       `json:"id"`
	PlanDay   string    `json:"planDay"`
	Date      time.Time `json:"date"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Exercise is a catalog entry, either global or created by a user.
type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	ImageURL    string `json:"imageUrl"`
}

// Set is one logged set. DropGroupID is nil for normal sets and points to the
// owning group for DROP_MAIN and DROP_PART sets.
type Set struct {
	ID                int     `json:"id"`
	WorkoutExerciseID int     `json:"workoutExerciseId"`
	SetIndex          int     `json:"setIndex"`
	Kind              SetKind `json:"kind"`
	Weight            float64 `json:"weight"`
	Reps              int     `json:"reps"`
	DropGroupID       *int    `json:"dropGroupId"`
}

// WorkoutExercise is one exercise slot within a workout together with its
// logged sets.
type WorkoutExercise struct {
	ID         int      `json:"id"`
	ExerciseID int      `json:"exerciseId"`
	OrderIndex int      `json:"orderIndex"`
	TargetSets int      `json:"targetSets"`
	Exercise   Exercise `json:"exercise"`
	Sets       []Set    `json:"sets"`
}

// Detail is a workout with its materialized exercises and per-exercise
// reference stats.
type Detail struct {
	Workout
	Exercises []WorkoutExercise     `json:"exercises"`
	Stats     map[int]ExerciseStats `json:"statsByExerciseId"`
}

// TodayOverview summarizes where the user is in their rotation and whether a
// workout is currently in progress.
type TodayOverview struct {
	PlanType            PlanType `json:"planType"`
	DayKeys             []string `json:"dayKeys"`
	RecommendedDayKey   string   `json:"recommendedDayKey"`
	LastCompletedDayKey string   `json:"lastCompletedDayKey,omitempty"`
	ActiveWorkout       *Workout `json:"activeWorkout"`
}

// PlanDay is one configured training day as provided by the plan store.
type PlanDay struct {
	DayKey    string
	Exercises []PlanDayExercise
}

// PlanDayExercise is one exercise slot of a configured training day.
type PlanDayExercise struct {
	ExerciseID int
	OrderIndex int
}
