package plan

import "errors"

// MuscleGroups lists the accepted muscle group values.
var MuscleGroups = []string{
	"CHEST", "BACK", "SHOULDERS", "LEGS", "BICEPS", "TRICEPS", "TRAPS", "FOREARMS", "CORE",
}

// ErrDuplicateName is returned when a user already has an exercise with the
// same name.
var ErrDuplicateName = errors.New("exercise already exists")

// Exercise is a catalog entry visible to the user: either global or their own.
type Exercise struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	MuscleGroup     string `json:"muscleGroup"`
	ImageURL        string `json:"imageUrl"`
	IsGlobal        bool   `json:"isGlobal"`
	CreatedByUserID *int   `json:"createdByUserId"`
}

// DayExercise is one slot of a training day.
type DayExercise struct {
	ExerciseID  int    `json:"exerciseId"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	OrderIndex  int    `json:"orderIndex"`
}

// Day is one configured training day.
type Day struct {
	DayKey       string        `json:"dayKey"`
	Label        string        `json:"label"`
	MuscleGroups []string      `json:"muscleGroups"`
	Exercises    []DayExercise `json:"exercises"`
}

// Plan is the user's full training plan.
type Plan struct {
	Days []Day `json:"days"`
}

// DayInput describes one training day when saving a custom plan.
type DayInput struct {
	DayKey       string   `json:"dayKey"`
	ExerciseIDs  []int    `json:"exerciseIds"`
	MuscleGroups []string `json:"muscleGroups"`
}

func validMuscleGroup(group string) bool {
	for _, allowed := range MuscleGroups {
		if group == allowed {
			return true
		}
	}
	return false
}
