package plan

// templateDay is one day of a built-in plan template. Exercises are referenced
// by name: seeded catalog entries are matched, anything else is created as a
// user exercise.
type templateDay struct {
	dayKey    string
	label     string
	notes     string
	exercises []string
}

// defaultTemplates holds a starter plan per split.
var defaultTemplates = map[string][]templateDay{
	"AB": {
		{
			dayKey: "A",
			label:  "Upper (Chest/Shoulders/Triceps)",
			notes:  "Chest, Shoulders, Triceps",
			exercises: []string{
				"Bench Press",
				"Incline Dumbbell Press",
				"Shoulder Press",
				"Lateral Raise",
				"Triceps Pushdown",
			},
		},
		{
			dayKey: "B",
			label:  "Lower & Back",
			notes:  "Legs, Back, Biceps",
			exercises: []string{
				"Squat",
				"Romanian Deadlift",
				"Leg Press",
				"Lat Pulldown",
				"Barbell Row",
				"Biceps Curl",
			},
		},
	},
	"ABC": {
		{
			dayKey: "A",
			label:  "Chest / Shoulders / Triceps",
			notes:  "Chest, Shoulders, Triceps",
			exercises: []string{
				"Chest Press Machine",
				"Dumbbell Fly",
				"Incline Chest Press Machine",
				"Side Lateral Raises",
				"Triceps Pushdown Machine",
				"Triceps Extension",
				"Dumbbell Overhead Triceps Extension",
			},
		},
		{
			dayKey: "B",
			label:  "Back / Rear Delts / Biceps",
			notes:  "Back, Rear Delts, Biceps",
			exercises: []string{
				"Lat Pulldown",
				"Machine Lat Pulldown",
				"Machine Row",
				"Dumbbell Rear Delt Fly",
				"Barbell Curl",
				"Dumbbell Curl",
				"Hammer Curls",
			},
		},
		{
			dayKey: "C",
			label:  "Legs / Traps / Forearms",
			notes:  "Legs, Traps, Forearms",
			exercises: []string{
				"Leg Press Machine",
				"Leg Extension Machine",
				"Cable Shrugs",
				"Dumbbell Shrugs",
				"Forearm Curls",
			},
		},
	},
	"ABCD": {
		{
			dayKey: "A",
			label:  "Chest / Triceps",
			notes:  "Chest, Triceps",
			exercises: []string{
				"Chest Press Machine",
				"Incline Chest Press Machine",
				"Dumbbell Fly",
				"Triceps Pushdown Machine",
				"Triceps Extension",
			},
		},
		{
			dayKey: "B",
			label:  "Back / Biceps",
			notes:  "Back, Biceps",
			exercises: []string{
				"Lat Pulldown",
				"Machine Lat Pulldown",
				"Machine Row",
				"Barbell Curl",
				"Hammer Curls",
			},
		},
		{
			dayKey: "C",
			label:  "Shoulders / Traps",
			notes:  "Shoulders, Traps",
			exercises: []string{
				"Side Lateral Raises",
				"Dumbbell Rear Delt Fly",
				"Cable Shrugs",
				"Dumbbell Shrugs",
			},
		},
		{
			dayKey: "D",
			label:  "Legs / Forearms",
			notes:  "Legs, Forearms",
			exercises: []string{
				"Leg Press Machine",
				"Leg Extension Machine",
				"Forearm Curls",
			},
		},
	},
	"FULL_BODY": {
		{
			dayKey: "FULL",
			label:  "Full Body",
			notes:  "Whole body every session",
			exercises: []string{
				"Chest Press Machine",
				"Lat Pulldown",
				"Leg Press Machine",
				"Side Lateral Raises",
				"Barbell Curl",
				"Triceps Pushdown Machine",
			},
		},
	},
}

// templateMuscleGroup guesses a muscle group for exercises created on the fly
// from a template.
func templateMuscleGroup(dayKey string) string {
	switch dayKey {
	case "A":
		return "CHEST"
	case "B":
		return "BACK"
	case "C":
		return "LEGS"
	}
	return "CHEST"
}
