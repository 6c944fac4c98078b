package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mkallio/splitlog/internal/e2etest"
)

type workoutJSON struct {
	ID      int    `json:"id"`
	PlanDay string `json:"planDay"`
	Status  string `json:"status"`
}

type todayJSON struct {
	PlanType            string       `json:"planType"`
	DayKeys             []string     `json:"dayKeys"`
	RecommendedDayKey   string       `json:"recommendedDayKey"`
	LastCompletedDayKey string       `json:"lastCompletedDayKey"`
	ActiveWorkout       *workoutJSON `json:"activeWorkout"`
}

type setJSON struct {
	ID       int     `json:"id"`
	SetIndex int     `json:"setIndex"`
	Kind     string  `json:"kind"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

type workoutDetailJSON struct {
	workoutJSON
	Exercises []struct {
		ID         int       `json:"id"`
		ExerciseID int       `json:"exerciseId"`
		Sets       []setJSON `json:"sets"`
	} `json:"exercises"`
}

// onboard registers the user and configures the default plan for the split.
func onboard(t *testing.T, server *e2etest.Server, email, planType string) {
	t.Helper()
	ctx := t.Context()
	client := server.Client()

	if err := client.Login(ctx, email, "Tester"); err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	status, err := client.PostJSON(ctx, "/api/profile/onboarding", map[string]any{
		"planType": planType,
		"gender":   "FEMALE",
		"age":      30,
		"heightCm": 170,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to complete onboarding: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d from onboarding, got %d", http.StatusOK, status)
	}
	if status, err = client.PostJSON(ctx, "/api/plan/default", nil, nil); err != nil {
		t.Fatalf("Failed to generate default plan: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d from default plan, got %d", http.StatusOK, status)
	}
}

func Test_application_workoutLifecycle(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	onboard(t, server, "workout@example.com", "ABC")

	// Fresh rotation recommends the first day.
	var today todayJSON
	status, err := client.GetJSON(ctx, "/api/workouts/today", &today)
	if err != nil {
		t.Fatalf("Failed to get today: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	if today.RecommendedDayKey != "A" {
		t.Errorf("Expected recommended day A, got %q", today.RecommendedDayKey)
	}
	if today.ActiveWorkout != nil {
		t.Error("Expected no active workout")
	}

	// Starting with an empty day key picks the recommendation.
	var started workoutJSON
	status, err = client.PostJSON(ctx, "/api/workouts", map[string]string{"dayKey": ""}, &started)
	if err != nil {
		t.Fatalf("Failed to start workout: %v", err)
	}
	if status != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, status)
	}
	if started.PlanDay != "A" {
		t.Errorf("Expected plan day A, got %q", started.PlanDay)
	}

	// A second start conflicts and reports the one in progress.
	var conflict struct {
		Error   string      `json:"error"`
		Workout workoutJSON `json:"workout"`
	}
	status, err = client.PostJSON(ctx, "/api/workouts", map[string]string{"dayKey": "B"}, &conflict)
	if err != nil {
		t.Fatalf("Failed to post workout: %v", err)
	}
	if status != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, status)
	}
	if conflict.Workout.ID != started.ID {
		t.Errorf("Expected conflict to carry workout %d, got %d", started.ID, conflict.Workout.ID)
	}

	// The detail view materializes the plan day's exercise slots.
	var detail workoutDetailJSON
	workoutPath := fmt.Sprintf("/api/workouts/%d", started.ID)
	if _, err = client.GetJSON(ctx, workoutPath, &detail); err != nil {
		t.Fatalf("Failed to get workout: %v", err)
	}
	if len(detail.Exercises) == 0 {
		t.Fatal("Expected exercise slots in the workout detail")
	}
	slot := detail.Exercises[0]

	// Log a normal set and overwrite it at the same index.
	var set setJSON
	status, err = client.PostJSON(ctx, workoutPath+"/sets", map[string]any{
		"workoutExerciseId": slot.ID,
		"setIndex":          0,
		"weight":            60,
		"reps":              8,
	}, &set)
	if err != nil {
		t.Fatalf("Failed to log set: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	status, err = client.PostJSON(ctx, workoutPath+"/sets", map[string]any{
		"workoutExerciseId": slot.ID,
		"setIndex":          0,
		"weight":            62.5,
		"reps":              7,
	}, &set)
	if err != nil {
		t.Fatalf("Failed to overwrite set: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	if set.Weight != 62.5 || set.Reps != 7 {
		t.Errorf("Expected overwritten set 62.5x7, got %vx%d", set.Weight, set.Reps)
	}

	// Log a drop set after the normal set.
	var group struct {
		GroupID int `json:"groupId"`
	}
	status, err = client.PostJSON(ctx, workoutPath+"/dropsets", map[string]any{
		"workoutExerciseId": slot.ID,
		"main":              map[string]any{"weight": 50, "reps": 8},
		"drops":             []map[string]any{{"weight": 40, "reps": 6}},
	}, &group)
	if err != nil {
		t.Fatalf("Failed to log drop set: %v", err)
	}
	if status != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, status)
	}

	if _, err = client.GetJSON(ctx, workoutPath, &detail); err != nil {
		t.Fatalf("Failed to get workout: %v", err)
	}
	if got := len(detail.Exercises[0].Sets); got != 3 {
		t.Errorf("Expected 3 sets after drop set, got %d", got)
	}

	// Complete and verify the rotation advanced.
	var completed workoutJSON
	if status, err = client.PostJSON(ctx, workoutPath+"/complete", nil, &completed); err != nil {
		t.Fatalf("Failed to complete workout: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	if completed.Status != "COMPLETED" {
		t.Errorf("Expected status COMPLETED, got %q", completed.Status)
	}

	if _, err = client.GetJSON(ctx, "/api/workouts/today", &today); err != nil {
		t.Fatalf("Failed to get today: %v", err)
	}
	if today.RecommendedDayKey != "B" {
		t.Errorf("Expected recommended day B after completing A, got %q", today.RecommendedDayKey)
	}
	if today.LastCompletedDayKey != "A" {
		t.Errorf("Expected last completed day A, got %q", today.LastCompletedDayKey)
	}

	// Completed workouts are read-only.
	status, err = client.PostJSON(ctx, workoutPath+"/sets", map[string]any{
		"workoutExerciseId": slot.ID,
		"setIndex":          1,
		"weight":            60,
		"reps":              8,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to post set: %v", err)
	}
	if status != http.StatusBadRequest {
		t.Errorf("Expected status %d for completed workout, got %d", http.StatusBadRequest, status)
	}
}

func Test_application_abandonWorkout(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	onboard(t, server, "abandon@example.com", "AB")

	// Nothing to abandon yet.
	status, err := client.Delete(ctx, "/api/workouts/active")
	if err != nil {
		t.Fatalf("Failed to delete active workout: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("Expected status %d with no active workout, got %d", http.StatusNotFound, status)
	}

	var started workoutJSON
	if _, err = client.PostJSON(ctx, "/api/workouts", map[string]string{"dayKey": "A"}, &started); err != nil {
		t.Fatalf("Failed to start workout: %v", err)
	}

	if status, err = client.Delete(ctx, "/api/workouts/active"); err != nil {
		t.Fatalf("Failed to abandon workout: %v", err)
	}
	if status != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, status)
	}

	// The abandoned workout is gone and a new one can start right away.
	status, err = client.GetJSON(ctx, fmt.Sprintf("/api/workouts/%d", started.ID), nil)
	if err != nil {
		t.Fatalf("Failed to get workout: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("Expected status %d for abandoned workout, got %d", http.StatusNotFound, status)
	}
	if status, err = client.PostJSON(ctx, "/api/workouts", map[string]string{"dayKey": "B"}, nil); err != nil {
		t.Fatalf("Failed to start workout: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, status)
	}
}
