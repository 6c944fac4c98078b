package main

import (
	"fmt"
	"net/http"
	"testing"
)

func Test_application_statsOverview(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	onboard(t, server, "stats@example.com", "ABC")

	var overview struct {
		TotalWorkouts int `json:"totalWorkouts"`
		TotalSets     int `json:"totalSets"`
		PRs           []struct {
			ExerciseName string  `json:"exerciseName"`
			Weight       float64 `json:"weight"`
			Reps         int     `json:"reps"`
		} `json:"prs"`
		RecentWorkouts []struct {
			Label string `json:"label"`
		} `json:"recentWorkouts"`
	}

	// A fresh account has an empty overview.
	status, err := client.GetJSON(ctx, "/api/stats/overview", &overview)
	if err != nil {
		t.Fatalf("Failed to get overview: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	if overview.TotalWorkouts != 0 {
		t.Errorf("Expected 0 workouts, got %d", overview.TotalWorkouts)
	}

	// Complete a session with two sets of the same exercise.
	var started workoutJSON
	if _, err = client.PostJSON(ctx, "/api/workouts", map[string]string{"dayKey": "A"}, &started); err != nil {
		t.Fatalf("Failed to start workout: %v", err)
	}
	workoutPath := fmt.Sprintf("/api/workouts/%d", started.ID)
	var detail workoutDetailJSON
	if _, err = client.GetJSON(ctx, workoutPath, &detail); err != nil {
		t.Fatalf("Failed to get workout: %v", err)
	}
	slot := detail.Exercises[0]
	for i, measure := range []struct {
		weight float64
		reps   int
	}{{60, 8}, {80, 5}} {
		if _, err = client.PostJSON(ctx, workoutPath+"/sets", map[string]any{
			"workoutExerciseId": slot.ID,
			"setIndex":          i,
			"weight":            measure.weight,
			"reps":              measure.reps,
		}, nil); err != nil {
			t.Fatalf("Failed to log set %d: %v", i, err)
		}
	}
	if _, err = client.PostJSON(ctx, workoutPath+"/complete", nil, nil); err != nil {
		t.Fatalf("Failed to complete workout: %v", err)
	}

	if _, err = client.GetJSON(ctx, "/api/stats/overview", &overview); err != nil {
		t.Fatalf("Failed to get overview: %v", err)
	}
	if overview.TotalWorkouts != 1 {
		t.Errorf("Expected 1 workout, got %d", overview.TotalWorkouts)
	}
	if overview.TotalSets != 2 {
		t.Errorf("Expected 2 sets, got %d", overview.TotalSets)
	}
	if len(overview.PRs) != 1 {
		t.Fatalf("Expected 1 personal best, got %d", len(overview.PRs))
	}
	if pr := overview.PRs[0]; pr.Weight != 80 || pr.Reps != 5 {
		t.Errorf("Expected personal best 80x5, got %vx%d", pr.Weight, pr.Reps)
	}
	if len(overview.RecentWorkouts) != 1 {
		t.Fatalf("Expected 1 recent workout, got %d", len(overview.RecentWorkouts))
	}
	if overview.RecentWorkouts[0].Label != "Workout A" {
		t.Errorf("Expected label Workout A, got %q", overview.RecentWorkouts[0].Label)
	}
}
