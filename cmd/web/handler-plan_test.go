package main

import (
	"net/http"
	"testing"
)

type exerciseJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	IsGlobal    bool   `json:"isGlobal"`
}

type planJSON struct {
	Days []struct {
		DayKey       string   `json:"dayKey"`
		Label        string   `json:"label"`
		MuscleGroups []string `json:"muscleGroups"`
		Exercises    []struct {
			ExerciseID int    `json:"exerciseId"`
			Name       string `json:"name"`
			OrderIndex int    `json:"orderIndex"`
		} `json:"exercises"`
	} `json:"days"`
}

func Test_application_customPlan(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	onboard(t, server, "plan@example.com", "ABC")

	var plan planJSON
	status, err := client.GetJSON(ctx, "/api/plan", &plan)
	if err != nil {
		t.Fatalf("Failed to get plan: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	if len(plan.Days) != 3 {
		t.Fatalf("Expected 3 training days, got %d", len(plan.Days))
	}

	// Replace the generated plan with a custom one built from the catalog.
	var exercises []exerciseJSON
	if _, err = client.GetJSON(ctx, "/api/exercises", &exercises); err != nil {
		t.Fatalf("Failed to list exercises: %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("Expected seeded exercises in the catalog")
	}
	status, err = client.PostJSON(ctx, "/api/plan", map[string]any{
		"days": []map[string]any{
			{
				"dayKey":       "A",
				"exerciseIds":  []int{exercises[0].ID, exercises[1].ID},
				"muscleGroups": []string{"CHEST", "TRICEPS"},
			},
			{
				"dayKey":       "B",
				"exerciseIds":  []int{exercises[2].ID},
				"muscleGroups": []string{},
			},
		},
	}, &plan)
	if err != nil {
		t.Fatalf("Failed to save custom plan: %v", err)
	}
	if status != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, status)
	}
	if len(plan.Days) != 2 {
		t.Fatalf("Expected 2 training days after saving, got %d", len(plan.Days))
	}
	if plan.Days[0].Label != "CHEST / TRICEPS" {
		t.Errorf("Expected label from muscle groups, got %q", plan.Days[0].Label)
	}
	if plan.Days[1].Label != "Day B" {
		t.Errorf("Expected fallback label, got %q", plan.Days[1].Label)
	}
}

func Test_application_createExercise(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	if err := client.Login(ctx, "exercises@example.com", "Tester"); err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}

	var created exerciseJSON
	status, err := client.PostJSON(ctx, "/api/exercises", map[string]string{
		"name":        "  Zercher Squat  ",
		"muscleGroup": "LEGS",
	}, &created)
	if err != nil {
		t.Fatalf("Failed to create exercise: %v", err)
	}
	if status != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, status)
	}
	if created.Name != "Zercher Squat" {
		t.Errorf("Expected trimmed name, got %q", created.Name)
	}
	if created.IsGlobal {
		t.Error("Expected a user-owned exercise")
	}

	// Duplicates conflict.
	status, err = client.PostJSON(ctx, "/api/exercises", map[string]string{
		"name":        "Zercher Squat",
		"muscleGroup": "LEGS",
	}, nil)
	if err != nil {
		t.Fatalf("Failed to post exercise: %v", err)
	}
	if status != http.StatusConflict {
		t.Errorf("Expected status %d for duplicate, got %d", http.StatusConflict, status)
	}

	// Unknown muscle group is rejected.
	status, err = client.PostJSON(ctx, "/api/exercises", map[string]string{
		"name":        "Neck Curl",
		"muscleGroup": "NECK",
	}, nil)
	if err != nil {
		t.Fatalf("Failed to post exercise: %v", err)
	}
	if status != http.StatusBadRequest {
		t.Errorf("Expected status %d for bad muscle group, got %d", http.StatusBadRequest, status)
	}
}
