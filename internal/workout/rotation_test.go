package workout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mkallio/splitlog/internal/workout"
)

func TestDayKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		planType workout.PlanType
		want     []string
	}{
		{planType: workout.PlanTypeAB, want: []string{"A", "B"}},
		{planType: workout.PlanTypeABC, want: []string{"A", "B", "C"}},
		{planType: workout.PlanTypeABCD, want: []string{"A", "B", "C", "D"}},
		{planType: workout.PlanTypeFullBody, want: []string{"FULL"}},
		{planType: workout.PlanType("BOGUS"), want: []string{"FULL"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.planType), func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, workout.DayKeys(tt.planType)); diff != "" {
				t.Errorf("DayKeys() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextDayKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		planType workout.PlanType
		last     string
		want     string
	}{
		{name: "no history starts at first day", planType: workout.PlanTypeABC, last: "", want: "A"},
		{name: "advances to next day", planType: workout.PlanTypeABC, last: "A", want: "B"},
		{name: "wraps around after last day", planType: workout.PlanTypeABC, last: "C", want: "A"},
		{name: "two day split wraps", planType: workout.PlanTypeAB, last: "B", want: "A"},
		{name: "four day split advances", planType: workout.PlanTypeABCD, last: "C", want: "D"},
		{name: "full body always repeats", planType: workout.PlanTypeFullBody, last: "FULL", want: "FULL"},
		{name: "unknown last key restarts rotation", planType: workout.PlanTypeABC, last: "D", want: "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := workout.NextDayKey(tt.planType, tt.last); got != tt.want {
				t.Errorf("NextDayKey(%s, %q) = %q, want %q", tt.planType, tt.last, got, tt.want)
			}
		})
	}

	t.Run("every key is reachable and the rotation cycles", func(t *testing.T) {
		t.Parallel()
		for _, planType := range []workout.PlanType{
			workout.PlanTypeAB, workout.PlanTypeABC, workout.PlanTypeABCD, workout.PlanTypeFullBody,
		} {
			keys := workout.DayKeys(planType)
			current := workout.NextDayKey(planType, "")
			var visited []string
			for range keys {
				visited = append(visited, current)
				current = workout.NextDayKey(planType, current)
			}
			if diff := cmp.Diff(keys, visited); diff != "" {
				t.Errorf("%s rotation mismatch (-want +got):\n%s", planType, diff)
			}
			if current != keys[0] {
				t.Errorf("%s rotation did not cycle back to %q, got %q", planType, keys[0], current)
			}
		}
	})
}
