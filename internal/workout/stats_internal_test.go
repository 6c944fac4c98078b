package workout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr(v int) *int { return &v }

func TestSetScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{name: "zero reps scores bare weight", weight: 100, reps: 0, want: 100},
		{name: "thirty reps doubles the weight", weight: 100, reps: 30, want: 200},
		{name: "typical working set", weight: 60, reps: 10, want: 80},
		{name: "zero weight scores zero", weight: 0, reps: 15, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := setScore(tt.weight, tt.reps)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("setScore(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
		})
	}
}

func TestBestFromSets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sets []Set
		want *Candidate
	}{
		{
			name: "no sets yields no candidate",
			sets: nil,
			want: nil,
		},
		{
			name: "best normal set wins",
			sets: []Set{
				{SetIndex: 0, Kind: SetKindNormal, Weight: 60, Reps: 10},
				{SetIndex: 1, Kind: SetKindNormal, Weight: 80, Reps: 6},
				{SetIndex: 2, Kind: SetKindNormal, Weight: 70, Reps: 8},
			},
			want: &Candidate{Kind: CandidateNormal, Normal: Measure{Weight: 80, Reps: 6}},
		},
		{
			name: "earlier normal set wins ties",
			sets: []Set{
				{SetIndex: 0, Kind: SetKindNormal, Weight: 80, Reps: 6},
				{SetIndex: 1, Kind: SetKindNormal, Weight: 80, Reps: 6},
			},
			want: &Candidate{Kind: CandidateNormal, Normal: Measure{Weight: 80, Reps: 6}},
		},
		{
			name: "drop group beats weaker normal set",
			sets: []Set{
				{SetIndex: 0, Kind: SetKindNormal, Weight: 50, Reps: 8},
				{SetIndex: 1, Kind: SetKindDropMain, Weight: 80, Reps: 6, DropGroupID: ptr(7)},
				{SetIndex: 2, Kind: SetKindDropPart, Weight: 60, Reps: 8, DropGroupID: ptr(7)},
				{SetIndex: 3, Kind: SetKindDropPart, Weight: 40, Reps: 10, DropGroupID: ptr(7)},
			},
			want: &Candidate{
				Kind:        CandidateDropSet,
				Main:        Measure{Weight: 80, Reps: 6},
				Drops:       []Measure{{Weight: 60, Reps: 8}, {Weight: 40, Reps: 10}},
				BestPart:    Measure{Weight: 80, Reps: 6},
				DropGroupID: 7,
			},
		},
		{
			name: "normal set wins a tie against a drop group",
			sets: []Set{
				{SetIndex: 0, Kind: SetKindNormal, Weight: 80, Reps: 6},
				{SetIndex: 1, Kind: SetKindDropMain, Weight: 80, Reps: 6, DropGroupID: ptr(3)},
				{SetIndex: 2, Kind: SetKindDropPart, Weight: 50, Reps: 8, DropGroupID: ptr(3)},
			},
			want: &Candidate{Kind: CandidateNormal, Normal: Measure{Weight: 80, Reps: 6}},
		},
		{
			name: "best part inside the group may be a drop part",
			sets: []Set{
				{SetIndex: 0, Kind: SetKindDropMain, Weight: 50, Reps: 5, DropGroupID: ptr(2)},
				{SetIndex: 1, Kind: SetKindDropPart, Weight: 60, Reps: 8, DropGroupID: ptr(2)},
			},
			want: &Candidate{
				Kind:        CandidateDropSet,
				Main:        Measure{Weight: 50, Reps: 5},
				Drops:       []Measure{{Weight: 60, Reps: 8}},
				BestPart:    Measure{Weight: 60, Reps: 8},
				DropGroupID: 2,
			},
		},
		{
			name: "group without a main falls back to lowest index member",
			sets: []Set{
				{SetIndex: 4, Kind: SetKindDropPart, Weight: 40, Reps: 10, DropGroupID: ptr(9)},
				{SetIndex: 3, Kind: SetKindDropPart, Weight: 55, Reps: 8, DropGroupID: ptr(9)},
			},
			want: &Candidate{
				Kind:        CandidateDropSet,
				Main:        Measure{Weight: 55, Reps: 8},
				Drops:       []Measure{{Weight: 55, Reps: 8}, {Weight: 40, Reps: 10}},
				BestPart:    Measure{Weight: 55, Reps: 8},
				DropGroupID: 9,
			},
		},
		{
			name: "first seen group wins a tie between groups",
			sets: []Set{
				{SetIndex: 0, Kind: SetKindDropMain, Weight: 80, Reps: 6, DropGroupID: ptr(11)},
				{SetIndex: 1, Kind: SetKindDropMain, Weight: 80, Reps: 6, DropGroupID: ptr(12)},
			},
			want: &Candidate{
				Kind:        CandidateDropSet,
				Main:        Measure{Weight: 80, Reps: 6},
				BestPart:    Measure{Weight: 80, Reps: 6},
				DropGroupID: 11,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := bestFromSets(tt.sets)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("bestFromSets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
