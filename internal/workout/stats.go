package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Measure is a weight and repetition pair.
type Measure struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// CandidateKind discriminates the two candidate variants.
type CandidateKind string

const (
	CandidateNormal  CandidateKind = "NORMAL"
	CandidateDropSet CandidateKind = "DROPSET"
)

// Candidate is the best-performance representative for one exercise within a
// collection of sets. Exactly one variant is populated depending on Kind: a
// normal candidate carries a single measure, a drop-set candidate carries the
// whole chain.
type Candidate struct {
	Kind CandidateKind

	// Normal candidate.
	Normal Measure

	// Drop-set candidate.
	Main        Measure
	Drops       []Measure
	BestPart    Measure
	DropGroupID int
}

type normalCandidateJSON struct {
	Kind   CandidateKind `json:"kind"`
	Weight float64       `json:"weight"`
	Reps   int           `json:"reps"`
}

type dropCandidateJSON struct {
	Kind        CandidateKind `json:"kind"`
	Main        Measure       `json:"main"`
	Drops       []Measure     `json:"drops"`
	BestPart    Measure       `json:"bestPart"`
	DropGroupID int           `json:"dropGroupId"`
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CandidateNormal:
		return json.Marshal(normalCandidateJSON{Kind: c.Kind, Weight: c.Normal.Weight, Reps: c.Normal.Reps})
	case CandidateDropSet:
		drops := c.Drops
		if drops == nil {
			drops = []Measure{}
		}
		return json.Marshal(dropCandidateJSON{
			Kind:        c.Kind,
			Main:        c.Main,
			Drops:       drops,
			BestPart:    c.BestPart,
			DropGroupID: c.DropGroupID,
		})
	}
	return nil, fmt.Errorf("unknown candidate kind %q", c.Kind)
}

// ExerciseStats holds the all-time best and the best of the most recent
// completed workout for one exercise. Either field may be nil when no
// completed history exists.
type ExerciseStats struct {
	PR   *Candidate `json:"pr"`
	Last *Candidate `json:"last"`
}

// setScore ranks a set by estimated one-rep max, Epley style.
func setScore(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// bestFromSets picks the highest-scoring candidate from a list of sets.
//
// Normal sets compete individually. Each drop-set group competes as a whole
// with the score of its best member, and wins only with a strictly higher
// score than the best normal set. Groups are evaluated in the order they first
// appear in the input, so callers should order sets deterministically.
func bestFromSets(sets []Set) *Candidate {
	var (
		normalSets  []Set
		groupOrder  []int
		setsByGroup = map[int][]Set{}
	)
	for _, s := range sets {
		if s.Kind == SetKindNormal || s.DropGroupID == nil {
			normalSets = append(normalSets, s)
			continue
		}
		groupID := *s.DropGroupID
		if _, ok := setsByGroup[groupID]; !ok {
			groupOrder = append(groupOrder, groupID)
		}
		setsByGroup[groupID] = append(setsByGroup[groupID], s)
	}

	var best *Candidate
	bestScore := math.Inf(-1)

	for _, s := range normalSets {
		if sc := setScore(s.Weight, s.Reps); sc > bestScore {
			bestScore = sc
			best = &Candidate{Kind: CandidateNormal, Normal: Measure{Weight: s.Weight, Reps: s.Reps}}
		}
	}

	for _, groupID := range groupOrder {
		members := setsByGroup[groupID]
		sort.SliceStable(members, func(i, j int) bool { return members[i].SetIndex < members[j].SetIndex })

		bestPart := Measure{}
		bestPartScore := math.Inf(-1)
		for _, s := range members {
			if sc := setScore(s.Weight, s.Reps); sc > bestPartScore {
				bestPartScore = sc
				bestPart = Measure{Weight: s.Weight, Reps: s.Reps}
			}
		}

		main := members[0]
		var drops []Measure
		for _, s := range members {
			if s.Kind == SetKindDropMain {
				main = s
				break
			}
		}
		for _, s := range members {
			if s.Kind == SetKindDropPart {
				drops = append(drops, Measure{Weight: s.Weight, Reps: s.Reps})
			}
		}

		if bestPartScore > bestScore {
			bestScore = bestPartScore
			best = &Candidate{
				Kind:        CandidateDropSet,
				Main:        Measure{Weight: main.Weight, Reps: main.Reps},
				Drops:       drops,
				BestPart:    bestPart,
				DropGroupID: groupID,
			}
		}
	}

	return best
}

const statsConcurrency = 4

// statsFor computes PR and last-workout reference stats for the given
// exercises. Queries fan out over the read-only pool.
func (s *Service) statsFor(ctx context.Context, exerciseIDs []int) (map[int]ExerciseStats, error) {
	stats := make([]ExerciseStats, len(exerciseIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(statsConcurrency)
	for i, exerciseID := range exerciseIDs {
		g.Go(func() error {
			completedSets, err := s.repo.stats.completedSets(ctx, exerciseID)
			if err != nil {
				return fmt.Errorf("query completed sets for exercise %d: %w", exerciseID, err)
			}
			lastSets, err := s.repo.stats.lastCompletedWorkoutSets(ctx, exerciseID)
			if err != nil {
				return fmt.Errorf("query last workout sets for exercise %d: %w", exerciseID, err)
			}
			stats[i] = ExerciseStats{
				PR:   bestFromSets(completedSets),
				Last: bestFromSets(lastSets),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byExercise := make(map[int]ExerciseStats, len(exerciseIDs))
	for i, exerciseID := range exerciseIDs {
		byExercise[exerciseID] = stats[i]
	}
	return byExercise, nil
}
