// Package scoring computes per-state totals and the dominant harmonic state
// for an assessment. It is pure: no I/O, no clock, no persistence.
package scoring

import "github.com/google/uuid"

// QuestionRef maps a question to the harmonic state it scores against.
type QuestionRef struct {
	ID      uuid.UUID
	StateID uuid.UUID
}

// Rating is one answered question. Ratings are scored in slice order;
// callers decide what that order means (the session layer passes answers
// in the order they were persisted).
type Rating struct {
	QuestionID uuid.UUID
	Rating     int
}

// Result of a single scoring pass. Scores only contains states that at
// least one rating mapped to; untouched states get no zero entry.
// Dominant is nil when there are no ratings.
type Result struct {
	Scores   map[uuid.UUID]int
	Dominant *uuid.UUID
	Total    int
}

// Score folds ratings left to right, accumulating a running total per state.
// A state becomes dominant the moment its running total strictly exceeds the
// best seen so far; a later tie never displaces the incumbent. That running
// first-to-reach rule is the pinned tie-break for the product.
//
// Ratings whose question id is not in questions carry no state and are
// skipped. Rating range checks belong to the caller.
func Score(questions []QuestionRef, ratings []Rating) Result {
	stateByQuestion := make(map[uuid.UUID]uuid.UUID, len(questions))
	for _, q := range questions {
		stateByQuestion[q.ID] = q.StateID
	}

	res := Result{Scores: make(map[uuid.UUID]int)}

	var dominant uuid.UUID
	best := 0
	have := false

	for _, r := range ratings {
		stateID, ok := stateByQuestion[r.QuestionID]
		if !ok {
			continue
		}
		res.Scores[stateID] += r.Rating
		res.Total += r.Rating
		if !have || res.Scores[stateID] > best {
			dominant = stateID
			best = res.Scores[stateID]
			have = true
		}
	}

	if have {
		d := dominant
		res.Dominant = &d
	}
	return res
}

// Percentages returns each state's share of the grand total, as
// 100*score/total. A zero total yields zeros, never a division by zero.
func Percentages(r Result) map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(r.Scores))
	for stateID, score := range r.Scores {
		if r.Total == 0 {
			out[stateID] = 0
			continue
		}
		out[stateID] = 100 * float64(score) / float64(r.Total)
	}
	return out
}

// Averages returns the mean rating per state over the ratings that mapped
// to it, zero-guarded like Percentages.
func Averages(questions []QuestionRef, ratings []Rating) map[uuid.UUID]float64 {
	stateByQuestion := make(map[uuid.UUID]uuid.UUID, len(questions))
	for _, q := range questions {
		stateByQuestion[q.ID] = q.StateID
	}

	sums := make(map[uuid.UUID]int)
	counts := make(map[uuid.UUID]int)
	for _, r := range ratings {
		stateID, ok := stateByQuestion[r.QuestionID]
		if !ok {
			continue
		}
		sums[stateID] += r.Rating
		counts[stateID]++
	}

	out := make(map[uuid.UUID]float64, len(sums))
	for stateID, sum := range sums {
		n := counts[stateID]
		if n == 0 {
			out[stateID] = 0
			continue
		}
		out[stateID] = float64(sum) / float64(n)
	}
	return out
}
