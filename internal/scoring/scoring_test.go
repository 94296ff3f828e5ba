package scoring

import (
	"testing"

	"github.com/google/uuid"
)

var (
	stateA = uuid.New()
	stateB = uuid.New()
	stateC = uuid.New()

	q1 = uuid.New()
	q2 = uuid.New()
	q3 = uuid.New()
	q4 = uuid.New()
)

func catalog() []QuestionRef {
	return []QuestionRef{
		{ID: q1, StateID: stateA},
		{ID: q2, StateID: stateA},
		{ID: q3, StateID: stateB},
		{ID: q4, StateID: stateC},
	}
}

func TestScoreTotalsAndDominant(t *testing.T) {
	res := Score(catalog(), []Rating{
		{QuestionID: q1, Rating: 5},
		{QuestionID: q2, Rating: 3},
		{QuestionID: q3, Rating: 7},
	})

	if got := res.Scores[stateA]; got != 8 {
		t.Fatalf("stateA score = %d, want 8", got)
	}
	if got := res.Scores[stateB]; got != 7 {
		t.Fatalf("stateB score = %d, want 7", got)
	}
	if res.Dominant == nil || *res.Dominant != stateA {
		t.Fatalf("dominant = %v, want stateA", res.Dominant)
	}
	if res.Total != 15 {
		t.Fatalf("total = %d, want 15", res.Total)
	}
}

func TestScoreSumInvariant(t *testing.T) {
	ratings := []Rating{
		{QuestionID: q1, Rating: 2},
		{QuestionID: q2, Rating: 6},
		{QuestionID: q3, Rating: 1},
		{QuestionID: q4, Rating: 7},
	}
	res := Score(catalog(), ratings)

	want := 0
	for _, r := range ratings {
		want += r.Rating
	}
	got := 0
	for _, s := range res.Scores {
		got += s
	}
	if got != want {
		t.Fatalf("sum of scores = %d, want %d", got, want)
	}
	if res.Total != want {
		t.Fatalf("total = %d, want %d", res.Total, want)
	}
}

func TestScoreTieKeepsFirstToReach(t *testing.T) {
	// A and B both end at 7; A reaches 7 first in scan order.
	res := Score(catalog(), []Rating{
		{QuestionID: q1, Rating: 7},
		{QuestionID: q3, Rating: 7},
	})
	if res.Dominant == nil || *res.Dominant != stateA {
		t.Fatalf("dominant = %v, want stateA (first to reach the max)", res.Dominant)
	}
}

func TestScoreTieDoesNotDisplaceIncumbent(t *testing.T) {
	// Running totals: A=3, then B=7 (dominant), then A=7 (tie, no steal).
	res := Score(catalog(), []Rating{
		{QuestionID: q1, Rating: 3},
		{QuestionID: q3, Rating: 7},
		{QuestionID: q2, Rating: 4},
	})
	if res.Scores[stateA] != 7 || res.Scores[stateB] != 7 {
		t.Fatalf("scores = %v, want A=7 B=7", res.Scores)
	}
	if res.Dominant == nil || *res.Dominant != stateB {
		t.Fatalf("dominant = %v, want stateB (incumbent keeps the tie)", res.Dominant)
	}
}

func TestScoreStrictlyGreaterRetakes(t *testing.T) {
	// B takes the lead, then A strictly exceeds it and takes it back.
	res := Score(catalog(), []Rating{
		{QuestionID: q1, Rating: 5},
		{QuestionID: q3, Rating: 7},
		{QuestionID: q2, Rating: 3},
	})
	if res.Dominant == nil || *res.Dominant != stateA {
		t.Fatalf("dominant = %v, want stateA", res.Dominant)
	}
}

func TestScoreEmptyRatings(t *testing.T) {
	res := Score(catalog(), nil)
	if len(res.Scores) != 0 {
		t.Fatalf("scores = %v, want empty", res.Scores)
	}
	if res.Dominant != nil {
		t.Fatalf("dominant = %v, want nil", res.Dominant)
	}

	// Derivations on the empty result must not divide by zero.
	pct := Percentages(res)
	if len(pct) != 0 {
		t.Fatalf("percentages = %v, want empty", pct)
	}
	avg := Averages(catalog(), nil)
	if len(avg) != 0 {
		t.Fatalf("averages = %v, want empty", avg)
	}
}

func TestScoreSkipsUnknownQuestions(t *testing.T) {
	res := Score(catalog(), []Rating{
		{QuestionID: uuid.New(), Rating: 7},
		{QuestionID: q3, Rating: 2},
	})
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}
	if len(res.Scores) != 1 || res.Scores[stateB] != 2 {
		t.Fatalf("scores = %v, want only stateB=2", res.Scores)
	}
}

func TestScoreOmitsUntouchedStates(t *testing.T) {
	res := Score(catalog(), []Rating{{QuestionID: q1, Rating: 4}})
	if _, ok := res.Scores[stateB]; ok {
		t.Fatalf("stateB should not get a forced zero entry")
	}
	if _, ok := res.Scores[stateC]; ok {
		t.Fatalf("stateC should not get a forced zero entry")
	}
}

func TestPercentages(t *testing.T) {
	res := Score(catalog(), []Rating{
		{QuestionID: q1, Rating: 6},
		{QuestionID: q3, Rating: 2},
	})
	pct := Percentages(res)
	if pct[stateA] != 75 {
		t.Fatalf("stateA pct = %v, want 75", pct[stateA])
	}
	if pct[stateB] != 25 {
		t.Fatalf("stateB pct = %v, want 25", pct[stateB])
	}
}

func TestAverages(t *testing.T) {
	avg := Averages(catalog(), []Rating{
		{QuestionID: q1, Rating: 5},
		{QuestionID: q2, Rating: 2},
		{QuestionID: q3, Rating: 7},
	})
	if avg[stateA] != 3.5 {
		t.Fatalf("stateA avg = %v, want 3.5", avg[stateA])
	}
	if avg[stateB] != 7 {
		t.Fatalf("stateB avg = %v, want 7", avg[stateB])
	}
}
