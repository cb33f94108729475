package scoring_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/ChaiWithJai/gtm-agent/internal/analysis/scoring"
	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
)

func newEngine() (*scoring.Engine, *diagnostic.Catalog) {
	catalog := diagnostic.NewCatalog(diagnostic.Seed())
	return scoring.NewEngine(catalog, scoring.DefaultConfig(catalog.Size())), catalog
}

func answersAtRanks(catalog *diagnostic.Catalog, ranks ...int) map[string]diagnostic.Answer {
	answers := make(map[string]diagnostic.Answer)
	for i, rank := range ranks {
		q, ok := catalog.At(i + 1)
		if !ok {
			panic("rank list longer than catalog")
		}
		answers[q.ID] = diagnostic.NewAnswer(q, q.Options[rank])
	}
	return answers
}

func TestScoreTopAnswersReachLevelFive(t *testing.T) {
	engine, catalog := newEngine()

	// Q1 and Q2 best-ranked, Q3 second-ranked: 3+3+2 = 8, inside the 7-9 band.
	answers := answersAtRanks(catalog, 0, 0, 1)

	card, err := engine.Score(answers)
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}
	if card.Level != 5 {
		t.Fatalf("expected level 5, got %d", card.Level)
	}
}

func TestScoreWorstAnswersLandOnLevelOne(t *testing.T) {
	engine, catalog := newEngine()

	answers := make(map[string]diagnostic.Answer)
	for _, q := range catalog.All() {
		answers[q.ID] = diagnostic.NewAnswer(q, q.Options[len(q.Options)-1])
	}

	card, err := engine.Score(answers)
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}
	if card.Level != 1 {
		t.Fatalf("expected level 1, got %d", card.Level)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	engine, catalog := newEngine()
	answers := answersAtRanks(catalog, 1, 0, 2)

	first, err := engine.Score(answers)
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}
	second, err := engine.Score(answers)
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical answers produced different scorecards:\n%+v\n%+v", first, second)
	}
}

func TestUnmatchedFreeTextScoresZero(t *testing.T) {
	engine, catalog := newEngine()

	answers := make(map[string]diagnostic.Answer)
	for _, q := range catalog.All() {
		answers[q.ID] = diagnostic.NewAnswer(q, "something the buttons never offered")
	}

	card, err := engine.Score(answers)
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}
	if card.Level != 1 {
		t.Fatalf("expected level 1 for all-unmatched answers, got %d", card.Level)
	}
}

func TestQuestionScoreRanks(t *testing.T) {
	cases := []struct {
		rank int
		want int
	}{
		{rank: 0, want: 3},
		{rank: 1, want: 2},
		{rank: 2, want: 1},
		{rank: 3, want: 0},
		{rank: 4, want: 0},
		{rank: -1, want: 0},
	}

	for _, tc := range cases {
		got := scoring.QuestionScore(diagnostic.Answer{Raw: "x", Rank: tc.rank})
		if got != tc.want {
			t.Fatalf("rank %d: expected score %d, got %d", tc.rank, tc.want, got)
		}
	}
}

func TestScoreMissingAnswerFailsContract(t *testing.T) {
	engine, catalog := newEngine()

	answers := answersAtRanks(catalog, 0, 0, 0)
	first, _ := catalog.At(1)
	delete(answers, first.ID)

	if _, err := engine.Score(answers); !errors.Is(err, scoring.ErrIncompleteAnswers) {
		t.Fatalf("expected ErrIncompleteAnswers, got %v", err)
	}
	if _, err := engine.Level(answers); !errors.Is(err, scoring.ErrIncompleteAnswers) {
		t.Fatalf("expected ErrIncompleteAnswers from Level, got %v", err)
	}
}

func TestAttainmentIsMonotoneAboveAchievedLevel(t *testing.T) {
	engine, catalog := newEngine()

	for _, ranks := range [][]int{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {4, 3, 3}} {
		card, err := engine.Score(answersAtRanks(catalog, ranks...))
		if err != nil {
			t.Fatalf("Score err: %v", err)
		}
		for level := card.Level; level < 5; level++ {
			cur := card.Scores[levelKey(level)]
			next := card.Scores[levelKey(level+1)]
			if next > cur {
				t.Fatalf("attainment increased above achieved level %d: l%d=%d l%d=%d",
					card.Level, level, cur, level+1, next)
			}
		}
		for level := 1; level < card.Level; level++ {
			if card.Scores[levelKey(level)] != 100 {
				t.Fatalf("expected full attainment below achieved level, got %d for l%d",
					card.Scores[levelKey(level)], level)
			}
		}
	}
}

func levelKey(level int) string {
	return fmt.Sprintf("l%d", level)
}

func TestGapsFlagQuestionsBelowMaximum(t *testing.T) {
	engine, catalog := newEngine()

	// Only the validation question misses its maximum.
	card, err := engine.Score(answersAtRanks(catalog, 0, 0, 3))
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}

	if !contains(card.Gaps, "Solution not yet validated with customers") {
		t.Fatalf("expected validation gap, got %v", card.Gaps)
	}
	if contains(card.Gaps, "No clear ICP defined") {
		t.Fatalf("did not expect ICP gap for a top-ranked ICP answer, got %v", card.Gaps)
	}
	if len(card.Gaps) > 5 {
		t.Fatalf("gaps exceed cap: %v", card.Gaps)
	}
}

func TestRecommendationsIncludeStretchGoal(t *testing.T) {
	engine, catalog := newEngine()

	card, err := engine.Score(answersAtRanks(catalog, 2, 2, 2))
	if err != nil {
		t.Fatalf("Score err: %v", err)
	}
	if len(card.Recommendations) == 0 || len(card.Recommendations) > 5 {
		t.Fatalf("unexpected recommendation count: %v", card.Recommendations)
	}
	if card.Level < 5 {
		last := card.Recommendations[len(card.Recommendations)-1]
		if len(last) < 9 || last[:9] != "Stretch: " {
			t.Fatalf("expected trailing stretch goal, got %q", last)
		}
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
