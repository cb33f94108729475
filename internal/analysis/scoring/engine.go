package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
)

// ErrIncompleteAnswers signals that scoring was invoked before every
// catalog question was answered. The orchestrator guarantees completeness,
// so hitting this is a programming-contract violation, not user input.
var ErrIncompleteAnswers = errors.New("answer set is missing required questions")

const maxQuestionScore = 3

// Threshold maps a level to the inclusive minimum total score that
// reaches it. Thresholds are evaluated highest level first.
type Threshold struct {
	Level int
	Min   int
}

// Config tunes the level bands and the attainment curve. Both have
// defaults derived from the catalog size; the algorithm itself is fixed.
type Config struct {
	// Thresholds ordered by descending level; first match wins.
	Thresholds []Threshold
	// AttainmentAbove holds the percentage reported for the achieved
	// level and the levels above it, indexed by distance from the
	// achieved level. Levels below the achieved one report 100; levels
	// past the end of the slice report 0. Must be non-increasing.
	AttainmentAbove []int
}

// DefaultConfig partitions [0, 3N] into five monotone bands. For the
// three-question catalog the lower bounds come out as 7/5/3/1/0, so a
// total of 7-9 reaches level 5 and a total of 0 lands on level 1.
func DefaultConfig(questionCount int) Config {
	maxTotal := maxQuestionScore * questionCount
	ceilFrac := func(num, den int) int {
		return (maxTotal*num + den - 1) / den
	}
	return Config{
		Thresholds: []Threshold{
			{Level: 5, Min: ceilFrac(3, 4)},
			{Level: 4, Min: ceilFrac(1, 2)},
			{Level: 3, Min: ceilFrac(3, 10)},
			{Level: 2, Min: ceilFrac(1, 10)},
			{Level: 1, Min: 0},
		},
		AttainmentAbove: []int{80, 40, 10},
	}
}

// Engine maps a complete answer set to a maturity level and scorecard.
// Scoring is pure: identical answers always yield identical scorecards.
type Engine struct {
	catalog *diagnostic.Catalog
	cfg     Config
}

// NewEngine builds an engine over the catalog with the given config.
// Zero-value config fields fall back to defaults.
func NewEngine(catalog *diagnostic.Catalog, cfg Config) *Engine {
	def := DefaultConfig(catalog.Size())
	if len(cfg.Thresholds) == 0 {
		cfg.Thresholds = def.Thresholds
	}
	if len(cfg.AttainmentAbove) == 0 {
		cfg.AttainmentAbove = def.AttainmentAbove
	}
	sorted := append([]Threshold(nil), cfg.Thresholds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level > sorted[j].Level })
	cfg.Thresholds = sorted
	return &Engine{catalog: catalog, cfg: cfg}
}

// QuestionScore returns the points a single answer contributes: 3 for the
// best-ranked option down to 1 for the third, 0 for anything beyond or
// for free text that matched no option.
func QuestionScore(a diagnostic.Answer) int {
	if !a.Matched() || a.Rank >= maxQuestionScore {
		return 0
	}
	return maxQuestionScore - a.Rank
}

// Level determines the achieved level without building the scorecard.
// Used for the prose disclosure ahead of the confirmation gate.
func (e *Engine) Level(answers map[string]diagnostic.Answer) (int, error) {
	total, err := e.total(answers)
	if err != nil {
		return 0, err
	}
	return e.levelForTotal(total), nil
}

// Score computes the full scorecard for a complete answer set.
func (e *Engine) Score(answers map[string]diagnostic.Answer) (Scorecard, error) {
	total, err := e.total(answers)
	if err != nil {
		return Scorecard{}, err
	}
	level := e.levelForTotal(total)

	return Scorecard{
		Level:           level,
		Scores:          e.attainment(level),
		Gaps:            e.gaps(level, answers),
		Recommendations: e.recommendations(level),
	}, nil
}

func (e *Engine) total(answers map[string]diagnostic.Answer) (int, error) {
	total := 0
	for _, q := range e.catalog.All() {
		a, ok := answers[q.ID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrIncompleteAnswers, q.ID)
		}
		total += QuestionScore(a)
	}
	return total, nil
}

func (e *Engine) levelForTotal(total int) int {
	for _, t := range e.cfg.Thresholds {
		if total >= t.Min {
			return t.Level
		}
	}
	return 1
}

// attainment derives the per-level percentage map from the achieved
// level: full attainment below it, a non-increasing tail at and above it.
func (e *Engine) attainment(achieved int) map[string]int {
	scores := make(map[string]int, 5)
	for level := 1; level <= 5; level++ {
		key := fmt.Sprintf("l%d", level)
		switch {
		case level < achieved:
			scores[key] = 100
		case level-achieved < len(e.cfg.AttainmentAbove):
			scores[key] = e.cfg.AttainmentAbove[level-achieved]
		default:
			scores[key] = 0
		}
	}
	return scores
}

// gaps combines the top level gaps with one gap per question that scored
// below its maximum, in catalog order, capped at five.
func (e *Engine) gaps(level int, answers map[string]diagnostic.Answer) []string {
	gaps := make([]string, 0, 5)
	if table, ok := levelGaps[level]; ok {
		gaps = append(gaps, table[:2]...)
	}
	for _, q := range e.catalog.All() {
		if QuestionScore(answers[q.ID]) < maxQuestionScore {
			if gap, ok := questionGaps[q.ID]; ok {
				gaps = append(gaps, gap)
			}
		}
	}
	if len(gaps) > 5 {
		gaps = gaps[:5]
	}
	return gaps
}

// recommendations returns the level's actions plus one stretch goal from
// the next level, capped at five.
func (e *Engine) recommendations(level int) []string {
	recs := make([]string, 0, 5)
	if table, ok := levelRecommendations[level]; ok {
		recs = append(recs, table...)
	}
	if next, ok := levelRecommendations[level+1]; ok && level < 5 {
		recs = append(recs, "Stretch: "+next[0])
	}
	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}
