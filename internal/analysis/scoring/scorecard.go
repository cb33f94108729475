package scoring

// Scorecard is the structured diagnosis produced once per session after
// the confirmation gate. Immutable after creation.
type Scorecard struct {
	Level           int            `json:"level"`
	Scores          map[string]int `json:"scores"`
	Gaps            []string       `json:"gaps"`
	Recommendations []string       `json:"recommendations"`
}
