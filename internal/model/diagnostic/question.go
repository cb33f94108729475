package diagnostic

// Question is one diagnostic step presented with ranked button options.
// Options are ordered best to worst; the option index is the rank the
// scoring engine consumes.
type Question struct {
	ID      string   `json:"questionId"`
	Phase   string   `json:"phase"`
	Text    string   `json:"questionText"`
	Options []string `json:"options"`
}

// Rank returns the 0-indexed rank of the given option, or -1 when the
// text does not match any option verbatim.
func (q Question) Rank(option string) int {
	for i, opt := range q.Options {
		if opt == option {
			return i
		}
	}
	return -1
}

// Answer is the tagged result of recording a user reply to a question.
// A matched reply carries the option rank; free text that matches no
// option is kept verbatim with Rank == -1 and scores zero.
type Answer struct {
	Raw  string `json:"raw"`
	Rank int    `json:"rank"`
}

// Matched reports whether the answer hit one of the presented options.
func (a Answer) Matched() bool {
	return a.Rank >= 0
}

// NewAnswer resolves free text against the question's option list.
func NewAnswer(q Question, text string) Answer {
	return Answer{Raw: text, Rank: q.Rank(text)}
}
