package diagnostic

// Catalog is the immutable ordered question list loaded once at startup.
type Catalog struct {
	items []Question
}

// NewCatalog returns a Catalog over the supplied questions.
func NewCatalog(items []Question) *Catalog {
	return &Catalog{items: append([]Question(nil), items...)}
}

// Size returns the number of diagnostic questions.
func (c *Catalog) Size() int {
	return len(c.items)
}

// At returns the nth question, 1-based to match the conversation step.
func (c *Catalog) At(n int) (Question, bool) {
	if n < 1 || n > len(c.items) {
		return Question{}, false
	}
	return c.items[n-1], true
}

// All returns the questions in catalog order.
func (c *Catalog) All() []Question {
	return append([]Question(nil), c.items...)
}

// FindByID looks up a question by identifier.
func (c *Catalog) FindByID(id string) (Question, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Question{}, false
}

// Seed returns the fixed three-question GTM diagnostic.
func Seed() []Question {
	return []Question{
		{
			ID:    "q1_icp",
			Phase: "icp",
			Text:  "Who is your ideal customer?",
			Options: []string{
				"SMB Founders (1-50 employees)",
				"Mid-Market (50-500 employees)",
				"Enterprise (500+ employees)",
				"Consumer/B2C",
				"Not sure yet",
			},
		},
		{
			ID:    "q2_problem",
			Phase: "messaging",
			Text:  "How clear is the problem you solve?",
			Options: []string{
				"Crystal clear - customers describe it to us",
				"Pretty clear - we've validated it",
				"Somewhat clear - we think we know",
				"Still figuring it out",
			},
		},
		{
			ID:    "q3_validation",
			Phase: "validation",
			Text:  "How validated is your solution?",
			Options: []string{
				"Revenue from target ICP",
				"Pilots/design partners",
				"Interest/waitlist",
				"Not validated yet",
			},
		},
	}
}
