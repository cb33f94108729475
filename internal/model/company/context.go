package company

// Context holds the normalized product facts extracted from a company
// website or supplied as a free-text description.
type Context struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	SourceURL   string   `json:"sourceUrl,omitempty"`
}
