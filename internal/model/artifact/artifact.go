package artifact

import "strings"

// Type tags the kind of generated document.
type Type string

const (
	TypeScorecard  Type = "scorecard"
	TypeNarrative  Type = "narrative"
	TypeEmails     Type = "emails"
	TypeLinkedIn   Type = "linkedin"
	TypeActionPlan Type = "action_plan"
)

// Spec identifies one entry of the fixed per-session artifact manifest.
type Spec struct {
	Filename string `json:"filename"`
	Type     Type   `json:"type"`
}

// Artifact is a generated document owned by a session. Content is never
// mutated after creation.
type Artifact struct {
	Filename string `json:"filename"`
	Type     Type   `json:"type"`
	Content  string `json:"-"`
}

// Manifest returns the fixed artifact set, identical for every session,
// in generation order.
func Manifest() []Spec {
	return []Spec{
		{Filename: "gtm-scorecard.json", Type: TypeScorecard},
		{Filename: "gtm-narrative.md", Type: TypeNarrative},
		{Filename: "cold-email-sequence.md", Type: TypeEmails},
		{Filename: "linkedin-posts.md", Type: TypeLinkedIn},
		{Filename: "action-plan.md", Type: TypeActionPlan},
	}
}

// MediaType maps an artifact filename to the download content type.
func MediaType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".md"):
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}
