package event

import (
	"github.com/ChaiWithJai/gtm-agent/internal/analysis/scoring"
	"github.com/ChaiWithJai/gtm-agent/internal/model/artifact"
	"github.com/ChaiWithJai/gtm-agent/internal/model/company"
)

// Kind discriminates the typed notifications streamed to the client.
type Kind string

const (
	KindUserEcho         Kind = "user-echo"
	KindAssistantMessage Kind = "assistant-message"
	KindOptions          Kind = "options"
	KindCompanyContext   Kind = "company-context"
	KindScorecard        Kind = "scorecard"
	KindArtifact         Kind = "artifact"
	KindError            Kind = "error"
	KindDone             Kind = "done"
)

// Event is one ephemeral stream record. Exactly one payload field is set
// for the kinds that carry one.
type Event struct {
	Kind      Kind               `json:"event"`
	Content   string             `json:"content,omitempty"`
	Options   []string           `json:"options,omitempty"`
	Company   *company.Context   `json:"companyContext,omitempty"`
	Scorecard *scoring.Scorecard `json:"scorecard,omitempty"`
	Filename  string             `json:"filename,omitempty"`
	Type      string             `json:"type,omitempty"`
	Scope     string             `json:"scope,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// UserEcho reflects the user's recorded input back onto the stream.
func UserEcho(content string) Event {
	return Event{Kind: KindUserEcho, Content: content}
}

// AssistantMessage carries prose from the assistant.
func AssistantMessage(content string) Event {
	return Event{Kind: KindAssistantMessage, Content: content}
}

// Options presents the selectable answers for the current step.
func Options(options []string) Event {
	return Event{Kind: KindOptions, Options: options}
}

// CompanyContext reports a successful context resolution.
func CompanyContext(ctx company.Context) Event {
	return Event{Kind: KindCompanyContext, Company: &ctx}
}

// ScorecardEvent discloses the structured scorecard. Never emitted before
// the confirmation transition.
func ScorecardEvent(card scoring.Scorecard) Event {
	return Event{Kind: KindScorecard, Scorecard: &card}
}

// ArtifactEvent announces one generated document with its content.
func ArtifactEvent(a artifact.Artifact) Event {
	return Event{
		Kind:     KindArtifact,
		Filename: a.Filename,
		Type:     string(a.Type),
		Content:  a.Content,
	}
}

// Error reports a failure scoped to the whole request or one artifact.
func Error(message, scope string) Event {
	return Event{Kind: KindError, Message: message, Scope: scope}
}

// Done terminates the stream for this request.
func Done() Event {
	return Event{Kind: KindDone}
}
