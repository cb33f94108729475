package session

import (
	"time"

	"github.com/ChaiWithJai/gtm-agent/internal/analysis/scoring"
	"github.com/ChaiWithJai/gtm-agent/internal/model/artifact"
	"github.com/ChaiWithJai/gtm-agent/internal/model/company"
	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
)

// Phase is the orchestrator state the session currently sits in.
type Phase string

const (
	PhaseAnswering  Phase = "awaiting_answer"
	PhaseConfirming Phase = "awaiting_confirmation"
	PhaseGenerating Phase = "generating_artifacts"
	PhaseCompleted  Phase = "completed"
	PhaseDeclined   Phase = "declined"
)

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseDeclined
}

// Message is one human-readable turn retained in the session log. Only
// message/option turns are kept; the full event stream is ephemeral.
type Message struct {
	Role       string   `json:"role"`
	Content    string   `json:"content"`
	Options    []string `json:"options,omitempty"`
	QuestionID string   `json:"questionId,omitempty"`
}

// Session captures one end-to-end diagnostic conversation. Mutated
// exclusively by the orchestrator under the store's per-session lock.
type Session struct {
	ID              string
	CreatedAt       time.Time
	Phase           Phase
	CurrentQuestion int
	Messages        []Message
	Answers         map[string]diagnostic.Answer
	Company         *company.Context
	PendingLevel    int
	Confirmed       bool
	Scorecard       *scoring.Scorecard
	Artifacts       []artifact.Artifact
}

// New returns a fresh session positioned at the first question.
func New(id string) *Session {
	return &Session{
		ID:              id,
		CreatedAt:       time.Now().UTC(),
		Phase:           PhaseAnswering,
		CurrentQuestion: 1,
		Answers:         make(map[string]diagnostic.Answer),
	}
}

// Artifact looks up a generated document by filename.
func (s *Session) Artifact(filename string) (artifact.Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.Filename == filename {
			return a, true
		}
	}
	return artifact.Artifact{}, false
}

// Snapshot is the read-only view served for stream recovery. The
// scorecard appears only once the confirmation gate has passed.
type Snapshot struct {
	SessionID          string             `json:"sessionId"`
	Phase              Phase              `json:"phase"`
	CurrentQuestion    int                `json:"currentQuestion"`
	DiagnosticComplete bool               `json:"diagnosticComplete"`
	Messages           []Message          `json:"messages"`
	Company            *company.Context   `json:"companyContext,omitempty"`
	Scorecard          *scoring.Scorecard `json:"scorecard,omitempty"`
	Artifacts          []artifact.Spec    `json:"artifacts"`
}

// Snapshot copies the client-visible state out of the session.
func (s *Session) Snapshot() Snapshot {
	manifest := make([]artifact.Spec, 0, len(s.Artifacts))
	for _, a := range s.Artifacts {
		manifest = append(manifest, artifact.Spec{Filename: a.Filename, Type: a.Type})
	}

	var card *scoring.Scorecard
	if s.Confirmed && s.Scorecard != nil {
		copied := *s.Scorecard
		card = &copied
	}

	return Snapshot{
		SessionID:          s.ID,
		Phase:              s.Phase,
		CurrentQuestion:    s.CurrentQuestion,
		DiagnosticComplete: s.Phase != PhaseAnswering,
		Messages:           append([]Message(nil), s.Messages...),
		Company:            s.Company,
		Scorecard:          card,
		Artifacts:          manifest,
	}
}
