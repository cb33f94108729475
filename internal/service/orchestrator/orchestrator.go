package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ChaiWithJai/gtm-agent/internal/analysis/scoring"
	artifactModel "github.com/ChaiWithJai/gtm-agent/internal/model/artifact"
	companyModel "github.com/ChaiWithJai/gtm-agent/internal/model/company"
	"github.com/ChaiWithJai/gtm-agent/internal/model/diagnostic"
	"github.com/ChaiWithJai/gtm-agent/internal/model/event"
	sessionModel "github.com/ChaiWithJai/gtm-agent/internal/model/session"
	"github.com/ChaiWithJai/gtm-agent/internal/service/ai"
	companyService "github.com/ChaiWithJai/gtm-agent/internal/service/company"
	"github.com/ChaiWithJai/gtm-agent/internal/service/store"
)

// ErrInvalidRequest flags malformed user input that never reaches the
// state machine.
var ErrInvalidRequest = errors.New("invalid request")

// Confirmation options presented after the last diagnostic question.
const (
	ConfirmOption = "Yes, build my artifacts"
	DeclineOption = "Not now"
)

// Sink consumes the events one request produces, in emission order.
type Sink interface {
	Send(event.Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event.Event) error

// Send implements Sink.
func (f SinkFunc) Send(e event.Event) error { return f(e) }

// Orchestrator drives the diagnostic state machine. All session
// mutation happens inside Store.With, so at most one transition is in
// flight per session.
type Orchestrator struct {
	store          *store.Store
	catalog        *diagnostic.Catalog
	engine         *scoring.Engine
	resolver       companyService.Resolver
	generator      ai.Generator
	resolveTimeout time.Duration
}

// New wires the orchestrator. Resolver and generator may be nil when the
// corresponding collaborator is not configured; both degrade gracefully.
func New(st *store.Store, catalog *diagnostic.Catalog, engine *scoring.Engine, resolver companyService.Resolver, generator ai.Generator, resolveTimeout time.Duration) *Orchestrator {
	if resolveTimeout <= 0 {
		resolveTimeout = companyService.DefaultTimeout
	}
	return &Orchestrator{
		store:          st,
		catalog:        catalog,
		engine:         engine,
		resolver:       resolver,
		generator:      generator,
		resolveTimeout: resolveTimeout,
	}
}

// StartInput carries exactly one of the two product descriptions.
type StartInput struct {
	ProductURL         string
	ProductDescription string
}

// StartResult is the synchronous response to a start request.
type StartResult struct {
	SessionID string
	Messages  []sessionModel.Message
	Company   *companyModel.Context
}

// Start creates a session, resolves company context when a URL is given
// and positions the conversation at the first question. Context
// resolution failure or timeout downgrades to the free-text path.
func (o *Orchestrator) Start(ctx context.Context, in StartInput) (StartResult, error) {
	url := strings.TrimSpace(in.ProductURL)
	description := strings.TrimSpace(in.ProductDescription)
	if url == "" && description == "" {
		return StartResult{}, fmt.Errorf("%w: provide either product_url or product_description", ErrInvalidRequest)
	}

	company := o.resolveCompany(ctx, url, description)

	question, ok := o.catalog.At(1)
	if !ok {
		return StartResult{}, fmt.Errorf("question catalog is empty")
	}

	intro := buildIntro(company, url, description)
	id := o.store.Create()

	var messages []sessionModel.Message
	err := o.store.With(id, func(s *sessionModel.Session) error {
		s.Company = company
		s.Messages = append(s.Messages,
			sessionModel.Message{Role: "assistant", Content: intro},
			sessionModel.Message{
				Role:       "assistant",
				Content:    question.Text,
				Options:    question.Options,
				QuestionID: question.ID,
			},
		)
		messages = append([]sessionModel.Message(nil), s.Messages...)
		return nil
	})
	if err != nil {
		return StartResult{}, err
	}

	log.Printf("[orchestrator] started session %s", id)
	return StartResult{SessionID: id, Messages: messages, Company: company}, nil
}

// resolveCompany attempts URL resolution under a bounded timeout and
// falls back to the supplied description.
func (o *Orchestrator) resolveCompany(ctx context.Context, url, description string) *companyModel.Context {
	if url != "" && o.resolver != nil {
		resolveCtx, cancel := context.WithTimeout(ctx, o.resolveTimeout)
		defer cancel()

		resolved, err := o.resolver.Resolve(resolveCtx, url)
		if err == nil {
			return &resolved
		}
		log.Printf("[orchestrator] context resolution failed for %s: %v", url, err)
	}

	if description != "" {
		return &companyModel.Context{Description: description}
	}
	return nil
}

func buildIntro(company *companyModel.Context, url, description string) string {
	if company != nil && company.Name != "" {
		var b strings.Builder
		fmt.Fprintf(&b, "**Analyzing %s**", company.Name)
		if company.Description != "" {
			fmt.Fprintf(&b, "\n\nI see you're building: *%s*", truncate(company.Description, 200))
		}
		if len(company.Features) > 0 {
			limit := len(company.Features)
			if limit > 3 {
				limit = 3
			}
			fmt.Fprintf(&b, "\n\nKey areas I identified: %s", strings.Join(company.Features[:limit], ", "))
		}
		b.WriteString("\n\nLet me assess where you are in your GTM journey so I can generate personalized artifacts for you.")
		return b.String()
	}
	if url != "" {
		return fmt.Sprintf("I'll help you with GTM strategy for **%s**.\n\nLet me assess your current GTM readiness.", url)
	}
	return fmt.Sprintf("Thanks for describing your product.\n\n*%s*\n\nLet me assess your GTM readiness.", truncate(description, 150))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Message advances the state machine by exactly one step, emitting the
// resulting events through sink in strict order. Store-level failures
// (unknown session, busy session) and invalid input surface as errors
// before any event is sent.
func (o *Orchestrator) Message(ctx context.Context, sessionID, text, selectedOption string, sink Sink) error {
	input := strings.TrimSpace(selectedOption)
	if input == "" {
		input = strings.TrimSpace(text)
	}
	if input == "" {
		return fmt.Errorf("%w: message text is required", ErrInvalidRequest)
	}

	return o.store.With(sessionID, func(s *sessionModel.Session) error {
		switch s.Phase {
		case sessionModel.PhaseAnswering:
			o.recordAnswer(s, input, sink)
		case sessionModel.PhaseConfirming:
			o.resolveConfirmation(ctx, s, input, selectedOption, sink)
		default:
			o.send(sink, event.Error("session has already finished", "request"))
		}
		o.send(sink, event.Done())
		return nil
	})
}

// recordAnswer stores the reply to the current question and either asks
// the next question or discloses the level and asks for confirmation.
// The structured scorecard stays withheld until the user confirms.
func (o *Orchestrator) recordAnswer(s *sessionModel.Session, input string, sink Sink) {
	question, ok := o.catalog.At(s.CurrentQuestion)
	if !ok {
		o.send(sink, event.Error("diagnostic is not active", "request"))
		return
	}

	s.Answers[question.ID] = diagnostic.NewAnswer(question, input)
	s.Messages = append(s.Messages, sessionModel.Message{Role: "user", Content: input})
	o.send(sink, event.UserEcho(input))

	if s.CurrentQuestion < o.catalog.Size() {
		s.CurrentQuestion++
		next, _ := o.catalog.At(s.CurrentQuestion)
		s.Messages = append(s.Messages, sessionModel.Message{
			Role:       "assistant",
			Content:    next.Text,
			Options:    next.Options,
			QuestionID: next.ID,
		})
		o.send(sink, event.AssistantMessage(next.Text))
		o.send(sink, event.Options(next.Options))
		return
	}

	level, err := o.engine.Level(s.Answers)
	if err != nil {
		// Unreachable with a complete answer map; reject the transition
		// and leave the session answering.
		log.Printf("[orchestrator] scoring contract violation in session %s: %v", s.ID, err)
		o.send(sink, event.Error("internal error while scoring", "request"))
		return
	}

	s.PendingLevel = level
	s.Phase = sessionModel.PhaseConfirming
	disclosure := fmt.Sprintf("Based on your answers, you're at GTM Level %d. Would you like me to generate your GTM artifacts?", level)
	options := []string{ConfirmOption, DeclineOption}
	s.Messages = append(s.Messages, sessionModel.Message{
		Role:    "assistant",
		Content: disclosure,
		Options: options,
	})
	o.send(sink, event.AssistantMessage(disclosure))
	o.send(sink, event.Options(options))
}

// resolveConfirmation applies the confirmation gate. Only a confirming
// reply computes and discloses the scorecard; everything else declines.
func (o *Orchestrator) resolveConfirmation(ctx context.Context, s *sessionModel.Session, input, selectedOption string, sink Sink) {
	s.Messages = append(s.Messages, sessionModel.Message{Role: "user", Content: input})
	o.send(sink, event.UserEcho(input))

	if !isConfirmation(input, selectedOption) {
		s.Phase = sessionModel.PhaseDeclined
		ack := "No problem. Your diagnostic is saved for this session - come back any time and I'll build your artifacts."
		s.Messages = append(s.Messages, sessionModel.Message{Role: "assistant", Content: ack})
		o.send(sink, event.AssistantMessage(ack))
		return
	}

	card, err := o.engine.Score(s.Answers)
	if err != nil {
		// Scoring contract violation: leave the session confirming,
		// nothing disclosed.
		log.Printf("[orchestrator] scoring contract violation in session %s: %v", s.ID, err)
		o.send(sink, event.Error("internal error while scoring", "request"))
		return
	}

	s.Confirmed = true
	s.Scorecard = &card
	s.Phase = sessionModel.PhaseGenerating
	o.send(sink, event.ScorecardEvent(card))

	o.generateArtifacts(ctx, s, card, sink)

	s.Phase = sessionModel.PhaseCompleted
	closing := fmt.Sprintf("I've generated your GTM artifacts, tailored to your Level %d status. Download them below!", card.Level)
	s.Messages = append(s.Messages, sessionModel.Message{Role: "assistant", Content: closing})
	o.send(sink, event.AssistantMessage(closing))
}

// generateArtifacts works through the fixed manifest in order. Each
// success is streamed as soon as it is ready; a per-artifact failure is
// reported on the stream and the remainder continues. Generation runs on
// a detached context: a client disconnect does not cancel it and the
// results stay on the session for recovery.
func (o *Orchestrator) generateArtifacts(ctx context.Context, s *sessionModel.Session, card scoring.Scorecard, sink Sink) {
	genCtx := context.WithoutCancel(ctx)
	gctx := o.buildGenerationContext(s, card)

	for _, spec := range artifactModel.Manifest() {
		if o.generator == nil {
			o.send(sink, event.Error("artifact generation is not configured", spec.Filename))
			continue
		}

		content, err := o.generator.Generate(genCtx, spec, gctx)
		if err != nil {
			log.Printf("[orchestrator] failed to generate %s for session %s: %v", spec.Filename, s.ID, err)
			o.send(sink, event.Error(fmt.Sprintf("failed to generate %s", spec.Filename), spec.Filename))
			continue
		}

		generated := artifactModel.Artifact{
			Filename: spec.Filename,
			Type:     spec.Type,
			Content:  content,
		}
		s.Artifacts = append(s.Artifacts, generated)
		o.send(sink, event.ArtifactEvent(generated))
	}
}

func (o *Orchestrator) buildGenerationContext(s *sessionModel.Session, card scoring.Scorecard) ai.GenerationContext {
	gctx := ai.GenerationContext{Scorecard: card}
	if s.Company != nil {
		gctx.Company = *s.Company
	}
	if first, ok := o.catalog.At(1); ok {
		if answer, found := s.Answers[first.ID]; found {
			gctx.ICP = answer.Raw
		}
	}
	return gctx
}

// isConfirmation matches the confirm option verbatim and falls back to
// a lexical check for free text. Anything else is a non-confirmation.
func isConfirmation(input, selectedOption string) bool {
	if selectedOption == ConfirmOption {
		return true
	}
	if selectedOption == DeclineOption {
		return false
	}
	lower := strings.ToLower(input)
	return strings.Contains(lower, "build") || lower == "yes"
}

// send forwards one event and keeps going on delivery failure: committed
// session mutations are never rolled back because the client went away.
func (o *Orchestrator) send(sink Sink, e event.Event) {
	if err := sink.Send(e); err != nil {
		log.Printf("[orchestrator] failed to deliver %s event: %v", e.Kind, err)
	}
}
