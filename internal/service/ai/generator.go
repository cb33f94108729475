package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ChaiWithJai/gtm-agent/internal/analysis/scoring"
	"github.com/ChaiWithJai/gtm-agent/internal/config"
	"github.com/ChaiWithJai/gtm-agent/internal/model/artifact"
	"github.com/ChaiWithJai/gtm-agent/internal/model/company"
)

// GenerationContext carries everything the generator may weave into an
// artifact: resolved company facts, the diagnosed level and the
// confirmed scorecard.
type GenerationContext struct {
	Company   company.Context
	Scorecard scoring.Scorecard
	ICP       string
}

// Generator produces the content for one manifest entry. Failures are
// per-artifact; the orchestrator continues with the remaining set.
type Generator interface {
	Generate(ctx context.Context, spec artifact.Spec, gctx GenerationContext) (string, error)
}

// Service implements Generator on top of an eino chat chain.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the generation chain against the configured Ark
// model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Generate renders one artifact. The scorecard document is a plain JSON
// rendering of the confirmed scorecard and needs no model call; the
// remaining four run through the chat chain.
func (s *Service) Generate(ctx context.Context, spec artifact.Spec, gctx GenerationContext) (string, error) {
	if spec.Type == artifact.TypeScorecard {
		data, err := json.MarshalIndent(gctx.Scorecard, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to render scorecard: %w", err)
		}
		return string(data), nil
	}

	query, ok := buildPrompt(spec.Type, gctx)
	if !ok {
		return "", fmt.Errorf("no prompt for artifact type %q", spec.Type)
	}

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt,
		"query":  query,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	log.Printf("[ai] generated %s, length=%d", spec.Filename, len(response.Content))
	return response.Content, nil
}
