package ai

import (
	"fmt"
	"strings"

	"github.com/ChaiWithJai/gtm-agent/internal/model/artifact"
)

const systemPrompt = "You are a GTM strategist who turns diagnostic results into concrete, " +
	"immediately usable documents. Be specific to the company: no placeholders like [your X]."

// buildPrompt assembles the model prompt for the LLM-backed artifact
// types. Returns false for types rendered without a model.
func buildPrompt(t artifact.Type, gctx GenerationContext) (string, bool) {
	name := gctx.Company.Name
	if name == "" {
		name = "the company"
	}
	description := gctx.Company.Description
	features := strings.Join(gctx.Company.Features, ", ")
	if features == "" {
		features = "Not specified"
	}
	gaps := strings.Join(gctx.Scorecard.Gaps, ", ")
	if gaps == "" {
		gaps = "None identified"
	}
	icp := gctx.ICP
	if icp == "" {
		icp = "your target customers"
	}
	level := gctx.Scorecard.Level

	switch t {
	case artifact.TypeNarrative:
		return fmt.Sprintf(`Create a strategic narrative document for %[1]s.

Company Context:
- Description: %[2]s
- Key Features: %[3]s
- Target Customer: %[4]s
- GTM Level: %[5]d
- Key Gaps: %[6]s

Generate a concise, actionable strategic narrative with:
1. **Positioning Statement** - One sentence: For [specific ICP] who [specific problem], %[1]s is a [category] that [key benefit based on their features].
2. **ICP Definition** - Who exactly buys, what role, company size, and buying triggers
3. **Value Proposition** - 3 specific bullets based on their actual features
4. **Key Messages** - Elevator pitch, detailed pitch, and social proof message

Be specific to %[1]s. No placeholders like [your X]. Use actual details.`,
			name, description, features, icp, level, gaps), true

	case artifact.TypeEmails:
		return fmt.Sprintf(`Create a 3-email cold outreach sequence for %[1]s.

Company Context:
- Description: %[2]s
- Key Features: %[3]s
- Target Customer: %[4]s

Generate 3 emails:
1. **Email 1: Introduction** - Short, personalized opener referencing a specific pain point
2. **Email 2: Value** - Share a specific insight or quick win related to their problem
3. **Email 3: Breakup** - Final attempt with clear CTA

Each email should have: Subject line, Body (under 100 words), and CTA.
Be specific to %[1]s's offering. No generic templates.`,
			name, description, features, icp), true

	case artifact.TypeLinkedIn:
		return fmt.Sprintf(`Create 5 LinkedIn posts for %[1]s.

Company Context:
- Description: %[2]s
- Key Features: %[3]s
- Target Customer: %[4]s

Generate 5 different posts:
1. **Problem Awareness** - Highlight a pain point %[4]s faces
2. **Solution Teaser** - Introduce %[1]s's approach without being salesy
3. **Social Proof/Story** - Customer success or behind-the-scenes insight
4. **Industry Insight** - Thought leadership on a relevant trend
5. **Call to Action** - Direct ask with clear value proposition

Each post should be 100-150 words, include a hook, and feel authentic. Use emojis sparingly.`,
			name, description, features, icp), true

	case artifact.TypeActionPlan:
		return fmt.Sprintf(`Create a 30-day GTM action plan for %[1]s at Level %[2]d.

Company Context:
- Description: %[3]s
- Target Customer: %[4]s
- Current Gaps: %[5]s

Generate a week-by-week plan:
**Week 1: Foundation**
- 3-4 specific tasks to address their identified gaps

**Week 2: Outreach Setup**
- 3-4 tasks to prepare outreach infrastructure

**Week 3: Launch & Learn**
- 3-4 tasks to start outbound and gather feedback

**Week 4: Iterate & Scale**
- 3-4 tasks to optimize based on learnings

Each task should be specific and completable in 1-2 hours. Include metrics to track.`,
			name, level, description, icp, gaps), true
	}

	return "", false
}
