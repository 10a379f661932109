package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/core/llm"
	"github.com/arctika/intake/internal/models"
)

// Generator produces the longer-form conversational text: question
// transitions, section summaries, quick-reply suggestions and the full
// transformation proposal. Transition, SummarizeSection and Suggestions
// swallow failures and fall back so the dialogue never stalls; Proposal
// propagates errors because a missing proposal must be handled explicitly.
type Generator struct {
	completer core.TextCompleter
}

func New(completer core.TextCompleter) *Generator {
	return &Generator{completer: completer}
}

// Transition produces a short conversational bridge into the next question.
// On any failure it returns the next question text verbatim.
func (g *Generator) Transition(ctx context.Context, sectionTitle, nextQuestion, previousAnswer, lang string) string {
	system := fmt.Sprintf(`You are guiding a business transformation assessment.
Generate a natural transition that:
1. Briefly acknowledges their previous answer (1 sentence)
2. Leads into the next question smoothly

Current Section: %s
Next Question: %s
Their Last Answer: %s

Keep it conversational and under 3 sentences total.%s`,
		sectionTitle, nextQuestion, previousAnswer, respondIn(lang))

	text, err := g.completer.Complete(ctx, system, "Generate the transition.", core.CompletionOptions{
		Temperature: 0.8,
		MaxTokens:   150,
	})
	if err != nil {
		log.Printf("transition generation failed: %v", err)
		return nextQuestion
	}
	if strings.TrimSpace(text) == "" {
		return nextQuestion
	}
	return text
}

// SummarizeSection produces one encouraging sentence acknowledging the
// section just completed. On failure it returns a fixed template string.
func (g *Generator) SummarizeSection(ctx context.Context, sectionTitle string, answers models.AnswerSet, lang string) string {
	fallback := fmt.Sprintf(assessment.UIStrings(lang).SummaryFallback, sectionTitle)

	system := fmt.Sprintf("Provide a brief, encouraging 1-sentence summary acknowledging what was covered in the %s section.%s",
		sectionTitle, respondIn(lang))

	text, err := g.completer.Complete(ctx, system, joinAnswers(answers), core.CompletionOptions{
		Temperature: 0.7,
		MaxTokens:   100,
	})
	if err != nil {
		log.Printf("section summary failed: %v", err)
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

// Suggestions produces four short industry-specific quick-reply options for a
// question. It degrades to nil when the industry is unknown or on any
// failure.
func (g *Generator) Suggestions(ctx context.Context, questionText string, company models.CompanyContext, lang string) []string {
	if company.Industry == "" {
		return nil
	}

	size := company.CompanySize
	if size == "" {
		size = "Mid-size"
	}
	name := company.CompanyName
	if name == "" {
		name = "Company"
	}

	system := fmt.Sprintf(`You are an expert in the %[1]s industry. Generate quick response suggestions for this business assessment question.

Company Context:
- Industry: %[1]s
- Company Size: %[2]s
- Company Name: %[3]s

Question: %[4]s

Generate 4 HIGHLY SPECIFIC response options that are relevant ONLY to the %[1]s industry.
Use industry-specific terminology, challenges, systems, and goals that are common in %[1]s.
Each suggestion should be 4-10 words maximum.
Make them realistic and actionable for a %[1]s company.

IMPORTANT: Return ONLY a valid JSON array of 4 strings. No explanation, no markdown, no extra text.
Format: ["suggestion 1", "suggestion 2", "suggestion 3", "suggestion 4"]%[5]s`,
		company.Industry, size, name, questionText, respondIn(lang))

	raw, err := g.completer.Complete(ctx, system, "Generate the industry-specific suggestions now.", core.CompletionOptions{
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		log.Printf("suggestion generation failed: %v", err)
		return nil
	}

	cleaned := llm.CleanJSONArray(raw)
	var suggestions []string
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		log.Printf("suggestion parse failed: %v", err)
		return nil
	}
	return suggestions
}

// Proposal builds the full multi-section transformation proposal. Unlike the
// other operations it does not swallow errors.
func (g *Generator) Proposal(ctx context.Context, company models.CompanyContext, answers models.AnswerSet, sections []models.Section, lang string) (string, error) {
	var responses strings.Builder
	for sIdx, section := range sections {
		responses.WriteString("\n\n" + section.Title + ":\n")
		for qIdx, question := range section.Questions {
			answer := answers[assessment.AnswerKey(sIdx, qIdx)]
			if strings.TrimSpace(answer) == "" {
				answer = "Not answered"
			}
			responses.WriteString("Q: " + question + "\nA: " + answer + "\n\n")
		}
	}

	system := fmt.Sprintf(proposalPromptTemplate,
		company.Industry, company.CompanyName, company.CompanySize, responses.String(), respondIn(lang))

	text, err := g.completer.Complete(ctx, system,
		"Generate the comprehensive, detailed transformation proposal based on the assessment. Be thorough and specific.",
		core.CompletionOptions{
			Temperature: 0.7,
			MaxTokens:   4096,
		})
	if err != nil {
		return "", fmt.Errorf("proposal generation: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		// Gateways report exhausted candidates as an empty body rather
		// than an error; an empty proposal must not be stored as ready.
		return "", errors.New("proposal generation: empty completion")
	}
	return text, nil
}

func respondIn(lang string) string {
	if lang == assessment.LangSpanish {
		return "\nRespond in Spanish."
	}
	return ""
}

// joinAnswers renders the answer set in stable key order, pipe-separated.
func joinAnswers(answers models.AnswerSet) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, answers[k])
	}
	return strings.Join(parts, " | ")
}

const proposalPromptTemplate = `You are a senior digital transformation consultant with expertise in %[1]s.

Analyze the following business assessment and create a comprehensive, actionable transformation proposal.

Company Profile:
- Name: %[2]s
- Industry: %[1]s
- Size: %[3]s

Assessment Responses:
%[4]s

Generate a DETAILED proposal with the following sections:

## 1. EXECUTIVE SUMMARY
Write 2-3 paragraphs that:
- Highlight the key business challenges identified
- Present the transformation opportunity
- State the expected business impact
- Be specific to %[1]s industry context

## 2. OBJECTIVES
List 5-7 specific, measurable objectives that the transformation will achieve. Each should:
- Start with action verbs (Develop, Implement, Create, Enhance, etc.)
- Be specific to their stated goals and challenges
- Be measurable and time-bound
- Address their pain points directly

## 3. RECOMMENDED SOLUTIONS & DELIVERABLES
For each major solution area, provide:
- **Solution Name**: Brief description
- **Key Deliverables**:
  - Specific outputs (systems, dashboards, models, reports)
  - Technologies/platforms to be implemented
  - Integration points with existing systems
- **Business Value**: How this addresses their challenges

Cover areas like:
- AI/ML implementations
- Process automation
- Data infrastructure
- Analytics & BI
- System integrations

## 4. IMPLEMENTATION TIMELINE
Break down into 4 phases with specific durations:
- **Phase 1** (Quick Wins): 2-4 weeks - What will be delivered
- **Phase 2** (Foundation): 6-8 weeks - What will be built
- **Phase 3** (Scale): 8-12 weeks - What will be expanded
- **Phase 4** (Optimization): 4-6 weeks - Testing, training, deployment

For each phase, list 3-5 specific activities or milestones.

## 5. KEY PERFORMANCE INDICATORS (KPIs)
Provide 7-10 specific KPIs with:
- **KPI Name**: Clear metric
- **Current Baseline**: Estimate based on their responses
- **Target**: Specific improvement goal
- **Measurement Method**: How it will be tracked
- **Timeline**: When target will be achieved

Group KPIs by category:
- Operational Efficiency
- Financial Impact
- Quality/Performance
- Customer/User Satisfaction
- Risk & Compliance

## 6. DATA REQUIREMENTS
List specific data needs:
- Historical data needed for analysis
- Real-time data sources to be integrated
- Data quality requirements
- Compliance and security considerations
- Existing systems to connect with

## 7. RISKS & ASSUMPTIONS
**Risks** (4-6 items):
- Technical risks
- Organizational risks
- Data/integration challenges
- Timeline/resource risks
- Mitigation strategies for each

**Assumptions** (4-6 items):
- About client resources and support
- About existing infrastructure
- About stakeholder availability
- About data access and quality

## 8. ESTIMATED IMPACT & ROI
Provide specific estimates:
- Cost savings (annual, %%)
- Efficiency improvements (time saved, %% reduction)
- Revenue opportunities (if applicable)
- Risk reduction (quantified)
- ROI timeline and payback period

## 9. REQUIRED RESOURCES & INVESTMENT
- Team composition needed
- Technology/software costs
- Training and change management
- Ongoing support requirements

## 10. NEXT STEPS
Immediate actions in priority order (5-7 items):
1. [Action] - [Who] - [Timeframe]
2. [Action] - [Who] - [Timeframe]
etc.

Format in clean markdown. Be SPECIFIC to %[1]s. Use their actual pain points and goals from responses. Make it actionable and implementable.%[5]s`
