package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/models"
)

type fakeCompleter struct {
	reply string
	err   error

	callCount  int
	lastSystem string
	lastUser   string
	lastOpts   core.CompletionOptions
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string, opts core.CompletionOptions) (string, error) {
	f.callCount++
	f.lastSystem = system
	f.lastUser = user
	f.lastOpts = opts
	return f.reply, f.err
}

func TestTransitionReturnsGeneratedText(t *testing.T) {
	fc := &fakeCompleter{reply: "Got it! Now, what about your data?"}
	g := New(fc)

	got := g.Transition(context.Background(), "Data & Analytics", "What data do you collect?", "We use spreadsheets", "en")

	assert.Equal(t, "Got it! Now, what about your data?", got)
	assert.Contains(t, fc.lastSystem, "Data & Analytics")
	assert.Contains(t, fc.lastSystem, "What data do you collect?")
	assert.Contains(t, fc.lastSystem, "We use spreadsheets")
	assert.InDelta(t, 0.8, fc.lastOpts.Temperature, 0.001)
}

func TestTransitionFallsBackToQuestionOnError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("timeout")}
	g := New(fc)

	got := g.Transition(context.Background(), "Data", "What data do you collect?", "answer", "en")

	assert.Equal(t, "What data do you collect?", got)
}

func TestTransitionFallsBackToQuestionOnEmptyReply(t *testing.T) {
	fc := &fakeCompleter{reply: "  "}
	g := New(fc)

	got := g.Transition(context.Background(), "Data", "What data do you collect?", "answer", "en")

	assert.Equal(t, "What data do you collect?", got)
}

func TestSummarizeSectionJoinsAnswers(t *testing.T) {
	fc := &fakeCompleter{reply: "Nice overview of your operations!"}
	g := New(fc)

	answers := models.AnswerSet{
		assessment.AnswerKey(0, 0): "first",
		assessment.AnswerKey(0, 1): "second",
	}
	got := g.SummarizeSection(context.Background(), "Business Overview", answers, "en")

	assert.Equal(t, "Nice overview of your operations!", got)
	assert.Equal(t, "first | second", fc.lastUser)
}

func TestSummarizeSectionFallsBackOnError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("boom")}
	g := New(fc)

	got := g.SummarizeSection(context.Background(), "Business Overview", models.AnswerSet{}, "en")

	assert.Equal(t, "Great work on Business Overview!", got)
}

func TestSuggestionsParsesArray(t *testing.T) {
	fc := &fakeCompleter{reply: `["Reduce downtime", "Automate reporting", "Predict demand", "Cut waste"]`}
	g := New(fc)

	company := models.CompanyContext{CompanyName: "Acme", Industry: "Manufacturing", CompanySize: "Large (501+)"}
	got := g.Suggestions(context.Background(), "What are your goals?", company, "en")

	assert.Len(t, got, 4)
	assert.Contains(t, fc.lastSystem, "Manufacturing")
	assert.Contains(t, fc.lastSystem, "What are your goals?")
}

func TestSuggestionsEmptyWithoutIndustry(t *testing.T) {
	fc := &fakeCompleter{reply: `["a"]`}
	g := New(fc)

	got := g.Suggestions(context.Background(), "q", models.CompanyContext{}, "en")

	assert.Nil(t, got)
	assert.Zero(t, fc.callCount)
}

func TestSuggestionsDegradeOnBadJSON(t *testing.T) {
	fc := &fakeCompleter{reply: "here are some ideas: downtime, waste"}
	g := New(fc)

	got := g.Suggestions(context.Background(), "q", models.CompanyContext{Industry: "Retail"}, "en")

	assert.Nil(t, got)
}

func TestProposalEmbedsAnswersAndMarkers(t *testing.T) {
	fc := &fakeCompleter{reply: "## 1. EXECUTIVE SUMMARY\n..."}
	g := New(fc)

	sections := []models.Section{
		{Title: "Overview", Questions: []string{"Q one?", "Q two?"}},
	}
	answers := models.AnswerSet{assessment.AnswerKey(0, 0): "We sell solar panels"}
	company := models.CompanyContext{CompanyName: "SolarTech", Industry: "Renewable Energy", CompanySize: "Medium (51-500)"}

	got, err := g.Proposal(context.Background(), company, answers, sections, "en")

	require.NoError(t, err)
	assert.Equal(t, "## 1. EXECUTIVE SUMMARY\n...", got)
	assert.Contains(t, fc.lastSystem, "SolarTech")
	assert.Contains(t, fc.lastSystem, "Renewable Energy")
	assert.Contains(t, fc.lastSystem, "We sell solar panels")
	assert.Contains(t, fc.lastSystem, "Not answered")
	assert.Contains(t, fc.lastSystem, "EXECUTIVE SUMMARY")
	assert.InDelta(t, 0.7, fc.lastOpts.Temperature, 0.001)
	assert.EqualValues(t, 4096, fc.lastOpts.MaxTokens)
}

func TestProposalPropagatesErrors(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("quota exceeded")}
	g := New(fc)

	_, err := g.Proposal(context.Background(), models.CompanyContext{}, models.AnswerSet{}, nil, "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestProposalRejectsEmptyCompletion(t *testing.T) {
	fc := &fakeCompleter{reply: "  \n"}
	g := New(fc)

	_, err := g.Proposal(context.Background(), models.CompanyContext{}, models.AnswerSet{}, nil, "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}

func TestSpanishRequestsSpanishOutput(t *testing.T) {
	fc := &fakeCompleter{reply: "¡Perfecto!"}
	g := New(fc)

	g.Transition(context.Background(), "Datos", "¿Qué datos recopila?", "hojas de cálculo", "es")

	assert.Contains(t, fc.lastSystem, "Respond in Spanish.")
}
