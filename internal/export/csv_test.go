package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/models"
)

func sampleSubmission() *models.Submission {
	return &models.Submission{
		ID:          "id-1",
		ClientName:  "Jane Doe",
		ClientEmail: "jane@acme.com",
		CompanyName: "Acme",
		Industry:    "Manufacturing",
		CompanySize: "Large (501+)",
		Language:    assessment.LangEnglish,
		Mode:        "chat",
		Responses: models.AnswerSet{
			assessment.AnswerKey(0, 0): "We make industrial widgets",
			assessment.AnswerKey(2, 1): "Everything lives in spreadsheets",
		},
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestWriteCSVEmitsRowPerQuestion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSubmission()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	sections := assessment.Catalog(assessment.LangEnglish)
	require.Len(t, records, assessment.TotalQuestions(sections)+1)

	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, sections[0].Title, first[0])
	assert.Equal(t, sections[0].Questions[0], first[1])
	assert.Equal(t, "We make industrial widgets", first[2])
	assert.Equal(t, "Acme", first[3])
	assert.Equal(t, "jane@acme.com", first[7])
	assert.Equal(t, "2026-03-14T09:30:00Z", first[9])

	// unanswered question exports as an empty response
	assert.Equal(t, "", records[2][2])
}

func TestReadCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sub := sampleSubmission()
	require.NoError(t, WriteCSV(&buf, sub))

	answers, err := ReadCSV(&buf, assessment.LangEnglish)

	require.NoError(t, err)
	assert.Equal(t, sub.Responses, answers)
}

func TestReadCSVMissingColumnFailsBeforeImport(t *testing.T) {
	input := "Section,Question\nOverview,What do you do?\n"

	_, err := ReadCSV(strings.NewReader(input), assessment.LangEnglish)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Response")
}

func TestReadCSVSkipsUnmatchedRows(t *testing.T) {
	sections := assessment.Catalog(assessment.LangEnglish)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Section", "Question", "Response"})
	_ = w.Write([]string{sections[0].Title, sections[0].Questions[0], "kept"})
	_ = w.Write([]string{"No Such Section", "No such question?", "dropped"})
	_ = w.Write([]string{sections[0].Title, "Reworded question?", "dropped"})
	w.Flush()

	answers, err := ReadCSV(&buf, assessment.LangEnglish)

	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "kept", answers[assessment.AnswerKey(0, 0)])
}

func TestReadCSVCrossLanguageImportsNothing(t *testing.T) {
	var buf bytes.Buffer
	sub := sampleSubmission()
	require.NoError(t, WriteCSV(&buf, sub))

	// English rows against the Spanish catalog match nothing
	answers, err := ReadCSV(&buf, assessment.LangSpanish)

	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []models.Submission{*sampleSubmission()}))

	out := buf.String()
	assert.Contains(t, out, `"jane@acme.com"`)
	assert.Contains(t, out, `"section_0_q_0"`)
}
