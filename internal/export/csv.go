// Package export renders submissions to CSV/JSON and reads answers back in
// from CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/models"
)

var csvHeader = []string{
	"Section", "Question", "Response",
	"Company Name", "Industry", "Company Size",
	"Client Name", "Client Email", "Language", "Timestamp",
}

// WriteCSV writes one row per (section, question) pair of the submission,
// including unanswered questions as empty responses.
func WriteCSV(w io.Writer, sub *models.Submission) error {
	sections := assessment.Catalog(sub.Language)
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	timestamp := sub.CreatedAt.Format(time.RFC3339)
	for sIdx, section := range sections {
		for qIdx, question := range section.Questions {
			row := []string{
				section.Title,
				question,
				sub.Responses[assessment.AnswerKey(sIdx, qIdx)],
				sub.CompanyName,
				sub.Industry,
				sub.CompanySize,
				sub.ClientName,
				sub.ClientEmail,
				sub.Language,
				timestamp,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON dumps submissions as a JSON array.
func WriteJSON(w io.Writer, subs []models.Submission) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(subs)
}

// ReadCSV parses an exported CSV back into an answer set for the given
// language. The Section, Question and Response columns must be present or
// the import fails before anything is applied. Rows whose section title or
// question text does not exactly match the active language's wording are
// skipped; a cross-language import therefore imports nothing.
func ReadCSV(r io.Reader, lang string) (models.AnswerSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"Section", "Question", "Response"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	// Index the active catalog by exact title/question text.
	type position struct{ section, question int }
	index := map[string]position{}
	for sIdx, section := range assessment.Catalog(lang) {
		for qIdx, question := range section.Questions {
			index[section.Title+"\x00"+question] = position{sIdx, qIdx}
		}
	}

	answers := models.AnswerSet{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) <= cols["Section"] || len(row) <= cols["Question"] || len(row) <= cols["Response"] {
			continue
		}
		pos, ok := index[row[cols["Section"]]+"\x00"+row[cols["Question"]]]
		if !ok {
			continue
		}
		response := row[cols["Response"]]
		if response == "" {
			continue
		}
		answers[assessment.AnswerKey(pos.section, pos.question)] = response
	}
	return answers, nil
}
