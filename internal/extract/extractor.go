package extract

import (
	"context"
	"encoding/json"
	"log"

	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/core/llm"
)

// Contact is the result of contact extraction. Nil fields mean the model
// found nothing usable.
type Contact struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Company is the result of company extraction.
type Company struct {
	CompanyName *string `json:"companyName"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"companySize"`
}

// Extractor pulls typed fields out of free-form user text via the gateway.
// Both operations degrade to all-nil results on any gateway or parse
// failure; the caller observes "no information extracted" identically
// whether the model declined, mis-formatted its answer, or the network
// failed.
type Extractor struct {
	completer core.TextCompleter
}

func New(completer core.TextCompleter) *Extractor {
	return &Extractor{completer: completer}
}

const contactPrompt = `Extract the person's name and email from the following message.
Return ONLY a JSON object with "name" and "email" fields. If you can't find either, use null.
Example: {"name": "John Doe", "email": "john@example.com"}`

const companyPrompt = `Extract company information from the following message.
Return ONLY a JSON object with "companyName", "industry", and "companySize" fields.
For industry, identify the EXACT industry name as mentioned (e.g., "Oil & Gas", "Renewable Energy", "Manufacturing", etc.)
For companySize, categorize into: Small (1-50), Medium (51-500), Large (501+), Enterprise (5000+)
Be flexible and capture any industry mentioned by the user exactly as stated.
If you can't find a field, use null.
Example: {"companyName": "SolarTech", "industry": "Renewable Energy", "companySize": "Medium (51-500)"}`

// Contact extracts the client's name and email.
func (e *Extractor) Contact(ctx context.Context, freeText, lang string) Contact {
	return extractAs[Contact](ctx, e, contactPrompt, freeText, lang, 100)
}

// Company extracts the company name, industry and size.
func (e *Extractor) Company(ctx context.Context, freeText, lang string) Company {
	return extractAs[Company](ctx, e, companyPrompt, freeText, lang, 150)
}

// extractAs returns the zero value (all nil fields) on any failure so a
// partial parse never leaks into the result.
func extractAs[T any](ctx context.Context, e *Extractor, prompt, freeText, lang string, maxTokens int32) T {
	var zero T

	system := prompt
	if lang != "" && lang != "en" {
		system += "\nThe message may be written in another language; the JSON field names stay in English."
	}

	raw, err := e.completer.Complete(ctx, system, freeText, core.CompletionOptions{
		Temperature: 0.3,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		log.Printf("extraction failed: %v", err)
		return zero
	}

	var parsed T
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &parsed); err != nil {
		log.Printf("extraction parse failed: %v", err)
		return zero
	}
	return parsed
}
