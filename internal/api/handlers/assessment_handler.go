package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/dialogue"
	"github.com/arctika/intake/internal/models"
	"github.com/arctika/intake/internal/narrative"
)

// AssessmentHandler accepts form-mode submissions: the full answer set
// arrives in one request instead of through the chat flow.
type AssessmentHandler struct {
	store     core.Store
	gen       *narrative.Generator
	publisher dialogue.ProposalPublisher
}

func NewAssessmentHandler(store core.Store, gen *narrative.Generator, publisher dialogue.ProposalPublisher) *AssessmentHandler {
	return &AssessmentHandler{store: store, gen: gen, publisher: publisher}
}

type submitRequest struct {
	ClientName  string           `json:"client_name"`
	ClientEmail string           `json:"client_email"`
	CompanyName string           `json:"company_name"`
	Industry    string           `json:"industry"`
	CompanySize string           `json:"company_size"`
	Language    string           `json:"language"`
	Responses   models.AnswerSet `json:"responses"`
}

func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if strings.TrimSpace(req.ClientEmail) == "" {
		http.Error(w, "client_email is required", 400)
		return
	}
	if req.Language == "" {
		req.Language = assessment.LangEnglish
	}
	if req.Responses == nil {
		req.Responses = models.AnswerSet{}
	}

	ctx := r.Context()
	sections := assessment.Catalog(req.Language)
	company := models.CompanyContext{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		CompanySize: req.CompanySize,
	}

	now := time.Now().UTC()
	sub := &models.Submission{
		ID:                   uuid.NewString(),
		ClientName:           req.ClientName,
		ClientEmail:          req.ClientEmail,
		CompanyName:          req.CompanyName,
		Industry:             req.Industry,
		CompanySize:          req.CompanySize,
		Language:             req.Language,
		Mode:                 "form",
		Responses:            req.Responses.Clone(),
		CompletionPercentage: assessment.CompletionPercent(req.Responses, sections),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if strings.TrimSpace(req.Industry) != "" {
		proposal, err := h.gen.Proposal(ctx, company, req.Responses, sections, req.Language)
		if err != nil {
			log.Printf("form submission proposal: %v", err)
		} else {
			sub.Proposal = &proposal
			if h.publisher != nil {
				if url, err := h.publisher.PublishProposal(ctx, sub.ID, proposal); err != nil {
					log.Printf("proposal upload for submission %s: %v", sub.ID, err)
				} else {
					sub.ProposalURL = &url
				}
			}
		}
	}

	if err := h.store.CreateSubmission(ctx, sub); err != nil {
		http.Error(w, "saving assessment failed, please retry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sub)
}
