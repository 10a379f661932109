package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/config"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/dialogue"
	"github.com/arctika/intake/internal/export"
	"github.com/arctika/intake/internal/models"
	"github.com/arctika/intake/internal/narrative"
)

type AdminHandler struct {
	store     core.Store
	gen       *narrative.Generator
	publisher dialogue.ProposalPublisher
	cfg       *config.Config
}

func NewAdminHandler(store core.Store, gen *narrative.Generator, publisher dialogue.ProposalPublisher, cfg *config.Config) *AdminHandler {
	return &AdminHandler{store: store, gen: gen, publisher: publisher, cfg: cfg}
}

type loginRequest struct {
	Passphrase string `json:"passphrase"`
}

// Login exchanges the shared operator passphrase for a signed token. When a
// bcrypt hash is configured it takes precedence over the plain passphrase.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	ok := false
	if h.cfg.AdminPassphraseHash != "" {
		ok = bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPassphraseHash), []byte(req.Passphrase)) == nil
	} else {
		ok = req.Passphrase != "" && req.Passphrase == h.cfg.AdminPassphrase
	}
	if !ok {
		http.Error(w, "invalid passphrase", http.StatusUnauthorized)
		return
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tok.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		http.Error(w, "token signing failed", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

func (h *AdminHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context())
	if err != nil {
		http.Error(w, "listing assessments failed", http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	json.NewEncoder(w).Encode(subs)
}

// RegenerateProposal rebuilds the proposal for one submission and overwrites
// the stored one.
func (h *AdminHandler) RegenerateProposal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	sub, err := h.store.GetSubmissionByID(ctx, id)
	if err != nil {
		http.Error(w, "loading submission failed", http.StatusInternalServerError)
		return
	}
	if sub == nil {
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	}

	company := models.CompanyContext{
		CompanyName: sub.CompanyName,
		Industry:    sub.Industry,
		CompanySize: sub.CompanySize,
	}
	sections := assessment.Catalog(sub.Language)

	proposal, err := h.gen.Proposal(ctx, company, sub.Responses, sections, sub.Language)
	if err != nil {
		http.Error(w, fmt.Sprintf("proposal generation failed: %v", err), http.StatusBadGateway)
		return
	}

	var proposalURL *string
	if h.publisher != nil {
		if url, err := h.publisher.PublishProposal(ctx, sub.ID, proposal); err != nil {
			log.Printf("proposal upload for submission %s: %v", sub.ID, err)
		} else {
			proposalURL = &url
		}
	}

	if err := h.store.UpdateSubmissionProposal(ctx, sub.ID, proposal, proposalURL); err != nil {
		http.Error(w, "saving proposal failed", http.StatusInternalServerError)
		return
	}

	sub.Proposal = &proposal
	sub.ProposalURL = proposalURL
	json.NewEncoder(w).Encode(sub)
}

// ExportCSV streams one submission as CSV, one row per question.
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id query parameter is required", 400)
		return
	}

	sub, err := h.store.GetSubmissionByID(r.Context(), id)
	if err != nil {
		http.Error(w, "loading submission failed", http.StatusInternalServerError)
		return
	}
	if sub == nil {
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=assessment-%s.csv", sub.ID))
	if err := export.WriteCSV(w, sub); err != nil {
		log.Printf("csv export for submission %s: %v", sub.ID, err)
	}
}

// ExportJSON dumps every submission.
func (h *AdminHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context())
	if err != nil {
		http.Error(w, "listing assessments failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=assessments.json")
	if err := export.WriteJSON(w, subs); err != nil {
		log.Printf("json export: %v", err)
	}
}

// ImportCSV parses an exported CSV back into answer-set form. Rows that do
// not match the requested language's wording are dropped.
func (h *AdminHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("language")
	if lang == "" {
		lang = assessment.LangEnglish
	}

	answers, err := export.ReadCSV(r.Body, lang)
	if err != nil {
		http.Error(w, fmt.Sprintf("csv import failed: %v", err), 400)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"answers":  answers,
		"imported": len(answers),
	})
}
