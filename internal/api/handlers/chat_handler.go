package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/dialogue"
	"github.com/arctika/intake/internal/narrative"
)

type ChatHandler struct {
	manager *dialogue.Manager
	gen     *narrative.Generator
}

func NewChatHandler(manager *dialogue.Manager, gen *narrative.Generator) *ChatHandler {
	return &ChatHandler{manager: manager, gen: gen}
}

type startRequest struct {
	Language string `json:"language"`
}

type chatStateResponse struct {
	SessionID   string             `json:"session_id"`
	Language    string             `json:"language"`
	Stage       string             `json:"stage"`
	SectionIdx  int                `json:"section_idx"`
	QuestionIdx int                `json:"question_idx"`
	Completion  int                `json:"completion_percentage"`
	Messages    []dialogue.Message `json:"messages"`
}

func stateResponse(s *dialogue.Session, messages []dialogue.Message) chatStateResponse {
	return chatStateResponse{
		SessionID:   s.ID,
		Language:    s.Language,
		Stage:       s.Stage,
		SectionIdx:  s.SectionIdx,
		QuestionIdx: s.QuestionIdx,
		Completion:  assessment.CompletionPercent(s.Answers, s.Sections),
		Messages:    messages,
	}
}

func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if req.Language == "" {
		req.Language = assessment.LangEnglish
	}

	session, greetings := h.manager.Start(req.Language)
	json.NewEncoder(w).Encode(stateResponse(session, greetings))
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	replies, err := h.manager.Message(r.Context(), req.SessionID, req.Text)
	switch {
	case errors.Is(err, dialogue.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
		return
	case errors.Is(err, dialogue.ErrBusy):
		http.Error(w, "previous message still processing", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "saving assessment failed, please retry", http.StatusInternalServerError)
		return
	}

	session, err := h.manager.Get(req.SessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(stateResponse(session, replies))
}

type resetRequest struct {
	SessionID string `json:"session_id"`
	Language  string `json:"language"`
}

func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}
	if req.Language == "" {
		req.Language = assessment.LangEnglish
	}

	greetings, err := h.manager.Reset(req.SessionID, req.Language)
	if errors.Is(err, dialogue.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	session, _ := h.manager.Get(req.SessionID)
	json.NewEncoder(w).Encode(stateResponse(session, greetings))
}

type suggestionsRequest struct {
	SessionID string `json:"session_id"`
}

// Suggestions returns quick-reply options for the question the session is
// currently on. Outside the questions stage, or when the model has nothing
// useful, the list is empty.
func (h *ChatHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	session, err := h.manager.Get(req.SessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	suggestions := []string{}
	if session.Stage == dialogue.StageQuestions {
		question := session.Sections[session.SectionIdx].Questions[session.QuestionIdx]
		if got := h.gen.Suggestions(r.Context(), question, session.Company, session.Language); got != nil {
			suggestions = got
		}
	}
	json.NewEncoder(w).Encode(map[string][]string{"suggestions": suggestions})
}
