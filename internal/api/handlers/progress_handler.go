package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/dialogue"
)

type ProgressHandler struct {
	manager *dialogue.Manager
	store   core.Store
}

func NewProgressHandler(manager *dialogue.Manager, store core.Store) *ProgressHandler {
	return &ProgressHandler{manager: manager, store: store}
}

type saveProgressRequest struct {
	SessionID string `json:"session_id"`
}

// Save snapshots the session under a freshly generated key. Saving again
// later produces a new key; both stay retrievable.
func (h *ProgressHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	session, err := h.manager.Get(req.SessionID)
	if errors.Is(err, dialogue.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	key, err := h.store.SaveProgress(r.Context(), session.Snapshot())
	if err != nil {
		http.Error(w, "saving progress failed, please retry", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"key": key})
}

type resumeRequest struct {
	Key string `json:"key"`
}

// Resume restores a saved session. An unknown key is a 404, never conflated
// with a store failure.
func (h *ProgressHandler) Resume(w http.ResponseWriter, r *http.Request) {
	var req resumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", 400)
		return
	}

	snap, err := h.store.GetProgress(r.Context(), req.Key)
	if err != nil {
		http.Error(w, "retrieving progress failed, please retry", http.StatusInternalServerError)
		return
	}
	if snap == nil {
		http.Error(w, "invalid progress key", http.StatusNotFound)
		return
	}

	session := h.manager.Resume(snap)
	json.NewEncoder(w).Encode(struct {
		chatStateResponse
		CurrentQuestion string `json:"current_question,omitempty"`
	}{
		chatStateResponse: stateResponse(session, nil),
		CurrentQuestion:   session.CurrentQuestion(),
	})
}
