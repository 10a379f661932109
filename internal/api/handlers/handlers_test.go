package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	middleware "github.com/arctika/intake/internal/api/middlewares"
	"github.com/arctika/intake/internal/config"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/dialogue"
	"github.com/arctika/intake/internal/extract"
	"github.com/arctika/intake/internal/models"
	"github.com/arctika/intake/internal/narrative"
)

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, string, string, core.CompletionOptions) (string, error) {
	return "", nil
}

type stubStore struct {
	savedKey string
	snap     *models.ProgressSnapshot
	progress map[string]*models.ProgressSnapshot
}

func (s *stubStore) CreateSubmission(context.Context, *models.Submission) error { return nil }
func (s *stubStore) UpdateSubmissionProposal(context.Context, string, string, *string) error {
	return nil
}
func (s *stubStore) GetSubmissionByID(context.Context, string) (*models.Submission, error) {
	return nil, nil
}
func (s *stubStore) ListSubmissions(context.Context) ([]models.Submission, error) {
	return nil, nil
}
func (s *stubStore) SaveProgress(_ context.Context, snap *models.ProgressSnapshot) (string, error) {
	s.savedKey = "TESTKEY-ABC123"
	s.snap = snap
	return s.savedKey, nil
}
func (s *stubStore) GetProgress(_ context.Context, key string) (*models.ProgressSnapshot, error) {
	return s.progress[key], nil
}
func (s *stubStore) Close() error { return nil }

func newTestManager(store core.Store) *dialogue.Manager {
	fc := stubCompleter{}
	ctrl := dialogue.NewController(extract.New(fc), narrative.New(fc), store, nil)
	return dialogue.NewManager(ctrl)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestChatStartReturnsGreetings(t *testing.T) {
	h := NewChatHandler(newTestManager(&stubStore{}), narrative.New(stubCompleter{}))

	rec := postJSON(t, h.Start, map[string]string{"language": "es"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp chatStateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "es", resp.Language)
	assert.Equal(t, dialogue.StageIntro, resp.Stage)
	assert.Len(t, resp.Messages, 2)
}

func TestChatMessageUnknownSession(t *testing.T) {
	h := NewChatHandler(newTestManager(&stubStore{}), narrative.New(stubCompleter{}))

	rec := postJSON(t, h.Message, map[string]string{"session_id": "nope", "text": "hi"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgressSaveAndResume(t *testing.T) {
	store := &stubStore{progress: map[string]*models.ProgressSnapshot{}}
	manager := newTestManager(store)
	h := NewProgressHandler(manager, store)

	session, _ := manager.Start("en")
	rec := postJSON(t, h.Save, map[string]string{"session_id": session.ID})

	require.Equal(t, http.StatusOK, rec.Code)
	var saveResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&saveResp))
	assert.Equal(t, "TESTKEY-ABC123", saveResp["key"])
	require.NotNil(t, store.snap)

	store.progress[store.savedKey] = store.snap
	rec = postJSON(t, h.Resume, map[string]string{"key": store.savedKey})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.Resume, map[string]string{"key": "UNKNOWN-KEY"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminLoginPlainPassphrase(t *testing.T) {
	cfg := &config.Config{AdminPassphrase: "letmein", JWTSecret: "secret"}
	h := NewAdminHandler(&stubStore{}, narrative.New(stubCompleter{}), nil, cfg)

	rec := postJSON(t, h.Login, map[string]string{"passphrase": "letmein"})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["token"])
}

func TestAdminLoginBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{
		AdminPassphrase:     "ignored",
		AdminPassphraseHash: string(hash),
		JWTSecret:           "secret",
	}
	h := NewAdminHandler(&stubStore{}, narrative.New(stubCompleter{}), nil, cfg)

	rec := postJSON(t, h.Login, map[string]string{"passphrase": "hunter2"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.Login, map[string]string{"passphrase": "ignored"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginRejectsWrongPassphrase(t *testing.T) {
	cfg := &config.Config{AdminPassphrase: "letmein", JWTSecret: "secret"}
	h := NewAdminHandler(&stubStore{}, narrative.New(stubCompleter{}), nil, cfg)

	rec := postJSON(t, h.Login, map[string]string{"passphrase": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminJWTMiddlewareRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	cfg := &config.Config{AdminPassphrase: "letmein", JWTSecret: "secret"}
	h := NewAdminHandler(&stubStore{}, narrative.New(stubCompleter{}), nil, cfg)

	rec := postJSON(t, h.Login, map[string]string{"passphrase": "letmein"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	protected := middleware.AdminJWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+resp["token"])
	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
