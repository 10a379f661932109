package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/extract"
	"github.com/arctika/intake/internal/models"
	"github.com/arctika/intake/internal/narrative"
)

// blockingCompleter parks every call until release is closed, so tests can
// hold a session busy deterministically.
type blockingCompleter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingCompleter) Complete(context.Context, string, string, core.CompletionOptions) (string, error) {
	b.started <- struct{}{}
	<-b.release
	return `{"name": "Jane", "email": "jane@acme.com"}`, nil
}

func newBlockingManager() (*Manager, *blockingCompleter) {
	bc := &blockingCompleter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	ctrl := NewController(extract.New(bc), narrative.New(bc), &fakeStore{}, nil)
	return NewManager(ctrl), bc
}

func TestStartReturnsGreetings(t *testing.T) {
	m := NewManager(newTestController(&scriptedCompleter{}, &fakeStore{}))

	s, greetings := m.Start("en")

	assert.Equal(t, StageIntro, s.Stage)
	require.Len(t, greetings, 2)
	assert.Equal(t, assessment.UIStrings("en").Greeting1, greetings[0].Text)

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
}

func TestMessageUnknownSession(t *testing.T) {
	m := NewManager(newTestController(&scriptedCompleter{}, &fakeStore{}))

	_, err := m.Message(context.Background(), "nope", "hi")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSecondMessageWhileBusyIsRejected(t *testing.T) {
	m, bc := newBlockingManager()
	s, _ := m.Start("en")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := m.Message(context.Background(), s.ID, "I'm Jane, jane@acme.com")
		assert.NoError(t, err)
	}()

	<-bc.started
	_, err := m.Message(context.Background(), s.ID, "second message")
	assert.ErrorIs(t, err, ErrBusy)

	close(bc.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("first message never finished")
	}

	// busy flag cleared, input accepted again
	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StageCompanyInfo, got.Stage)
}

func TestResetDuringInFlightDiscardsLateReply(t *testing.T) {
	m, bc := newBlockingManager()
	s, _ := m.Start("en")

	type result struct {
		replies []Message
		err     error
	}
	resCh := make(chan result, 1)
	go func() {
		replies, err := m.Message(context.Background(), s.ID, "I'm Jane, jane@acme.com")
		resCh <- result{replies, err}
	}()

	<-bc.started
	_, err := m.Reset(s.ID, "es")
	require.NoError(t, err)

	close(bc.release)
	res := <-resCh
	assert.NoError(t, res.err)
	assert.Empty(t, res.replies)

	got, _ := m.Get(s.ID)
	assert.Equal(t, StageIntro, got.Stage)
	assert.Equal(t, "es", got.Language)
}

func TestResetUnknownSession(t *testing.T) {
	m := NewManager(newTestController(&scriptedCompleter{}, &fakeStore{}))

	_, err := m.Reset("nope", "en")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResumeRestoresSnapshot(t *testing.T) {
	m := NewManager(newTestController(&scriptedCompleter{}, &fakeStore{}))

	answers := models.AnswerSet{}
	for q := 0; q < 5; q++ {
		answers[assessment.AnswerKey(0, q)] = "saved answer"
	}
	snap := &models.ProgressSnapshot{
		Key:         "AB12CD-34EF56",
		Mode:        ModeChat,
		Language:    "en",
		Stage:       StageQuestions,
		SectionIdx:  1,
		QuestionIdx: 2,
		Client:      models.ClientIdentity{Name: "Jane", Email: "jane@acme.com"},
		Company:     models.CompanyContext{CompanyName: "Acme", Industry: "Manufacturing"},
		Answers:     answers,
	}

	s := m.Resume(snap)

	assert.Equal(t, StageQuestions, s.Stage)
	assert.Equal(t, 1, s.SectionIdx)
	assert.Equal(t, 2, s.QuestionIdx)
	assert.Equal(t, answers, s.Answers)
	assert.Equal(t, "Jane", s.Client.Name)
	assert.Equal(t, assessment.ConversationalQuestion("en", 1, 2), s.CurrentQuestion())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, answers, got.Answers)
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	m := NewManager(newTestController(&scriptedCompleter{}, &fakeStore{}))
	s, _ := m.Start("en")

	view, err := m.Get(s.ID)
	require.NoError(t, err)

	// scribbling on the copy must not touch the manager's session
	view.Stage = StageComplete
	view.Answers[assessment.AnswerKey(0, 0)] = "scribble"

	fresh, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StageIntro, fresh.Stage)
	assert.Empty(t, fresh.Answers)
}

func TestGetIsSafeDuringTurn(t *testing.T) {
	fc := &scriptedCompleter{contactReply: `{"name": null, "email": null}`}
	m := NewManager(newTestController(fc, &fakeStore{}))
	s, _ := m.Start("en")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_, err := m.Message(context.Background(), s.ID, "no contact details here")
			assert.NoError(t, err)
		}
	}()

	for i := 0; i < 200; i++ {
		view, err := m.Get(s.ID)
		if err != nil {
			t.Fatal(err)
		}
		_ = view.Snapshot()
		_ = view.CurrentQuestion()
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("message loop never finished")
	}
}
