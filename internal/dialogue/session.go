package dialogue

import (
	"time"

	"github.com/google/uuid"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/models"
)

// Dialogue stages. A session only ever moves forward through these within
// one epoch; Reset and Restore start a new epoch.
const (
	StageIntro       = "intro"
	StageCompanyInfo = "company_info"
	StageQuestions   = "questions"
	StageComplete    = "complete"
)

const ModeChat = "chat"

// Display pacing hints in milliseconds. They only affect when the shell
// reveals each bubble, never correctness.
const (
	delayNone   = 0
	delayShort  = 600
	delayMedium = 1200
	delayLong   = 1800
)

// Message is one bot utterance plus the pacing delay the presentation shell
// should wait before showing it.
type Message struct {
	Delay int    `json:"delay"`
	Text  string `json:"text"`
}

// Session holds the full chat-mode state for one client. The Controller
// works on a clone handed out by the Manager, so no locking happens here.
type Session struct {
	ID           string                `json:"id"`
	Language     string                `json:"language"`
	Stage        string                `json:"stage"`
	SectionIdx   int                   `json:"section_idx"`
	QuestionIdx  int                   `json:"question_idx"`
	Client       models.ClientIdentity `json:"client"`
	Company      models.CompanyContext `json:"company"`
	Answers      models.AnswerSet      `json:"answers"`
	Sections     []models.Section      `json:"sections"`
	SubmissionID string                `json:"submission_id,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`

	// epoch increments on Reset/Restore; in-flight work from an older
	// epoch is discarded by the Manager. busy gates concurrent input.
	epoch int
	busy  bool

	// proposalDone caches the one-shot generation outcome so a failed
	// persist can be retried without generating the proposal again.
	proposalDone bool
	proposalText string
	proposalErr  error
}

// NewSession creates a fresh session at the intro stage.
func NewSession(lang string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Language:  lang,
		Stage:     StageIntro,
		Answers:   models.AnswerSet{},
		Sections:  assessment.Catalog(lang),
		CreatedAt: time.Now().UTC(),
	}
}

// Greetings returns the two opening bot messages for the session's language.
func (s *Session) Greetings() []Message {
	str := assessment.UIStrings(s.Language)
	return []Message{
		{Delay: delayNone, Text: str.Greeting1},
		{Delay: delayMedium, Text: str.Greeting2},
	}
}

// Epoch identifies the current session generation for stale-result discard.
func (s *Session) Epoch() int { return s.epoch }

// Reset wipes all progress and restarts the session in the given language.
// Changing language regenerates the section set, so any in-flight stage is
// invalidated.
func (s *Session) Reset(newLanguage string) {
	s.epoch++
	s.Language = newLanguage
	s.Stage = StageIntro
	s.SectionIdx = 0
	s.QuestionIdx = 0
	s.Client = models.ClientIdentity{}
	s.Company = models.CompanyContext{}
	s.Answers = models.AnswerSet{}
	s.Sections = assessment.Catalog(newLanguage)
	s.SubmissionID = ""
	s.proposalDone = false
	s.proposalText = ""
	s.proposalErr = nil
}

// Restore replaces the session state with a saved snapshot.
func (s *Session) Restore(snap *models.ProgressSnapshot) {
	s.epoch++
	s.Language = snap.Language
	s.Stage = snap.Stage
	s.SectionIdx = snap.SectionIdx
	s.QuestionIdx = snap.QuestionIdx
	s.Client = snap.Client
	s.Company = snap.Company
	s.Answers = snap.Answers.Clone()
	if s.Answers == nil {
		s.Answers = models.AnswerSet{}
	}
	s.Sections = assessment.Catalog(snap.Language)
	s.SubmissionID = ""
	s.proposalDone = false
	s.proposalText = ""
	s.proposalErr = nil
}

// Snapshot captures the resumable state for the progress-key store.
func (s *Session) Snapshot() *models.ProgressSnapshot {
	return &models.ProgressSnapshot{
		Mode:        ModeChat,
		Language:    s.Language,
		Stage:       s.Stage,
		SectionIdx:  s.SectionIdx,
		QuestionIdx: s.QuestionIdx,
		Client:      s.Client,
		Company:     s.Company,
		Answers:     s.Answers.Clone(),
	}
}

// clone copies the session for an in-flight controller call. The manager
// adopts the result only when no reset happened meanwhile, so a late reply
// can never clobber a restarted session.
func (s *Session) clone() *Session {
	cp := *s
	cp.Answers = s.Answers.Clone()
	return &cp
}

// adopt copies the dialogue state produced by a finished controller call
// back into the live session. epoch and busy stay untouched.
func (s *Session) adopt(from *Session) {
	s.Language = from.Language
	s.Stage = from.Stage
	s.SectionIdx = from.SectionIdx
	s.QuestionIdx = from.QuestionIdx
	s.Client = from.Client
	s.Company = from.Company
	s.Answers = from.Answers
	s.Sections = from.Sections
	s.SubmissionID = from.SubmissionID
	s.proposalDone = from.proposalDone
	s.proposalText = from.proposalText
	s.proposalErr = from.proposalErr
}

// CurrentQuestion returns the conversational phrasing of the question the
// cursors point at, or "" outside the questions stage.
func (s *Session) CurrentQuestion() string {
	if s.Stage != StageQuestions {
		return ""
	}
	return assessment.ConversationalQuestion(s.Language, s.SectionIdx, s.QuestionIdx)
}

// sectionAnswers collects the answers recorded for one section.
func (s *Session) sectionAnswers(sectionIdx int) models.AnswerSet {
	out := models.AnswerSet{}
	if sectionIdx < 0 || sectionIdx >= len(s.Sections) {
		return out
	}
	for q := range s.Sections[sectionIdx].Questions {
		key := assessment.AnswerKey(sectionIdx, q)
		if v, ok := s.Answers[key]; ok {
			out[key] = v
		}
	}
	return out
}
