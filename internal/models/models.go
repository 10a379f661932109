package models

import (
	"time"
)

// Section is a static assessment section definition: a title, its position
// in the flow and the ordered questions it asks.
type Section struct {
	Title     string   `json:"title"`
	Icon      string   `json:"icon"`
	Questions []string `json:"questions"`
}

// AnswerSet maps an answer key ("section_2_q_4") to the free-text response.
type AnswerSet map[string]string

// Clone returns a deep copy so callers can mutate without sharing state.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ClientIdentity is the contact the assessment belongs to. Email is required
// before a submission can be finalized.
type ClientIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CompanyContext is the company profile extracted early in the chat flow.
type CompanyContext struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
}

// Submission is the durable assessment record.
type Submission struct {
	ID                   string    `db:"id" json:"id"`
	ClientName           string    `db:"client_name" json:"client_name"`
	ClientEmail          string    `db:"client_email" json:"client_email"`
	CompanyName          string    `db:"company_name" json:"company_name"`
	Industry             string    `db:"industry" json:"industry"`
	CompanySize          string    `db:"company_size" json:"company_size"`
	Language             string    `db:"language" json:"language"`
	Mode                 string    `db:"mode" json:"mode"` // "form" or "chat"
	Responses            AnswerSet `db:"responses" json:"responses"`
	Proposal             *string   `db:"proposal" json:"proposal"`
	ProposalURL          *string   `db:"proposal_url" json:"proposal_url"`
	CompletionPercentage int       `db:"completion_percentage" json:"completion_percentage"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// ProgressSnapshot is the resumable in-progress state saved under a short
// human-copyable key. It carries everything needed to restore a session.
type ProgressSnapshot struct {
	Key         string         `db:"progress_key" json:"progress_key"`
	Mode        string         `db:"mode" json:"mode"`
	Language    string         `db:"language" json:"language"`
	Stage       string         `db:"stage" json:"stage"`
	SectionIdx  int            `db:"section_idx" json:"section_idx"`
	QuestionIdx int            `db:"question_idx" json:"question_idx"`
	Client      ClientIdentity `json:"client"`
	Company     CompanyContext `json:"company"`
	Answers     AnswerSet      `json:"answers"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
