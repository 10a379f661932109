package dialogue

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arctika/intake/internal/assessment"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/extract"
	"github.com/arctika/intake/internal/models"
	"github.com/arctika/intake/internal/narrative"
)

// ProposalPublisher stores the rendered proposal document somewhere
// downloadable and returns its URL. A nil publisher disables publishing.
type ProposalPublisher interface {
	PublishProposal(ctx context.Context, submissionID, markdown string) (string, error)
}

// Controller drives the chat state machine. It owns no session state itself;
// the Manager hands it one busy session at a time.
type Controller struct {
	extractor *extract.Extractor
	narrative *narrative.Generator
	store     core.Store
	publisher ProposalPublisher
}

func NewController(extractor *extract.Extractor, gen *narrative.Generator, store core.Store, publisher ProposalPublisher) *Controller {
	return &Controller{
		extractor: extractor,
		narrative: gen,
		store:     store,
		publisher: publisher,
	}
}

// Respond processes one user message and returns the bot reply sequence.
// Only persistence failures surface as errors; every LLM failure degrades to
// fallback text so the dialogue keeps moving.
func (c *Controller) Respond(ctx context.Context, s *Session, input string) ([]Message, error) {
	switch s.Stage {
	case StageIntro:
		return c.handleIntro(ctx, s, input), nil
	case StageCompanyInfo:
		return c.handleCompanyInfo(ctx, s, input), nil
	case StageQuestions:
		return c.handleQuestion(ctx, s, input)
	case StageComplete:
		// An empty SubmissionID means the store rejected the finalize
		// write; retry it so the answers are not lost.
		if s.SubmissionID == "" {
			return c.finalize(ctx, s)
		}
		return []Message{{Delay: delayNone, Text: assessment.UIStrings(s.Language).AlreadyComplete}}, nil
	default:
		return nil, fmt.Errorf("unknown dialogue stage %q", s.Stage)
	}
}

func (c *Controller) handleIntro(ctx context.Context, s *Session, input string) []Message {
	str := assessment.UIStrings(s.Language)

	contact := c.extractor.Contact(ctx, input, s.Language)
	if contact.Email == nil || strings.TrimSpace(*contact.Email) == "" {
		return []Message{{Delay: delayNone, Text: str.AskContactAgain}}
	}

	s.Client.Email = strings.TrimSpace(*contact.Email)
	if contact.Name != nil {
		s.Client.Name = strings.TrimSpace(*contact.Name)
	}
	s.Stage = StageCompanyInfo

	greeting := str.NiceToMeetNoName
	if s.Client.Name != "" {
		greeting = fmt.Sprintf(str.NiceToMeet, s.Client.Name)
	}
	return []Message{
		{Delay: delayNone, Text: greeting},
		{Delay: delayMedium, Text: str.AskCompany},
	}
}

func (c *Controller) handleCompanyInfo(ctx context.Context, s *Session, input string) []Message {
	str := assessment.UIStrings(s.Language)

	company := c.extractor.Company(ctx, input, s.Language)
	if company.Industry == nil || strings.TrimSpace(*company.Industry) == "" {
		return []Message{{Delay: delayNone, Text: str.AskCompanyAgain}}
	}

	s.Company.Industry = strings.TrimSpace(*company.Industry)
	if company.CompanyName != nil {
		s.Company.CompanyName = strings.TrimSpace(*company.CompanyName)
	}
	if company.CompanySize != nil {
		s.Company.CompanySize = strings.TrimSpace(*company.CompanySize)
	}

	s.Stage = StageQuestions
	s.SectionIdx = 0
	s.QuestionIdx = 0

	ack := fmt.Sprintf(str.CompanyAck, s.Company.Industry)
	if s.Company.CompanyName != "" {
		ack = fmt.Sprintf(str.CompanyAckFull, s.Company.CompanyName, s.Company.Industry)
	}
	return []Message{
		{Delay: delayNone, Text: ack},
		{Delay: delayMedium, Text: str.ReadyIntro},
		{Delay: delayLong, Text: s.CurrentQuestion()},
	}
}

func (c *Controller) handleQuestion(ctx context.Context, s *Session, input string) ([]Message, error) {
	section := s.Sections[s.SectionIdx]
	s.Answers[assessment.AnswerKey(s.SectionIdx, s.QuestionIdx)] = input

	// More questions left in this section.
	if s.QuestionIdx+1 < len(section.Questions) {
		next := assessment.ConversationalQuestion(s.Language, s.SectionIdx, s.QuestionIdx+1)
		bridge := c.narrative.Transition(ctx, section.Title, next, input, s.Language)
		s.QuestionIdx++
		return []Message{{Delay: delayShort, Text: bridge}}, nil
	}

	// Section finished, more sections left.
	if s.SectionIdx+1 < len(s.Sections) {
		summary := c.narrative.SummarizeSection(ctx, section.Title, s.sectionAnswers(s.SectionIdx), s.Language)
		s.SectionIdx++
		s.QuestionIdx = 0
		str := assessment.UIStrings(s.Language)
		return []Message{
			{Delay: delayShort, Text: summary},
			{Delay: delayMedium, Text: fmt.Sprintf(str.SectionIntro, s.Sections[s.SectionIdx].Title)},
			{Delay: delayLong, Text: s.CurrentQuestion()},
		}, nil
	}

	// Last answer of the last section.
	s.Stage = StageComplete
	return c.finalize(ctx, s)
}

// finalize persists the submission and generates the proposal. A proposal
// failure still persists the answers; a store failure is returned and the
// generation outcome is cached on the session, so a later retry writes the
// submission without calling the generator again.
func (c *Controller) finalize(ctx context.Context, s *Session) ([]Message, error) {
	str := assessment.UIStrings(s.Language)
	var messages []Message
	if !s.proposalDone {
		messages = append(messages,
			Message{Delay: delayNone, Text: str.CompleteThanks},
			Message{Delay: delayMedium, Text: str.Analyzing},
		)
		s.proposalText, s.proposalErr = c.narrative.Proposal(ctx, s.Company, s.Answers, s.Sections, s.Language)
		s.proposalDone = true
		if s.proposalErr != nil {
			log.Printf("proposal generation for session %s: %v", s.ID, s.proposalErr)
		}
	}

	now := time.Now().UTC()
	sub := &models.Submission{
		ID:                   uuid.NewString(),
		ClientName:           s.Client.Name,
		ClientEmail:          s.Client.Email,
		CompanyName:          s.Company.CompanyName,
		Industry:             s.Company.Industry,
		CompanySize:          s.Company.CompanySize,
		Language:             s.Language,
		Mode:                 ModeChat,
		Responses:            s.Answers.Clone(),
		CompletionPercentage: assessment.CompletionPercent(s.Answers, s.Sections),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if s.proposalErr == nil {
		sub.Proposal = &s.proposalText
		if c.publisher != nil {
			if url, err := c.publisher.PublishProposal(ctx, sub.ID, s.proposalText); err != nil {
				log.Printf("proposal upload for submission %s: %v", sub.ID, err)
			} else {
				sub.ProposalURL = &url
			}
		}
	}

	if err := c.store.CreateSubmission(ctx, sub); err != nil {
		return messages, fmt.Errorf("persisting submission: %w", err)
	}
	s.SubmissionID = sub.ID

	if s.proposalErr != nil {
		messages = append(messages, Message{Delay: delayLong, Text: str.ProposalFailed})
	} else {
		messages = append(messages, Message{Delay: delayLong, Text: str.ProposalReady})
	}
	return messages, nil
}
