package core

import (
	"context"

	"github.com/arctika/intake/internal/models"
)

// CompletionOptions carry the per-call generation parameters.
type CompletionOptions struct {
	Temperature float32
	MaxTokens   int32
}

// TextCompleter is the uniform gateway to a text-completion provider.
// Implementations return the raw text of the primary completion choice, or
// an empty string (with a nil error) when the provider returns no choices.
// Transport, auth and rate-limit failures are returned as errors; the
// gateway itself never retries.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// Store defines all persistence operations the service needs. It abstracts
// Postgres so higher layers never depend on a specific DB.
type Store interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	UpdateSubmissionProposal(ctx context.Context, id, proposal string, proposalURL *string) error
	GetSubmissionByID(ctx context.Context, id string) (*models.Submission, error)
	ListSubmissions(ctx context.Context) ([]models.Submission, error)

	SaveProgress(ctx context.Context, snap *models.ProgressSnapshot) (string, error)
	// GetProgress returns (nil, nil) when the key is unknown so callers can
	// tell "not found" apart from a transport error.
	GetProgress(ctx context.Context, key string) (*models.ProgressSnapshot, error)

	Close() error
}

// ObjectClient defines interactions with S3 or any object storage. It stays
// abstract so AWS can be swapped for MinIO, GCP, etc.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte, contentType string) (url string, err error)
}
