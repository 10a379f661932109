package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/arctika/intake/internal/config"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (core.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewWithDB wraps an existing connection, used by tests.
func NewWithDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *DatabaseClient) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	if sub == nil {
		return errors.New("nil submission")
	}
	responses, err := json.Marshal(sub.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	const q = `
		INSERT INTO assessments
			(id, client_name, client_email, company_name, industry, company_size,
			 language, mode, responses, proposal, proposal_url, completion_percentage,
			 created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			 COALESCE($13, now()), COALESCE($14, now()))
		ON CONFLICT (id) DO UPDATE SET
			responses = EXCLUDED.responses,
			proposal = EXCLUDED.proposal,
			proposal_url = EXCLUDED.proposal_url,
			completion_percentage = EXCLUDED.completion_percentage,
			updated_at = now()
	`
	_, err = c.db.ExecContext(ctx, q,
		sub.ID, sub.ClientName, sub.ClientEmail, sub.CompanyName, sub.Industry, sub.CompanySize,
		sub.Language, sub.Mode, responses, sub.Proposal, sub.ProposalURL, sub.CompletionPercentage,
		sub.CreatedAt, sub.UpdatedAt)
	return err
}

func (c *DatabaseClient) UpdateSubmissionProposal(ctx context.Context, id, proposal string, proposalURL *string) error {
	const q = `
		UPDATE assessments
		SET proposal = $2, proposal_url = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := c.db.ExecContext(ctx, q, id, proposal, proposalURL)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("submission not found: %s", id)
	}
	return nil
}

func (c *DatabaseClient) GetSubmissionByID(ctx context.Context, id string) (*models.Submission, error) {
	const q = `
		SELECT id, client_name, client_email, company_name, industry, company_size,
		       language, mode, responses, proposal, proposal_url, completion_percentage,
		       created_at, updated_at
		FROM assessments
		WHERE id = $1
	`
	var (
		sub       models.Submission
		responses []byte
	)
	err := c.db.QueryRowContext(ctx, q, id).Scan(
		&sub.ID, &sub.ClientName, &sub.ClientEmail, &sub.CompanyName, &sub.Industry, &sub.CompanySize,
		&sub.Language, &sub.Mode, &responses, &sub.Proposal, &sub.ProposalURL, &sub.CompletionPercentage,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responses, &sub.Responses); err != nil {
		return nil, fmt.Errorf("unmarshal responses: %w", err)
	}
	return &sub, nil
}

func (c *DatabaseClient) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	const q = `
		SELECT id, client_name, client_email, company_name, industry, company_size,
		       language, mode, responses, proposal, proposal_url, completion_percentage,
		       created_at, updated_at
		FROM assessments
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Submission
	for rows.Next() {
		var (
			sub       models.Submission
			responses []byte
		)
		if err := rows.Scan(
			&sub.ID, &sub.ClientName, &sub.ClientEmail, &sub.CompanyName, &sub.Industry, &sub.CompanySize,
			&sub.Language, &sub.Mode, &responses, &sub.Proposal, &sub.ProposalURL, &sub.CompletionPercentage,
			&sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(responses, &sub.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// SaveProgress writes a fresh row under a newly generated key and returns
// the key. Saving twice creates two rows; old keys stay valid.
func (c *DatabaseClient) SaveProgress(ctx context.Context, snap *models.ProgressSnapshot) (string, error) {
	if snap == nil {
		return "", errors.New("nil snapshot")
	}
	answers, err := json.Marshal(snap.Answers)
	if err != nil {
		return "", fmt.Errorf("marshal answers: %w", err)
	}
	key := GenerateProgressKey()
	const q = `
		INSERT INTO progress_sessions
			(progress_key, mode, language, stage, section_idx, question_idx,
			 client_name, client_email, company_name, industry, company_size,
			 answers, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
	`
	_, err = c.db.ExecContext(ctx, q,
		key, snap.Mode, snap.Language, snap.Stage, snap.SectionIdx, snap.QuestionIdx,
		snap.Client.Name, snap.Client.Email, snap.Company.CompanyName, snap.Company.Industry, snap.Company.CompanySize,
		answers)
	if err != nil {
		return "", err
	}
	return key, nil
}

func (c *DatabaseClient) GetProgress(ctx context.Context, key string) (*models.ProgressSnapshot, error) {
	const q = `
		SELECT progress_key, mode, language, stage, section_idx, question_idx,
		       client_name, client_email, company_name, industry, company_size,
		       answers, created_at
		FROM progress_sessions
		WHERE progress_key = $1
	`
	var (
		snap    models.ProgressSnapshot
		answers []byte
	)
	err := c.db.QueryRowContext(ctx, q, NormalizeProgressKey(key)).Scan(
		&snap.Key, &snap.Mode, &snap.Language, &snap.Stage, &snap.SectionIdx, &snap.QuestionIdx,
		&snap.Client.Name, &snap.Client.Email, &snap.Company.CompanyName, &snap.Company.Industry, &snap.Company.CompanySize,
		&answers, &snap.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &snap.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &snap, nil
}
