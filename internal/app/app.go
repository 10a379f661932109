package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/arctika/intake/internal/config"
	"github.com/arctika/intake/internal/core"
	db "github.com/arctika/intake/internal/core/database"
	"github.com/arctika/intake/internal/core/llm"
	objectclient "github.com/arctika/intake/internal/core/object-client"
	"github.com/arctika/intake/internal/dialogue"
	"github.com/arctika/intake/internal/extract"
	"github.com/arctika/intake/internal/narrative"
)

type App struct {
	Store   core.Store
	Manager *dialogue.Manager
	Server  *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	store, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Println("Database initialized and ready.")

	completer, err := newCompleter(appCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the completion provider, %w", err)
	}
	log.Printf("Completion provider %q ready.", cfg.AIProvider)

	// Proposal publishing is optional; without a bucket the proposals only
	// live in the database.
	var publisher dialogue.ProposalPublisher
	if cfg.BucketName != "" {
		objClient, err := objectclient.NewS3Client(appCtx, cfg)
		if err != nil {
			return nil, err
		}
		publisher = objClient
		log.Println("Object client initialized and ready.")
	}

	extractor := extract.New(completer)
	gen := narrative.New(completer)
	ctrl := dialogue.NewController(extractor, gen, store, publisher)
	manager := dialogue.NewManager(ctrl)

	server := NewServer(cfg, store, manager, gen, publisher)

	return &App{Store: store, Manager: manager, Server: server}, nil
}

// newCompleter selects the provider once at startup; it never changes
// mid-session.
func newCompleter(ctx context.Context, cfg *config.Config) (core.TextCompleter, error) {
	switch cfg.AIProvider {
	case "groq":
		return llm.NewGroqCompleter(cfg.GroqAPIKey, cfg.GroqEndpoint, cfg.GroqModel)
	default:
		return llm.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}

func (a *App) Close() {
	if a.Store != nil {
		_ = a.Store.Close()
	}
}
