package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/arctika/intake/internal/api/handlers"
	appMiddleware "github.com/arctika/intake/internal/api/middlewares"
	"github.com/arctika/intake/internal/config"
	"github.com/arctika/intake/internal/core"
	"github.com/arctika/intake/internal/dialogue"
	"github.com/arctika/intake/internal/narrative"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, store core.Store, manager *dialogue.Manager, gen *narrative.Generator, publisher dialogue.ProposalPublisher) *Server {
	chatHandler := handlers.NewChatHandler(manager, gen)
	progressHandler := handlers.NewProgressHandler(manager, store)
	assessmentHandler := handlers.NewAssessmentHandler(store, gen, publisher)
	adminHandler := handlers.NewAdminHandler(store, gen, publisher, cfg)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/chat/start", chatHandler.Start)
		api.Post("/chat/message", chatHandler.Message)
		api.Post("/chat/reset", chatHandler.Reset)
		api.Post("/chat/suggestions", chatHandler.Suggestions)
		api.Post("/progress/save", progressHandler.Save)
		api.Post("/progress/resume", progressHandler.Resume)
		api.Post("/assessments", assessmentHandler.Submit)
		api.Post("/admin/login", adminHandler.Login)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.AdminJWTMiddleware)
			protected.Get("/admin/assessments", adminHandler.ListAssessments)
			protected.Post("/admin/assessments/{id}/proposal", adminHandler.RegenerateProposal)
			protected.Get("/admin/export/csv", adminHandler.ExportCSV)
			protected.Get("/admin/export/json", adminHandler.ExportJSON)
			protected.Post("/admin/import/csv", adminHandler.ImportCSV)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
