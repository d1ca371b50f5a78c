package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"concept_flash/internal/config"
	"concept_flash/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// NewRouter はAPI全体のルーティングとミドルウェアを組み立てます
func NewRouter(cfg *config.Config, logger *slog.Logger, db *gorm.DB, conceptHandler *ConceptHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	table := cfg.Client.Table
	r.Route("/api/"+table, func(r chi.Router) {
		r.Get("/", conceptHandler.ListConcepts)
		r.Get("/{"+middleware.ConceptIDParam+"}", conceptHandler.GetConcept)

		// 書き込み系は auth.enabled のときだけ Bearer トークンが必要
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(cfg.Auth))
			r.Post("/", conceptHandler.CreateConcept)
			r.Put("/{"+middleware.ConceptIDParam+"}", conceptHandler.UpdateConcept)
			r.Patch("/{"+middleware.ConceptIDParam+"}", conceptHandler.UpdateConcept)
			r.Delete("/{"+middleware.ConceptIDParam+"}", conceptHandler.DeleteConcept)
		})
	})

	r.Get("/health", healthHandler(db))
	return r
}

func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err != nil {
			logger.ErrorContext(r.Context(), "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
