// internal/handlers/concept_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"concept_flash/internal/middleware"
	"concept_flash/internal/model"
	"concept_flash/internal/service"
	"concept_flash/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ConceptHandler struct {
	service service.ConceptService
	logger  *slog.Logger
}

func NewConceptHandler(s service.ConceptService, logger *slog.Logger) *ConceptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConceptHandler{
		service: s,
		logger:  logger,
	}
}

// requestLogger はミドルウェアが格納したリクエストスコープのロガーを優先します
func (h *ConceptHandler) requestLogger(r *http.Request, name string) *slog.Logger {
	logger := h.logger
	if l := middleware.GetLogger(r.Context()); l != slog.Default() {
		logger = l
	}
	return logger.With(slog.String("handler", name))
}

// ListConcepts はコンセプト一覧を返します
func (h *ConceptHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "ListConcepts")

	concepts, err := h.service.ListConcepts(r.Context())
	if err != nil {
		logger.Error("Error listing concepts in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if concepts == nil {
		concepts = []*model.Concept{}
	}
	logger.Info("Concepts listed successfully", slog.Int("count", len(concepts)))
	webutil.RespondWithJSON(w, http.StatusOK, concepts, logger)
}

// GetConcept は特定のコンセプトを返します
func (h *ConceptHandler) GetConcept(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "GetConcept")

	id, ok := h.conceptID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("concept_id", uint64(id)))

	concept, err := h.service.GetConcept(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Concept not found in service")
		} else {
			logger.Error("Error getting concept from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, concept, logger)
}

// CreateConcept は新しいコンセプトを作成します
func (h *ConceptHandler) CreateConcept(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "CreateConcept")

	var req model.ConceptInput
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "The request body is malformed.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	concept, err := h.service.CreateConcept(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating concept in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Concept created successfully", slog.Uint64("concept_id", uint64(concept.ID)))
	webutil.RespondWithJSON(w, http.StatusCreated, concept, logger)
}

// UpdateConcept は指定されたフィールドのみ更新します (PUT でも部分更新として扱う)
func (h *ConceptHandler) UpdateConcept(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "UpdateConcept")

	id, ok := h.conceptID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("concept_id", uint64(id)))

	var req model.ConceptPatch
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "The request body is malformed.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if req.Empty() {
		logger.Warn("UpdateConcept called with no fields provided")
		appErr := model.NewAppError("VALIDATION_ERROR", "No fields to update were provided.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	concept, err := h.service.UpdateConcept(r.Context(), id, &req)
	if err != nil {
		logger.Error("Error updating concept in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Concept updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, concept, logger)
}

// DeleteConcept はコンセプトを削除します
func (h *ConceptHandler) DeleteConcept(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "DeleteConcept")

	id, ok := h.conceptID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("concept_id", uint64(id)))

	if err := h.service.DeleteConcept(r.Context(), id); err != nil {
		logger.Error("Error deleting concept in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Concept deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

func (h *ConceptHandler) conceptID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uint, bool) {
	idStr := chi.URLParam(r, middleware.ConceptIDParam)
	id, err := strconv.ParseUint(idStr, 10, 0)
	if err != nil || id == 0 {
		logger.Warn("Invalid concept ID format in URL", slog.String("concept_id_str", idStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "concept_id must be a positive integer.", "concept_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return 0, false
	}
	return uint(id), true
}
