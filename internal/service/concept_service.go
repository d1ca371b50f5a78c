// internal/service/concept_service.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"concept_flash/internal/middleware"
	"concept_flash/internal/model"
	"concept_flash/internal/repository"

	"gorm.io/gorm"
)

//go:generate mockery --name ConceptService --output ./mocks --outpkg mocks --case=underscore
type ConceptService interface {
	ListConcepts(ctx context.Context) ([]*model.Concept, error)
	GetConcept(ctx context.Context, id uint) (*model.Concept, error)
	CreateConcept(ctx context.Context, req *model.ConceptInput) (*model.Concept, error)
	UpdateConcept(ctx context.Context, id uint, req *model.ConceptPatch) (*model.Concept, error)
	DeleteConcept(ctx context.Context, id uint) error
}

type conceptService struct {
	db          *gorm.DB // トランザクション用にDB接続を持つ
	conceptRepo repository.ConceptRepository
}

func NewConceptService(db *gorm.DB, conceptRepo repository.ConceptRepository) ConceptService {
	return &conceptService{
		db:          db,
		conceptRepo: conceptRepo,
	}
}

func (s *conceptService) ListConcepts(ctx context.Context) ([]*model.Concept, error) {
	logger := middleware.GetLogger(ctx)
	concepts, err := s.conceptRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list concepts", slog.Any("error", err))
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to fetch concepts.", "", err)
	}
	return concepts, nil
}

func (s *conceptService) GetConcept(ctx context.Context, id uint) (*model.Concept, error) {
	concept, err := s.conceptRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "Concept not found.", "id", err)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to fetch concept.", "", err)
	}
	return concept, nil
}

func (s *conceptService) CreateConcept(ctx context.Context, req *model.ConceptInput) (*model.Concept, error) {
	logger := middleware.GetLogger(ctx)

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Title is required.", "title", model.ErrInvalidInput)
	}
	if description == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "Description is required.", "description", model.ErrInvalidInput)
	}
	difficulty := req.DifficultyLevel
	if difficulty == "" {
		difficulty = model.DefaultDifficulty
	}
	if !difficulty.Valid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "Difficulty must be one of [beginner intermediate advanced].", "difficulty_level", model.ErrInvalidInput)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	concept := &model.Concept{
		Title:           title,
		Description:     description,
		ExampleText:     optionalText(req.ExampleText),
		ImageURL:        optionalText(req.ImageURL),
		Category:        category,
		DifficultyLevel: difficulty,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.conceptRepo.Create(ctx, tx, concept)
	})
	if err != nil {
		if appErr := constraintAppError(err); appErr != nil {
			logger.Warn("Concept rejected by database constraint", slog.Any("error", err))
			return nil, appErr
		}
		logger.Error("Transaction failed for CreateConcept", slog.Any("error", err))
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create concept.", "", err)
	}

	logger.Info("Concept created", slog.Uint64("concept_id", uint64(concept.ID)))
	return concept, nil
}

func (s *conceptService) UpdateConcept(ctx context.Context, id uint, req *model.ConceptPatch) (*model.Concept, error) {
	logger := middleware.GetLogger(ctx).With(slog.Uint64("concept_id", uint64(id)))

	if req.DifficultyLevel != nil && !req.DifficultyLevel.Valid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "Difficulty must be one of [beginner intermediate advanced].", "difficulty_level", model.ErrInvalidInput)
	}

	var updated *model.Concept
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 存在確認
		current, err := s.conceptRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}

		// 2. 更新内容の準備 (値が変わるものだけ)
		updates, err := buildUpdates(current, req)
		if err != nil {
			return err
		}

		// 3. 更新実行
		if len(updates) > 0 {
			if err := s.conceptRepo.Update(ctx, tx, id, updates); err != nil {
				return err
			}
		}

		updated, err = s.conceptRepo.FindByID(ctx, tx, id)
		return err
	})
	if err != nil {
		var appErr *model.AppError
		switch {
		case errors.As(err, &appErr):
			return nil, err
		case errors.Is(err, model.ErrNotFound):
			logger.Info("Concept to update not found")
			return nil, model.NewAppError("NOT_FOUND", "Concept not found.", "id", err)
		case constraintAppError(err) != nil:
			logger.Warn("Concept update rejected by database constraint", slog.Any("error", err))
			return nil, constraintAppError(err)
		default:
			logger.Error("Transaction failed for UpdateConcept", slog.Any("error", err))
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update concept.", "", err)
		}
	}

	logger.Info("Concept updated")
	return updated, nil
}

func (s *conceptService) DeleteConcept(ctx context.Context, id uint) error {
	logger := middleware.GetLogger(ctx).With(slog.Uint64("concept_id", uint64(id)))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.conceptRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "Concept not found.", "id", err)
		}
		logger.Error("Transaction failed for DeleteConcept", slog.Any("error", err))
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to delete concept.", "", err)
	}

	logger.Info("Concept deleted")
	return nil
}

// buildUpdates は部分更新リクエストから、値が変わるカラムだけを抜き出します。
// 例文と画像URLは空文字で NULL に戻せます。
func buildUpdates(current *model.Concept, req *model.ConceptPatch) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, model.NewAppError("VALIDATION_ERROR", "Title must not be empty.", "title", model.ErrInvalidInput)
		}
		if title != current.Title {
			updates["Title"] = title
		}
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, model.NewAppError("VALIDATION_ERROR", "Description must not be empty.", "description", model.ErrInvalidInput)
		}
		if description != current.Description {
			updates["Description"] = description
		}
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, model.NewAppError("VALIDATION_ERROR", "Category must not be empty.", "category", model.ErrInvalidInput)
		}
		if category != current.Category {
			updates["Category"] = category
		}
	}
	if req.DifficultyLevel != nil && *req.DifficultyLevel != current.DifficultyLevel {
		updates["DifficultyLevel"] = *req.DifficultyLevel
	}
	if req.ExampleText != nil && strings.TrimSpace(*req.ExampleText) != current.Example() {
		updates["ExampleText"] = optionalText(req.ExampleText)
	}
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != current.Image() {
		updates["ImageURL"] = optionalText(req.ImageURL)
	}
	return updates, nil
}

// constraintAppError はリポジトリが分類した制約違反を AppError にします
func constraintAppError(err error) *model.AppError {
	switch {
	case errors.Is(err, model.ErrConflict):
		return model.NewAppError("CONFLICT", "The concept conflicts with an existing record.", "", err)
	case errors.Is(err, model.ErrInvalidInput):
		return model.NewAppError("VALIDATION_ERROR", "The concept violates a database constraint.", "", err)
	}
	return nil
}

// optionalText は空文字 (空白のみ含む) を nil に正規化します
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
