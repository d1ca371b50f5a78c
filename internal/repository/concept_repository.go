//go:generate mockery --name ConceptRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"concept_flash/internal/middleware"
	"concept_flash/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConceptRepository はコンセプトの永続化を担当します。
// DB接続 (またはトランザクション) はService層から渡されます。
type ConceptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, concept *model.Concept) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Concept, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Concept, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type gormConceptRepository struct{}

func NewGormConceptRepository() ConceptRepository {
	return &gormConceptRepository{}
}

func (r *gormConceptRepository) Create(ctx context.Context, tx *gorm.DB, concept *model.Concept) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(concept)
	if result.Error != nil {
		if err := classifyConstraintError(result.Error); err != nil {
			logger.Warn("Constraint violation on create concept",
				"error", result.Error,
				"title", concept.Title,
			)
			return fmt.Errorf("gormConceptRepository.Create: %w: %v", err, result.Error)
		}
		logger.Error("Error creating concept in DB",
			"error", result.Error,
			"title", concept.Title,
		)
		return fmt.Errorf("gormConceptRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormConceptRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Concept, error) {
	logger := middleware.GetLogger(ctx)
	var concept model.Concept
	result := db.WithContext(ctx).Where("id = ?", id).First(&concept)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding concept by ID in DB",
			"error", result.Error,
			"concept_id", id,
		)
		return nil, fmt.Errorf("gormConceptRepository.FindByID: %w", result.Error)
	}
	return &concept, nil
}

func (r *gormConceptRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Concept, error) {
	logger := middleware.GetLogger(ctx)
	var concepts []*model.Concept
	result := db.WithContext(ctx).Order("id ASC").Find(&concepts)
	if result.Error != nil {
		logger.Error("Error listing concepts in DB", "error", result.Error)
		return nil, fmt.Errorf("gormConceptRepository.FindAll: %w", result.Error)
	}
	return concepts, nil
}

func (r *gormConceptRepository) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Concept{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if err := classifyConstraintError(result.Error); err != nil {
			logger.Warn("Constraint violation on update concept",
				"error", result.Error,
				"concept_id", id,
			)
			return fmt.Errorf("gormConceptRepository.Update: %w: %v", err, result.Error)
		}
		logger.Error("Error updating concept in DB",
			"error", result.Error,
			"concept_id", id,
		)
		return fmt.Errorf("gormConceptRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormConceptRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Delete(&model.Concept{}, id)
	if result.Error != nil {
		logger.Error("Error deleting concept in DB",
			"error", result.Error,
			"concept_id", id,
		)
		return fmt.Errorf("gormConceptRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// classifyConstraintError は PostgreSQL の制約違反をドメインのエラーに変換します。
// 該当しない場合 (sqlite を含む) は nil
func classifyConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return model.ErrConflict
	case "23514", "22001": // check_violation, string_data_right_truncation
		return model.ErrInvalidInput
	}
	return nil
}
