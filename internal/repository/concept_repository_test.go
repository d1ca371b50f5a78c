package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"concept_flash/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリSQLiteを用意します
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func seedConcept(t *testing.T, repo ConceptRepository, db *gorm.DB, title string) *model.Concept {
	t.Helper()
	c := &model.Concept{
		Title:           title,
		Description:     title + " description",
		Category:        model.DefaultCategory,
		DifficultyLevel: model.DefaultDifficulty,
	}
	require.NoError(t, repo.Create(context.Background(), db, c))
	return c
}

func TestGormConceptRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormConceptRepository()

	created := seedConcept(t, repo, db, "Polymorphism")
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Polymorphism", found.Title)
	assert.Nil(t, found.ExampleText)

	_, err = repo.FindByID(ctx, db, created.ID+100)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGormConceptRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormConceptRepository()

	empty, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seedConcept(t, repo, db, "A")
	seedConcept(t, repo, db, "B")
	seedConcept(t, repo, db, "C")

	all, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Title)
	assert.Equal(t, "C", all[2].Title)
}

func TestGormConceptRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormConceptRepository()
	c := seedConcept(t, repo, db, "Entropy")

	err := repo.Update(ctx, db, c.ID, map[string]interface{}{
		"Category":        "science",
		"DifficultyLevel": model.DifficultyAdvanced,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "science", found.Category)
	assert.Equal(t, model.DifficultyAdvanced, found.DifficultyLevel)

	// 更新内容が空なら何もしない
	assert.NoError(t, repo.Update(ctx, db, c.ID, map[string]interface{}{}))

	err = repo.Update(ctx, db, 9999, map[string]interface{}{"Title": "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGormConceptRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormConceptRepository()
	c := seedConcept(t, repo, db, "Inflation")

	require.NoError(t, repo.Delete(ctx, db, c.ID))
	_, err := repo.FindByID(ctx, db, c.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, db, c.ID), model.ErrNotFound)
}

func TestClassifyConstraintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expected: model.ErrConflict},
		{name: "check violation", err: fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23514"}), expected: model.ErrInvalidInput},
		{name: "value too long", err: &pgconn.PgError{Code: "22001"}, expected: model.ErrInvalidInput},
		{name: "other postgres error", err: &pgconn.PgError{Code: "40001"}, expected: nil},
		{name: "non postgres error", err: errors.New("disk I/O error"), expected: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyConstraintError(tc.err))
		})
	}
}

func TestGormConceptRepository_CheckConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormConceptRepository()
	ctx := context.Background()

	concept := &model.Concept{Title: "Valid", Description: "d", Category: model.DefaultCategory, DifficultyLevel: model.DifficultyBeginner}
	require.NoError(t, repo.Create(ctx, db, concept))

	err := repo.Update(ctx, db, concept.ID, map[string]interface{}{"DifficultyLevel": "expert"})
	assert.Error(t, err, "difficulty outside the enum is rejected by the database")
}
