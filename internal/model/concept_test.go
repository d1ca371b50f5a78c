package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyLevel_Valid(t *testing.T) {
	assert.True(t, DifficultyBeginner.Valid())
	assert.True(t, DifficultyIntermediate.Valid())
	assert.True(t, DifficultyAdvanced.Valid())
	assert.False(t, DifficultyLevel("expert").Valid())
	assert.False(t, DifficultyLevel("").Valid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Beginner", DifficultyLevel("").Label())
	assert.Equal(t, "Advanced", DifficultyAdvanced.Label())
	assert.Equal(t, "General", Concept{}.CategoryLabel())
	assert.Equal(t, "Science", Concept{Category: "science"}.CategoryLabel())
}

func TestPatchFrom(t *testing.T) {
	example := "old example"
	before := Concept{
		ID:              1,
		Title:           "Closure",
		Description:     "A function with captured scope",
		ExampleText:     &example,
		Category:        "programming",
		DifficultyLevel: DifficultyIntermediate,
	}

	t.Run("変更なし", func(t *testing.T) {
		p := PatchFrom(before, ConceptInput{Title: "Closure", Category: "programming"})
		assert.True(t, p.Empty())
	})

	t.Run("差分のみ", func(t *testing.T) {
		newExample := "new example"
		p := PatchFrom(before, ConceptInput{
			Title:           "Closures",
			ExampleText:     &newExample,
			DifficultyLevel: DifficultyAdvanced,
		})
		assert.False(t, p.Empty())
		if assert.NotNil(t, p.Title) {
			assert.Equal(t, "Closures", *p.Title)
		}
		assert.Nil(t, p.Description)
		assert.Nil(t, p.Category)
		if assert.NotNil(t, p.ExampleText) {
			assert.Equal(t, "new example", *p.ExampleText)
		}
		if assert.NotNil(t, p.DifficultyLevel) {
			assert.Equal(t, DifficultyAdvanced, *p.DifficultyLevel)
		}
	})
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewAppError("NOT_FOUND", "concept not found", "", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "NOT_FOUND")
}
