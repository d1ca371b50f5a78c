// internal/model/concept.go
package model

import (
	"strings"
	"time"
)

// DifficultyLevel はコンセプトの難易度です
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// デフォルト値 (管理画面のフォーム初期値と同じ)
const (
	DefaultCategory   = "general"
	DefaultDifficulty = DifficultyBeginner
)

// Categories は既知のカテゴリ一覧 (表示順)
var Categories = []string{
	"general",
	"science",
	"mathematics",
	"programming",
	"language",
	"history",
	"business",
	"art",
	"philosophy",
}

// Valid は3種類の難易度のいずれかであれば true
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Label は表示用のラベルを返します。空の場合は "Beginner"
func (d DifficultyLevel) Label() string {
	if d == "" {
		return capitalize(string(DefaultDifficulty))
	}
	return capitalize(string(d))
}

// Concept は学習用フラッシュカード1枚を表します
type Concept struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"type:varchar(200);not null" json:"title"`
	Description     string          `gorm:"not null" json:"description"`
	ExampleText     *string         `json:"example_text"`
	ImageURL        *string         `json:"image_url"`
	Category        string          `gorm:"not null;default:general;index" json:"category"`
	DifficultyLevel DifficultyLevel `gorm:"type:varchar(20);not null;default:beginner;check:difficulty_level IN ('beginner','intermediate','advanced')" json:"difficulty_level"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Concept) TableName() string {
	return "concepts"
}

// CategoryLabel は表示用のカテゴリ名を返します。空の場合は "General"
func (c Concept) CategoryLabel() string {
	if c.Category == "" {
		return capitalize(DefaultCategory)
	}
	return capitalize(c.Category)
}

// Example は例文を返します (未設定なら空文字)
func (c Concept) Example() string {
	if c.ExampleText == nil {
		return ""
	}
	return *c.ExampleText
}

// Image は画像URLを返します (未設定なら空文字)
func (c Concept) Image() string {
	if c.ImageURL == nil {
		return ""
	}
	return *c.ImageURL
}

// コンセプト作成リクエストDTO (id / タイムスタンプはサーバー側で採番)
type ConceptInput struct {
	Title           string          `json:"title" validate:"required,max=200"`
	Description     string          `json:"description" validate:"required"`
	ExampleText     *string         `json:"example_text,omitempty"`
	ImageURL        *string         `json:"image_url,omitempty" validate:"omitempty,url|len=0"`
	Category        string          `json:"category,omitempty" validate:"omitempty,max=50"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// コンセプト更新（部分）リクエストDTO
type ConceptPatch struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	ExampleText     *string          `json:"example_text,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty" validate:"omitempty,url|len=0"`
	Category        *string          `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	DifficultyLevel *DifficultyLevel `json:"difficulty_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// Empty は更新対象のフィールドが1つもなければ true
func (p ConceptPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.ExampleText == nil &&
		p.ImageURL == nil && p.Category == nil && p.DifficultyLevel == nil
}

// PatchFrom は既存のコンセプトとの差分のみを含む更新DTOを作ります (CLIの編集コマンド用)
func PatchFrom(before Concept, after ConceptInput) ConceptPatch {
	var p ConceptPatch
	if after.Title != "" && after.Title != before.Title {
		p.Title = &after.Title
	}
	if after.Description != "" && after.Description != before.Description {
		p.Description = &after.Description
	}
	if after.ExampleText != nil && *after.ExampleText != before.Example() {
		p.ExampleText = after.ExampleText
	}
	if after.ImageURL != nil && *after.ImageURL != before.Image() {
		p.ImageURL = after.ImageURL
	}
	if after.Category != "" && after.Category != before.Category {
		p.Category = &after.Category
	}
	if after.DifficultyLevel != "" && after.DifficultyLevel != before.DifficultyLevel {
		d := after.DifficultyLevel
		p.DifficultyLevel = &d
	}
	return p
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
