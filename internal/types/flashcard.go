package types

import (
	"time"
)

// OwnerGuest marks cards that live only in guest storage. Durable rows never
// carry it.
const OwnerGuest = "guest"

// Flashcard is one generated card. Durable rows get their IDs from the
// database; guest-store copies get dense local IDs starting at 1 within the
// active category.
type Flashcard struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID           string    `gorm:"column:owner_id;not null;index:idx_owner_category" json:"owner_id"`
	OriginText        string    `gorm:"column:origin_text;not null" json:"origin_text"`
	TranslateText     string    `gorm:"column:translate_text;not null" json:"translate_text"`
	ExampleUsing      string    `gorm:"column:example_using" json:"example_using"`
	TranslateExample  string    `gorm:"column:translate_example" json:"translate_example"`
	Category          string    `gorm:"column:category;not null;index:idx_owner_category" json:"category"`
	TranslateCategory string    `gorm:"column:translate_category" json:"translate_category"`
	SourceLanguage    string    `gorm:"column:source_language" json:"source_language"`
	TargetLanguage    string    `gorm:"column:target_language" json:"target_language"`
	DifficultyLevel   string    `gorm:"column:difficulty_level" json:"difficulty_level"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (Flashcard) TableName() string { return "flashcard" }

// ImportableCard is a card without an identity: generation output, guest
// storage input, and the per-card shape of an import request.
type ImportableCard struct {
	OriginText        string `json:"origin_text"`
	TranslateText     string `json:"translate_text"`
	ExampleUsing      string `json:"example_using"`
	TranslateExample  string `json:"translate_example"`
	Category          string `json:"category"`
	TranslateCategory string `json:"translate_category"`
	SourceLanguage    string `json:"source_language"`
	TargetLanguage    string `json:"target_language"`
	DifficultyLevel   string `json:"difficulty_level"`
}

// CardKey is the pair that decides whether two cards are the same word.
// Examples and categories deliberately do not participate.
type CardKey struct {
	OriginText    string `json:"origin_text"`
	TranslateText string `json:"translate_text"`
}

// ToFlashcard stamps an importable card with an owner. The ID is left for the
// target store to assign.
func (c ImportableCard) ToFlashcard(ownerID string) *Flashcard {
	return &Flashcard{
		OwnerID:           ownerID,
		OriginText:        c.OriginText,
		TranslateText:     c.TranslateText,
		ExampleUsing:      c.ExampleUsing,
		TranslateExample:  c.TranslateExample,
		Category:          c.Category,
		TranslateCategory: c.TranslateCategory,
		SourceLanguage:    c.SourceLanguage,
		TargetLanguage:    c.TargetLanguage,
		DifficultyLevel:   c.DifficultyLevel,
	}
}

// Importable converts a stored card back to its ownerless shape, used when a
// guest's local cards are handed to the import pipeline.
func (f Flashcard) Importable() ImportableCard {
	return ImportableCard{
		OriginText:        f.OriginText,
		TranslateText:     f.TranslateText,
		ExampleUsing:      f.ExampleUsing,
		TranslateExample:  f.TranslateExample,
		Category:          f.Category,
		TranslateCategory: f.TranslateCategory,
		SourceLanguage:    f.SourceLanguage,
		TargetLanguage:    f.TargetLanguage,
		DifficultyLevel:   f.DifficultyLevel,
	}
}

// Key returns the raw dedup pair for this card.
func (f Flashcard) Key() CardKey {
	return CardKey{OriginText: f.OriginText, TranslateText: f.TranslateText}
}
