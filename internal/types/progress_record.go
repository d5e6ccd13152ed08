package types

import (
	"time"
)

// MaxMasteryLevel is the top of the per-card mastery ladder. A card is
// considered mastered once it reaches it.
const MaxMasteryLevel = 5

// ProgressRecord tracks one owner's history with one card. Created lazily on
// the first answer, updated on every answer after that. Unique per
// (owner, flashcard).
type ProgressRecord struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FlashcardID      uint       `gorm:"column:flashcard_id;not null;index:idx_owner_flashcard,unique" json:"flashcard_id"`
	Flashcard        *Flashcard `gorm:"constraint:OnDelete:CASCADE;foreignKey:FlashcardID;references:ID" json:"flashcard,omitempty"`
	OwnerID          string     `gorm:"column:owner_id;not null;index:idx_owner_flashcard,unique" json:"owner_id"`
	MasteryLevel     int        `gorm:"column:mastery_level;not null;default:0" json:"mastery_level"`
	CorrectAnswers   int        `gorm:"column:correct_answers;not null;default:0" json:"correct_answers"`
	IncorrectAnswers int        `gorm:"column:incorrect_answers;not null;default:0" json:"incorrect_answers"`
	NextReviewDate   time.Time  `gorm:"column:next_review_date" json:"next_review_date"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}

func (ProgressRecord) TableName() string { return "progress_record" }

// Mastered reports whether the card sits at the top of the ladder.
func (p ProgressRecord) Mastered() bool { return p.MasteryLevel >= MaxMasteryLevel }
