package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type ProgressRepo interface {
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.ProgressRecord, error)
	// GetByOwnerAndFlashcard returns nil without error when no record exists
	// yet; records are created lazily on the first answer.
	GetByOwnerAndFlashcard(ctx context.Context, tx *gorm.DB, ownerID string, flashcardID uint) (*types.ProgressRecord, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ProgressRecord) error
	DeleteByOwner(ctx context.Context, tx *gorm.DB, ownerID string) error
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressRecord
	if ownerID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressRepo) GetByOwnerAndFlashcard(ctx context.Context, tx *gorm.DB, ownerID string, flashcardID uint) (*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ProgressRecord
	err := transaction.WithContext(ctx).
		Where("owner_id = ? AND flashcard_id = ?", ownerID, flashcardID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *progressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ProgressRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique owner_id + flashcard_id. Assign takes a map so that
	// zero values still overwrite, e.g. a demotion back to mastery level 0.
	if err := transaction.WithContext(ctx).
		Where("owner_id = ? AND flashcard_id = ?", row.OwnerID, row.FlashcardID).
		Assign(map[string]any{
			"mastery_level":     row.MasteryLevel,
			"correct_answers":   row.CorrectAnswers,
			"incorrect_answers": row.IncorrectAnswers,
			"next_review_date":  row.NextReviewDate,
		}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}

func (r *progressRepo) DeleteByOwner(ctx context.Context, tx *gorm.DB, ownerID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if ownerID == "" {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&types.ProgressRecord{}).Error; err != nil {
		return err
	}
	return nil
}
