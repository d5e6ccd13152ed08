package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type FlashcardRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Flashcard) ([]*types.Flashcard, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.Flashcard, error)
	GetByOwnerAndCategory(ctx context.Context, tx *gorm.DB, ownerID, category string) ([]*types.Flashcard, error)
	GetByIDForOwner(ctx context.Context, tx *gorm.DB, ownerID string, id uint) (*types.Flashcard, error)
	// GetKeysByOwner returns only the origin/translation pairs, which is all
	// the dedup pass needs.
	GetKeysByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]types.CardKey, error)
	DeleteByOwnerAndCategory(ctx context.Context, tx *gorm.DB, ownerID, category string) (int64, error)
}

type flashcardRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFlashcardRepo(db *gorm.DB, baseLog *logger.Logger) FlashcardRepo {
	repoLog := baseLog.With("repo", "FlashcardRepo")
	return &flashcardRepo{db: db, log: repoLog}
}

func (r *flashcardRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Flashcard) ([]*types.Flashcard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Flashcard{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *flashcardRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.Flashcard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Flashcard
	if ownerID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *flashcardRepo) GetByOwnerAndCategory(ctx context.Context, tx *gorm.DB, ownerID, category string) ([]*types.Flashcard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Flashcard
	if ownerID == "" || category == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ? AND category = ?", ownerID, category).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *flashcardRepo) GetByIDForOwner(ctx context.Context, tx *gorm.DB, ownerID string, id uint) (*types.Flashcard, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Flashcard
	err := transaction.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *flashcardRepo) GetKeysByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]types.CardKey, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.CardKey
	if ownerID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Flashcard{}).
		Where("owner_id = ?", ownerID).
		Select("origin_text", "translate_text").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *flashcardRepo) DeleteByOwnerAndCategory(ctx context.Context, tx *gorm.DB, ownerID, category string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if ownerID == "" || category == "" {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Where("owner_id = ? AND category = ?", ownerID, category).
		Delete(&types.Flashcard{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
