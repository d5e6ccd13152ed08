package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type UserEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserEvent) ([]*types.UserEvent, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.UserEvent, error)
}

type userEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	repoLog := baseLog.With("repo", "UserEventRepo")
	return &userEventRepo{db: db, log: repoLog}
}

func (r *userEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserEvent) ([]*types.UserEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserEvent{}, nil
	}

	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userEventRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.UserEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserEvent
	if ownerID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
