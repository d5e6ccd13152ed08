package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type UserRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.User, error)
	// EnsureExists provisions the durable user row for an identity if it is
	// missing. Existing rows are left untouched.
	EnsureExists(ctx context.Context, tx *gorm.DB, id, email string) (*types.User, error)
	UpdateDailyGoal(ctx context.Context, tx *gorm.DB, id string, goal int) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (r *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.User
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) EnsureExists(ctx context.Context, tx *gorm.DB, id, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	user := &types.User{ID: id, Email: email, DailyGoal: 10}
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		FirstOrCreate(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) UpdateDailyGoal(ctx context.Context, tx *gorm.DB, id string, goal int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("daily_goal", goal).Error; err != nil {
		return err
	}
	return nil
}
