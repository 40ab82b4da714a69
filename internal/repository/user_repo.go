package repository

import (
	"context"

	"anoa.com/askhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityCounts aggregates the per-user counters the badge evaluator feeds on.
type ActivityCounts struct {
	Questions       int64
	Answers         int64
	AcceptedAnswers int64
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	ActivityCounts(ctx context.Context, userID uuid.UUID) (*ActivityCounts, error)
	// SetBadges overwrites the stored badge set. Callers must pass a merged
	// (union-only) set; badges are never revoked.
	SetBadges(ctx context.Context, userID uuid.UUID, badges string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) ActivityCounts(ctx context.Context, userID uuid.UUID) (*ActivityCounts, error) {
	var counts ActivityCounts

	if err := r.db.WithContext(ctx).Model(&model.Question{}).
		Where("author_id = ?", userID).Count(&counts.Questions).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("author_id = ?", userID).Count(&counts.Answers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Answer{}).
		Where("author_id = ? AND is_accepted = ?", userID, true).
		Count(&counts.AcceptedAnswers).Error; err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *userRepository) SetBadges(ctx context.Context, userID uuid.UUID, badges string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("badges", badges).Error
}
