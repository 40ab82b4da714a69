package repository

import (
	"context"
	"errors"

	"anoa.com/askhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrRewardUnavailable  = errors.New("reward not available")
)

type RewardRepository interface {
	FindActive(ctx context.Context) ([]*model.Reward, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reward, error)
	// Redeem atomically re-checks balance and stock under row locks, debits
	// the user, decrements stock and records the redemption. Neither points
	// nor stock can go negative.
	Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*model.RewardRedemption, error)
	RedeemedCount(ctx context.Context, rewardID uuid.UUID) (int64, error)
	TotalSpent(ctx context.Context, userID uuid.UUID) (int64, error)
	RecentRedemptions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.RewardRedemption, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) FindActive(ctx context.Context) ([]*model.Reward, error) {
	var rewards []*model.Reward
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points ASC").
		Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reward, error) {
	var reward model.Reward
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*model.RewardRedemption, error) {
	var redemption *model.RewardRedemption

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward model.Reward
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reward, "id = ?", rewardID).Error; err != nil {
			return err
		}

		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		if user.Points < reward.Points {
			return ErrInsufficientPoints
		}
		if reward.Available <= 0 {
			return ErrRewardUnavailable
		}

		redemption = &model.RewardRedemption{
			UserID:   userID,
			RewardID: rewardID,
			Points:   reward.Points,
			Status:   "PENDING",
		}
		if err := tx.Create(redemption).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).Where("id = ?", userID).
			UpdateColumn("points", user.Points-reward.Points).Error; err != nil {
			return err
		}

		return tx.Model(&model.Reward{}).Where("id = ?", rewardID).
			UpdateColumn("available", reward.Available-1).Error
	})
	if err != nil {
		return nil, err
	}

	return redemption, nil
}

func (r *rewardRepository) RedeemedCount(ctx context.Context, rewardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RewardRedemption{}).
		Where("reward_id = ?", rewardID).Count(&count).Error
	return count, err
}

func (r *rewardRepository) TotalSpent(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.RewardRedemption{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (r *rewardRepository) RecentRedemptions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.RewardRedemption, error) {
	var redemptions []*model.RewardRedemption
	err := r.db.WithContext(ctx).
		Preload("Reward").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&redemptions).Error
	return redemptions, err
}
