package service

import (
	"context"
	"errors"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RewardService interface {
	List(ctx context.Context) ([]dto.RewardView, error)
	Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*model.RewardRedemption, error)
}

type rewardService struct {
	rewardRepo repository.RewardRepository
	userRepo   repository.UserRepository
}

func NewRewardService(rewardRepo repository.RewardRepository, userRepo repository.UserRepository) RewardService {
	return &rewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
	}
}

func (s *rewardService) List(ctx context.Context) ([]dto.RewardView, error) {
	rewards, err := s.rewardRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.RewardView, 0, len(rewards))
	for _, r := range rewards {
		redeemed, err := s.rewardRepo.RedeemedCount(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, dto.RewardView{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Points:      r.Points,
			Category:    r.Category,
			Icon:        r.Icon,
			Available:   r.Available,
			Redeemed:    redeemed,
		})
	}
	return views, nil
}

func (s *rewardService) Redeem(ctx context.Context, userID, rewardID uuid.UUID) (*model.RewardRedemption, error) {
	// Pre-checks give friendly errors before the transaction; the
	// repository re-checks both under row locks.
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	reward, err := s.rewardRepo.FindByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "reward not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if user.Points < reward.Points {
		return nil, apperror.New(400, "insufficient points", apperror.ErrBadRequest)
	}
	if reward.Available <= 0 {
		return nil, apperror.New(400, "reward not available", apperror.ErrBadRequest)
	}

	redemption, err := s.rewardRepo.Redeem(ctx, userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientPoints):
			return nil, apperror.New(400, "insufficient points", apperror.ErrBadRequest)
		case errors.Is(err, repository.ErrRewardUnavailable):
			return nil, apperror.New(400, "reward not available", apperror.ErrBadRequest)
		}
		return nil, err
	}

	return redemption, nil
}
