package service

import (
	"context"
	"errors"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/internal/scoring"
	"anoa.com/askhub/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsService is the read side of the engine: everything here is derived
// from current totals via the level calculator and badge evaluator, nothing
// is written except through GamificationService.
type StatsService interface {
	GetUserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStats, error)
}

type statsService struct {
	userRepo     repository.UserRepository
	rewardRepo   repository.RewardRepository
	gamification GamificationService
}

func NewStatsService(userRepo repository.UserRepository, rewardRepo repository.RewardRepository, gamification GamificationService) StatsService {
	return &statsService{
		userRepo:     userRepo,
		rewardRepo:   rewardRepo,
		gamification: gamification,
	}
}

func (s *statsService) GetUserStats(ctx context.Context, userID uuid.UUID) (*dto.UserStats, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	snapshot, err := s.gamification.Snapshot(ctx, user)
	if err != nil {
		return nil, err
	}

	spent, err := s.rewardRepo.TotalSpent(ctx, userID)
	if err != nil {
		return nil, err
	}

	redemptions, err := s.rewardRepo.RecentRedemptions(ctx, userID, 10)
	if err != nil {
		return nil, err
	}

	recent := make([]dto.RedemptionView, 0, len(redemptions))
	for _, r := range redemptions {
		recent = append(recent, dto.RedemptionView{
			ID:     r.ID,
			Reward: r.Reward.Name,
			Points: r.Points,
			Status: r.Status,
			Date:   r.CreatedAt,
		})
	}

	level := scoring.UserLevel(user.Points, user.Reputation)

	return &dto.UserStats{
		TotalPoints:       user.Points + int(spent),
		AvailablePoints:   user.Points,
		SpentPoints:       int(spent),
		Reputation:        user.Reputation,
		CurrentLevel:      level.Name,
		NextLevel:         level.Next,
		PointsToNextLevel: level.PointsToNext,
		Badges:            scoring.EvaluateBadges(snapshot),
		RecentRedemptions: recent,
		QuestionsAsked:    int64(snapshot.QuestionsCount),
		AnswersGiven:      int64(snapshot.AnswersCount),
	}, nil
}
