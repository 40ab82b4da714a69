package service

import (
	"context"
	"sort"
	"time"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/internal/scoring"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all-time"
)

type LeaderboardService interface {
	Top(ctx context.Context, period string, limit int) ([]dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{leaderboardRepo: leaderboardRepo}
}

func periodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

func (s *leaderboardService) Top(ctx context.Context, period string, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := s.leaderboardRepo.Rows(ctx, periodStart(period, time.Now()))
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		score := row.Points +
			int(row.Questions)*scoring.PointsCreateQuestion +
			int(row.Answers)*scoring.PointsCreateAnswer +
			int(row.AcceptedAnswers)*scoring.PointsAcceptedAnswer
		entries = append(entries, dto.LeaderboardEntry{
			UserID:          row.UserID,
			Name:            row.Name,
			AvatarURL:       row.AvatarURL,
			Score:           score,
			QuestionsAsked:  row.Questions,
			AnswersGiven:    row.Answers,
			AcceptedAnswers: row.AcceptedAnswers,
			Level:           scoring.UserLevel(row.Points, row.Reputation),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries, nil
}
