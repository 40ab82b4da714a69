package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardRow carries a user's activity counters for one scoring period.
type LeaderboardRow struct {
	UserID          uuid.UUID
	Name            string
	AvatarURL       *string
	Points          int
	Reputation      int
	Questions       int64
	Answers         int64
	AcceptedAnswers int64
}

type LeaderboardRepository interface {
	// Rows returns every user with question/answer/accepted counts limited
	// to activity at or after since. A zero since means all-time.
	Rows(ctx context.Context, since time.Time) ([]LeaderboardRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) Rows(ctx context.Context, since time.Time) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id AS user_id,
			u.name,
			u.avatar_url,
			u.points,
			u.reputation,
			(SELECT COUNT(*) FROM questions q
				WHERE q.author_id = u.id AND q.created_at >= ?) AS questions,
			(SELECT COUNT(*) FROM answers a
				WHERE a.author_id = u.id AND a.created_at >= ?) AS answers,
			(SELECT COUNT(*) FROM answers a
				WHERE a.author_id = u.id AND a.is_accepted AND a.created_at >= ?) AS accepted_answers
		FROM users u`, since, since, since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
