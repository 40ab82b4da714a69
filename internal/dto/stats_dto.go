package dto

import (
	"time"

	"anoa.com/askhub/internal/scoring"
	"github.com/google/uuid"
)

// UserStats is the read-side projection combining the point ledger, the level
// calculator and the badge evaluator.
type UserStats struct {
	TotalPoints       int                   `json:"total_points"`
	AvailablePoints   int                   `json:"available_points"`
	SpentPoints       int                   `json:"spent_points"`
	Reputation        int                   `json:"reputation"`
	CurrentLevel      string                `json:"current_level"`
	NextLevel         string                `json:"next_level"`
	PointsToNextLevel int                   `json:"points_to_next_level"`
	Badges            []scoring.BadgeStatus `json:"badges"`
	RecentRedemptions []RedemptionView      `json:"recent_redemptions"`
	QuestionsAsked    int64                 `json:"questions_asked"`
	AnswersGiven      int64                 `json:"answers_given"`
}

type RedemptionView struct {
	ID     uuid.UUID `json:"id"`
	Reward string    `json:"reward"`
	Points int       `json:"points"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

type RewardView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	Available   int       `json:"available"`
	Redeemed    int64     `json:"redeemed"`
}

type RedeemRequest struct {
	RewardID uuid.UUID `json:"reward_id" binding:"required"`
}

type LeaderboardEntry struct {
	Position        int               `json:"position"`
	UserID          uuid.UUID         `json:"user_id"`
	Name            string            `json:"name"`
	AvatarURL       *string           `json:"avatar_url,omitempty"`
	Score           int               `json:"score"`
	QuestionsAsked  int64             `json:"questions_asked"`
	AnswersGiven    int64             `json:"answers_given"`
	AcceptedAnswers int64             `json:"accepted_answers"`
	Level           scoring.LevelInfo `json:"level"`
}

type CategoryView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	QuestionCount int64     `json:"question_count"`
}
