package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoteType string

const (
	VoteTypeUp   VoteType = "UPVOTE"
	VoteTypeDown VoteType = "DOWNVOTE"
)

// IsValidVoteType checks if the vote type is one of the known values.
func IsValidVoteType(t string) bool {
	return VoteType(t) == VoteTypeUp || VoteType(t) == VoteTypeDown
}

// Vote records one user's stance on exactly one target: either a question or
// an answer, never both. Uniqueness per (user, target) is enforced by the two
// partial composite indexes; a NULL side never collides.
type Vote struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type       VoteType   `gorm:"size:10;not null" json:"type"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_vote_user_question;uniqueIndex:idx_vote_user_answer" json:"user_id"`
	User       User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuestionID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_vote_user_question" json:"question_id,omitempty"`
	AnswerID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_vote_user_answer" json:"answer_id,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
