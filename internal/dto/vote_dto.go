package dto

import "github.com/google/uuid"

type CastVoteRequest struct {
	TargetKind string    `json:"target_kind" binding:"required,oneof=question answer"`
	TargetID   uuid.UUID `json:"target_id" binding:"required"`
	VoteType   string    `json:"vote_type" binding:"required,oneof=UPVOTE DOWNVOTE"`
}

// VoteResult reports the target's recomputed vote count and the caller's
// standing vote; UserVote is null after a toggle-off.
type VoteResult struct {
	VoteCount int64   `json:"vote_count"`
	UserVote  *string `json:"user_vote"`
}
