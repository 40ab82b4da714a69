// Package scoring holds the pure rules of the reputation engine: point
// awards, deletion reversals, vote deltas, level thresholds and the badge
// registry. Nothing here touches the database; callers apply the computed
// deltas inside their own transactions.
package scoring

import "anoa.com/askhub/internal/model"

// Point awards per action.
const (
	PointsCreateQuestion   = 5
	PointsCreateAnswer     = 10
	PointsUpvoteReceived   = 2
	PointsDownvoteReceived = -1

	// PointsAcceptedAnswer is referenced by the leaderboard score formula
	// and profile copy. No mutating endpoint applies it.
	PointsAcceptedAnswer = 15
)

// VoteEffect returns the point effect a standing vote of the given type has
// on the content author.
func VoteEffect(t model.VoteType) int {
	switch t {
	case model.VoteTypeUp:
		return PointsUpvoteReceived
	case model.VoteTypeDown:
		return PointsDownvoteReceived
	}
	return 0
}

// CastDelta is the author's point change when a fresh vote is cast.
func CastDelta(t model.VoteType) int {
	return VoteEffect(t)
}

// ToggleDelta is the author's point change when an existing vote of the given
// type is toggled off: the original effect is reversed.
func ToggleDelta(t model.VoteType) int {
	return -VoteEffect(t)
}

// SwitchDelta is the author's point change when a vote flips from oldType to
// newType: remove the old effect, add the new one.
func SwitchDelta(oldType, newType model.VoteType) int {
	return VoteEffect(newType) - VoteEffect(oldType)
}

// QuestionDeletePenalty computes the points to take back from a question's
// author when the question is deleted: the creation award plus everything the
// question's votes granted, floored at zero.
func QuestionDeletePenalty(upvotes, downvotes int) int {
	p := PointsCreateQuestion + upvotes*PointsUpvoteReceived + downvotes*PointsDownvoteReceived
	if p < 0 {
		return 0
	}
	return p
}

// AnswerDeletePenalty is the same reversal for a single answer.
func AnswerDeletePenalty(upvotes, downvotes int) int {
	p := PointsCreateAnswer + upvotes*PointsUpvoteReceived + downvotes*PointsDownvoteReceived
	if p < 0 {
		return 0
	}
	return p
}

// ApplyDelta returns the new balance after applying a signed delta, clamped
// at zero on the way down.
func ApplyDelta(current, delta int) int {
	n := current + delta
	if n < 0 {
		return 0
	}
	return n
}
