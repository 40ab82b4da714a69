package scoring

import (
	"testing"

	"anoa.com/askhub/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestVoteDeltas(t *testing.T) {
	assert.Equal(t, 2, CastDelta(model.VoteTypeUp))
	assert.Equal(t, -1, CastDelta(model.VoteTypeDown))

	assert.Equal(t, -2, ToggleDelta(model.VoteTypeUp))
	assert.Equal(t, 1, ToggleDelta(model.VoteTypeDown))

	assert.Equal(t, -3, SwitchDelta(model.VoteTypeUp, model.VoteTypeDown))
	assert.Equal(t, 3, SwitchDelta(model.VoteTypeDown, model.VoteTypeUp))
	assert.Equal(t, 0, SwitchDelta(model.VoteTypeUp, model.VoteTypeUp))
}

func TestApplyDelta(t *testing.T) {
	assert.Equal(t, 12, ApplyDelta(10, 2))
	assert.Equal(t, 9, ApplyDelta(10, -1))

	// A downvote against a zero balance cannot push it negative.
	assert.Equal(t, 0, ApplyDelta(0, -1))
	assert.Equal(t, 0, ApplyDelta(2, -3))
}

func TestQuestionDeletePenalty(t *testing.T) {
	// Creation award only.
	assert.Equal(t, 5, QuestionDeletePenalty(0, 0))
	// 3 upvotes, 1 downvote: 5 + 6 - 1.
	assert.Equal(t, 10, QuestionDeletePenalty(3, 1))
	// Heavily downvoted questions never produce a negative penalty.
	assert.Equal(t, 0, QuestionDeletePenalty(0, 6))
}

func TestAnswerDeletePenalty(t *testing.T) {
	assert.Equal(t, 10, AnswerDeletePenalty(0, 0))
	assert.Equal(t, 13, AnswerDeletePenalty(2, 1))
	assert.Equal(t, 0, AnswerDeletePenalty(0, 11))
}
