package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func earnedSet(statuses []BadgeStatus) map[string]bool {
	earned := make(map[string]bool)
	for _, s := range statuses {
		if s.Earned {
			earned[s.Name] = true
		}
	}
	return earned
}

func TestEvaluateBadgesFreshUser(t *testing.T) {
	statuses := EvaluateBadges(BadgeSnapshot{CreatedAt: time.Now()})
	require.Len(t, statuses, len(BadgeDefinitions))
	assert.Empty(t, earnedSet(statuses))
}

func TestEvaluateBadgesActiveUser(t *testing.T) {
	snapshot := BadgeSnapshot{
		Points:               120,
		Reputation:           150,
		QuestionsCount:       3,
		AnswersCount:         6,
		AcceptedAnswersCount: 2,
		CreatedAt:            time.Now().AddDate(0, 0, -45),
	}

	earned := earnedSet(EvaluateBadges(snapshot))
	assert.True(t, earned["First Answer"])
	assert.True(t, earned["Quick Responder"])
	assert.True(t, earned["Problem Solver"])
	assert.True(t, earned["First Question"])
	assert.True(t, earned["Veteran"])

	assert.False(t, earned["Top Helper"])
	assert.False(t, earned["Mentor"])
	assert.False(t, earned["Curious Mind"])
	assert.False(t, earned["Answer Master"])
}

func TestEarnedBadgeNames(t *testing.T) {
	names := EarnedBadgeNames(BadgeSnapshot{
		AnswersCount: 1,
		CreatedAt:    time.Now(),
	})
	assert.Equal(t, []string{"First Answer"}, names)
}

func TestParseAndStringifyBadges(t *testing.T) {
	assert.Nil(t, ParseBadges(""))
	assert.Equal(t, []string{"First Answer", "Veteran"}, ParseBadges("First Answer,Veteran"))
	assert.Equal(t, []string{"First Answer"}, ParseBadges(" First Answer , "))

	assert.Equal(t, "First Answer,Veteran", StringifyBadges([]string{"First Answer", "Veteran"}))
}

func TestMergeBadgesUnionOnly(t *testing.T) {
	merged, added := MergeBadges("First Answer", []string{"First Answer", "Quick Responder"})
	assert.Equal(t, "First Answer,Quick Responder", merged)
	assert.Equal(t, []string{"Quick Responder"}, added)

	// A stored badge survives even when the evaluator no longer grants it.
	merged, added = MergeBadges("Problem Solver", nil)
	assert.Equal(t, "Problem Solver", merged)
	assert.Empty(t, added)

	// Re-merging is idempotent.
	merged, added = MergeBadges(merged, []string{"Problem Solver"})
	assert.Equal(t, "Problem Solver", merged)
	assert.Empty(t, added)
}
