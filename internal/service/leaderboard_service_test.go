package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/askhub/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaderboardRepo struct {
	rows  []repository.LeaderboardRow
	since time.Time
}

func (f *fakeLeaderboardRepo) Rows(_ context.Context, since time.Time) ([]repository.LeaderboardRow, error) {
	f.since = since
	return f.rows, nil
}

func TestLeaderboardScoring(t *testing.T) {
	quiet := repository.LeaderboardRow{UserID: uuid.New(), Name: "quiet", Points: 30}
	busy := repository.LeaderboardRow{
		UserID: uuid.New(), Name: "busy",
		Points: 20, Questions: 2, Answers: 3, AcceptedAnswers: 1,
	}
	repo := &fakeLeaderboardRepo{rows: []repository.LeaderboardRow{quiet, busy}}

	entries, err := NewLeaderboardService(repo).Top(context.Background(), PeriodAllTime, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// busy scores 20 + 2*5 + 3*10 + 1*15 = 75 and outranks quiet's 30.
	assert.Equal(t, "busy", entries[0].Name)
	assert.Equal(t, 75, entries[0].Score)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "quiet", entries[1].Name)
	assert.Equal(t, 30, entries[1].Score)
	assert.Equal(t, 2, entries[1].Position)

	// All-time queries from the zero time.
	assert.True(t, repo.since.IsZero())
}

func TestLeaderboardPeriodWindow(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	svc := NewLeaderboardService(repo)

	_, err := svc.Top(context.Background(), PeriodWeekly, 10)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.since, time.Minute)

	_, err = svc.Top(context.Background(), PeriodMonthly, 10)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, -1, 0), repo.since, time.Minute)
}

func TestLeaderboardLimit(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	for i := 0; i < 25; i++ {
		repo.rows = append(repo.rows, repository.LeaderboardRow{UserID: uuid.New(), Points: i})
	}

	entries, err := NewLeaderboardService(repo).Top(context.Background(), PeriodAllTime, 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Out-of-range limits fall back to the default of 10.
	entries, err = NewLeaderboardService(repo).Top(context.Background(), PeriodAllTime, -1)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}
