package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users  map[uuid.UUID]*model.User
	counts map[uuid.UUID]repository.ActivityCounts
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uuid.UUID]*model.User),
		counts: make(map[uuid.UUID]repository.ActivityCounts),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ActivityCounts(_ context.Context, userID uuid.UUID) (*repository.ActivityCounts, error) {
	counts := f.counts[userID]
	return &counts, nil
}

func (f *fakeUserRepo) SetBadges(_ context.Context, userID uuid.UUID, badges string) error {
	if user, ok := f.users[userID]; ok {
		user.Badges = badges
	}
	return nil
}

type fakeRewardRepo struct {
	rewards     map[uuid.UUID]*model.Reward
	redemptions []*model.RewardRedemption
	users       *fakeUserRepo
}

func (f *fakeRewardRepo) FindActive(_ context.Context) ([]*model.Reward, error) {
	var active []*model.Reward
	for _, r := range f.rewards {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (f *fakeRewardRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reward, error) {
	r, ok := f.rewards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRewardRepo) Redeem(_ context.Context, userID, rewardID uuid.UUID) (*model.RewardRedemption, error) {
	reward, ok := f.rewards[rewardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := f.users.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if user.Points < reward.Points {
		return nil, repository.ErrInsufficientPoints
	}
	if reward.Available <= 0 {
		return nil, repository.ErrRewardUnavailable
	}

	user.Points -= reward.Points
	reward.Available--
	redemption := &model.RewardRedemption{
		ID:        uuid.New(),
		UserID:    userID,
		RewardID:  rewardID,
		Reward:    *reward,
		Points:    reward.Points,
		Status:    "PENDING",
		CreatedAt: time.Now(),
	}
	f.redemptions = append(f.redemptions, redemption)
	return redemption, nil
}

func (f *fakeRewardRepo) RedeemedCount(_ context.Context, rewardID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range f.redemptions {
		if r.RewardID == rewardID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRewardRepo) TotalSpent(_ context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	for _, r := range f.redemptions {
		if r.UserID == userID {
			total += int64(r.Points)
		}
	}
	return total, nil
}

func (f *fakeRewardRepo) RecentRedemptions(_ context.Context, userID uuid.UUID, limit int) ([]*model.RewardRedemption, error) {
	var recent []*model.RewardRedemption
	for i := len(f.redemptions) - 1; i >= 0 && len(recent) < limit; i-- {
		if f.redemptions[i].UserID == userID {
			recent = append(recent, f.redemptions[i])
		}
	}
	return recent, nil
}

func TestGetUserStats(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := &model.User{
		ID:         uuid.New(),
		Name:       "dana",
		Points:     120,
		Reputation: 40,
		CreatedAt:  time.Now().AddDate(0, 0, -60),
	}
	userRepo.users[user.ID] = user
	userRepo.counts[user.ID] = repository.ActivityCounts{Questions: 4, Answers: 7, AcceptedAnswers: 1}

	rewardRepo := &fakeRewardRepo{
		rewards: make(map[uuid.UUID]*model.Reward),
		users:   userRepo,
	}
	rewardRepo.redemptions = append(rewardRepo.redemptions, &model.RewardRedemption{
		ID:     uuid.New(),
		UserID: user.ID,
		Reward: model.Reward{Name: "Coffee Voucher"},
		Points: 50,
		Status: "PENDING",
	})

	svc := NewStatsService(userRepo, rewardRepo, NewGamificationService(userRepo, nil))

	stats, err := svc.GetUserStats(context.Background(), user.ID)
	require.NoError(t, err)

	// Lifetime total is the live balance plus everything spent on rewards.
	assert.Equal(t, 170, stats.TotalPoints)
	assert.Equal(t, 120, stats.AvailablePoints)
	assert.Equal(t, 50, stats.SpentPoints)
	assert.Equal(t, 40, stats.Reputation)

	// 120 points + 40 reputation crosses the 100 threshold.
	assert.Equal(t, "Helper", stats.CurrentLevel)
	assert.Equal(t, "Advanced Helper", stats.NextLevel)
	assert.Equal(t, 340, stats.PointsToNextLevel)

	assert.Equal(t, int64(4), stats.QuestionsAsked)
	assert.Equal(t, int64(7), stats.AnswersGiven)

	require.Len(t, stats.RecentRedemptions, 1)
	assert.Equal(t, "Coffee Voucher", stats.RecentRedemptions[0].Reward)

	earned := make(map[string]bool)
	for _, b := range stats.Badges {
		if b.Earned {
			earned[b.Name] = true
		}
	}
	assert.True(t, earned["First Question"])
	assert.True(t, earned["Quick Responder"])
	assert.True(t, earned["Veteran"])
	assert.False(t, earned["Answer Master"])
}

func TestGetUserStatsNotFound(t *testing.T) {
	svc := NewStatsService(newFakeUserRepo(), &fakeRewardRepo{rewards: map[uuid.UUID]*model.Reward{}}, nil)

	_, err := svc.GetUserStats(context.Background(), uuid.New())
	require.Error(t, err)
}
