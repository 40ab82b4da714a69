package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/internal/scoring"
	"anoa.com/askhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeVoteRepo keeps per-(user, target) vote state and author balances in
// memory, applying the same transition deltas the real repository applies.
type fakeVoteRepo struct {
	votes  map[string]model.VoteType
	points map[uuid.UUID]int
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{
		votes:  make(map[string]model.VoteType),
		points: make(map[uuid.UUID]int),
	}
}

func voteKey(userID uuid.UUID, targetKind string, targetID uuid.UUID) string {
	return targetKind + ":" + targetID.String() + ":" + userID.String()
}

func (f *fakeVoteRepo) Cast(_ context.Context, userID uuid.UUID, targetKind string, targetID uuid.UUID, authorID uuid.UUID, voteType model.VoteType) (*repository.VoteOutcome, error) {
	key := voteKey(userID, targetKind, targetID)

	var delta int
	var out repository.VoteOutcome
	if existing, ok := f.votes[key]; ok {
		if existing == voteType {
			delete(f.votes, key)
			delta = scoring.ToggleDelta(voteType)
		} else {
			f.votes[key] = voteType
			delta = scoring.SwitchDelta(existing, voteType)
			v := voteType
			out.UserVote = &v
		}
	} else {
		f.votes[key] = voteType
		delta = scoring.CastDelta(voteType)
		v := voteType
		out.UserVote = &v
	}

	if delta != 0 && authorID != userID {
		f.points[authorID] = scoring.ApplyDelta(f.points[authorID], delta)
	}

	out.VoteCount = f.count(targetKind, targetID)
	return &out, nil
}

func (f *fakeVoteRepo) count(targetKind string, targetID uuid.UUID) int64 {
	prefix := targetKind + ":" + targetID.String() + ":"
	var count int64
	for key, t := range f.votes {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			if t == model.VoteTypeUp {
				count++
			} else {
				count--
			}
		}
	}
	return count
}

func (f *fakeVoteRepo) FindUserVote(_ context.Context, userID uuid.UUID, targetKind string, targetID uuid.UUID) (*model.Vote, error) {
	if t, ok := f.votes[voteKey(userID, targetKind, targetID)]; ok {
		return &model.Vote{UserID: userID, Type: t}, nil
	}
	return nil, nil
}

func (f *fakeVoteRepo) CountForTarget(_ context.Context, targetKind string, targetID uuid.UUID) (int64, error) {
	return f.count(targetKind, targetID), nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*model.Question
}

func (f *fakeQuestionRepo) Create(_ context.Context, question *model.Question, _ []string) error {
	f.questions[question.ID] = question
	return nil
}

func (f *fakeQuestionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) FindPage(_ context.Context, _ repository.QuestionFilter) ([]*model.Question, int64, error) {
	return nil, 0, nil
}

func (f *fakeQuestionRepo) DeleteWithReversal(_ context.Context, id uuid.UUID) error {
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionRepo) AddViews(_ context.Context, _ uuid.UUID, _ int) error { return nil }

type fakeAnswerRepo struct {
	answers map[uuid.UUID]*model.Answer
}

func (f *fakeAnswerRepo) Create(_ context.Context, answer *model.Answer) error {
	f.answers[answer.ID] = answer
	return nil
}

func (f *fakeAnswerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Answer, error) {
	a, ok := f.answers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAnswerRepo) FindByQuestionID(_ context.Context, _ uuid.UUID) ([]*model.Answer, error) {
	return nil, nil
}

func (f *fakeAnswerRepo) DeleteWithReversal(_ context.Context, id uuid.UUID) error {
	delete(f.answers, id)
	return nil
}

type fakeGamification struct {
	synced []uuid.UUID
}

func (f *fakeGamification) SyncUserAsync(userID uuid.UUID, _ int) {
	f.synced = append(f.synced, userID)
}

func (f *fakeGamification) Snapshot(_ context.Context, user *model.User) (scoring.BadgeSnapshot, error) {
	return scoring.BadgeSnapshot{Points: user.Points, Reputation: user.Reputation, CreatedAt: user.CreatedAt}, nil
}

type fakeRateLimiter struct {
	allowed bool
}

func (f *fakeRateLimiter) Check(_ context.Context, _, _ string, _ time.Duration) (bool, error) {
	return f.allowed, nil
}

func newVoteFixture(t *testing.T) (VoteService, *fakeVoteRepo, *fakeGamification, *model.User, *model.Question) {
	t.Helper()

	author := &model.User{ID: uuid.New(), Name: "author", Points: 10}
	question := &model.Question{ID: uuid.New(), AuthorID: author.ID, Author: *author}

	voteRepo := newFakeVoteRepo()
	voteRepo.points[author.ID] = author.Points
	questionRepo := &fakeQuestionRepo{questions: map[uuid.UUID]*model.Question{question.ID: question}}
	answerRepo := &fakeAnswerRepo{answers: map[uuid.UUID]*model.Answer{}}
	gamification := &fakeGamification{}

	svc := NewVoteService(voteRepo, questionRepo, answerRepo, gamification, &fakeRateLimiter{allowed: true})
	return svc, voteRepo, gamification, author, question
}

func TestCastVoteInvalidType(t *testing.T) {
	svc, _, _, _, question := newVoteFixture(t)

	_, err := svc.CastVote(context.Background(), uuid.New(), dto.CastVoteRequest{
		TargetKind: "question",
		TargetID:   question.ID,
		VoteType:   "SIDEWAYS",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.Code)
}

func TestCastVoteRateLimited(t *testing.T) {
	question := &model.Question{ID: uuid.New(), AuthorID: uuid.New()}
	questionRepo := &fakeQuestionRepo{questions: map[uuid.UUID]*model.Question{question.ID: question}}
	svc := NewVoteService(newFakeVoteRepo(), questionRepo, &fakeAnswerRepo{answers: map[uuid.UUID]*model.Answer{}}, nil, &fakeRateLimiter{allowed: false})

	_, err := svc.CastVote(context.Background(), uuid.New(), dto.CastVoteRequest{
		TargetKind: "question",
		TargetID:   question.ID,
		VoteType:   "UPVOTE",
	})
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
}

func TestCastVoteTargetNotFound(t *testing.T) {
	svc, _, _, _, _ := newVoteFixture(t)

	_, err := svc.CastVote(context.Background(), uuid.New(), dto.CastVoteRequest{
		TargetKind: "question",
		TargetID:   uuid.New(),
		VoteType:   "UPVOTE",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCastVoteLifecycle(t *testing.T) {
	svc, voteRepo, gamification, author, question := newVoteFixture(t)
	voter := uuid.New()
	ctx := context.Background()
	req := dto.CastVoteRequest{TargetKind: "question", TargetID: question.ID, VoteType: "UPVOTE"}

	// Fresh upvote: count 1, author +2.
	result, err := svc.CastVote(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.VoteCount)
	require.NotNil(t, result.UserVote)
	assert.Equal(t, "UPVOTE", *result.UserVote)
	assert.Equal(t, 12, voteRepo.points[author.ID])

	// Same vote again toggles off: count 0, points restored.
	result, err = svc.CastVote(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.VoteCount)
	assert.Nil(t, result.UserVote)
	assert.Equal(t, 10, voteRepo.points[author.ID])

	// Downvote: count -1, author -1.
	req.VoteType = "DOWNVOTE"
	result, err = svc.CastVote(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), result.VoteCount)
	assert.Equal(t, 9, voteRepo.points[author.ID])

	// Switch to upvote: single transition worth +3.
	req.VoteType = "UPVOTE"
	result, err = svc.CastVote(ctx, voter, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.VoteCount)
	require.NotNil(t, result.UserVote)
	assert.Equal(t, "UPVOTE", *result.UserVote)
	assert.Equal(t, 12, voteRepo.points[author.ID])

	// Every transition re-synced the author's gamification state.
	assert.Len(t, gamification.synced, 4)
	for _, id := range gamification.synced {
		assert.Equal(t, author.ID, id)
	}
}

func TestCastVoteSelfVoteDoesNotMovePoints(t *testing.T) {
	svc, voteRepo, gamification, author, question := newVoteFixture(t)
	ctx := context.Background()

	result, err := svc.CastVote(ctx, author.ID, dto.CastVoteRequest{
		TargetKind: "question",
		TargetID:   question.ID,
		VoteType:   "UPVOTE",
	})
	require.NoError(t, err)

	// The vote itself registers, the balance does not move and no sync runs.
	assert.Equal(t, int64(1), result.VoteCount)
	assert.Equal(t, 10, voteRepo.points[author.ID])
	assert.Empty(t, gamification.synced)
}

func TestCastVoteDownvoteClampsAtZero(t *testing.T) {
	svc, voteRepo, _, author, question := newVoteFixture(t)
	voteRepo.points[author.ID] = 0
	ctx := context.Background()

	_, err := svc.CastVote(ctx, uuid.New(), dto.CastVoteRequest{
		TargetKind: "question",
		TargetID:   question.ID,
		VoteType:   "DOWNVOTE",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, voteRepo.points[author.ID])
}

func TestGetVotes(t *testing.T) {
	svc, _, _, _, question := newVoteFixture(t)
	voter := uuid.New()
	ctx := context.Background()

	_, err := svc.CastVote(ctx, voter, dto.CastVoteRequest{
		TargetKind: "question", TargetID: question.ID, VoteType: "UPVOTE",
	})
	require.NoError(t, err)

	// Anonymous read sees the count only.
	result, err := svc.GetVotes(ctx, nil, "question", question.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.VoteCount)
	assert.Nil(t, result.UserVote)

	// The voter sees their standing vote.
	result, err = svc.GetVotes(ctx, &voter, "question", question.ID)
	require.NoError(t, err)
	require.NotNil(t, result.UserVote)
	assert.Equal(t, "UPVOTE", *result.UserVote)
}
