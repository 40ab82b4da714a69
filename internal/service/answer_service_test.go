package service

import (
	"context"
	"testing"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnswerFixture() (AnswerService, *fakeAnswerRepo, *fakeGamification, *model.User, *model.Question) {
	userRepo := newFakeUserRepo()
	author := &model.User{ID: uuid.New(), Name: "helper", Points: 15}
	userRepo.users[author.ID] = author

	question := &model.Question{ID: uuid.New(), AuthorID: uuid.New()}
	questionRepo := &fakeQuestionRepo{questions: map[uuid.UUID]*model.Question{question.ID: question}}
	answerRepo := &fakeAnswerRepo{answers: map[uuid.UUID]*model.Answer{}}
	gamification := &fakeGamification{}

	svc := NewAnswerService(answerRepo, questionRepo, userRepo, gamification, &fakeRateLimiter{allowed: true})
	return svc, answerRepo, gamification, author, question
}

func TestCreateAnswer(t *testing.T) {
	svc, answerRepo, gamification, author, question := newAnswerFixture()

	view, err := svc.Create(context.Background(), author.ID, dto.CreateAnswerRequest{
		QuestionID: question.ID,
		Content:    "Try resetting the controller to factory defaults first.",
	})
	require.NoError(t, err)

	assert.Equal(t, author.ID, view.Author.ID)
	assert.False(t, view.IsAccepted)
	assert.Len(t, answerRepo.answers, 1)
	assert.Len(t, gamification.synced, 1)
}

func TestCreateAnswerQuestionNotFound(t *testing.T) {
	svc, _, _, author, _ := newAnswerFixture()

	_, err := svc.Create(context.Background(), author.ID, dto.CreateAnswerRequest{
		QuestionID: uuid.New(),
		Content:    "Answering into the void.",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteAnswerAuthorGate(t *testing.T) {
	svc, answerRepo, _, author, question := newAnswerFixture()

	answer := &model.Answer{ID: uuid.New(), AuthorID: author.ID, Author: *author, QuestionID: question.ID}
	answerRepo.answers[answer.ID] = answer

	err := svc.Delete(context.Background(), uuid.New(), answer.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Len(t, answerRepo.answers, 1)

	require.NoError(t, svc.Delete(context.Background(), author.ID, answer.ID))
	assert.Empty(t, answerRepo.answers)
}
