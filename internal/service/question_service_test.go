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
	"gorm.io/gorm"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context) ([]*model.Category, error) {
	var all []*model.Category
	for _, c := range f.categories {
		all = append(all, c)
	}
	return all, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) QuestionCounts(_ context.Context) (map[uuid.UUID]int64, error) {
	return map[uuid.UUID]int64{}, nil
}

func newQuestionFixture() (QuestionService, *fakeQuestionRepo, *fakeUserRepo, *fakeGamification, *model.User, *model.Category) {
	userRepo := newFakeUserRepo()
	author := &model.User{ID: uuid.New(), Name: "author", Points: 40}
	userRepo.users[author.ID] = author

	category := &model.Category{ID: uuid.New(), Name: "Software", Slug: "software"}
	categoryRepo := &fakeCategoryRepo{categories: map[uuid.UUID]*model.Category{category.ID: category}}

	questionRepo := &fakeQuestionRepo{questions: map[uuid.UUID]*model.Question{}}
	gamification := &fakeGamification{}

	svc := NewQuestionService(questionRepo, categoryRepo, userRepo, gamification, nil, nil, &fakeRateLimiter{allowed: true})
	return svc, questionRepo, userRepo, gamification, author, category
}

func TestCreateQuestion(t *testing.T) {
	svc, questionRepo, _, gamification, author, category := newQuestionFixture()

	summary, err := svc.Create(context.Background(), author.ID, dto.CreateQuestionRequest{
		Title:      "How do I configure the access point?",
		Content:    "The AP drops clients every few minutes, what should I check first?",
		CategoryID: category.ID,
		Tags:       []string{"wifi", "WiFi", "setup"},
	})
	require.NoError(t, err)

	assert.Equal(t, "How do I configure the access point?", summary.Title)
	assert.Len(t, questionRepo.questions, 1)
	assert.Len(t, gamification.synced, 1)
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	svc, _, _, _, author, _ := newQuestionFixture()

	_, err := svc.Create(context.Background(), author.ID, dto.CreateQuestionRequest{
		Title:      "How do I configure the access point?",
		Content:    "The AP drops clients every few minutes, what should I check first?",
		CategoryID: uuid.New(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateQuestionSanitizesContent(t *testing.T) {
	svc, questionRepo, _, _, author, category := newQuestionFixture()

	_, err := svc.Create(context.Background(), author.ID, dto.CreateQuestionRequest{
		Title:      "Why does this page keep reloading itself?",
		Content:    `It happens after I added <script>alert("x")</script> this snippet to the template.`,
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	for _, q := range questionRepo.questions {
		assert.NotContains(t, q.Content, "<script>")
	}
}

func TestDeleteQuestionAuthorGate(t *testing.T) {
	svc, questionRepo, _, _, author, _ := newQuestionFixture()

	question := &model.Question{ID: uuid.New(), AuthorID: author.ID, Author: *author}
	questionRepo.questions[question.ID] = question

	err := svc.Delete(context.Background(), uuid.New(), question.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Len(t, questionRepo.questions, 1)

	require.NoError(t, svc.Delete(context.Background(), author.ID, question.ID))
	assert.Empty(t, questionRepo.questions)
}

func TestDeleteQuestionSyncsEveryTouchedAuthor(t *testing.T) {
	svc, questionRepo, _, gamification, author, _ := newQuestionFixture()

	answerAuthor := model.User{ID: uuid.New(), Name: "helper", Points: 25}
	question := &model.Question{
		ID:       uuid.New(),
		AuthorID: author.ID,
		Author:   *author,
		Answers: []model.Answer{
			{ID: uuid.New(), AuthorID: answerAuthor.ID, Author: answerAuthor},
		},
	}
	questionRepo.questions[question.ID] = question

	require.NoError(t, svc.Delete(context.Background(), author.ID, question.ID))

	require.Len(t, gamification.synced, 2)
	assert.Contains(t, gamification.synced, author.ID)
	assert.Contains(t, gamification.synced, answerAuthor.ID)
}
