package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const questionRateLimitWindow = 30 * time.Second

type QuestionService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateQuestionRequest) (*dto.QuestionSummary, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*dto.QuestionSummary, error)
	List(ctx context.Context, filter repository.QuestionFilter, page, limit int) ([]dto.QuestionSummary, *dto.Pagination, error)
	// Delete is author-gated and reverses all points the question and its
	// answers ever granted, atomically with the cascading delete.
	Delete(ctx context.Context, userID, questionID uuid.UUID) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	gamification GamificationService
	searchSvc    SearchService
	viewSvc      ViewService
	rateLimiter  RateLimiter
	sanitizer    *bluemonday.Policy
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	gamification GamificationService,
	searchSvc SearchService,
	viewSvc ViewService,
	rateLimiter RateLimiter,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		gamification: gamification,
		searchSvc:    searchSvc,
		viewSvc:      viewSvc,
		rateLimiter:  rateLimiter,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

func (s *questionService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateQuestionRequest) (*dto.QuestionSummary, error) {
	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.Check(ctx, userID.String(), "create_question", questionRateLimitWindow)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, apperror.ErrRateLimitExceeded
		}
	}

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "category not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		Title:      req.Title,
		Content:    s.sanitizer.Sanitize(req.Content),
		AuthorID:   userID,
		CategoryID: &category.ID,
	}

	if err := s.questionRepo.Create(ctx, question, normalizeTags(req.Tags)); err != nil {
		return nil, err
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.IndexQuestion(question); err != nil {
			// Indexing is best-effort; the row is already committed.
			_ = err
		}
	}
	if s.gamification != nil {
		s.gamification.SyncUserAsync(userID, author.Points)
	}

	summary := buildQuestionSummary(question, 0)
	summary.Author = dto.AuthorInfo{
		ID:        author.ID,
		Name:      author.Name,
		AvatarURL: author.AvatarURL,
		Points:    author.Points + 5,
	}
	summary.Category = dto.CategoryInfo{ID: category.ID, Name: category.Name, Slug: category.Slug, Color: category.Color}
	return &summary, nil
}

func (s *questionService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*dto.QuestionSummary, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "question not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if viewerID != nil && s.viewSvc != nil {
		// Buffered in Redis, flushed by the sync worker.
		_ = s.viewSvc.RecordView(ctx, question.ID, *viewerID)
	}

	voteCount := int64(0)
	for _, v := range question.Votes {
		if v.Type == model.VoteTypeUp {
			voteCount++
		} else {
			voteCount--
		}
	}

	summary := buildQuestionSummary(question, voteCount)
	return &summary, nil
}

func (s *questionService) List(ctx context.Context, filter repository.QuestionFilter, page, limit int) ([]dto.QuestionSummary, *dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	filter.Offset = (page - 1) * limit
	filter.Limit = limit

	questions, total, err := s.questionRepo.FindPage(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	summaries := make([]dto.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, buildQuestionSummary(q, 0))
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return summaries, &dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

func (s *questionService) Delete(ctx context.Context, userID, questionID uuid.UUID) error {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(404, "question not found", apperror.ErrNotFound)
		}
		return err
	}

	if question.AuthorID != userID {
		return apperror.New(403, "you can only delete your own questions", apperror.ErrForbidden)
	}

	// Remember everyone whose points the reversal touches, and their
	// balances before it runs.
	type affected struct {
		id     uuid.UUID
		points int
	}
	touched := []affected{{question.AuthorID, question.Author.Points}}
	for _, answer := range question.Answers {
		touched = append(touched, affected{answer.AuthorID, answer.Author.Points})
	}

	if err := s.questionRepo.DeleteWithReversal(ctx, questionID); err != nil {
		return err
	}

	if s.searchSvc != nil {
		_ = s.searchSvc.DeleteQuestion(questionID.String())
	}
	if s.gamification != nil {
		for _, a := range touched {
			s.gamification.SyncUserAsync(a.id, a.points)
		}
	}

	return nil
}

func buildQuestionSummary(q *model.Question, voteCount int64) dto.QuestionSummary {
	tags := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		tags = append(tags, t.Name)
	}

	return dto.QuestionSummary{
		ID:      q.ID,
		Title:   q.Title,
		Content: q.Content,
		Author: dto.AuthorInfo{
			ID:        q.Author.ID,
			Name:      q.Author.Name,
			AvatarURL: q.Author.AvatarURL,
			Points:    q.Author.Points,
		},
		Category: dto.CategoryInfo{
			ID:    q.Category.ID,
			Name:  q.Category.Name,
			Slug:  q.Category.Slug,
			Color: q.Category.Color,
		},
		Tags:        tags,
		Views:       q.Views,
		AnswerCount: len(q.Answers),
		VoteCount:   voteCount,
		IsResolved:  q.IsResolved(),
		CreatedAt:   q.CreatedAt,
	}
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
