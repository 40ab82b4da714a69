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

const answerRateLimitWindow = 10 * time.Second

type AnswerService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateAnswerRequest) (*dto.AnswerView, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]dto.AnswerView, error)
	// Delete is author-gated and reverses the answer's points atomically
	// with the delete.
	Delete(ctx context.Context, userID, answerID uuid.UUID) error
}

type answerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	gamification GamificationService
	rateLimiter  RateLimiter
	sanitizer    *bluemonday.Policy
}

func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	gamification GamificationService,
	rateLimiter RateLimiter,
) AnswerService {
	return &answerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		gamification: gamification,
		rateLimiter:  rateLimiter,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

func (s *answerService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateAnswerRequest) (*dto.AnswerView, error) {
	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.Check(ctx, userID.String(), "create_answer", answerRateLimitWindow)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, apperror.ErrRateLimitExceeded
		}
	}

	if _, err := s.questionRepo.FindByID(ctx, req.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "question not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		Content:    s.sanitizer.Sanitize(req.Content),
		AuthorID:   userID,
		QuestionID: req.QuestionID,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	if s.gamification != nil {
		s.gamification.SyncUserAsync(userID, author.Points)
	}

	return &dto.AnswerView{
		ID:      answer.ID,
		Content: answer.Content,
		Author: dto.AuthorInfo{
			ID:        author.ID,
			Name:      author.Name,
			AvatarURL: author.AvatarURL,
			Points:    author.Points + 10,
		},
		IsAccepted: answer.IsAccepted,
		VoteCount:  0,
		CreatedAt:  answer.CreatedAt,
	}, nil
}

func (s *answerService) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]dto.AnswerView, error) {
	answers, err := s.answerRepo.FindByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.AnswerView, 0, len(answers))
	for _, a := range answers {
		var voteCount int64
		for _, v := range a.Votes {
			if v.Type == model.VoteTypeUp {
				voteCount++
			} else {
				voteCount--
			}
		}

		views = append(views, dto.AnswerView{
			ID:      a.ID,
			Content: a.Content,
			Author: dto.AuthorInfo{
				ID:        a.Author.ID,
				Name:      a.Author.Name,
				AvatarURL: a.Author.AvatarURL,
				Points:    a.Author.Points,
			},
			IsAccepted: a.IsAccepted,
			VoteCount:  voteCount,
			CreatedAt:  a.CreatedAt,
		})
	}
	return views, nil
}

func (s *answerService) Delete(ctx context.Context, userID, answerID uuid.UUID) error {
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(404, "answer not found", apperror.ErrNotFound)
		}
		return err
	}

	if answer.AuthorID != userID {
		return apperror.New(403, "you can only delete your own answers", apperror.ErrForbidden)
	}

	previousPoints := answer.Author.Points
	if err := s.answerRepo.DeleteWithReversal(ctx, answerID); err != nil {
		return err
	}

	if s.gamification != nil {
		s.gamification.SyncUserAsync(answer.AuthorID, previousPoints)
	}
	return nil
}
