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
	"gorm.io/gorm"
)

const voteRateLimitWindow = time.Second

type VoteService interface {
	// CastVote drives one transition of the per-(user, target) vote state
	// machine and returns the target's resulting count and the caller's
	// standing vote.
	CastVote(ctx context.Context, userID uuid.UUID, req dto.CastVoteRequest) (*dto.VoteResult, error)
	// GetVotes is the read side: current count plus the caller's vote when
	// a caller is known.
	GetVotes(ctx context.Context, userID *uuid.UUID, targetKind string, targetID uuid.UUID) (*dto.VoteResult, error)
}

type voteService struct {
	voteRepo     repository.VoteRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	gamification GamificationService
	rateLimiter  RateLimiter
}

func NewVoteService(
	voteRepo repository.VoteRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	gamification GamificationService,
	rateLimiter RateLimiter,
) VoteService {
	return &voteService{
		voteRepo:     voteRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		gamification: gamification,
		rateLimiter:  rateLimiter,
	}
}

// targetAuthor resolves the target's author. All validation happens here,
// before any mutation is attempted.
func (s *voteService) targetAuthor(ctx context.Context, targetKind string, targetID uuid.UUID) (*model.User, error) {
	switch targetKind {
	case "question":
		question, err := s.questionRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(404, "question not found", apperror.ErrNotFound)
			}
			return nil, err
		}
		return &question.Author, nil
	case "answer":
		answer, err := s.answerRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(404, "answer not found", apperror.ErrNotFound)
			}
			return nil, err
		}
		return &answer.Author, nil
	}
	return nil, apperror.New(400, "invalid target kind", apperror.ErrBadRequest)
}

func (s *voteService) CastVote(ctx context.Context, userID uuid.UUID, req dto.CastVoteRequest) (*dto.VoteResult, error) {
	if !model.IsValidVoteType(req.VoteType) {
		return nil, apperror.New(400, "invalid vote type", apperror.ErrBadRequest)
	}

	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.Check(ctx, userID.String(), "vote", voteRateLimitWindow)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, apperror.ErrRateLimitExceeded
		}
	}

	author, err := s.targetAuthor(ctx, req.TargetKind, req.TargetID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.voteRepo.Cast(ctx, userID, req.TargetKind, req.TargetID, author.ID, model.VoteType(req.VoteType))
	if err != nil {
		return nil, err
	}

	// Badge/level state may have moved with the author's points. Self-votes
	// never move points, so there is nothing to sync.
	if author.ID != userID && s.gamification != nil {
		s.gamification.SyncUserAsync(author.ID, author.Points)
	}

	result := &dto.VoteResult{VoteCount: outcome.VoteCount}
	if outcome.UserVote != nil {
		v := string(*outcome.UserVote)
		result.UserVote = &v
	}
	return result, nil
}

func (s *voteService) GetVotes(ctx context.Context, userID *uuid.UUID, targetKind string, targetID uuid.UUID) (*dto.VoteResult, error) {
	if targetKind != "question" && targetKind != "answer" {
		return nil, apperror.New(400, "invalid target kind", apperror.ErrBadRequest)
	}

	count, err := s.voteRepo.CountForTarget(ctx, targetKind, targetID)
	if err != nil {
		return nil, err
	}

	result := &dto.VoteResult{VoteCount: count}
	if userID != nil {
		vote, err := s.voteRepo.FindUserVote(ctx, *userID, targetKind, targetID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			v := string(vote.Type)
			result.UserVote = &v
		}
	}
	return result, nil
}
