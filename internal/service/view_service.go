package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"anoa.com/askhub/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	pendingViewsKey  = "pending:question_views"
	viewSyncInterval = time.Minute
)

// ViewService buffers question view counts in Redis and flushes them to the
// database in batches, deduplicating repeat views per user per hour.
type ViewService interface {
	RecordView(ctx context.Context, questionID, userID uuid.UUID) error
	StartSyncWorker(ctx context.Context)
}

type viewService struct {
	redisClient  *redis.Client
	questionRepo repository.QuestionRepository
}

func NewViewService(redisClient *redis.Client, questionRepo repository.QuestionRepository) ViewService {
	return &viewService{
		redisClient:  redisClient,
		questionRepo: questionRepo,
	}
}

func (s *viewService) RecordView(ctx context.Context, questionID, userID uuid.UUID) error {
	if s.redisClient == nil {
		// No buffer available, write through.
		return s.questionRepo.AddViews(ctx, questionID, 1)
	}

	userViewKey := fmt.Sprintf("question:user_view:%s:%s", questionID, userID)
	exists, err := s.redisClient.Exists(ctx, userViewKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check user view: %w", err)
	}
	if exists == 1 {
		return nil
	}

	viewKey := fmt.Sprintf("question:views:%s", questionID)
	if err := s.redisClient.Incr(ctx, viewKey).Err(); err != nil {
		return fmt.Errorf("failed to increment view: %w", err)
	}
	if err := s.redisClient.SAdd(ctx, pendingViewsKey, questionID.String()).Err(); err != nil {
		return fmt.Errorf("failed to add to pending set: %w", err)
	}

	return s.redisClient.SetEx(ctx, userViewKey, "viewed", time.Hour).Err()
}

func (s *viewService) StartSyncWorker(ctx context.Context) {
	log.Println("View sync worker started")
	ticker := time.NewTicker(viewSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.flush(ctx)
		}
	}
}

func (s *viewService) flush(ctx context.Context) {
	ids, err := s.redisClient.SMembers(ctx, pendingViewsKey).Result()
	if err != nil {
		log.Printf("Error reading pending question views: %v", err)
		return
	}

	for _, idStr := range ids {
		questionID, err := uuid.Parse(idStr)
		if err != nil {
			s.redisClient.SRem(ctx, pendingViewsKey, idStr)
			continue
		}

		viewKey := fmt.Sprintf("question:views:%s", questionID)
		countStr, err := s.redisClient.GetDel(ctx, viewKey).Result()
		if err != nil && err != redis.Nil {
			log.Printf("Error reading view count for question %s: %v", questionID, err)
			continue
		}

		count, _ := strconv.Atoi(countStr)
		if count > 0 {
			if err := s.questionRepo.AddViews(ctx, questionID, count); err != nil {
				log.Printf("Error flushing views for question %s: %v", questionID, err)
				// Put the count back so it isn't lost.
				s.redisClient.IncrBy(ctx, viewKey, int64(count))
				continue
			}
		}

		s.redisClient.SRem(ctx, pendingViewsKey, idStr)
	}
}
