package service

import (
	"context"
	"fmt"
	"log"

	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/internal/scoring"
	"github.com/google/uuid"
)

// GamificationService keeps the durable gamification state (badge set) in
// step with the point ledger and notifies users of level-ups and new badges.
// Points themselves are written by the transactional mutations; this service
// only derives from them.
type GamificationService interface {
	// SyncUserAsync re-evaluates badges and level for the user in the
	// background. previousPoints is the balance before the triggering
	// mutation, used to detect a level change.
	SyncUserAsync(userID uuid.UUID, previousPoints int)
	// Snapshot builds the badge evaluator input for a user.
	Snapshot(ctx context.Context, user *model.User) (scoring.BadgeSnapshot, error)
}

type gamificationService struct {
	userRepo            repository.UserRepository
	notificationService NotificationService
}

func NewGamificationService(userRepo repository.UserRepository, notificationService NotificationService) GamificationService {
	return &gamificationService{
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *gamificationService) Snapshot(ctx context.Context, user *model.User) (scoring.BadgeSnapshot, error) {
	counts, err := s.userRepo.ActivityCounts(ctx, user.ID)
	if err != nil {
		return scoring.BadgeSnapshot{}, err
	}

	return scoring.BadgeSnapshot{
		Points:               user.Points,
		Reputation:           user.Reputation,
		QuestionsCount:       int(counts.Questions),
		AnswersCount:         int(counts.Answers),
		AcceptedAnswersCount: int(counts.AcceptedAnswers),
		CreatedAt:            user.CreatedAt,
	}, nil
}

func (s *gamificationService) SyncUserAsync(userID uuid.UUID, previousPoints int) {
	go func() {
		ctx := context.Background()

		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			log.Printf("Failed to load user %s for gamification sync: %v", userID, err)
			return
		}

		snapshot, err := s.Snapshot(ctx, user)
		if err != nil {
			log.Printf("Failed to build badge snapshot for user %s: %v", userID, err)
			return
		}

		merged, added := scoring.MergeBadges(user.Badges, scoring.EarnedBadgeNames(snapshot))
		if len(added) > 0 {
			if err := s.userRepo.SetBadges(ctx, userID, merged); err != nil {
				log.Printf("Failed to persist badges for user %s: %v", userID, err)
				return
			}
			for _, badge := range added {
				s.sendBadgeNotification(ctx, user, badge)
			}
		}

		previousLevel := scoring.UserLevel(previousPoints, user.Reputation)
		currentLevel := scoring.UserLevel(user.Points, user.Reputation)
		if currentLevel.Ordinal > previousLevel.Ordinal {
			s.sendLevelUpNotification(ctx, user, previousLevel.Name, currentLevel.Name)
		}
	}()
}

func (s *gamificationService) sendBadgeNotification(ctx context.Context, user *model.User, badge string) {
	if s.notificationService == nil {
		return
	}

	notification := &model.Notification{
		UserID:     user.ID,
		EntityID:   user.ID,
		EntityType: "gamification",
		Type:       "badge_awarded",
		Message:    fmt.Sprintf("You earned the %q badge!", badge),
	}
	if err := s.notificationService.Create(ctx, notification); err != nil {
		log.Printf("Failed to send badge notification to user %s: %v", user.ID, err)
	}
}

func (s *gamificationService) sendLevelUpNotification(ctx context.Context, user *model.User, from, to string) {
	if s.notificationService == nil {
		return
	}

	notification := &model.Notification{
		UserID:     user.ID,
		EntityID:   user.ID,
		EntityType: "gamification",
		Type:       "level_up",
		Message:    fmt.Sprintf("Congratulations! You leveled up from %s to %s.", from, to),
	}
	if err := s.notificationService.Create(ctx, notification); err != nil {
		log.Printf("Failed to send level up notification to user %s: %v", user.ID, err)
	}
}
