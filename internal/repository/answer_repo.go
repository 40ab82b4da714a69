package repository

import (
	"context"

	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Create stores the answer and awards the author's creation points in
	// the same transaction.
	Create(ctx context.Context, answer *model.Answer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Answer, error)
	FindByQuestionID(ctx context.Context, questionID uuid.UUID) ([]*model.Answer, error)
	// DeleteWithReversal atomically deducts the clamped creation/vote points
	// from the answer author and deletes the answer (votes cascade).
	DeleteWithReversal(ctx context.Context, id uuid.UUID) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(answer).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).Where("id = ?", answer.AuthorID).
			UpdateColumn("points", gorm.Expr("points + ?", scoring.PointsCreateAnswer)).Error
	})
}

func (r *answerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Votes").
		Where("id = ?", id).
		First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByQuestionID(ctx context.Context, questionID uuid.UUID) ([]*model.Answer, error) {
	var answers []*model.Answer
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Votes").
		Where("question_id = ?", questionID).
		Order("is_accepted DESC, created_at ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) DeleteWithReversal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answer model.Answer
		if err := tx.Preload("Votes").Where("id = ?", id).First(&answer).Error; err != nil {
			return err
		}

		up, down := tallyVotes(answer.Votes)
		if err := deductClamped(tx, answer.AuthorID, scoring.AnswerDeletePenalty(up, down)); err != nil {
			return err
		}

		return tx.Select(clause.Associations).Delete(&answer).Error
	})
}
