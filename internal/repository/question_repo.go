package repository

import (
	"context"

	"anoa.com/askhub/internal/model"
	"anoa.com/askhub/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionFilter narrows the question listing.
type QuestionFilter struct {
	CategorySlug string
	Search       string
	Offset       int
	Limit        int
}

type QuestionRepository interface {
	// Create stores the question with deduplicated tags and awards the
	// author's creation points in the same transaction.
	Create(ctx context.Context, question *model.Question, tagNames []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	FindPage(ctx context.Context, filter QuestionFilter) ([]*model.Question, int64, error)
	// DeleteWithReversal atomically deducts the clamped creation/vote points
	// from the question author and every answer author, then deletes the
	// question. Answers and votes go with it via FK cascade.
	DeleteWithReversal(ctx context.Context, id uuid.UUID) error
	AddViews(ctx context.Context, id uuid.UUID, n int) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := make([]model.Tag, 0, len(tagNames))
		for _, name := range tagNames {
			tag := model.Tag{Name: name}
			// Tags are shared; reuse the row when the name exists.
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		question.Tags = tags

		if err := tx.Omit("Tags.*").Create(question).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).Where("id = ?", question.AuthorID).
			UpdateColumn("points", gorm.Expr("points + ?", scoring.PointsCreateQuestion)).Error
	})
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("Answers").
		Preload("Answers.Author").
		Preload("Votes").
		Where("id = ?", id).
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindPage(ctx context.Context, filter QuestionFilter) ([]*model.Question, int64, error) {
	var questions []*model.Question
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Question{})

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = questions.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("questions.title ILIKE ? OR questions.content ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order("questions.created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (r *questionRepository) DeleteWithReversal(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question model.Question
		if err := tx.
			Preload("Votes").
			Preload("Answers").
			Preload("Answers.Votes").
			Where("id = ?", id).
			First(&question).Error; err != nil {
			return err
		}

		up, down := tallyVotes(question.Votes)
		penalty := scoring.QuestionDeletePenalty(up, down)
		if err := deductClamped(tx, question.AuthorID, penalty); err != nil {
			return err
		}

		// Each answer author gives back the answer's points, one by one,
		// inside the same transaction as the cascading delete.
		for _, answer := range question.Answers {
			up, down := tallyVotes(answer.Votes)
			if err := deductClamped(tx, answer.AuthorID, scoring.AnswerDeletePenalty(up, down)); err != nil {
				return err
			}
		}

		return tx.Select(clause.Associations).Delete(&question).Error
	})
}

func (r *questionRepository) AddViews(ctx context.Context, id uuid.UUID, n int) error {
	return r.db.WithContext(ctx).Model(&model.Question{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", n)).Error
}

func tallyVotes(votes []model.Vote) (up, down int) {
	for _, v := range votes {
		if v.Type == model.VoteTypeUp {
			up++
		} else {
			down++
		}
	}
	return up, down
}

// deductClamped takes back up to penalty points in one statement so the
// balance cannot race below zero.
func deductClamped(tx *gorm.DB, userID uuid.UUID, penalty int) error {
	if penalty <= 0 {
		return nil
	}
	return tx.Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points - LEAST(?, points)", penalty)).Error
}
