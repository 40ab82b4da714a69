package service

import (
	"context"
	"errors"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/pkg/apperror"
	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryView, error)
	GetBySlug(ctx context.Context, slug string) (*dto.CategoryView, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryView, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.QuestionCounts(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, dto.CategoryView{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          c.Slug,
			Description:   c.Description,
			Icon:          c.Icon,
			Color:         c.Color,
			QuestionCount: counts[c.ID],
		})
	}
	return views, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*dto.CategoryView, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(404, "category not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	counts, err := s.categoryRepo.QuestionCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CategoryView{
		ID:            category.ID,
		Name:          category.Name,
		Slug:          category.Slug,
		Description:   category.Description,
		Icon:          category.Icon,
		Color:         category.Color,
		QuestionCount: counts[category.ID],
	}, nil
}
