package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
)

// CategoryService owns category mutations. Deleting a category detaches the
// links that referenced it rather than deleting them or leaving dangling ids.
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService returns a service implementation backed by the given repository.
func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "name is required")
	}

	category := &model.Category{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteDetachingLinks(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
