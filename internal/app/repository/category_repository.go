package repository

import (
	"context"
	"errors"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound signals that the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	// ListWithLinkCounts returns all categories ordered by name ascending,
	// each annotated with the number of links referencing it.
	ListWithLinkCounts(ctx context.Context) ([]model.CategoryWithCount, error)
	// DeleteDetachingLinks removes the category and nulls category_id on every
	// link that referenced it, in one transaction.
	DeleteDetachingLinks(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a GORM-backed CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListWithLinkCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	var result []model.CategoryWithCount
	if err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Select("categories.*, count(links.id) AS link_count").
		Joins("LEFT JOIN links ON links.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *categoryRepository) DeleteDetachingLinks(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Link{}).
			Where("category_id = ?", id).
			Update("category_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}
