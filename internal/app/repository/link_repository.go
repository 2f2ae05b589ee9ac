package repository

import (
	"context"
	"errors"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrLinkNotFound signals that the requested link does not exist.
	ErrLinkNotFound = errors.New("link not found")
)

// LinkFilter narrows a directory search. Zero values mean "no constraint";
// both constraints combine with AND.
type LinkFilter struct {
	// CategoryID matches links assigned to exactly this category.
	CategoryID *string
	// Text matches case-insensitively as a substring of title, url or description.
	Text string
}

// LinkUpdate carries the replacement field set for an existing link. Updates
// are wholesale: omitted optional fields become NULL. Clicks is never part of
// an update.
type LinkUpdate struct {
	Title       string
	URL         string
	Description *string
	CategoryID  *string
}

// LinkRepository defines the data access contract for links.
type LinkRepository interface {
	Create(ctx context.Context, link *model.Link) error
	GetByID(ctx context.Context, id string) (*model.Link, error)
	Search(ctx context.Context, filter LinkFilter) ([]model.Link, error)
	Update(ctx context.Context, id string, fields LinkUpdate) (*model.Link, error)
	Delete(ctx context.Context, id string) error
	// IncrementClicks adds exactly 1 to the link's visit counter as a single
	// atomic statement at the store; it never reads the counter first.
	IncrementClicks(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository returns a GORM-backed LinkRepository.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *model.Link) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) GetByID(ctx context.Context, id string) (*model.Link, error) {
	var link model.Link
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *linkRepository) Search(ctx context.Context, filter LinkFilter) ([]model.Link, error) {
	q := r.db.WithContext(ctx).Model(&model.Link{}).Preload("Category")

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		q = q.Where("title ILIKE ? OR url ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}

	var result []model.Link
	if err := q.Order("updated_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *linkRepository) Update(ctx context.Context, id string, fields LinkUpdate) (*model.Link, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       fields.Title,
			"url":         fields.URL,
			"description": fields.Description,
			"category_id": fields.CategoryID,
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrLinkNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *linkRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Link{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (r *linkRepository) IncrementClicks(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		Update("clicks", gorm.Expr("clicks + ?", 1))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (r *linkRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
