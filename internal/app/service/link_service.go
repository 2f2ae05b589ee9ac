package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
	"gorm.io/gorm"
)

const createRetries = 5

// LinkService owns link mutations: validation, normalization and the
// create/update/delete operations. It never touches the clicks counter.
type LinkService interface {
	CreateLink(ctx context.Context, input LinkInput) (*model.Link, error)
	GetLink(ctx context.Context, id string) (*model.Link, error)
	UpdateLink(ctx context.Context, id string, input LinkInput) (*model.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

// LinkInput captures the caller-settable fields of a link. Updates are
// wholesale, so create and update share the same shape.
type LinkInput struct {
	Title       string
	URL         string
	Description *string
	CategoryID  *string
}

type linkService struct {
	links      repository.LinkRepository
	categories repository.CategoryRepository
	cache      DestinationCache
	filter     *IDFilter
}

// NewLinkService returns a mutation service backed by the given repositories.
// cache and filter may be nil.
func NewLinkService(links repository.LinkRepository, categories repository.CategoryRepository, cache DestinationCache, filter *IDFilter) LinkService {
	return &linkService{
		links:      links,
		categories: categories,
		cache:      cache,
		filter:     filter,
	}
}

func (s *linkService) CreateLink(ctx context.Context, input LinkInput) (*model.Link, error) {
	fields, err := s.normalize(ctx, input)
	if err != nil {
		return nil, err
	}

	link := &model.Link{
		Title:       fields.Title,
		URL:         fields.URL,
		Description: fields.Description,
		CategoryID:  fields.CategoryID,
		Clicks:      0,
	}

	// Short ids are random, so retry the insert on the rare collision.
	for attempt := 0; attempt < createRetries; attempt++ {
		id, err := newShortID()
		if err != nil {
			return nil, err
		}
		link.ID = id

		err = s.links.Create(ctx, link)
		if err == nil {
			if s.filter != nil {
				s.filter.Add(link.ID)
			}
			return link, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create link: %w", err)
		}
	}
	return nil, fmt.Errorf("create link: exhausted %d id attempts", createRetries)
}

func (s *linkService) GetLink(ctx context.Context, id string) (*model.Link, error) {
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}

func (s *linkService) UpdateLink(ctx context.Context, id string, input LinkInput) (*model.Link, error) {
	fields, err := s.normalize(ctx, input)
	if err != nil {
		return nil, err
	}

	link, err := s.links.Update(ctx, id, repository.LinkUpdate{
		Title:       fields.Title,
		URL:         fields.URL,
		Description: fields.Description,
		CategoryID:  fields.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return link, nil
}

func (s *linkService) DeleteLink(ctx context.Context, id string) error {
	if err := s.links.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

// normalize trims and validates input, nulls empty optional fields and checks
// that a referenced category exists. Empty CategoryID strings must become nil
// here because the directory filter matches category_id exactly.
func (s *linkService) normalize(ctx context.Context, input LinkInput) (LinkInput, error) {
	out := LinkInput{
		Title: strings.TrimSpace(input.Title),
		URL:   strings.TrimSpace(input.URL),
	}

	if out.Title == "" {
		return out, invalid("title", "title is required")
	}
	if out.URL == "" {
		return out, invalid("url", "url is required")
	}
	parsed, err := url.Parse(out.URL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return out, invalid("url", "url must be an absolute http or https URL")
	}

	if input.Description != nil {
		if desc := strings.TrimSpace(*input.Description); desc != "" {
			out.Description = &desc
		}
	}

	if input.CategoryID != nil {
		if categoryID := strings.TrimSpace(*input.CategoryID); categoryID != "" {
			if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
				if errors.Is(err, repository.ErrCategoryNotFound) {
					return out, invalid("categoryId", "category does not exist")
				}
				return out, fmt.Errorf("check category: %w", err)
			}
			out.CategoryID = &categoryID
		}
	}

	return out, nil
}
