package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
)

// DirectoryService answers the read side of the directory: filtered listings,
// category listings and collection-wide stats. Empty results are successes,
// never errors.
type DirectoryService interface {
	ListLinks(ctx context.Context, query LinkQuery) ([]model.Link, error)
	ListCategories(ctx context.Context) ([]model.CategoryWithCount, error)
	Stats(ctx context.Context) (*repository.Stats, error)
}

// LinkQuery is the caller-facing filter. Both constraints are optional and
// combine with AND; Text matches title, url and description case-insensitively.
type LinkQuery struct {
	Text       string
	CategoryID string
}

type directoryService struct {
	links      repository.LinkRepository
	categories repository.CategoryRepository
	stats      repository.StatsRepository
}

// NewDirectoryService returns a query engine over the given repositories.
func NewDirectoryService(links repository.LinkRepository, categories repository.CategoryRepository, stats repository.StatsRepository) DirectoryService {
	return &directoryService{
		links:      links,
		categories: categories,
		stats:      stats,
	}
}

func (s *directoryService) ListLinks(ctx context.Context, query LinkQuery) ([]model.Link, error) {
	filter := repository.LinkFilter{
		Text: strings.TrimSpace(query.Text),
	}
	if categoryID := strings.TrimSpace(query.CategoryID); categoryID != "" {
		filter.CategoryID = &categoryID
	}

	links, err := s.links.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	if links == nil {
		links = []model.Link{}
	}
	return links, nil
}

func (s *directoryService) ListCategories(ctx context.Context) ([]model.CategoryWithCount, error) {
	categories, err := s.categories.ListWithLinkCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []model.CategoryWithCount{}
	}
	return categories, nil
}

func (s *directoryService) Stats(ctx context.Context) (*repository.Stats, error) {
	stats, err := s.stats.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	if stats.TopLinks == nil {
		stats.TopLinks = []repository.TopLink{}
	}
	return stats, nil
}
