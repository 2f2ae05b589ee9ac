package service

import (
	"context"
	"testing"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
)

type mockStatsRepository struct {
	collectFn func(ctx context.Context) (*repository.Stats, error)
}

func (m *mockStatsRepository) Collect(ctx context.Context) (*repository.Stats, error) {
	if m.collectFn != nil {
		return m.collectFn(ctx)
	}
	return &repository.Stats{}, nil
}

func TestDirectoryService_ListLinks_NormalizesFilter(t *testing.T) {
	var gotFilter repository.LinkFilter
	repo := &mockLinkRepository{
		searchFn: func(ctx context.Context, filter repository.LinkFilter) ([]model.Link, error) {
			gotFilter = filter
			return []model.Link{{ID: "a"}}, nil
		},
	}

	svc := NewDirectoryService(repo, &mockCategoryRepository{}, &mockStatsRepository{})
	links, err := svc.ListLinks(context.Background(), LinkQuery{
		Text:       "  foo  ",
		CategoryID: "cat-1",
	})
	if err != nil {
		t.Fatalf("ListLinks returned error: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if gotFilter.Text != "foo" {
		t.Fatalf("expected trimmed text filter, got %q", gotFilter.Text)
	}
	if gotFilter.CategoryID == nil || *gotFilter.CategoryID != "cat-1" {
		t.Fatalf("expected category filter cat-1, got %v", gotFilter.CategoryID)
	}
}

func TestDirectoryService_ListLinks_EmptyCategoryMeansNoConstraint(t *testing.T) {
	var gotFilter repository.LinkFilter
	repo := &mockLinkRepository{
		searchFn: func(ctx context.Context, filter repository.LinkFilter) ([]model.Link, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	svc := NewDirectoryService(repo, &mockCategoryRepository{}, &mockStatsRepository{})
	links, err := svc.ListLinks(context.Background(), LinkQuery{CategoryID: "  "})
	if err != nil {
		t.Fatalf("ListLinks returned error: %v", err)
	}
	if gotFilter.CategoryID != nil {
		t.Fatalf("expected no category constraint, got %v", *gotFilter.CategoryID)
	}
	if links == nil {
		t.Fatal("expected an empty slice, got nil")
	}
}

func TestDirectoryService_ListCategories(t *testing.T) {
	repo := &mockCategoryRepository{
		listFn: func(ctx context.Context) ([]model.CategoryWithCount, error) {
			return []model.CategoryWithCount{
				{Category: model.Category{ID: "1", Name: "Articles"}, LinkCount: 3},
				{Category: model.Category{ID: "2", Name: "Tools"}, LinkCount: 0},
			}, nil
		},
	}

	svc := NewDirectoryService(&mockLinkRepository{}, repo, &mockStatsRepository{})
	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].LinkCount != 3 {
		t.Fatalf("expected link count 3, got %d", categories[0].LinkCount)
	}
}

func TestDirectoryService_Stats_EmptyCollection(t *testing.T) {
	stats := &mockStatsRepository{
		collectFn: func(ctx context.Context) (*repository.Stats, error) {
			return &repository.Stats{}, nil
		},
	}

	svc := NewDirectoryService(&mockLinkRepository{}, &mockCategoryRepository{}, stats)
	got, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if got.TotalClicks != 0 {
		t.Fatalf("expected zero total clicks, got %d", got.TotalClicks)
	}
	if got.TopLinks == nil || len(got.TopLinks) != 0 {
		t.Fatalf("expected empty top links, got %v", got.TopLinks)
	}
}
