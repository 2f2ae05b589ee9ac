package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
	"gorm.io/gorm"
)

type mockLinkRepository struct {
	createFn    func(ctx context.Context, link *model.Link) error
	getFn       func(ctx context.Context, id string) (*model.Link, error)
	searchFn    func(ctx context.Context, filter repository.LinkFilter) ([]model.Link, error)
	updateFn    func(ctx context.Context, id string, fields repository.LinkUpdate) (*model.Link, error)
	deleteFn    func(ctx context.Context, id string) error
	incrementFn func(ctx context.Context, id string) error
	listIDsFn   func(ctx context.Context) ([]string, error)
}

func (m *mockLinkRepository) Create(ctx context.Context, link *model.Link) error {
	if m.createFn != nil {
		return m.createFn(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) GetByID(ctx context.Context, id string) (*model.Link, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrLinkNotFound
}

func (m *mockLinkRepository) Search(ctx context.Context, filter repository.LinkFilter) ([]model.Link, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockLinkRepository) Update(ctx context.Context, id string, fields repository.LinkUpdate) (*model.Link, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, repository.ErrLinkNotFound
}

func (m *mockLinkRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return repository.ErrLinkNotFound
}

func (m *mockLinkRepository) IncrementClicks(ctx context.Context, id string) error {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id)
	}
	return repository.ErrLinkNotFound
}

func (m *mockLinkRepository) ListIDs(ctx context.Context) ([]string, error) {
	if m.listIDsFn != nil {
		return m.listIDsFn(ctx)
	}
	return nil, nil
}

type mockCategoryRepository struct {
	createFn func(ctx context.Context, category *model.Category) error
	getFn    func(ctx context.Context, id string) (*model.Category, error)
	listFn   func(ctx context.Context) ([]model.CategoryWithCount, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) ListWithLinkCounts(ctx context.Context) ([]model.CategoryWithCount, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepository) DeleteDetachingLinks(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return repository.ErrCategoryNotFound
}

func TestLinkService_CreateLink(t *testing.T) {
	var created *model.Link
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.Link) error {
			created = link
			return nil
		},
	}

	svc := NewLinkService(repo, &mockCategoryRepository{}, nil, nil)
	link, err := svc.CreateLink(context.Background(), LinkInput{
		Title: "  Example  ",
		URL:   " https://example.com ",
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected repository create to be called")
	}
	if link.Title != "Example" {
		t.Fatalf("expected trimmed title, got %q", link.Title)
	}
	if link.URL != "https://example.com" {
		t.Fatalf("expected trimmed url, got %q", link.URL)
	}
	if len(link.ID) != shortIDLength {
		t.Fatalf("expected %d-char id, got %q", shortIDLength, link.ID)
	}
	if link.Clicks != 0 {
		t.Fatalf("expected zero clicks on creation, got %d", link.Clicks)
	}
	if link.CategoryID != nil {
		t.Fatalf("expected nil category id, got %v", *link.CategoryID)
	}
}

func TestLinkService_CreateLink_MissingTitle(t *testing.T) {
	svc := NewLinkService(&mockLinkRepository{}, &mockCategoryRepository{}, nil, nil)

	_, err := svc.CreateLink(context.Background(), LinkInput{
		Title: "   ",
		URL:   "https://example.com",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "title" {
		t.Fatalf("expected title field, got %q", verr.Field)
	}
}

func TestLinkService_CreateLink_RejectsNonHTTPURL(t *testing.T) {
	svc := NewLinkService(&mockLinkRepository{}, &mockCategoryRepository{}, nil, nil)

	for _, bad := range []string{"javascript:alert(1)", "ftp://example.com/file", "not a url", ""} {
		_, err := svc.CreateLink(context.Background(), LinkInput{Title: "A", URL: bad})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("url %q: expected ValidationError, got %v", bad, err)
		}
		if verr.Field != "url" {
			t.Fatalf("url %q: expected url field, got %q", bad, verr.Field)
		}
	}
}

func TestLinkService_CreateLink_NormalizesEmptyCategoryID(t *testing.T) {
	var created *model.Link
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.Link) error {
			created = link
			return nil
		},
	}
	categories := &mockCategoryRepository{
		getFn: func(ctx context.Context, id string) (*model.Category, error) {
			t.Fatal("category lookup should not happen for an empty category id")
			return nil, nil
		},
	}

	svc := NewLinkService(repo, categories, nil, nil)
	empty := "  "
	_, err := svc.CreateLink(context.Background(), LinkInput{
		Title:      "A",
		URL:        "https://example.com",
		CategoryID: &empty,
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
	if created.CategoryID != nil {
		t.Fatalf("expected empty category id stored as nil, got %q", *created.CategoryID)
	}
}

func TestLinkService_CreateLink_UnknownCategory(t *testing.T) {
	categories := &mockCategoryRepository{
		getFn: func(ctx context.Context, id string) (*model.Category, error) {
			return nil, repository.ErrCategoryNotFound
		},
	}

	svc := NewLinkService(&mockLinkRepository{}, categories, nil, nil)
	categoryID := "missing"
	_, err := svc.CreateLink(context.Background(), LinkInput{
		Title:      "A",
		URL:        "https://example.com",
		CategoryID: &categoryID,
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "categoryId" {
		t.Fatalf("expected categoryId field, got %q", verr.Field)
	}
}

func TestLinkService_CreateLink_RetriesDuplicateID(t *testing.T) {
	attempts := 0
	repo := &mockLinkRepository{
		createFn: func(ctx context.Context, link *model.Link) error {
			attempts++
			if attempts == 1 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		},
	}

	svc := NewLinkService(repo, &mockCategoryRepository{}, nil, nil)
	_, err := svc.CreateLink(context.Background(), LinkInput{
		Title: "A",
		URL:   "https://example.com",
	})
	if err != nil {
		t.Fatalf("CreateLink returned error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 create attempts, got %d", attempts)
	}
}

func TestLinkService_UpdateLink_ReplacesFieldsWholesale(t *testing.T) {
	var gotFields repository.LinkUpdate
	repo := &mockLinkRepository{
		updateFn: func(ctx context.Context, id string, fields repository.LinkUpdate) (*model.Link, error) {
			gotFields = fields
			return &model.Link{ID: id, Title: fields.Title, URL: fields.URL}, nil
		},
	}
	cache := newFakeCache()

	svc := NewLinkService(repo, &mockCategoryRepository{}, cache, nil)
	_, err := svc.UpdateLink(context.Background(), "abc1234", LinkInput{
		Title: "New title",
		URL:   "https://new.example.com",
	})
	if err != nil {
		t.Fatalf("UpdateLink returned error: %v", err)
	}
	if gotFields.Description != nil || gotFields.CategoryID != nil {
		t.Fatal("expected omitted optional fields to become nil")
	}
	if cache.invalidations["abc1234"] != 1 {
		t.Fatalf("expected one cache invalidation, got %d", cache.invalidations["abc1234"])
	}
}

func TestLinkService_UpdateLink_NotFound(t *testing.T) {
	svc := NewLinkService(&mockLinkRepository{}, &mockCategoryRepository{}, nil, nil)

	_, err := svc.UpdateLink(context.Background(), "missing", LinkInput{
		Title: "A",
		URL:   "https://example.com",
	})
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestLinkService_DeleteLink_SecondDeleteNotFound(t *testing.T) {
	deleted := false
	repo := &mockLinkRepository{
		deleteFn: func(ctx context.Context, id string) error {
			if deleted {
				return repository.ErrLinkNotFound
			}
			deleted = true
			return nil
		},
	}

	svc := NewLinkService(repo, &mockCategoryRepository{}, nil, nil)
	if err := svc.DeleteLink(context.Background(), "abc1234"); err != nil {
		t.Fatalf("first delete returned error: %v", err)
	}
	err := svc.DeleteLink(context.Background(), "abc1234")
	if !errors.Is(err, repository.ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound on second delete, got %v", err)
	}
}
