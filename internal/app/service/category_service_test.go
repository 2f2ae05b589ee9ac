package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sifan077/LinkDeck/internal/app/model"
	"github.com/sifan077/LinkDeck/internal/app/repository"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	var created *model.Category
	repo := &mockCategoryRepository{
		createFn: func(ctx context.Context, category *model.Category) error {
			created = category
			return nil
		},
	}

	svc := NewCategoryService(repo)
	category, err := svc.CreateCategory(context.Background(), "  Reading  ")
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected repository create to be called")
	}
	if category.Name != "Reading" {
		t.Fatalf("expected trimmed name, got %q", category.Name)
	}
	if category.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
}

func TestCategoryService_CreateCategory_EmptyName(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepository{})

	_, err := svc.CreateCategory(context.Background(), "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "name" {
		t.Fatalf("expected name field, got %q", verr.Field)
	}
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	var deletedID string
	repo := &mockCategoryRepository{
		deleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := NewCategoryService(repo)
	if err := svc.DeleteCategory(context.Background(), "cat-1"); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	if deletedID != "cat-1" {
		t.Fatalf("expected detaching delete of cat-1, got %q", deletedID)
	}
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepository{})

	err := svc.DeleteCategory(context.Background(), "missing")
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
