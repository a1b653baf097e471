package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"khabarkhana/internal/cache"
	"khabarkhana/internal/errors"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
)

const (
	categoryListCacheKey = "categories:active"
	categoryListCacheTTL = 5 * time.Minute
)

// CategoryService manages the category registry.
type CategoryService interface {
	Create(ctx context.Context, name string, ownerID uuid.UUID) (*model.Category, error)
	ListActive(ctx context.Context) ([]model.Category, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*model.Category, error)
	Archive(ctx context.Context, id uuid.UUID) (*model.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	cache      *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{categories: categories, cache: cache}
}

// Create registers a new category with a slug derived from its name.
// Name uniqueness is case-insensitive.
func (s *categoryService) Create(ctx context.Context, name string, ownerID uuid.UUID) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrCategoryNameRequired
	}

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing != nil {
		return nil, errors.ErrCategoryExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	category := &model.Category{
		Name:    name,
		Slug:    CategorySlug(name),
		OwnerID: &ownerID,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

// ListActive returns non-archived categories, briefly cached.
func (s *categoryService) ListActive(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, categoryListCacheKey, &cached) {
		return cached, nil
	}

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, categoryListCacheKey, categories, categoryListCacheTTL)
	return categories, nil
}

// Rename changes the name and regenerates the slug with the same rule used at
// creation. The new name must not collide with another category.
func (s *categoryService) Rename(ctx context.Context, id uuid.UUID, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrCategoryNameRequired
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}

	if existing, err := s.categories.FindByName(ctx, name); err == nil && existing != nil && existing.ID != id {
		return nil, errors.ErrCategoryExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category existence: %w", err)
	}

	category.Name = name
	category.Slug = CategorySlug(name)
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}

// Archive soft-deletes a category. Idempotent on an already-archived one.
func (s *categoryService) Archive(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, err
	}

	if !category.IsArchived {
		category.IsArchived = true
		if err := s.categories.Update(ctx, category); err != nil {
			return nil, fmt.Errorf("archive category: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, categoryListCacheKey)
	return category, nil
}
