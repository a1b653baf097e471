package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"khabarkhana/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindActiveBySlug(ctx context.Context, slug string) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	ListActive(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update updates an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// FindByID finds a category by ID regardless of archive state.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindActiveByID finds a non-archived category by ID.
func (r *categoryRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_archived = ?", id, false).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindActiveBySlug finds a non-archived category by slug.
func (r *categoryRepository) FindActiveBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND is_archived = ?", slug, false).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by name, case-insensitive.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListActive lists all non-archived categories in insertion order.
func (r *categoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).
		Where("is_archived = ?", false).
		Order("created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count counts all categories regardless of archive state.
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}

// selectCategoryDisplay narrows category preloads to display fields.
func selectCategoryDisplay(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "slug")
}
