package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"khabarkhana/internal/model"
)

// ArticleFilter narrows public article listings.
type ArticleFilter struct {
	Search     string
	CategoryID *uuid.UUID
}

// ArticleAggregates holds the grouped dashboard counts over all articles.
type ArticleAggregates struct {
	TotalArticles    int64
	TotalViews       int64
	ArchivedArticles int64
}

// ArticleRepository defines article persistence operations.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error)
	ListPublished(ctx context.Context, filter ArticleFilter, page, limit int) ([]model.Article, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Article, error)
	Archive(ctx context.Context, id uuid.UUID) error
	Aggregates(ctx context.Context) (*ArticleAggregates, error)
	Latest(ctx context.Context, limit int) ([]model.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create creates a new article.
func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// Update persists the editable columns of a non-archived article. The archive
// flags are never written here and the predicate refuses rows a concurrent
// archive has already claimed, so a stale read cannot resurrect an archived
// article. Returns gorm.ErrRecordNotFound when no live row matched.
func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	res := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ? AND is_archived = ?", article.ID, false).
		Updates(map[string]interface{}{
			"slug":        article.Slug,
			"title":       article.Title,
			"content":     article.Content,
			"thumbnail":   article.Thumbnail,
			"status":      article.Status,
			"category_id": article.CategoryID,
			"is_featured": article.IsFeatured,
			"tags":        article.Tags,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds an article by ID regardless of status or archive state.
func (r *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// ListPublished returns published, non-archived articles newest-first with
// author/category display fields, plus the total matching count.
func (r *articleRepository) ListPublished(ctx context.Context, filter ArticleFilter, page, limit int) ([]model.Article, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("status = ? AND is_archived = ?", model.StatusPublished, false)

	if filter.Search != "" {
		base = base.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []model.Article
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Author", selectAuthorDisplay).
		Preload("Category", selectCategoryDisplay).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// GetPublishedBySlug atomically increments the view counter of a published,
// non-archived article and returns the updated record. The increment and the
// visibility check are a single UPDATE so concurrent readers never lose
// counts. Returns gorm.ErrRecordNotFound when no row qualifies.
func (r *articleRepository) GetPublishedBySlug(ctx context.Context, slug string) (*model.Article, error) {
	res := r.db.WithContext(ctx).Model(&model.Article{}).
		Where("slug = ? AND status = ? AND is_archived = ?", slug, model.StatusPublished, false).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	// The read repeats the visibility predicate so an archive landing between
	// the increment and this query hides the row instead of serving it once.
	var article model.Article
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ? AND is_archived = ?", slug, model.StatusPublished, false).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "username", "bio", "avatar")
		}).
		Preload("Category", selectCategoryDisplay).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Archive soft-deletes an article: both flags flip in one atomic update so a
// concurrent edit cannot interleave between them. One-way, never unset.
func (r *articleRepository) Archive(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_archived": true,
			"status":      model.StatusArchived,
		}).Error
}

// Aggregates computes total/views/archived counts in a single grouped scan.
func (r *articleRepository) Aggregates(ctx context.Context) (*ArticleAggregates, error) {
	var agg ArticleAggregates
	err := r.db.WithContext(ctx).Model(&model.Article{}).
		Select(
			"COUNT(*) AS total_articles",
			"COALESCE(SUM(views), 0) AS total_views",
			"COALESCE(SUM(is_archived), 0) AS archived_articles",
		).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// Latest returns the newest non-archived articles with category names attached.
func (r *articleRepository) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	var articles []model.Article
	err := r.db.WithContext(ctx).
		Where("is_archived = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Select("id", "slug", "title", "views", "status", "created_at", "category_id").
		Preload("Category", selectCategoryDisplay).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// selectAuthorDisplay narrows author preloads to public display fields.
func selectAuthorDisplay(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "username", "avatar")
}
