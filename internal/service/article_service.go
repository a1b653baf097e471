package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"khabarkhana/internal/errors"
	"khabarkhana/internal/media"
	"khabarkhana/internal/metrics"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateArticleInput carries the multipart fields of an article submission.
type CreateArticleInput struct {
	Title      string
	Content    string
	CategoryID uuid.UUID
	Tags       string // comma-separated
	IsFeatured bool
	Thumbnail  *FileUpload
}

// UpdateArticleInput carries partial updates; nil means unchanged.
type UpdateArticleInput struct {
	Title      *string
	Content    *string
	CategoryID *uuid.UUID
	Tags       *string
	IsFeatured *bool
	Status     *model.ArticleStatus
	Thumbnail  *FileUpload
}

// ListArticlesInput filters the public listing.
type ListArticlesInput struct {
	Search       string
	CategorySlug string
	Page         int
	Limit        int
}

// ArticleList is a page of published articles.
type ArticleList struct {
	Articles   []model.Article `json:"articles"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int64           `json:"total_pages"`
}

// ArticleService drives the article lifecycle:
// DRAFT -> PUBLISHED -> ARCHIVED, with soft delete as the only removal path.
type ArticleService interface {
	Create(ctx context.Context, author *model.User, in CreateArticleInput) (*model.Article, error)
	List(ctx context.Context, in ListArticlesInput) (*ArticleList, error)
	GetBySlug(ctx context.Context, slug string, viewer *model.User) (*model.Article, error)
	Update(ctx context.Context, id uuid.UUID, caller *model.User, in UpdateArticleInput) (*model.Article, error)
	Archive(ctx context.Context, id uuid.UUID, caller *model.User) error
}

type articleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	media      media.Store
	log        *zap.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
	media media.Store,
	log *zap.Logger,
) ArticleService {
	return &articleService{
		articles:   articles,
		categories: categories,
		users:      users,
		media:      media,
		log:        log,
	}
}

// Create validates input, uploads the thumbnail and writes the article.
// Publish-capable authors go live immediately, everyone else starts in DRAFT.
// The row is written only after the upload succeeds, so an upstream failure
// never leaves a half-created article.
func (s *articleService) Create(ctx context.Context, author *model.User, in CreateArticleInput) (*model.Article, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" || in.CategoryID == uuid.Nil {
		return nil, errors.ErrArticleFieldsRequired
	}

	if _, err := s.categories.FindActiveByID(ctx, in.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	if in.Thumbnail == nil {
		return nil, errors.ErrThumbnailRequired
	}
	thumbnailURL, err := s.media.Upload(ctx, in.Thumbnail.Filename, in.Thumbnail.Content)
	if err != nil {
		s.log.Warn("thumbnail upload failed", zap.String("title", title), zap.Error(err))
		return nil, errors.ErrMediaUpload
	}

	status := model.StatusDraft
	if author.Role.CanPublish() {
		status = model.StatusPublished
	}

	slug := ArticleSlug(title, time.Now())
	article := &model.Article{
		Slug:       slug,
		Title:      title,
		Content:    content,
		Thumbnail:  thumbnailURL,
		Status:     status,
		CategoryID: in.CategoryID,
		AuthorID:   author.ID,
		IsFeatured: in.IsFeatured,
		Tags:       SplitTags(in.Tags),
	}
	// Same-title creates within one millisecond derive the same slug. The
	// unique index catches the loser, which retries with a salted slug so
	// concurrent submissions still come out distinct.
	err = s.articles.Create(ctx, article)
	for attempt := 0; err == gorm.ErrDuplicatedKey && attempt < 3; attempt++ {
		article.Slug = SaltSlug(slug)
		err = s.articles.Create(ctx, article)
	}
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	metrics.ArticlesCreated.Inc()
	return article, nil
}

// List returns published, non-archived articles newest-first. An unknown
// category slug simply drops the filter instead of failing the listing.
func (s *articleService) List(ctx context.Context, in ListArticlesInput) (*ArticleList, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.ArticleFilter{Search: strings.TrimSpace(in.Search)}
	if slug := strings.TrimSpace(in.CategorySlug); slug != "" {
		if category, err := s.categories.FindActiveBySlug(ctx, slug); err == nil {
			filter.CategoryID = &category.ID
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("resolve category slug: %w", err)
		}
	}

	articles, total, err := s.articles.ListPublished(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return &ArticleList{
		Articles:   articles,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetBySlug returns a published article and counts the view. The increment is
// atomic in the repository, so concurrent reads never lose counts. When a
// viewer identity is present the read lands in their reading history.
func (s *articleService) GetBySlug(ctx context.Context, slug string, viewer *model.User) (*model.Article, error) {
	article, err := s.articles.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}

	metrics.ArticleViews.Inc()

	if viewer != nil {
		if err := s.users.AppendReadingHistory(ctx, viewer.ID, article.ID); err != nil {
			// best-effort, a failed history write must not fail the read
			s.log.Debug("append reading history failed", zap.Error(err))
		}
	}
	return article, nil
}

// Update applies only the supplied fields. Only the author or an admin may
// edit; a status change from a caller without publish rights is silently
// ignored while the rest of the update still applies. ARCHIVED and BLOCKED
// are never reachable through this path.
func (s *articleService) Update(ctx context.Context, id uuid.UUID, caller *model.User, in UpdateArticleInput) (*model.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	if article.IsArchived {
		return nil, errors.ErrArticleNotFound
	}
	if article.AuthorID != caller.ID && !caller.Role.IsAdmin() {
		return nil, errors.ErrNotArticleOwner
	}

	if in.Thumbnail != nil {
		url, err := s.media.Upload(ctx, in.Thumbnail.Filename, in.Thumbnail.Content)
		if err != nil {
			s.log.Warn("thumbnail replacement failed", zap.String("article", article.Slug), zap.Error(err))
			return nil, errors.ErrMediaUpload
		}
		// old asset stays in the media store on purpose
		article.Thumbnail = url
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		article.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) != "" {
		article.Content = strings.TrimSpace(*in.Content)
	}
	if in.CategoryID != nil && *in.CategoryID != uuid.Nil {
		if _, err := s.categories.FindActiveByID(ctx, *in.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		article.CategoryID = *in.CategoryID
	}
	if in.Tags != nil {
		article.Tags = SplitTags(*in.Tags)
	}
	if in.IsFeatured != nil {
		article.IsFeatured = *in.IsFeatured
	}
	if in.Status != nil && caller.Role.CanPublish() {
		switch *in.Status {
		case model.StatusDraft, model.StatusPublished:
			article.Status = *in.Status
		}
	}

	if err := s.articles.Update(ctx, article); err != nil {
		if err == gorm.ErrRecordNotFound {
			// archived between the read above and the write
			return nil, errors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

// Archive soft-deletes an article: is_archived and status flip together in one
// atomic update. Only the author or an admin may archive; already-archived
// articles are indistinguishable from absent ones.
func (s *articleService) Archive(ctx context.Context, id uuid.UUID, caller *model.User) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrArticleNotFound
		}
		return fmt.Errorf("find article: %w", err)
	}
	if article.IsArchived {
		return errors.ErrArticleNotFound
	}
	if article.AuthorID != caller.ID && !caller.Role.IsAdmin() {
		return errors.ErrNotArticleOwner
	}

	if err := s.articles.Archive(ctx, id); err != nil {
		return fmt.Errorf("archive article: %w", err)
	}
	return nil
}
