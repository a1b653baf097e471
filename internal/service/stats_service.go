package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"khabarkhana/internal/cache"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
)

const (
	dashboardCacheKey = "admin:dashboard"
	dashboardCacheTTL = 30 * time.Second
	latestArticles    = 5
)

// DashboardStats is the admin dashboard snapshot.
type DashboardStats struct {
	TotalArticles    int64           `json:"total_articles"`
	TotalViews       int64           `json:"total_views"`
	ArchivedArticles int64           `json:"archived_articles"`
	TotalCategories  int64           `json:"total_categories"`
	LatestArticles   []model.Article `json:"latest_articles"`
}

// StatsService computes read-only statistics over articles and categories.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	cache      *cache.Client
}

// NewStatsService creates a new stats service.
func NewStatsService(articles repository.ArticleRepository, categories repository.CategoryRepository, cache *cache.Client) StatsService {
	return &statsService{articles: articles, categories: categories, cache: cache}
}

// Dashboard runs the three independent reads in parallel and assembles the
// snapshot. An empty store yields zeros and an empty latest list, not an error.
func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if s.cache.GetJSON(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	var (
		agg           *repository.ArticleAggregates
		categoryCount int64
		latest        []model.Article
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		agg, err = s.articles.Aggregates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categoryCount, err = s.categories.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.articles.Latest(gctx, latestArticles)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if latest == nil {
		latest = []model.Article{}
	}
	stats := &DashboardStats{
		TotalArticles:    agg.TotalArticles,
		TotalViews:       agg.TotalViews,
		ArchivedArticles: agg.ArchivedArticles,
		TotalCategories:  categoryCount,
		LatestArticles:   latest,
	}
	s.cache.SetJSON(ctx, dashboardCacheKey, stats, dashboardCacheTTL)
	return stats, nil
}
