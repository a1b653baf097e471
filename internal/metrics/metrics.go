package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ArticlesCreated counts articles accepted by the lifecycle engine.
	ArticlesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "articles_created_total",
		Help: "Total number of articles created.",
	})
	// ArticleViews counts article reads served by slug.
	ArticleViews = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "article_views_served_total",
		Help: "Total number of article detail reads served.",
	})
)

func init() {
	prometheus.MustRegister(ArticlesCreated, ArticleViews)
}
