package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	categorySlugStrip = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
	articleSlugRun    = regexp.MustCompile(`[^a-z0-9]+`)
)

// CategorySlug derives a category slug from its display name: lowercase,
// trimmed, characters outside word chars/space/dash stripped, whitespace runs
// collapsed to single dashes. Create and rename share this one rule.
func CategorySlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = categorySlugStrip.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	return s
}

// ArticleSlug derives an article slug from its title and creation time.
// The millisecond suffix keeps slugs unique even for identical titles.
func ArticleSlug(title string, createdAt time.Time) string {
	s := strings.ToLower(title)
	s = articleSlugRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return fmt.Sprintf("%s-%d", s, createdAt.UnixMilli())
}

// SaltSlug appends a short random component to a slug. Used when the
// timestamped form collides, which happens for same-title articles created
// within the same millisecond.
func SaltSlug(slug string) string {
	return fmt.Sprintf("%s-%s", slug, uuid.NewString()[:8])
}

// SplitTags turns a comma-separated field like "Tech, News" into an ordered
// tag list. Order and duplicates are preserved, blank entries dropped.
func SplitTags(raw string) []string {
	tags := []string{}
	if strings.TrimSpace(raw) == "" {
		return tags
	}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
