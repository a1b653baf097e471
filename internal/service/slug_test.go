package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategorySlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple name",
			input:    "Politics",
			expected: "politics",
		},
		{
			name:     "multi word with extra whitespace",
			input:    "  World   News  ",
			expected: "world-news",
		},
		{
			name:     "special characters stripped",
			input:    "Tech & Science!",
			expected: "tech-science",
		},
		{
			name:     "existing dashes kept",
			input:    "E-Sports",
			expected: "e-sports",
		},
		{
			name:     "numbers kept",
			input:    "Top 10 Stories",
			expected: "top-10-stories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorySlug(tt.input))
		})
	}
}

func TestCategorySlug_CreateAndRenameAgree(t *testing.T) {
	// Create and rename derive slugs through the same function, so the same
	// name always yields the same slug no matter which path produced it.
	names := []string{"Politics", "Tech & Science", "  World   News  "}
	for _, name := range names {
		assert.Equal(t, CategorySlug(name), CategorySlug(name))
	}
}

func TestArticleSlug(t *testing.T) {
	at := time.UnixMilli(1700000000000)

	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "Breaking News",
			expected: "breaking-news-1700000000000",
		},
		{
			name:     "punctuation collapsed",
			title:    "Markets: Up, Down & Sideways?",
			expected: "markets-up-down-sideways-1700000000000",
		},
		{
			name:     "leading and trailing separators trimmed",
			title:    "  --Hello World--  ",
			expected: "hello-world-1700000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ArticleSlug(tt.title, at))
		})
	}
}

func TestArticleSlug_SameTitleDifferentTimes(t *testing.T) {
	first := ArticleSlug("Breaking News", time.UnixMilli(1700000000000))
	second := ArticleSlug("Breaking News", time.UnixMilli(1700000000001))
	assert.NotEqual(t, first, second)
}

func TestSaltSlug(t *testing.T) {
	base := ArticleSlug("Breaking News", time.UnixMilli(1700000000000))

	first := SaltSlug(base)
	second := SaltSlug(base)

	assert.True(t, strings.HasPrefix(first, base+"-"))
	assert.True(t, strings.HasPrefix(second, base+"-"))
	assert.NotEqual(t, first, second)
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: []string{},
		},
		{
			name:     "trimmed entries in order",
			input:    " tech , news,  economy ",
			expected: []string{"tech", "news", "economy"},
		},
		{
			name:     "blank entries dropped",
			input:    "tech,,news,",
			expected: []string{"tech", "news"},
		},
		{
			name:     "duplicates preserved",
			input:    "tech,tech",
			expected: []string{"tech", "tech"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitTags(tt.input))
		})
	}
}
