package domain

import (
	"errors"
	"time"
)

var (
	// ErrArticleNotFound indicates that the article is not found.
	ErrArticleNotFound = errors.New("article not found")
	// ErrUnsupportedLanguage indicates an unsupported article language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Article languages.
const (
	LangID = "id"
	LangEN = "en"
)

// Article statuses.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
)

// ContentBlock is one typed block of article content.
type ContentBlock struct {
	Type    string `json:"type"` // text or image
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
}

// Article holds one article in a single language.
type Article struct {
	ID          int64          `json:"id"`
	Lang        string         `json:"lang"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     []ContentBlock `json:"content"`
	Category    string         `json:"category"`
	Author      string         `json:"author"`
	CoverImage  string         `json:"cover_image"`
	Status      string         `json:"status"`
	PublishedAt time.Time      `json:"published_at"`
}

// ArticleSummary is the list representation of an article: the first
// blocks of content serve as a preview.
type ArticleSummary struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	ContentPreview []ContentBlock `json:"content_preview"`
	Category       string         `json:"category"`
	Author         string         `json:"author"`
	CoverImage     string         `json:"cover_image"`
	Status         string         `json:"status"`
	PublishedAt    time.Time      `json:"published_at"`
}

// ListArticlesParams filters the article listing.
type ListArticlesParams struct {
	Lang     string
	Status   string
	Category string
}
