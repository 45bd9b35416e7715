// Package articlerepo manages repository layer of articles.
package articlerepo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/dbpkg"
	"github.com/go-raka/kas-bank/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates article repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns article RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const listQuery = `
SELECT
	a.id, t.title, t.slug, t.content, a.category, a.author, a.cover_image, a.status, a.published_at
FROM articles a
JOIN article_translations t ON t.article_id = a.id
WHERE
	t.lang = $1
	AND ($2 = '' OR a.status = $2)
	AND ($3 = '' OR a.category = $3)
ORDER BY a.published_at DESC
`

// List returns article summaries in the given language, newest first.
// The first two content blocks serve as the preview.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListArticlesParams) ([]domain.ArticleSummary, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, arg.Lang, arg.Status, arg.Category)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.ArticleSummary{}

	for rows.Next() {
		var (
			s       domain.ArticleSummary
			content []byte
		)

		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Slug,
			&content,
			&s.Category,
			&s.Author,
			&s.CoverImage,
			&s.Status,
			&s.PublishedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		var blocks []domain.ContentBlock
		if err := json.Unmarshal(content, &blocks); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if len(blocks) > 2 {
			blocks = blocks[:2]
		}
		s.ContentPreview = blocks

		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const getBySlugQuery = `
SELECT
	a.id, t.lang, t.title, t.slug, t.content, a.category, a.author, a.cover_image, a.status, a.published_at
FROM articles a
JOIN article_translations t ON t.article_id = a.id
WHERE t.slug = $1 AND t.lang = $2
`

// GetBySlug returns the article with the given slug in the given language.
func (r *RepoPGS) GetBySlug(ctx context.Context, slug, lang string) (domain.Article, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getBySlugQuery, slug, lang)

	var (
		a       domain.Article
		content []byte
	)

	err := row.Scan(
		&a.ID,
		&a.Lang,
		&a.Title,
		&a.Slug,
		&content,
		&a.Category,
		&a.Author,
		&a.CoverImage,
		&a.Status,
		&a.PublishedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrArticleNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	if err := json.Unmarshal(content, &a.Content); err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	return a, nil
}
