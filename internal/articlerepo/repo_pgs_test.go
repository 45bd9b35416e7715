package articlerepo

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/configpkg"
	"github.com/go-raka/kas-bank/pkg/dbpkg"
	"github.com/go-raka/kas-bank/pkg/randompkg"

	_ "github.com/lib/pq"
)

var config configpkg.Config

func TestMain(m *testing.M) {
	var err error

	config, err = configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	if _, err := dbpkg.Setup(config.DBDriver, config.DBSource); err != nil {
		log.Println("database is not reachable, skipping repository tests:", err)
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func seedArticle(t *testing.T, db dbpkg.SQLInterface, category, status string, translations map[string]string) int64 {
	var id int64

	err := db.QueryRowContext(context.Background(),
		`INSERT INTO articles (category, author, status) VALUES ($1, 'editor', $2) RETURNING id`,
		category, status,
	).Scan(&id)
	require.NoError(t, err)

	blocks := []domain.ContentBlock{
		{Type: "text", Value: "first block"},
		{Type: "image", Value: "https://cdn.example.com/cover.png", Caption: "cover"},
		{Type: "text", Value: "third block"},
	}

	content, err := json.Marshal(blocks)
	require.NoError(t, err)

	for lang, slug := range translations {
		_, err := db.ExecContext(context.Background(),
			`INSERT INTO article_translations (article_id, lang, title, slug, content)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, lang, "title "+slug, slug, content,
		)
		require.NoError(t, err)
	}

	return id
}

func slugs(items []domain.ArticleSummary) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Slug
	}

	return out
}

func TestList(t *testing.T) {
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	repo := NewRepoPGS(tx)

	// Unique marker values so the assertions hold on a shared database.
	category := "cat-" + randompkg.String(8)
	slugID := "slug-id-" + randompkg.String(8)
	slugEN := "slug-en-" + randompkg.String(8)
	draftSlug := "slug-draft-" + randompkg.String(8)

	seedArticle(t, tx, category, domain.ArticleStatusPublished, map[string]string{
		domain.LangID: slugID,
		domain.LangEN: slugEN,
	})
	seedArticle(t, tx, category, domain.ArticleStatusDraft, map[string]string{
		domain.LangID: draftSlug,
	})

	t.Run("ByLanguage", func(t *testing.T) {
		got, err := repo.List(context.Background(), domain.ListArticlesParams{
			Lang:     domain.LangEN,
			Category: category,
		})
		require.NoError(t, err)
		require.Equal(t, []string{slugEN}, slugs(got))
		// The preview keeps the first two blocks only.
		require.Len(t, got[0].ContentPreview, 2)
	})

	t.Run("ByStatus", func(t *testing.T) {
		got, err := repo.List(context.Background(), domain.ListArticlesParams{
			Lang:     domain.LangID,
			Status:   domain.ArticleStatusPublished,
			Category: category,
		})
		require.NoError(t, err)
		require.Equal(t, []string{slugID}, slugs(got))
	})

	t.Run("ByCategory", func(t *testing.T) {
		got, err := repo.List(context.Background(), domain.ListArticlesParams{
			Lang:     domain.LangID,
			Category: category,
		})
		require.NoError(t, err)
		require.ElementsMatch(t, []string{slugID, draftSlug}, slugs(got))
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		got, err := repo.List(context.Background(), domain.ListArticlesParams{
			Lang:     domain.LangID,
			Category: "cat-" + randompkg.String(8),
		})
		require.NoError(t, err)
		require.Empty(t, got)
	})
}

func TestGetBySlug(t *testing.T) {
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	repo := NewRepoPGS(tx)

	slugID := "slug-id-" + randompkg.String(8)
	slugEN := "slug-en-" + randompkg.String(8)

	seedArticle(t, tx, "finance", domain.ArticleStatusPublished, map[string]string{
		domain.LangID: slugID,
		domain.LangEN: slugEN,
	})

	got, err := repo.GetBySlug(context.Background(), slugEN, domain.LangEN)
	require.NoError(t, err)
	require.Equal(t, domain.LangEN, got.Lang)
	require.Equal(t, slugEN, got.Slug)
	require.Len(t, got.Content, 3)
	require.Equal(t, "first block", got.Content[0].Value)

	// Slugs resolve within their own language only.
	_, err = repo.GetBySlug(context.Background(), slugEN, domain.LangID)
	require.ErrorIs(t, err, domain.ErrArticleNotFound)

	_, err = repo.GetBySlug(context.Background(), "missing-"+randompkg.String(8), domain.LangEN)
	require.ErrorIs(t, err, domain.ErrArticleNotFound)
}
