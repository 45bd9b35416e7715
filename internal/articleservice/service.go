// Package articleservice manages business logic layer of articles.
package articleservice

import (
	"context"

	"github.com/go-raka/kas-bank/internal/domain"
)

// Repo provides data access layer interface needed by article service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package articleservice
type Repo interface {
	List(ctx context.Context, arg domain.ListArticlesParams) ([]domain.ArticleSummary, error)
	GetBySlug(ctx context.Context, slug, lang string) (domain.Article, error)
}

// Service facilitates article service layer logic.
type Service struct {
	repo Repo
}

// New returns article service struct to manage article business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

func validLang(lang string) (string, error) {
	switch lang {
	case "":
		return domain.LangID, nil
	case domain.LangID, domain.LangEN:
		return lang, nil
	default:
		return "", domain.ErrUnsupportedLanguage
	}
}

// List returns article summaries in the given language. An empty language
// defaults to Indonesian, matching the site's primary audience.
func (s *Service) List(ctx context.Context, arg domain.ListArticlesParams) ([]domain.ArticleSummary, error) {
	lang, err := validLang(arg.Lang)
	if err != nil {
		return nil, err
	}

	arg.Lang = lang

	return s.repo.List(ctx, arg)
}

// GetBySlug returns the article with the given slug in the given language.
func (s *Service) GetBySlug(ctx context.Context, slug, lang string) (domain.Article, error) {
	lang, err := validLang(lang)
	if err != nil {
		return domain.Article{}, err
	}

	return s.repo.GetBySlug(ctx, slug, lang)
}
