package articleservice

import (
	"context"
	"testing"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	summaries := []domain.ArticleSummary{
		{ID: 1, Title: "Cara menabung", Slug: "cara-menabung"},
	}

	testCases := []struct {
		name          string
		arg           domain.ListArticlesParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res []domain.ArticleSummary, err error)
	}{
		{
			name: "OK",
			arg:  domain.ListArticlesParams{Lang: domain.LangEN},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					List(gomock.Any(), gomock.Eq(domain.ListArticlesParams{Lang: domain.LangEN})).
					Times(1).Return(summaries, nil)
			},
			checkResponse: func(t *testing.T, res []domain.ArticleSummary, err error) {
				require.NoError(t, err)
				require.Equal(t, summaries, res)
			},
		},
		{
			name: "EmptyLangDefaultsToIndonesian",
			arg:  domain.ListArticlesParams{},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					List(gomock.Any(), gomock.Eq(domain.ListArticlesParams{Lang: domain.LangID})).
					Times(1).Return(summaries, nil)
			},
			checkResponse: func(t *testing.T, res []domain.ArticleSummary, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "UnsupportedLanguage",
			arg:  domain.ListArticlesParams{Lang: "fr"},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res []domain.ArticleSummary, err error) {
				require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo)

			tc.buildStubs(repo)

			res, err := service.List(context.Background(), tc.arg)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestGetBySlug(t *testing.T) {
	article := domain.Article{
		ID:    1,
		Lang:  domain.LangID,
		Title: "Cara menabung",
		Slug:  "cara-menabung",
		Content: []domain.ContentBlock{
			{Type: "text", Value: "Menabung itu penting."},
		},
	}

	testCases := []struct {
		name          string
		slug          string
		lang          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.Article, err error)
	}{
		{
			name: "OK",
			slug: article.Slug,
			lang: domain.LangID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetBySlug(gomock.Any(), gomock.Eq(article.Slug), gomock.Eq(domain.LangID)).
					Times(1).Return(article, nil)
			},
			checkResponse: func(t *testing.T, res domain.Article, err error) {
				require.NoError(t, err)
				require.Equal(t, article, res)
			},
		},
		{
			name: "NotFound",
			slug: "missing",
			lang: domain.LangID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					GetBySlug(gomock.Any(), gomock.Eq("missing"), gomock.Eq(domain.LangID)).
					Times(1).Return(domain.Article{}, domain.ErrArticleNotFound)
			},
			checkResponse: func(t *testing.T, res domain.Article, err error) {
				require.ErrorIs(t, err, domain.ErrArticleNotFound)
			},
		},
		{
			name: "UnsupportedLanguage",
			slug: article.Slug,
			lang: "de",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().GetBySlug(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Article, err error) {
				require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo)

			tc.buildStubs(repo)

			res, err := service.GetBySlug(context.Background(), tc.slug, tc.lang)
			tc.checkResponse(t, res, err)
		})
	}
}
