// Package articledelivery manages delivery layer of articles.
package articledelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/errorspkg"
	"github.com/go-raka/kas-bank/pkg/web"
)

// Service provides service layer interface needed by article delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package articledelivery
type Service interface {
	List(ctx context.Context, arg domain.ListArticlesParams) ([]domain.ArticleSummary, error)
	GetBySlug(ctx context.Context, slug, lang string) (domain.Article, error)
}

// Handler facilitates article delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns article handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type listRequest struct {
	Lang     string `form:"lang" binding:"omitempty,oneof=id en"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published"`
	Category string `form:"category"`
}

type listData struct {
	Count    int                     `json:"count"`
	Articles []domain.ArticleSummary `json:"articles"`
}

// List handles http request to list articles in one language.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	articles, err := h.service.List(ctx, domain.ListArticlesParams{
		Lang:     req.Lang,
		Status:   req.Status,
		Category: req.Category,
	})
	if err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrUnsupportedLanguage) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{Count: len(articles), Articles: articles}})
}

type getRequest struct {
	Slug string `uri:"slug" binding:"required"`
}

type getData struct {
	Article domain.Article `json:"article"`
}

// Get handles http request to fetch one article by slug.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	article, err := h.service.GetBySlug(ctx, req.Slug, gctx.Query("lang"))
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrUnsupportedLanguage):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case errors.Is(err, domain.ErrArticleNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: getData{article}})
}
