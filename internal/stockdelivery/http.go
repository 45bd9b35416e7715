// Package stockdelivery manages delivery layer of stock quotes.
package stockdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/web"
)

// Service provides service layer interface needed by stock delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package stockdelivery
type Service interface {
	Quote(ctx context.Context) domain.StockQuote
}

// Handler facilitates stock delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns stock handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

// Get handles http request to fetch the current share price snapshot.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	quote := h.service.Quote(ctx)

	gctx.JSON(http.StatusOK, web.Response{Data: quote})
}
