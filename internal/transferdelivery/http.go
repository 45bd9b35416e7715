// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/internal/middleware"
	"github.com/go-raka/kas-bank/pkg/errorspkg"
	"github.com/go-raka/kas-bank/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromUserID int64, arg domain.TransferParams) (domain.TransferTxResult, error)
	ListTransactions(ctx context.Context, fromUserID int64, limit int32) ([]domain.Transaction, error)
}

// UserService resolves the authenticated caller's identity.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (domain.UserWithoutPassword, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service     Service
	userService UserService
}

// NewHandler returns transfer handler.
func NewHandler(ts Service, us UserService) *Handler {
	return &Handler{
		service:     ts,
		userService: us,
	}
}

type createRequest struct {
	ToAccount   string `json:"to_account" binding:"required,numeric,min=10,max=16"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

type createData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

// Create handles http request to transfer money between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			field := ve[0]
			gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	caller, err := h.caller(gctx)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	arg := domain.TransferParams{
		ToAccountNumber: req.ToAccount,
		Amount:          req.Amount,
		Description:     req.Description,
	}

	result, err := h.service.Transfer(ctx, caller.ID, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrSelfTransfer),
			errors.Is(err, domain.ErrAccountInactive),
			errors.Is(err, domain.ErrInsufficientBalance):
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case errors.Is(err, domain.ErrSenderNotFound),
			errors.Is(err, domain.ErrRecipientNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		// ErrCreditFailedAfterDebit lands here as well: the engine has
		// already logged it loudly, the caller only gets the generic error.
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: createData{result}})
}

type listRequest struct {
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

type listData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// List handles http request to list the caller's transactions, newest first.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			field := ve[0]
			gctx.JSON(http.StatusBadRequest, web.Response{Error: field.Field() + web.GetErrorMsg(field)})

			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	caller, err := h.caller(gctx)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	transactions, err := h.service.ListTransactions(ctx, caller.ID, req.Limit)
	if err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrSenderNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: listData{transactions}})
}

// caller resolves the authenticated user from the token payload set by the
// auth middleware.
func (h *Handler) caller(gctx *gin.Context) (domain.UserWithoutPassword, error) {
	payload := middleware.AuthPayload(gctx)
	return h.userService.GetByEmail(gctx.Request.Context(), payload.Email)
}
