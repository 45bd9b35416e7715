// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/internal/middleware"
	"github.com/go-raka/kas-bank/pkg/errorspkg"
	"github.com/go-raka/kas-bank/pkg/web"
)

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, fullName, email, password, phoneNumber, accountNumber string) (domain.UserWithoutPassword, domain.Account, error)
	CheckPassword(ctx context.Context, email, password string) (domain.UserWithoutPassword, error)
	Profile(ctx context.Context, id int64) (domain.UserWithoutPassword, domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.UserWithoutPassword, error)
}

// SessionService provides session layer interface needed by user delivery layer.
type SessionService interface {
	Create(ctx context.Context, email, userAgent, clientIP string) (string, time.Time, domain.Session, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service        Service
	sessionService SessionService
}

// NewHandler returns user handler.
func NewHandler(us Service, ss SessionService) *Handler {
	return &Handler{
		service:        us,
		sessionService: ss,
	}
}

type userData struct {
	User    domain.UserWithoutPassword `json:"user"`
	Account domain.Account             `json:"account"`
}

type signupRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	PhoneNumber   string `json:"phone_number" binding:"required,numeric,min=10,max=15"`
	AccountNumber string `json:"account_number" binding:"required,numeric,min=10,max=16"`
}

// Signup handles http request to register a user with their account.
func (h *Handler) Signup(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req signupRequest
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

	user, account, err := h.service.Create(ctx, req.FullName, req.Email, req.Password, req.PhoneNumber, req.AccountNumber)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists),
			errors.Is(err, domain.ErrAccountNumberAlreadyExists):
			gctx.JSON(http.StatusConflict, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, accessTokenExpiresAt, sess, err := h.sessionService.Create(ctx, user.Email, gctx.Request.UserAgent(), gctx.ClientIP())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := web.Response{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessTokenExpiresAt.Format(time.RFC3339),
		RefreshToken:          sess.RefreshToken,
		RefreshTokenExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
		Data:                  userData{User: user, Account: account},
	}

	gctx.JSON(http.StatusOK, res)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login handles http request to log in a user.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
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

	user, err := h.service.CheckPassword(ctx, req.Email, req.Password)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case errors.Is(err, domain.ErrWrongPassword):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, accessTokenExpiresAt, sess, err := h.sessionService.Create(ctx, user.Email, gctx.Request.UserAgent(), gctx.ClientIP())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := web.Response{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessTokenExpiresAt.Format(time.RFC3339),
		RefreshToken:          sess.RefreshToken,
		RefreshTokenExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
		Data:                  userData{User: user},
	}

	gctx.JSON(http.StatusOK, res)
}

// Me handles http request to get the caller's profile with their account.
func (h *Handler) Me(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	payload := middleware.AuthPayload(gctx)

	caller, err := h.service.GetByEmail(ctx, payload.Email)
	if err != nil {
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	}

	user, account, err := h.service.Profile(ctx, caller.ID)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: userData{User: user, Account: account}})
}
