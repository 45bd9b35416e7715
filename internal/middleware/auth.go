// Package middleware provides gin middleware for authentication and logging.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-raka/kas-bank/pkg/tokenpkg"
	"github.com/go-raka/kas-bank/pkg/web"
	"github.com/stretchr/testify/require"
)

const (
	// AuthHeaderKey is the header carrying the access token.
	AuthHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization type.
	AuthTypeBearer = "bearer"
	// AuthPayloadKey is the gin context key holding the verified token payload.
	AuthPayloadKey = "authorization_payload"
)

// AddAuthorization creates a token for the given email and sets it on the
// request. Helper for handler tests.
func AddAuthorization(
	t *testing.T,
	request *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	email string,
	duration time.Duration,
) {
	token, _, err := tokenMaker.CreateToken(email, duration)
	require.NoError(t, err)

	request.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))
}

// AuthPayload returns the verified token payload set by AuthMiddleware.
func AuthPayload(gctx *gin.Context) *tokenpkg.Payload {
	return gctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
}

// AuthMiddleware verifies the bearer token and stores its payload in the
// gin context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			err := errors.New("authorization header is not provided")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authType)
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}
