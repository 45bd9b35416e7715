// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-raka/kas-bank/internal/accountrepo"
	"github.com/go-raka/kas-bank/internal/accountservice"
	"github.com/go-raka/kas-bank/internal/articledelivery"
	"github.com/go-raka/kas-bank/internal/articlerepo"
	"github.com/go-raka/kas-bank/internal/articleservice"
	"github.com/go-raka/kas-bank/internal/middleware"
	"github.com/go-raka/kas-bank/internal/sessiondelivery"
	"github.com/go-raka/kas-bank/internal/sessionrepo"
	"github.com/go-raka/kas-bank/internal/sessionservice"
	"github.com/go-raka/kas-bank/internal/stockdelivery"
	"github.com/go-raka/kas-bank/internal/stockservice"
	"github.com/go-raka/kas-bank/internal/transactionrepo"
	"github.com/go-raka/kas-bank/internal/transferdelivery"
	"github.com/go-raka/kas-bank/internal/transferservice"
	"github.com/go-raka/kas-bank/internal/userdelivery"
	"github.com/go-raka/kas-bank/internal/userrepo"
	"github.com/go-raka/kas-bank/internal/userservice"
	"github.com/go-raka/kas-bank/pkg/configpkg"
	"github.com/go-raka/kas-bank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	articleRepo := articlerepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(accountRepo)
	userService := userservice.New(userRepo, accountService)
	transferService := transferservice.New(transactionRepo, accountService)
	articleService := articleservice.New(articleRepo)
	stockService := stockservice.New()

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	transferHandler := transferdelivery.NewHandler(transferService, userService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	articleHandler := articledelivery.NewHandler(articleService)
	stockHandler := stockdelivery.NewHandler(stockService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/auth/signup", userHandler.Signup)
	engine.POST("/auth/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	engine.GET("/articles", articleHandler.List)
	engine.GET("/articles/:slug", articleHandler.Get)
	engine.GET("/stock/bbri", stockHandler.Get)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.GET("/auth/me", userHandler.Me)
	authRoutes.POST("/transfer", transferHandler.Create)
	authRoutes.GET("/transactions", transferHandler.List)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
