package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/minhokang/review-market/internal/auth"
	"github.com/minhokang/review-market/internal/config"
	"github.com/minhokang/review-market/internal/database"
	"github.com/minhokang/review-market/internal/handler"
	"github.com/minhokang/review-market/internal/middleware"
	"github.com/minhokang/review-market/internal/queue"
	"github.com/minhokang/review-market/internal/repository"
	"github.com/minhokang/review-market/internal/router"
	"github.com/minhokang/review-market/internal/service"
	"github.com/minhokang/review-market/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBName); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	rdb, err := config.NewRedisClient()
	if err != nil {
		// Sessions are a core auth mode; refuse to start without them.
		log.Error("redis connect failed", "err", err)
		os.Exit(1)
	}

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	reviews := repository.NewReviewRepo(db)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	authSvc := auth.NewService(users, tokens, cfg.BcryptCost, log)
	productSvc := service.NewProductService(products, log)
	reviewSvc := service.NewReviewService(reviews, log)

	sessions := session.NewRedisStore(rdb, cfg.SessionTTL())
	events := queue.NewPublisher(cfg.RabbitMQURL, log)

	deps := router.Deps{
		Auth:        handler.NewAuthHandler(authSvc, sessions, cfg.SessionSecret),
		Products:    handler.NewProductHandler(productSvc),
		Reviews:     handler.NewReviewHandler(reviewSvc, events),
		SessionAuth: middleware.SessionAuth(sessions, cfg.SessionSecret, users),
		AccessAuth:  middleware.AccessTokenAuth(tokens),
		RefreshAuth: middleware.RefreshTokenAuth(tokens),
		ReviewOwner: middleware.ReviewOwnership(reviews),
		LoginLimit:  middleware.RateLimit(rdb, 10, time.Minute),
	}
	if cfg.GoogleClientID != "" {
		deps.OAuth = handler.NewOAuthHandler(
			cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL,
			authSvc, sessions, cfg.SessionSecret)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(log)
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.Register(e, deps)

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
