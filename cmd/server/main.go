package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ericfaux/gamehost-sub002/internal/booking"
	"github.com/ericfaux/gamehost-sub002/internal/cache"
	"github.com/ericfaux/gamehost-sub002/internal/config"
	"github.com/ericfaux/gamehost-sub002/internal/database"
	"github.com/ericfaux/gamehost-sub002/internal/handler"
	"github.com/ericfaux/gamehost-sub002/internal/logger"
	"github.com/ericfaux/gamehost-sub002/internal/middleware"
	"github.com/ericfaux/gamehost-sub002/internal/repository"
	"github.com/ericfaux/gamehost-sub002/internal/router"
	"github.com/ericfaux/gamehost-sub002/internal/service"
)

func main() {
	// .env is optional; in production configuration comes from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting, response cache and lookup gate disabled")
	}

	settingsRepo := repository.NewSettingsRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	tableRepo := repository.NewTableRepo(db)
	gameRepo := repository.NewGameRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	venueRepo := repository.NewVenueRepo(db)
	userRepo := repository.NewUserRepo(db)

	engine := booking.New(booking.DefaultConfig(),
		settingsRepo, reservationRepo, tableRepo, gameRepo, sessionRepo)
	if rdb != nil {
		engine.Attempts = cache.NewAttemptCounter(rdb)
		engine.Views = cache.NewViewInvalidator(rdb)
	}
	if pub := service.NewEventPublisher(cfg.AmqpURL); pub != nil {
		engine.Events = pub
	} else {
		log.Warn("RABBITMQ_URL unset; reservation events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics())

	var limiter, viewCache echo.MiddlewareFunc
	if rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		viewCache = middleware.NewViewCache(config.LoadCacheConfig(), rdb,
			cache.NewViewInvalidator(rdb), router.AvailabilityViewKeys)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.AccessTTLMin), cfg.JWTSecret)
	router.RegisterGuest(e, handler.NewGuestHandler(engine, venueRepo), limiter, viewCache)
	router.RegisterStaff(e,
		handler.NewStaffHandler(engine, reservationRepo),
		handler.NewSessionHandler(engine, sessionRepo),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
