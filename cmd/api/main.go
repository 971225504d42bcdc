// @title        Recycling Points API
// @version      1.0
// @description  Tracks recycling collection points, projects when they fill up and alerts when they are full.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "recycling-api/docs"
	"recycling-api/internal/alert"
	"recycling-api/internal/config"
	"recycling-api/internal/handler"
	"recycling-api/internal/logger"
	"recycling-api/internal/mailer"
	"recycling-api/internal/middleware"
	"recycling-api/internal/migrations"
	"recycling-api/internal/repository"
	"recycling-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	appLogger := logger.Setup(config.LogLevel, config.LogFormat)

	if err := migrations.Up(config.DBSource); err != nil {
		log.Fatal().Err(err).Msg("cannot migrate db")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection
	conn, err := pgxpool.New(ctx, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	mail, err := mailer.New(config, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot configure mail transport")
	}

	// Initialize layers
	repo := repository.NewRepository(conn)
	dispatcher := alert.NewDispatcher(mail, appLogger)
	pointService := service.NewPointService(repo, dispatcher)
	pointHandler := handler.NewPointHandler(pointService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(appLogger))

	r.GET("/health", handler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	pointHandler.Register(r.Group("/api"))

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           middleware.CORS(r, config.AllowedOrigins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Str("mail_backend", config.MailBackend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down; alerts still being delivered are dropped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
