package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "subite-backend/internal/config"
	"subite-backend/internal/db"
	router "subite-backend/internal/http"
	"subite-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()

	logger.Init(logger.Options{Level: env.LogLevel, Pretty: env.LogPretty})
	logg := logger.Get()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	if _, err := intconfig.ConnectDB(env.DSN()); err != nil {
		logg.Fatal().Err(err).Msg("database connection failed")
	}
	defer intconfig.CloseDB()

	if err := db.EnsureSchema(intconfig.DB); err != nil {
		logg.Fatal().Err(err).Msg("schema migration failed")
	}
	if env.Seed {
		if err := db.Seed(intconfig.DB); err != nil {
			logg.Fatal().Err(err).Msg("seeding failed")
		}
	}

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logg.Info().Str("addr", env.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logg.Fatal().Err(err).Msg("shutdown failed")
	}

	logg.Info().Msg("server stopped")
}
