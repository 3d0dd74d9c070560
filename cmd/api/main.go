package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/bootstrap"
	"github.com/BruksfildServices01/semijoias-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/semijoias-crm/internal/db"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
	"github.com/BruksfildServices01/semijoias-crm/internal/metrics"
	"github.com/BruksfildServices01/semijoias-crm/internal/routes"
)

const serviceName = "semijoias-crm"

func main() {

	cfg := config.Load()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: serviceName,
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.GetLogger()

	log.Info("starting", cfg.LogFields()...)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	defer func() { _ = dbpkg.Close(db) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := bootstrap.New(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("failed to build infrastructure", zap.Error(err))
	}
	defer infra.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware())
	r.Use(metrics.NewHTTPMetrics(serviceName).Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	routes.RegisterRoutes(r, infra)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
