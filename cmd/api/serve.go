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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-admin/internal/archive"
	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	"github.com/BruksfildServices01/clinic-admin/internal/cache"
	"github.com/BruksfildServices01/clinic-admin/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-admin/internal/db"
	"github.com/BruksfildServices01/clinic-admin/internal/logging"
	"github.com/BruksfildServices01/clinic-admin/internal/routes"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	"github.com/BruksfildServices01/clinic-admin/internal/web"
)

const (
	shutdownTimeout = 10 * time.Second
	archiveTimeout  = 30 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.Must(cfg.IsProduction())
	defer func() { _ = log.Sync() }()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Error("database unavailable", zap.Error(err))
		return err
	}

	// --------------------------------------------------
	// Optional infrastructure
	// --------------------------------------------------
	var store cache.Store = cache.Noop{}
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStore, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.DashboardCacheTTL)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			defer redisStore.Close()
			store = redisStore
			log.Info("dashboard cache enabled", zap.Duration("ttl", cfg.DashboardCacheTTL))
		}
	}

	var arch archive.Archive = archive.Noop{}
	if cfg.ArchiveEnabled() {
		s3Archive, err := archive.NewS3(archive.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Warn("invoice archive disabled", zap.Error(err))
		} else {
			arch = s3Archive
			log.Info("invoice archive enabled", zap.String("bucket", cfg.S3Bucket))
		}
	}

	uploads := archive.NewBackground(arch, log, archiveTimeout)
	defer uploads.Close()

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	tpl, err := web.Templates(cfg.Currency, timezone.Location(cfg.ClinicTimezone))
	if err != nil {
		return err
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Audit:     dispatcher,
		Cache:     store,
		Uploads:   uploads,
		Templates: tpl,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			log.Error("server error", zap.Error(err))
			return err
		}
	case <-quit:
	}

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
