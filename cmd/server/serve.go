package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/realtime"
	"github.com/portfolio/internal/router"
	"github.com/portfolio/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(cfg.DatabasePath, gormlogger.Default.LogMode(gormlogger.Warn))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}

	created, err := db.EnsureUser(gdb, cfg.AdminUserName, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}
	if created {
		logger.Info("admin user created", zap.String("username", cfg.AdminUserName))
	}

	hub := realtime.NewHub(logger.Named("realtime"))
	defer hub.Close()

	store, err := backend.Open(cfg.Backend(), gdb, hub, logger.Named("backend"))
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	logger.Info("content backend ready",
		zap.String("driver", store.Driver),
		zap.Bool("configured", store.Configured),
	)

	projects := service.NewProjectService(store.Projects, hub, logger.Named("projects"))
	posts := service.NewBlogPostService(store.BlogPosts, hub, logger.Named("blog_posts"))
	projects.Start(ctx)
	defer projects.Stop()
	posts.Start(ctx)
	defer posts.Stop()

	api := handler.NewAPI(handler.Options{
		Users:    gdb,
		Store:    store,
		Projects: projects,
		Posts:    posts,
		Config:   cfg,
		Logger:   logger.Named("http"),
	})
	engine, err := router.SetupRouter(cfg, api, logger)
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.WatchDatabase && store.Driver == config.DriverSQLite {
		group.Go(func() error {
			err := realtime.WatchDatabase(groupCtx, cfg.DatabasePath, hub, logger.Named("watch"),
				backend.TableProjects, backend.TableBlogPosts)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("database watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	return group.Wait()
}
