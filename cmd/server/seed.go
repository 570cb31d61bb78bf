package main

import (
	"fmt"
	"time"

	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo projects and blog posts into empty tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.Init(cfg.DatabasePath); err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		store, err := backend.Open(cfg.Backend(), db.DB, nil, logger.Named("backend"))
		if err != nil {
			return fmt.Errorf("open backend: %w", err)
		}
		defer store.Changes.Close()

		result, err := seed.Run(cmd.Context(), store.Projects, store.BlogPosts, time.Now(), logger)
		if err != nil {
			return err
		}
		logger.Info("seed finished",
			zap.String("driver", store.Driver),
			zap.Int("projects", result.Projects),
			zap.Int("blog_posts", result.BlogPosts),
		)
		return nil
	},
}
