package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string

	cfg    config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Bilingual portfolio site with an admin panel",
	Long: `portfolio serves a bilingual (English/Arabic) portfolio site: a home page with
projects and blog posts, detail pages, and a session protected admin panel for
managing both tables. Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path := strings.TrimSpace(configPath); path != "" {
			if err := os.Setenv("CONFIG_FILE", path); err != nil {
				return err
			}
		}

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if strings.TrimSpace(logLevel) != "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogLevel, cfg.GinMode)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (overrides CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
