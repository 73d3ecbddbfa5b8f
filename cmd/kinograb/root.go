package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/kinograb/kinograb/internal/catalog"
	"github.com/kinograb/kinograb/internal/config"
	"github.com/kinograb/kinograb/internal/subtitle"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kinograb",
	Short: "Frame extraction from a curated media catalog",
	Long: `kinograb - frame extraction from a curated media catalog

Resolves free-text queries against the local catalog and pulls
single frames out of the matched media, by quote or by timestamp.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: discovered)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("kinograb {{.Version}}\n")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig loads the configured or discovered config file and applies
// the subtitle suffix overrides it carries.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	for lang, tag := range cfg.Subtitles.Suffixes {
		subtitle.AddLanguage(lang, tag)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}

// openStore opens the catalog database and ensures its schema exists.
func openStore(cfg *config.Config) (*catalog.Store, *sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}

	store := catalog.NewStore(db)
	if err := store.Init(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init db: %w", err)
	}
	return store, db, nil
}
