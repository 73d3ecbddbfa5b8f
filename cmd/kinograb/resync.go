package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinograb/kinograb/internal/resolver"
	"github.com/kinograb/kinograb/internal/subtitle"
)

var resyncLanguage string

var resyncCmd = &cobra.Command{
	Use:   "resync [query]",
	Short: "Realign an item's subtitle track against its media",
	Long: `Realign an item's subtitle track against its media file using
ffsubsync. The track is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runResync,
}

func init() {
	resyncCmd.Flags().StringVar(&resyncLanguage, "lang", "", "Subtitle language (default from config)")
	rootCmd.AddCommand(resyncCmd)
}

func runResync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	lang := resyncLanguage
	if lang == "" {
		lang = cfg.Subtitles.Language
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	item, err := resolver.Resolve(args[0], store)
	if err != nil {
		return err
	}
	if !item.Subtitled() {
		return fmt.Errorf("%s has no subtitle track to resync", item.DisplayTitle())
	}

	subPath, err := subtitle.SiblingPath(item.Location(), lang)
	if err != nil {
		return err
	}

	logger.Info("resyncing subtitles",
		"item", item.DisplayTitle(), "subtitles", subPath, "timeout", cfg.Resync.Timeout)

	resync := subtitle.FFSubSync(cfg.Resync.Binary, cfg.Resync.Timeout.Duration)
	if err := resync(cmd.Context(), item.Location(), subPath); err != nil {
		return err
	}
	fmt.Printf("resynced %s\n", subPath)
	return nil
}
