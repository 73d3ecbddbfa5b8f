package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinograb/kinograb/internal/catalog"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Add records to the catalog",
}

var (
	movieTitle    string
	movieOriginal string
	movieYear     int
	moviePath     string

	showName string

	episodeShow   string
	episodeSeason int
	episodeNumber int
	episodeTitle  string
	episodePath   string

	songTitle   string
	songArtist  string
	songLocator string
)

var registerMovieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Register a movie",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *catalog.Store) error {
			m := &catalog.Movie{
				Title:         movieTitle,
				OriginalTitle: movieOriginal,
				Year:          movieYear,
				Path:          moviePath,
			}
			if err := store.AddMovie(m); err != nil {
				return err
			}
			fmt.Printf("registered movie %d: %s\n", m.ID, m.DisplayTitle())
			return nil
		})
	},
}

var registerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Register a TV show",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *catalog.Store) error {
			sh := &catalog.Show{Name: showName}
			if err := store.AddShow(sh); err != nil {
				return err
			}
			fmt.Printf("registered show %d: %s\n", sh.ID, sh.Name)
			return nil
		})
	},
}

var registerEpisodeCmd = &cobra.Command{
	Use:   "episode",
	Short: "Register an episode of a known show",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *catalog.Store) error {
			show, err := findShow(store, episodeShow)
			if err != nil {
				return err
			}
			e := &catalog.Episode{
				ShowID:  show.ID,
				Season:  episodeSeason,
				Episode: episodeNumber,
				Title:   episodeTitle,
				Path:    episodePath,
			}
			if err := store.AddEpisode(e); err != nil {
				return err
			}
			e.Show = show
			fmt.Printf("registered episode %d: %s\n", e.ID, e.DisplayTitle())
			return nil
		})
	},
}

var registerSongCmd = &cobra.Command{
	Use:   "song",
	Short: "Register a music video",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *catalog.Store) error {
			sg := &catalog.Song{
				Title:   songTitle,
				Artist:  songArtist,
				Locator: songLocator,
			}
			if err := store.AddSong(sg); err != nil {
				return err
			}
			fmt.Printf("registered song %d: %s\n", sg.ID, sg.DisplayTitle())
			return nil
		})
	},
}

func init() {
	registerMovieCmd.Flags().StringVar(&movieTitle, "title", "", "Movie title (required)")
	registerMovieCmd.Flags().StringVar(&movieOriginal, "original-title", "", "Original (non-english) title")
	registerMovieCmd.Flags().IntVar(&movieYear, "year", 0, "Release year (required)")
	registerMovieCmd.Flags().StringVar(&moviePath, "path", "", "Media file path (required)")
	registerMovieCmd.MarkFlagRequired("title")
	registerMovieCmd.MarkFlagRequired("year")
	registerMovieCmd.MarkFlagRequired("path")

	registerShowCmd.Flags().StringVar(&showName, "name", "", "Show name (required)")
	registerShowCmd.MarkFlagRequired("name")

	registerEpisodeCmd.Flags().StringVar(&episodeShow, "show", "", "Show name (required)")
	registerEpisodeCmd.Flags().IntVar(&episodeSeason, "season", 0, "Season number (required)")
	registerEpisodeCmd.Flags().IntVar(&episodeNumber, "episode", 0, "Episode number (required)")
	registerEpisodeCmd.Flags().StringVar(&episodeTitle, "title", "", "Episode title")
	registerEpisodeCmd.Flags().StringVar(&episodePath, "path", "", "Media file path (required)")
	registerEpisodeCmd.MarkFlagRequired("show")
	registerEpisodeCmd.MarkFlagRequired("season")
	registerEpisodeCmd.MarkFlagRequired("episode")
	registerEpisodeCmd.MarkFlagRequired("path")

	registerSongCmd.Flags().StringVar(&songTitle, "title", "", "Song title (required)")
	registerSongCmd.Flags().StringVar(&songArtist, "artist", "", "Artist (required)")
	registerSongCmd.Flags().StringVar(&songLocator, "locator", "", "Media path or URL (required)")
	registerSongCmd.MarkFlagRequired("title")
	registerSongCmd.MarkFlagRequired("artist")
	registerSongCmd.MarkFlagRequired("locator")

	registerCmd.AddCommand(registerMovieCmd, registerShowCmd, registerEpisodeCmd, registerSongCmd)
	rootCmd.AddCommand(registerCmd)
}

// withStore loads config, opens the catalog, runs fn, and closes up.
func withStore(fn func(*catalog.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(store)
}

// findShow matches a registered show by exact name, case-insensitively.
func findShow(store *catalog.Store, name string) (*catalog.Show, error) {
	shows, err := store.Shows()
	if err != nil {
		return nil, err
	}
	for _, sh := range shows {
		if strings.EqualFold(sh.Name, name) {
			return sh, nil
		}
	}
	return nil, fmt.Errorf("show %q not registered", name)
}
