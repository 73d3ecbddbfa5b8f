package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kinograb/kinograb/internal/catalog"
	"github.com/kinograb/kinograb/internal/frame"
	"github.com/kinograb/kinograb/internal/request"
)

var (
	grabBrackets []string
	grabOutput   string
	grabLanguage string
	grabSong     bool
)

var grabCmd = &cobra.Command{
	Use:   "grab [query]...",
	Short: "Extract frames from catalog items",
	Long: `Extract frames from one or more catalog items.

Each -b bracket is either a timestamp or a quote, optionally nudged:

  kinograb grab "taxi driver 1976" -b "[12:03]" -b "[you talking to me]"
  kinograb grab "the sopranos s01e02" -b "[23:32.200 --plus 300]" -o out/

Multiple queries run concurrently, one extraction pipeline each.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrab,
}

func init() {
	grabCmd.Flags().StringArrayVarP(&grabBrackets, "bracket", "b", nil, "Frame spec: [timestamp] or [quote] (repeatable)")
	grabCmd.Flags().StringVarP(&grabOutput, "output", "o", ".", "Output directory for PNG frames")
	grabCmd.Flags().StringVar(&grabLanguage, "lang", "", "Subtitle language (default from config)")
	grabCmd.Flags().BoolVar(&grabSong, "song", false, "Resolve queries against the song catalog")

	rootCmd.AddCommand(grabCmd)
}

// extractorAdapter narrows *frame.Extractor to the pipeline's interface.
type extractorAdapter struct {
	x *frame.Extractor
}

func (a extractorAdapter) Open(location string) (request.Session, error) {
	return a.x.Open(location)
}

func runGrab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	specs, err := request.ParseSpecs(grabBrackets)
	if err != nil {
		return err
	}

	lang := grabLanguage
	if lang == "" {
		lang = cfg.Subtitles.Language
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := os.MkdirAll(grabOutput, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pipeline := request.NewPipeline(
		store,
		extractorAdapter{frame.NewExtractor(cfg.Extractor.FFmpeg, cfg.Extractor.FFprobe, logger)},
		nil,
		cfg.Requests.MaxSpecs,
		logger,
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, query := range args {
		query := query
		g.Go(func() error {
			return grabOne(ctx, pipeline, query, specs, lang)
		})
	}
	return g.Wait()
}

func grabOne(ctx context.Context, pipeline *request.Pipeline, query string, specs []request.Spec, lang string) error {
	req := request.Request{
		Query:    query,
		Specs:    specs,
		Language: lang,
	}
	if grabSong {
		req.Kind = catalog.KindSong
	}

	result, err := pipeline.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", query, err)
	}

	for i, fr := range result.Frames {
		name := fmt.Sprintf("%s-%02d.png", slugify(result.Item.DisplayTitle()), i+1)
		if err := writePNG(filepath.Join(grabOutput, name), fr); err != nil {
			return err
		}
		fmt.Printf("%s  %s  %dx%d\n", name, fr.Grab.Offset, fr.Grab.Width, fr.Grab.Height)
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "skipped %q: %v\n", failure.Spec, failure.Err)
	}
	return nil
}

func writePNG(path string, fr request.FrameResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, fr.Grab.Image); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
