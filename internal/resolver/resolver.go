// Package resolver turns free-text queries into concrete catalog records
// by fuzzy matching against canonical comparison strings.
package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/kinograb/kinograb/internal/catalog"
	"github.com/kinograb/kinograb/pkg/fuzzy"
)

// ErrNotFound indicates no candidate cleared the acceptance threshold.
// The wrapped message carries the nearest candidate when one was seen.
var ErrNotFound = errors.New("not found")

// Per-kind acceptance thresholds. Show names are shorter and noisier
// than "title year" strings, so they demand a closer match.
const (
	movieThreshold = 59
	songThreshold  = 59
	showThreshold  = 77

	// shortCircuit ends the catalog scan on a near-exact match so
	// worst-case latency stays bounded on large catalogs.
	shortCircuit = 98
)

// episodeRegex captures a trailing episode designator like "S01E02".
var episodeRegex = regexp.MustCompile(`(?i)\bs(\d{1,2})\s*e(\d{1,2})\s*$`)

// View is the read-only catalog snapshot resolution runs against.
// Hidden records never appear in its listings.
type View interface {
	Movies() ([]*catalog.Movie, error)
	Shows() ([]*catalog.Show, error)
	Songs() ([]*catalog.Song, error)
	EpisodeByNumber(show *catalog.Show, season, episode int) (*catalog.Episode, error)
}

// Resolve maps a query to one media record. Queries carrying a trailing
// episode designator resolve to episodes, URL queries to external
// videos, everything else to movies. Songs go through ResolveSong since
// their requests arrive on a separate surface.
func Resolve(query string, view View) (catalog.Media, error) {
	if isURL(query) {
		return resolveExternal(query)
	}
	if episodeRegex.MatchString(query) {
		return ResolveEpisode(query, view)
	}
	return ResolveMovie(query, view)
}

// ResolveMovie finds a movie by fuzzy match against "{title} {year}".
func ResolveMovie(query string, view View) (*catalog.Movie, error) {
	movies, err := view.Movies()
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	best, score := scanIdentities(query, len(movies), func(i int) string {
		return movies[i].Identify()
	})
	if best < 0 {
		return nil, fmt.Errorf("%w: movie %q", ErrNotFound, query)
	}
	if score < movieThreshold {
		return nil, fmt.Errorf("%w: movie %q (maybe you meant %q?)",
			ErrNotFound, query, movies[best].DisplayTitle())
	}
	return movies[best], nil
}

// ResolveShow finds a TV show by fuzzy match against its name.
func ResolveShow(query string, view View) (*catalog.Show, error) {
	shows, err := view.Shows()
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	best, score := scanIdentities(query, len(shows), func(i int) string {
		return shows[i].Name
	})
	if best < 0 {
		return nil, fmt.Errorf("%w: tv show %q", ErrNotFound, query)
	}
	if score < showThreshold {
		return nil, fmt.Errorf("%w: tv show %q (maybe you meant %q?)",
			ErrNotFound, query, shows[best].Name)
	}
	return shows[best], nil
}

// ResolveEpisode strips the trailing designator, resolves the parent
// show by name, then looks the episode up by its exact
// (show, season, episode) triple.
func ResolveEpisode(query string, view View) (*catalog.Episode, error) {
	match := episodeRegex.FindStringSubmatch(query)
	if match == nil {
		return nil, fmt.Errorf("%w: no episode designator in %q", ErrNotFound, query)
	}
	season, _ := strconv.Atoi(match[1])
	episode, _ := strconv.Atoi(match[2])

	show, err := ResolveShow(episodeRegex.ReplaceAllString(query, ""), view)
	if err != nil {
		return nil, err
	}

	ep, err := view.EpisodeByNumber(show, season, episode)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: episode %q", ErrNotFound, query)
		}
		return nil, err
	}
	return ep, nil
}

// ResolveSong finds a song by fuzzy match against "{artist} - {title}".
func ResolveSong(query string, view View) (*catalog.Song, error) {
	songs, err := view.Songs()
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	best, score := scanIdentities(query, len(songs), func(i int) string {
		return songs[i].Identify()
	})
	if best < 0 {
		return nil, fmt.Errorf("%w: song %q", ErrNotFound, query)
	}
	if score < songThreshold {
		return nil, fmt.Errorf("%w: song %q (maybe you meant %q?)",
			ErrNotFound, query, songs[best].DisplayTitle())
	}
	return songs[best], nil
}

// scanIdentities runs the catalog-order scan: the best-so-far candidate
// is replaced only on strict improvement (ties keep the earlier item),
// and a near-exact match ends the scan immediately. Returns (-1, 0) on
// an empty catalog.
func scanIdentities(query string, n int, identify func(i int) string) (int, int) {
	query = strings.ToLower(strings.TrimSpace(query))

	best := -1
	bestScore := 0
	for i := 0; i < n; i++ {
		score := fuzzy.Ratio(query, strings.ToLower(identify(i)))
		if score > bestScore {
			best = i
			bestScore = score
			if score > shortCircuit {
				break
			}
		}
	}
	if best == -1 && n > 0 {
		// Nothing scored above zero; keep the first item so the
		// failure can still name a candidate.
		best = 0
	}
	return best, bestScore
}

func isURL(query string) bool {
	return strings.HasPrefix(query, "http://") || strings.HasPrefix(query, "https://")
}

// resolveExternal treats the query as a video URL and derives a stable
// ID from it. Title metadata belongs to the excluded provider layer.
func resolveExternal(query string) (*catalog.ExternalVideo, error) {
	parsed, err := url.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid video url %q", ErrNotFound, query)
	}

	id := parsed.Query().Get("v")
	if id == "" {
		id = strings.Trim(parsed.Path, "/")
	}
	if id == "" {
		return nil, fmt.Errorf("%w: invalid video url %q", ErrNotFound, query)
	}

	return &catalog.ExternalVideo{ID: id, Title: id, Locator: query}, nil
}
