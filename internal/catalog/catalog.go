// Package catalog models the locally archived media records and the
// sqlite store that holds them.
package catalog

import "fmt"

// Kind distinguishes the closed set of media variants.
type Kind string

const (
	KindMovie    Kind = "movie"
	KindEpisode  Kind = "episode"
	KindSong     Kind = "song"
	KindExternal Kind = "external"
)

// Media is the capability surface shared by every variant. The set of
// kinds is fixed; nothing outside this package implements it.
type Media interface {
	Kind() Kind
	// Identify returns the canonical comparison string resolution
	// matches queries against.
	Identify() string
	DisplayTitle() string
	// Location is a file-system path for local media or a remote
	// locator for songs and external videos.
	Location() string
	// Subtitled reports whether quote lookups are valid for this kind.
	Subtitled() bool
}

// Movie is a film stored locally.
type Movie struct {
	ID            int64
	Title         string
	OriginalTitle string
	Year          int
	Path          string
	Popularity    float64
	Hidden        bool
}

func (m *Movie) Kind() Kind       { return KindMovie }
func (m *Movie) Location() string { return m.Path }
func (m *Movie) Subtitled() bool  { return true }

func (m *Movie) Identify() string {
	return fmt.Sprintf("%s %d", m.Title, m.Year)
}

// DisplayTitle includes the original title when it differs from the
// english one and is short enough to be readable.
func (m *Movie) DisplayTitle() string {
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title && len(m.OriginalTitle) < 30 {
		return fmt.Sprintf("%s [%s] (%d)", m.OriginalTitle, m.Title, m.Year)
	}
	return fmt.Sprintf("%s (%d)", m.Title, m.Year)
}

// Show is a TV show; episodes hang off it. Shows themselves are not
// extractable media, they only anchor episode resolution.
type Show struct {
	ID   int64
	Name string
}

// Episode is one episode of a show, stored locally.
type Episode struct {
	ID      int64
	ShowID  int64
	Season  int
	Episode int
	Title   string
	Path    string
	Hidden  bool

	// Show is populated by EpisodeByNumber for display purposes.
	Show *Show
}

func (e *Episode) Kind() Kind       { return KindEpisode }
func (e *Episode) Location() string { return e.Path }
func (e *Episode) Subtitled() bool  { return true }

func (e *Episode) Identify() string {
	if e.Show != nil {
		return e.Show.Name
	}
	return e.Title
}

func (e *Episode) DisplayTitle() string {
	name := e.Title
	if e.Show != nil {
		name = e.Show.Name
	}
	return fmt.Sprintf("%s S%02dE%02d", name, e.Season, e.Episode)
}

// Song is an archived music video, addressed by a remote locator.
type Song struct {
	ID      int64
	Title   string
	Artist  string
	Locator string
	Hidden  bool
}

func (s *Song) Kind() Kind       { return KindSong }
func (s *Song) Location() string { return s.Locator }
func (s *Song) Subtitled() bool  { return false }

func (s *Song) Identify() string {
	return fmt.Sprintf("%s - %s", s.Artist, s.Title)
}

func (s *Song) DisplayTitle() string { return s.Identify() }

// ExternalVideo is a remote video outside the curated catalog.
type ExternalVideo struct {
	ID      string
	Title   string
	Locator string
}

func (v *ExternalVideo) Kind() Kind           { return KindExternal }
func (v *ExternalVideo) Location() string     { return v.Locator }
func (v *ExternalVideo) Subtitled() bool      { return false }
func (v *ExternalVideo) Identify() string     { return v.Title }
func (v *ExternalVideo) DisplayTitle() string { return v.Title }
