package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinograb/kinograb/internal/catalog"
)

// fakeView is an in-memory catalog snapshot.
type fakeView struct {
	movies   []*catalog.Movie
	shows    []*catalog.Show
	songs    []*catalog.Song
	episodes map[[3]int64]*catalog.Episode
}

func (f *fakeView) Movies() ([]*catalog.Movie, error) { return f.movies, nil }
func (f *fakeView) Shows() ([]*catalog.Show, error)   { return f.shows, nil }
func (f *fakeView) Songs() ([]*catalog.Song, error)   { return f.songs, nil }

func (f *fakeView) EpisodeByNumber(show *catalog.Show, season, episode int) (*catalog.Episode, error) {
	if ep, ok := f.episodes[[3]int64{show.ID, int64(season), int64(episode)}]; ok {
		ep.Show = show
		return ep, nil
	}
	return nil, catalog.ErrNotFound
}

func TestResolveMovieExact(t *testing.T) {
	view := &fakeView{movies: []*catalog.Movie{
		{ID: 1, Title: "Taxi Driver", Year: 1976},
	}}

	m, err := ResolveMovie("taxi driver 1976", view)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
}

func TestResolveMovieFuzzy(t *testing.T) {
	view := &fakeView{movies: []*catalog.Movie{
		{ID: 1, Title: "The Godfather", Year: 1972},
		{ID: 2, Title: "The Godfather Part II", Year: 1974},
	}}

	m, err := ResolveMovie("godfather part ii 1974", view)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.ID)
}

func TestResolveMovieNotFoundReportsBest(t *testing.T) {
	view := &fakeView{movies: []*catalog.Movie{
		{ID: 1, Title: "Stalker", Year: 1979},
	}}

	_, err := ResolveMovie("some entirely unrelated request", view)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Stalker (1979)")
}

func TestResolveMovieEmptyCatalog(t *testing.T) {
	_, err := ResolveMovie("anything", &fakeView{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveMovieTieKeepsEarlier(t *testing.T) {
	// Identical comparison strings score identically; the item scanned
	// first must win.
	view := &fakeView{movies: []*catalog.Movie{
		{ID: 1, Title: "Solaris", Year: 1972},
		{ID: 2, Title: "Solaris", Year: 1972},
	}}

	m, err := ResolveMovie("solaris 1972", view)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
}

func TestResolveMovieQueryNormalized(t *testing.T) {
	view := &fakeView{movies: []*catalog.Movie{
		{ID: 1, Title: "Taxi Driver", Year: 1976},
	}}

	m, err := ResolveMovie("  TAXI DRIVER 1976  ", view)
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
}

func TestResolveShowThresholdStricter(t *testing.T) {
	view := &fakeView{shows: []*catalog.Show{
		{ID: 1, Name: "The Sopranos"},
	}}

	_, err := ResolveShow("soprano sings", view)
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := ResolveShow("the sopranos", view)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
}

func TestResolveEpisode(t *testing.T) {
	show := &catalog.Show{ID: 7, Name: "The Sopranos"}
	view := &fakeView{
		shows: []*catalog.Show{show},
		episodes: map[[3]int64]*catalog.Episode{
			{7, 1, 2}: {ID: 42, ShowID: 7, Season: 1, Episode: 2, Title: "46 Long"},
		},
	}

	ep, err := ResolveEpisode("the sopranos s01e02", view)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ep.ID)
	assert.Equal(t, "The Sopranos S01E02", ep.DisplayTitle())
}

func TestResolveEpisodeAbsentTriple(t *testing.T) {
	view := &fakeView{
		shows:    []*catalog.Show{{ID: 7, Name: "The Sopranos"}},
		episodes: map[[3]int64]*catalog.Episode{},
	}

	_, err := ResolveEpisode("the sopranos s09e99", view)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveSong(t *testing.T) {
	view := &fakeView{songs: []*catalog.Song{
		{ID: 1, Title: "Heroes", Artist: "David Bowie"},
	}}

	s, err := ResolveSong("david bowie - heroes", view)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)

	_, err = ResolveSong("nothing remotely similar at all", view)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveDispatch(t *testing.T) {
	show := &catalog.Show{ID: 1, Name: "Twin Peaks"}
	view := &fakeView{
		movies: []*catalog.Movie{{ID: 5, Title: "Blue Velvet", Year: 1986}},
		shows:  []*catalog.Show{show},
		episodes: map[[3]int64]*catalog.Episode{
			{1, 2, 1}: {ID: 9, ShowID: 1, Season: 2, Episode: 1},
		},
	}

	m, err := Resolve("blue velvet 1986", view)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindMovie, m.Kind())

	e, err := Resolve("twin peaks s02e01", view)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindEpisode, e.Kind())

	v, err := Resolve("https://www.youtube.com/watch?v=dQw4w9WgXcQ", view)
	require.NoError(t, err)
	assert.Equal(t, catalog.KindExternal, v.Kind())
	assert.Equal(t, "dQw4w9WgXcQ", v.(*catalog.ExternalVideo).ID)
}

func TestResolveExternalShortURL(t *testing.T) {
	v, err := Resolve("https://youtu.be/dQw4w9WgXcQ", &fakeView{})
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", v.(*catalog.ExternalVideo).ID)
}

func TestHiddenNeverResolves(t *testing.T) {
	// The snapshot contract: hidden rows never appear in listings, so a
	// view with only hidden items behaves as empty.
	view := &fakeView{}
	_, err := ResolveMovie("hidden film 2020", view)
	assert.ErrorIs(t, err, ErrNotFound)
}
