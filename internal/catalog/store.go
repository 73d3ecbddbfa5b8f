package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schema string

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store provides access to catalog records. Registration collaborators
// write through it; the resolve-then-extract core only reads snapshots.
type Store struct {
	db *sql.DB
}

// NewStore creates a catalog store on an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init applies the embedded schema. Safe to call on an existing database.
func (s *Store) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// mapSQLiteError converts sqlite driver errors to package sentinels.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; match on the message.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

// AddMovie inserts a movie and sets its ID.
func (s *Store) AddMovie(m *Movie) error {
	result, err := s.db.Exec(`
		INSERT INTO movies (title, original_title, year, path, popularity, hidden)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Title, m.OriginalTitle, m.Year, m.Path, m.Popularity, m.Hidden,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
	}
	m.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	return nil
}

// AddShow inserts a show and sets its ID.
func (s *Store) AddShow(sh *Show) error {
	result, err := s.db.Exec(`INSERT INTO shows (name) VALUES (?)`, sh.Name)
	if err != nil {
		return fmt.Errorf("insert show: %w", mapSQLiteError(err))
	}
	sh.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	return nil
}

// AddEpisode inserts an episode and sets its ID.
func (s *Store) AddEpisode(e *Episode) error {
	result, err := s.db.Exec(`
		INSERT INTO episodes (show_id, season, episode, title, path, hidden)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ShowID, e.Season, e.Episode, e.Title, e.Path, e.Hidden,
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", mapSQLiteError(err))
	}
	e.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	return nil
}

// AddSong inserts a song and sets its ID.
func (s *Store) AddSong(sg *Song) error {
	result, err := s.db.Exec(`
		INSERT INTO songs (title, artist, locator, hidden)
		VALUES (?, ?, ?, ?)`,
		sg.Title, sg.Artist, sg.Locator, sg.Hidden,
	)
	if err != nil {
		return fmt.Errorf("insert song: %w", mapSQLiteError(err))
	}
	sg.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	return nil
}

// Movies returns the visible movie snapshot in insertion order. Hidden
// rows never leave the store, which is what keeps them out of resolution.
func (s *Store) Movies() ([]*Movie, error) {
	rows, err := s.db.Query(`
		SELECT id, title, original_title, year, path, popularity, hidden
		FROM movies WHERE hidden = 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.OriginalTitle, &m.Year, &m.Path, &m.Popularity, &m.Hidden); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// Shows returns the show snapshot in insertion order.
func (s *Store) Shows() ([]*Show, error) {
	rows, err := s.db.Query(`SELECT id, name FROM shows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	var shows []*Show
	for rows.Next() {
		sh := &Show{}
		if err := rows.Scan(&sh.ID, &sh.Name); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, sh)
	}
	return shows, rows.Err()
}

// Songs returns the visible song snapshot in insertion order.
func (s *Store) Songs() ([]*Song, error) {
	rows, err := s.db.Query(`
		SELECT id, title, artist, locator, hidden
		FROM songs WHERE hidden = 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	var songs []*Song
	for rows.Next() {
		sg := &Song{}
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Artist, &sg.Locator, &sg.Hidden); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, sg)
	}
	return songs, rows.Err()
}

// EpisodeByNumber looks up one episode by its (show, season, episode)
// triple. Returns ErrNotFound when the triple is absent or hidden.
func (s *Store) EpisodeByNumber(show *Show, season, episode int) (*Episode, error) {
	e := &Episode{}
	err := s.db.QueryRow(`
		SELECT id, show_id, season, episode, title, path, hidden
		FROM episodes
		WHERE show_id = ? AND season = ? AND episode = ? AND hidden = 0`,
		show.ID, season, episode,
	).Scan(&e.ID, &e.ShowID, &e.Season, &e.Episode, &e.Title, &e.Path, &e.Hidden)
	if err != nil {
		return nil, fmt.Errorf("episode s%02de%02d of show %d: %w",
			season, episode, show.ID, mapSQLiteError(err))
	}
	e.Show = show
	return e, nil
}
