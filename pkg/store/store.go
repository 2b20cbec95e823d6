// Package store persists client state (theme, settings, search history)
// in a small sqlite key-value table. It stands in for the browser-side
// key-value storage the demo page would otherwise use.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Keys under which well-known state lives.
const (
	KeyTheme    = "theme"
	KeySettings = "d1ks_settings"
	KeyHistory  = "d1ks_search_history"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// SafeSearch levels.
const (
	SafeSearchOff      = "off"
	SafeSearchModerate = "moderate"
	SafeSearchStrict   = "strict"
)

// Settings is the user preference object. Loaded at startup, mutated by
// user action, persisted on every change.
type Settings struct {
	SaveHistory    bool   `json:"saveHistory"`
	ResultsPerPage int    `json:"resultsPerPage"`
	SafeSearch     string `json:"safeSearch"`
	Language       string `json:"language"`
}

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		SaveHistory:    true,
		ResultsPerPage: 10,
		SafeSearch:     SafeSearchModerate,
		Language:       "en",
	}
}

// Store is a sqlite-backed key-value store. Safe for concurrent use; the
// underlying *sql.DB serializes access.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the state database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, and whether it exists.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading state key %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing state key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting state key %s: %w", key, err)
	}
	return nil
}

// LoadSettings returns the persisted settings, or defaults when nothing has
// been saved yet.
func (s *Store) LoadSettings() (Settings, error) {
	raw, ok, err := s.Get(KeySettings)
	if err != nil {
		return DefaultSettings(), err
	}
	if !ok {
		return DefaultSettings(), nil
	}
	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("decoding settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists settings.
func (s *Store) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return s.Put(KeySettings, string(raw))
}

// LoadHistory returns the persisted search history, newest first. A missing
// key yields an empty list.
func (s *Store) LoadHistory() ([]string, error) {
	raw, ok, err := s.Get(KeyHistory)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decoding search history: %w", err)
	}
	return entries, nil
}

// SaveHistory persists entries (newest first) as a JSON array.
func (s *Store) SaveHistory(entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding search history: %w", err)
	}
	return s.Put(KeyHistory, string(raw))
}

// Theme returns the persisted theme preference, defaulting to light.
func (s *Store) Theme() (string, error) {
	value, ok, err := s.Get(KeyTheme)
	if err != nil {
		return ThemeLight, err
	}
	if !ok || (value != ThemeDark && value != ThemeLight) {
		return ThemeLight, nil
	}
	return value, nil
}

// SetTheme persists the theme preference. Unknown values are rejected.
func (s *Store) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.Put(KeyTheme, theme)
}
