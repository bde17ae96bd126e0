// Package cache keeps a local sqlite snapshot of the last fetched
// material and note listings so panes can render immediately on
// startup while the network refresh runs. The backend stays the
// system of record; this store is display state only and any of it
// can be discarded.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/marcus/margin/internal/api"
)

// Store holds cached listings in a single sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path. The
// driver is picked at build time: go-sqlite3 on cgo builds,
// modernc sqlite otherwise.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS collections (
    key TEXT PRIMARY KEY,
    fingerprint INTEGER NOT NULL,
    fetched_at TEXT NOT NULL,
    page INTEGER DEFAULT 0,
    total_pages INTEGER DEFAULT 0,
    total INTEGER DEFAULT 0
);
CREATE TABLE IF NOT EXISTS materials (
    list_key TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    title TEXT NOT NULL,
    authors TEXT NOT NULL,
    pages INTEGER NOT NULL,
    material_type TEXT NOT NULL,
    tags TEXT NOT NULL,
    link TEXT NOT NULL,
    added_at TEXT NOT NULL,
    is_outlined INTEGER NOT NULL,
    PRIMARY KEY (list_key, position)
);
CREATE TABLE IF NOT EXISTS notes (
    list_key TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    material_id TEXT NOT NULL,
    number INTEGER NOT NULL,
    content TEXT NOT NULL,
    chapter INTEGER NOT NULL,
    page INTEGER NOT NULL,
    tags TEXT NOT NULL,
    added_at TEXT NOT NULL,
    PRIMARY KEY (list_key, position)
);
`
	_, err := s.db.Exec(schema)
	return err
}

// MaterialsKey names the cached collection for a status listing.
func MaterialsKey(status string) string {
	return "materials:" + status
}

// NotesKey names the cached collection for a notes listing. Search
// results are never cached; callers skip the cache for searches.
func NotesKey(materialID string, page int) string {
	if page < 1 {
		page = 1
	}
	return "notes:" + materialID + ":" + strconv.Itoa(page)
}

// fingerprint hashes a payload for change detection.
func fingerprint(v any) (int64, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return int64(xxhash.Sum64(b)), nil
}

// SaveMaterials replaces the cached listing for key. When the payload
// fingerprint is unchanged only the fetch time is bumped; changed
// reports whether rows were rewritten.
func (s *Store) SaveMaterials(key string, ms []api.Material) (changed bool, err error) {
	fp, err := fingerprint(ms)
	if err != nil {
		return false, fmt.Errorf("save materials: %w", err)
	}

	same, err := s.touchIfUnchanged(key, fp)
	if err != nil {
		return false, fmt.Errorf("save materials: %w", err)
	}
	if same {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("save materials: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM materials WHERE list_key = ?`, key); err != nil {
		return false, fmt.Errorf("save materials: %w", err)
	}
	for i, m := range ms {
		_, err := tx.Exec(`
			INSERT INTO materials (list_key, position, id, title, authors, pages, material_type, tags, link, added_at, is_outlined)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, key, i, m.ID, m.Title, m.Authors, m.Pages, m.Type, m.Tags, m.Link,
			m.AddedAt.UTC().Format(time.RFC3339), boolToInt(m.IsOutlined))
		if err != nil {
			return false, fmt.Errorf("save materials: %w", err)
		}
	}
	if err := upsertCollection(tx, key, fp, 0, 0, 0); err != nil {
		return false, fmt.Errorf("save materials: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("save materials: %w", err)
	}
	return true, nil
}

// Materials loads a cached listing. ok is false when the key was never
// cached.
func (s *Store) Materials(key string) (ms []api.Material, fetchedAt time.Time, ok bool, err error) {
	fetchedAt, _, ok, err = s.collection(key)
	if err != nil || !ok {
		return nil, time.Time{}, ok, err
	}

	rows, err := s.db.Query(`
		SELECT id, title, authors, pages, material_type, tags, link, added_at, is_outlined
		FROM materials WHERE list_key = ? ORDER BY position
	`, key)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("load materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m api.Material
		var addedAt string
		var outlined int
		if err := rows.Scan(&m.ID, &m.Title, &m.Authors, &m.Pages, &m.Type, &m.Tags, &m.Link, &addedAt, &outlined); err != nil {
			return nil, time.Time{}, false, fmt.Errorf("scan material: %w", err)
		}
		m.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		m.IsOutlined = outlined == 1
		ms = append(ms, m)
	}
	return ms, fetchedAt, true, rows.Err()
}

// SaveNotes replaces the cached notes page for key.
func (s *Store) SaveNotes(key string, page api.NotesPage) (changed bool, err error) {
	fp, err := fingerprint(page)
	if err != nil {
		return false, fmt.Errorf("save notes: %w", err)
	}

	same, err := s.touchIfUnchanged(key, fp)
	if err != nil {
		return false, fmt.Errorf("save notes: %w", err)
	}
	if same {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("save notes: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM notes WHERE list_key = ?`, key); err != nil {
		return false, fmt.Errorf("save notes: %w", err)
	}
	for i, n := range page.Notes {
		tags, err := json.Marshal(n.Tags)
		if err != nil {
			return false, fmt.Errorf("save notes: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO notes (list_key, position, id, material_id, number, content, chapter, page, tags, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, key, i, n.ID, n.MaterialID, n.Number, n.Content, n.Chapter, n.Page,
			string(tags), n.AddedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return false, fmt.Errorf("save notes: %w", err)
		}
	}
	if err := upsertCollection(tx, key, fp, page.Page, page.TotalPages, page.Total); err != nil {
		return false, fmt.Errorf("save notes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("save notes: %w", err)
	}
	return true, nil
}

// Notes loads a cached notes page.
func (s *Store) Notes(key string) (page api.NotesPage, fetchedAt time.Time, ok bool, err error) {
	fetchedAt, meta, ok, err := s.collectionMeta(key)
	if err != nil || !ok {
		return api.NotesPage{}, time.Time{}, ok, err
	}
	page.Page, page.TotalPages, page.Total = meta[0], meta[1], meta[2]

	rows, err := s.db.Query(`
		SELECT id, material_id, number, content, chapter, page, tags, added_at
		FROM notes WHERE list_key = ? ORDER BY position
	`, key)
	if err != nil {
		return api.NotesPage{}, time.Time{}, false, fmt.Errorf("load notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n api.Note
		var tags, addedAt string
		if err := rows.Scan(&n.ID, &n.MaterialID, &n.Number, &n.Content, &n.Chapter, &n.Page, &tags, &addedAt); err != nil {
			return api.NotesPage{}, time.Time{}, false, fmt.Errorf("scan note: %w", err)
		}
		if tags != "" && tags != "null" {
			_ = json.Unmarshal([]byte(tags), &n.Tags)
		}
		n.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		page.Notes = append(page.Notes, n)
	}
	return page, fetchedAt, true, rows.Err()
}

// touchIfUnchanged bumps fetched_at and reports true when the stored
// fingerprint matches fp.
func (s *Store) touchIfUnchanged(key string, fp int64) (bool, error) {
	var stored int64
	err := s.db.QueryRow(`SELECT fingerprint FROM collections WHERE key = ?`, key).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != fp {
		return false, nil
	}
	_, err = s.db.Exec(`UPDATE collections SET fetched_at = ? WHERE key = ?`,
		time.Now().UTC().Format(time.RFC3339), key)
	return true, err
}

func upsertCollection(tx *sql.Tx, key string, fp int64, page, totalPages, total int) error {
	_, err := tx.Exec(`
		INSERT INTO collections (key, fingerprint, fetched_at, page, total_pages, total)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			fetched_at = excluded.fetched_at,
			page = excluded.page,
			total_pages = excluded.total_pages,
			total = excluded.total
	`, key, fp, time.Now().UTC().Format(time.RFC3339), page, totalPages, total)
	return err
}

func (s *Store) collection(key string) (time.Time, [3]int, bool, error) {
	return s.collectionMeta(key)
}

func (s *Store) collectionMeta(key string) (time.Time, [3]int, bool, error) {
	var fetched string
	var meta [3]int
	err := s.db.QueryRow(`
		SELECT fetched_at, page, total_pages, total FROM collections WHERE key = ?
	`, key).Scan(&fetched, &meta[0], &meta[1], &meta[2])
	if err == sql.ErrNoRows {
		return time.Time{}, meta, false, nil
	}
	if err != nil {
		return time.Time{}, meta, false, fmt.Errorf("load collection: %w", err)
	}
	t, _ := time.Parse(time.RFC3339, fetched)
	return t, meta, true, nil
}

// dsn builds the driver-specific connection string.
func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + dsnParams
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
