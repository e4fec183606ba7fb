// Package store manages all data persistence via DuckDB.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/intelligrit/geostamp/internal/model"
)

// Store manages uploaded-image records and the location history.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "geostamp.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS images_seq",
		"CREATE SEQUENCE IF NOT EXISTS location_history_seq",
	}
	for _, seq := range seqs {
		if _, err := s.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS images (
			id INTEGER PRIMARY KEY DEFAULT nextval('images_seq'),
			filename TEXT NOT NULL,
			unique_filename TEXT NOT NULL UNIQUE,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			location_name TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			path TEXT NOT NULL,
			sidecar_path TEXT,
			geotagged_path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS location_history (
			id INTEGER PRIMARY KEY DEFAULT nextval('location_history_seq'),
			name TEXT NOT NULL,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			use_count INTEGER NOT NULL DEFAULT 1,
			favorite BOOLEAN NOT NULL DEFAULT false,
			last_used_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// InsertImage stores an upload record and fills in its assigned ID.
func (s *Store) InsertImage(img *model.Image) error {
	img.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.DB.QueryRow(`INSERT INTO images
		(filename, unique_filename, lat, lng, location_name, timestamp, path, sidecar_path, geotagged_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		img.Filename, img.UniqueFilename, img.Lat, img.Lng, img.LocationName,
		img.Timestamp, img.Path, img.SidecarPath, img.GeotaggedPath, img.CreatedAt,
	).Scan(&img.ID)
}

// ListImages returns all uploads, oldest first.
func (s *Store) ListImages() ([]model.Image, error) {
	rows, err := s.DB.Query(`SELECT id, filename, unique_filename, lat, lng, location_name,
		timestamp, path, sidecar_path, geotagged_path, created_at FROM images ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// GetImage loads a single upload. Returns sql.ErrNoRows when absent.
func (s *Store) GetImage(id int64) (*model.Image, error) {
	row := s.DB.QueryRow(`SELECT id, filename, unique_filename, lat, lng, location_name,
		timestamp, path, sidecar_path, geotagged_path, created_at FROM images WHERE id = ?`, id)
	img, err := scanImage(row)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(r rowScanner) (model.Image, error) {
	var img model.Image
	var sidecar, geotagged sql.NullString
	err := r.Scan(&img.ID, &img.Filename, &img.UniqueFilename, &img.Lat, &img.Lng,
		&img.LocationName, &img.Timestamp, &img.Path, &sidecar, &geotagged, &img.CreatedAt)
	if err != nil {
		return img, err
	}
	img.SidecarPath = sidecar.String
	img.GeotaggedPath = geotagged.String
	return img, nil
}

// coordEpsilon is how close two history coordinates must be to count as
// the same place (~11 m at the equator).
const coordEpsilon = 1e-4

// RecordUse upserts a location-history entry: an existing entry with the
// same name and (approximately) the same coordinates gets its use count
// bumped, otherwise a new entry is created.
func (s *Store) RecordUse(name string, lat, lng float64) error {
	now := time.Now().UTC().Format(time.RFC3339)

	var id int64
	err := s.DB.QueryRow(`SELECT id FROM location_history
		WHERE name = ? AND abs(lat - ?) < ? AND abs(lng - ?) < ?`,
		name, lat, coordEpsilon, lng, coordEpsilon).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.DB.Exec(`INSERT INTO location_history (name, lat, lng, last_used_at) VALUES (?, ?, ?, ?)`,
			name, lat, lng, now)
		return err
	case err != nil:
		return err
	}

	_, err = s.DB.Exec(`UPDATE location_history SET use_count = use_count + 1, last_used_at = ? WHERE id = ?`, now, id)
	return err
}

// ListHistory returns the location history, favorites first, then by how
// often and how recently each location was used.
func (s *Store) ListHistory() ([]model.HistoryEntry, error) {
	rows, err := s.DB.Query(`SELECT id, name, lat, lng, use_count, favorite, last_used_at
		FROM location_history ORDER BY favorite DESC, use_count DESC, last_used_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Lat, &e.Lng, &e.UseCount, &e.Favorite, &e.LastUsedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SetFavorite updates the favorite flag on a history entry.
func (s *Store) SetFavorite(id int64, favorite bool) error {
	res, err := s.DB.Exec(`UPDATE location_history SET favorite = ? WHERE id = ?`, favorite, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteHistory removes a history entry.
func (s *Store) DeleteHistory(id int64) error {
	res, err := s.DB.Exec(`DELETE FROM location_history WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ImageCount returns the number of stored uploads.
func (s *Store) ImageCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM images").Scan(&n)
	return n
}

// HistoryCount returns the number of history entries.
func (s *Store) HistoryCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM location_history").Scan(&n)
	return n
}

// FavoriteCount returns the number of favorited history entries.
func (s *Store) FavoriteCount() int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM location_history WHERE favorite").Scan(&n)
	return n
}
