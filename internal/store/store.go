// Package store persists scanned assets to SQLite so past scans can be
// browsed, pruned, and turned into digests without rescanning.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS assets (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			source_type   TEXT NOT NULL,
			marketplace   TEXT NOT NULL,
			url           TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			user_count    INTEGER NOT NULL,
			mrr_potential INTEGER NOT NULL,
			status        TEXT NOT NULL,
			details       TEXT NOT NULL DEFAULT '',
			query         TEXT NOT NULL DEFAULT '',
			tier          TEXT NOT NULL DEFAULT '',
			scanned_at    DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assets_scanned ON assets(scanned_at DESC);
		CREATE INDEX IF NOT EXISTS idx_assets_users ON assets(user_count DESC);
		CREATE INDEX IF NOT EXISTS idx_assets_status ON assets(status);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// UpsertAssets writes the records, replacing any row with the same external
// id. Usage figures and status are refreshed; the original url survives.
func (s *Store) UpsertAssets(records []Record) error {
	tx, err := s.writeDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO assets (id, name, source_type, marketplace, url, description, user_count, mrr_potential, status, details, query, tier, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			user_count = excluded.user_count,
			mrr_potential = excluded.mrr_potential,
			status = excluded.status,
			details = excluded.details,
			query = excluded.query,
			tier = excluded.tier,
			scanned_at = excluded.scanned_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(r.ID, r.Name, r.SourceType, r.Marketplace, r.URL, r.Description,
			r.UserCount, r.MRRPotential, r.Status, r.Details, r.Query, r.Tier, r.ScannedAt)
		if err != nil {
			return fmt.Errorf("upserting asset %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetAssets queries stored records, newest scan first by default.
func (s *Store) GetAssets(opts QueryOpts) ([]Record, error) {
	var (
		where []string
		args  []interface{}
	)

	if !opts.Since.IsZero() {
		where = append(where, "scanned_at >= ?")
		args = append(args, opts.Since)
	}

	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, opts.Status)
	}

	if opts.Query != "" {
		where = append(where, "query = ?")
		args = append(args, opts.Query)
	}

	if opts.Search != "" {
		where = append(where, "(id LIKE ? OR name LIKE ? OR description LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term, term)
	}

	query := "SELECT id, name, source_type, marketplace, url, description, user_count, mrr_potential, status, details, query, tier, scanned_at FROM assets"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if opts.ByUserCount {
		query += " ORDER BY user_count DESC"
	} else {
		query += " ORDER BY scanned_at DESC"
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.SourceType, &r.Marketplace, &r.URL, &r.Description,
			&r.UserCount, &r.MRRPotential, &r.Status, &r.Details, &r.Query, &r.Tier, &r.ScannedAt); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Prune deletes records scanned longer ago than maxAge and reports the count.
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	res, err := s.writeDB.Exec("DELETE FROM assets WHERE scanned_at < ?", time.Now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("pruning assets: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the stored record count and the database file size.
func (s *Store) Stats(dbPath string) (count int64, size int64, err error) {
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM assets").Scan(&count); err != nil {
		return 0, 0, err
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}
