// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store appends scraped result tables to a SQLite archive. It is an
// opt-in sink: nothing in the pipeline reads the database back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/news-engine/pkg/types"
)

// tableName matches the table the scraper has always archived into.
const tableName = "src_google_news"

// Store manages the archive SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at cfg.Path and ensures the
// schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		description TEXT,
		published_at TEXT,
		link TEXT,
		publisher_name TEXT,
		publisher_url TEXT,
		link_preview TEXT,
		publisher_preview TEXT,
		scraped_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Append inserts one row per article in a single transaction and returns the
// number of rows written. The same scrape appended twice produces two sets
// of rows; the archive keeps history, not state.
func (s *Store) Append(ctx context.Context, articles []types.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+tableName+`
		(title, description, published_at, link, publisher_name, publisher_url, link_preview, publisher_preview, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	scrapedAt := time.Now().UTC().Format(time.RFC3339)
	for _, a := range articles {
		if _, err := stmt.ExecContext(ctx,
			a.Title,
			a.Description,
			a.PublishedAt.UTC().Format(time.RFC3339),
			a.Link,
			a.PublisherName,
			a.PublisherURL,
			a.LinkPreview,
			a.PublisherPreview,
			scrapedAt,
		); err != nil {
			return 0, fmt.Errorf("inserting %q: %w", a.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(articles), nil
}

// Count returns the number of archived rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+tableName).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}
