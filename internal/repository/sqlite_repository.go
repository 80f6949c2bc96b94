package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anime-shed/page-inspector-go/pkg/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	is_public  INTEGER NOT NULL DEFAULT 1,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	report     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_url_created ON analyses(url, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_public_created ON analyses(is_public, created_at DESC);
`

// DefaultListLimit caps ListPublic when no positive limit is given
const DefaultListLimit = 50

// SQLiteRepository stores reports as JSON documents in SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Save implements AnalysisRepository
func (r *SQLiteRepository) Save(ctx context.Context, analysis *models.Analysis) error {
	doc, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analyses (id, url, is_public, created_at, updated_at, report)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			url = excluded.url,
			is_public = excluded.is_public,
			updated_at = excluded.updated_at,
			report = excluded.report`,
		analysis.ID, analysis.URL, analysis.IsPublic,
		analysis.CreatedAt.UnixNano(), analysis.UpdatedAt.UnixNano(), string(doc))
	if err != nil {
		return fmt.Errorf("save analysis %s: %w", analysis.ID, err)
	}
	return nil
}

// GetByID implements AnalysisRepository
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Analysis, error) {
	row := r.db.QueryRowContext(ctx, `SELECT report FROM analyses WHERE id = ?`, id)
	return scanAnalysis(row)
}

// GetLatestByURL implements AnalysisRepository
func (r *SQLiteRepository) GetLatestByURL(ctx context.Context, url string) (*models.Analysis, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT report FROM analyses WHERE url = ? ORDER BY created_at DESC LIMIT 1`, url)
	return scanAnalysis(row)
}

// ListPublic implements AnalysisRepository
func (r *SQLiteRepository) ListPublic(ctx context.Context, limit int) ([]*models.Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT report FROM analyses WHERE is_public = 1 ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]*models.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return analyses, nil
}

// SetPublic implements AnalysisRepository
func (r *SQLiteRepository) SetPublic(ctx context.Context, id string, isPublic bool) (*models.Analysis, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	analysis, err := scanAnalysis(tx.QueryRowContext(ctx, `SELECT report FROM analyses WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	analysis.IsPublic = isPublic
	analysis.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE analyses SET is_public = ?, updated_at = ?, report = ? WHERE id = ?`,
		isPublic, analysis.UpdatedAt.UnixNano(), string(doc), id); err != nil {
		return nil, fmt.Errorf("update analysis %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return analysis, nil
}

// Delete implements AnalysisRepository
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete analysis %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete analysis %s: %w", id, err)
	}
	if n == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*models.Analysis, error) {
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("read analysis: %w", err)
	}
	var analysis models.Analysis
	if err := json.Unmarshal([]byte(doc), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &analysis, nil
}
