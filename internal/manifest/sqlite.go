package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Store
// ============================================================

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Init создает таблицу журнала, если ее еще нет.
func (s *SQLiteStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS exports (
            id            TEXT PRIMARY KEY,
            project_name  TEXT NOT NULL,
            units         TEXT NOT NULL,
            source_kind   TEXT NOT NULL,
            storey_count  INTEGER NOT NULL,
            element_count INTEGER NOT NULL,
            output_path   TEXT NOT NULL,
            created_at    TEXT NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("create exports table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Record(ctx context.Context, m *Model) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO exports (id, project_name, units, source_kind, storey_count, element_count, output_path, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `,
		m.ID, m.ProjectName, m.Units, m.SourceKind,
		m.StoreyCount, m.ElementCount, m.OutputPath,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Model, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, project_name, units, source_kind, storey_count, element_count, output_path, created_at
        FROM exports
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var out []*Model
	for rows.Next() {
		var m Model
		var created string
		if err := rows.Scan(&m.ID, &m.ProjectName, &m.Units, &m.SourceKind,
			&m.StoreyCount, &m.ElementCount, &m.OutputPath, &created); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			m.CreatedAt = t
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
