package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hamed0406/resourceprobe/internal/domain"
	"github.com/hamed0406/resourceprobe/internal/repo"
)

var _ repo.RunStore = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open creates the parent directory, opens the database in WAL mode,
// and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite works best with a single connection for writes
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	suite      TEXT NOT NULL,
	started_at TEXT NOT NULL,
	outcomes   TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveRun(ctx context.Context, run *repo.Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	blob, err := json.Marshal(run.Outcomes)
	if err != nil {
		return fmt.Errorf("encode outcomes: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (suite, started_at, outcomes) VALUES (?, ?, ?)`,
		run.Suite, run.StartedAt.Format(time.RFC3339Nano), string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	return err
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]repo.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, suite, started_at, outcomes FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []repo.Run
	for rows.Next() {
		var (
			r       repo.Run
			started string
			blob    string
		)
		if err := rows.Scan(&r.ID, &r.Suite, &started, &blob); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		var outcomes []domain.Outcome
		if err := json.Unmarshal([]byte(blob), &outcomes); err != nil {
			return nil, fmt.Errorf("decode outcomes: %w", err)
		}
		r.Outcomes = outcomes
		out = append(out, r)
	}
	return out, rows.Err()
}
