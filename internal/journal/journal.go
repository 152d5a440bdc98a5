// Package journal persists one row per launch attempt so a misbehaving
// server launch can be reconstructed after the fact.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Entry is one recorded launch attempt. It is written immediately
// before handoff, so a row proves the launcher reached the exec step,
// not that the server came up.
type Entry struct {
	ID          string
	StartedAt   time.Time
	BinDir      string
	ToolPath    string
	ToolVersion string
	Runner      string
	Args        []string
}

// Journal is a sqlite-backed launch log.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at dbPath, applies
// PRAGMAs for WAL mode and busy timeout, and runs any pending schema
// migrations.
func Open(ctx context.Context, dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	// modernc.org/sqlite serialises writes; limit to one connection.
	db.SetMaxOpenConns(1)

	if err := pragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record inserts a launch attempt. A zero ID gets a fresh uuid and a
// zero StartedAt gets the current time; the stored entry is returned.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now().UTC()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO launches (id, started_at, bin_dir, tool_path, tool_version, runner, args)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.StartedAt.Format(time.RFC3339Nano), e.BinDir, e.ToolPath, e.ToolVersion,
		e.Runner, strings.Join(e.Args, "\x00"))
	if err != nil {
		return Entry{}, fmt.Errorf("recording launch: %w", err)
	}
	return e, nil
}

// Recent returns up to limit launch attempts, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, started_at, bin_dir, tool_path, tool_version, runner, args
		 FROM launches ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing launches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedAt, args string
		if err := rows.Scan(&e.ID, &startedAt, &e.BinDir, &e.ToolPath, &e.ToolVersion, &e.Runner, &args); err != nil {
			return nil, fmt.Errorf("scanning launch row: %w", err)
		}
		if e.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing launch timestamp: %w", err)
		}
		if args != "" {
			e.Args = strings.Split(args, "\x00")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func pragmas(db *sql.DB) error {
	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("setting %s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
