package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sections (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS section_values (
	section TEXT NOT NULL REFERENCES sections(name) ON DELETE CASCADE,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (section, key)
);`

// SQLiteBackend stores sections in a SQLite database file.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

// OpenSQLiteBackend opens (creating if needed) the database at path.
func OpenSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(ON)",
		path, (5 * time.Second).Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}
	// A single connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: schema setup failed: %w", err)
	}

	return &SQLiteBackend{path: path, db: db}, nil
}

func (b *SQLiteBackend) Name() string { return "sqlite" }

// Path returns the database file location.
func (b *SQLiteBackend) Path() string { return b.path }

// Load reads every section and its values.
func (b *SQLiteBackend) Load(ctx context.Context) (Sections, error) {
	sections := Sections{}

	rows, err := b.db.QueryContext(ctx, `SELECT name FROM sections`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query sections: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sqlite: scan section: %w", err)
		}
		sections[name] = Section{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("sqlite: iterate sections: %w", err)
	}
	rows.Close()

	rows, err = b.db.QueryContext(ctx, `SELECT section, key, value FROM section_values`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query values: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var section, key, value string
		if err := rows.Scan(&section, &key, &value); err != nil {
			return nil, fmt.Errorf("sqlite: scan value: %w", err)
		}
		if sec, ok := sections[section]; ok {
			sec[key] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate values: %w", err)
	}

	return sections, nil
}

// Persist replaces the database contents in one transaction.
func (b *SQLiteBackend) Persist(ctx context.Context, sections Sections) (err error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM section_values`); err != nil {
		return fmt.Errorf("sqlite: clear values: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sections`); err != nil {
		return fmt.Errorf("sqlite: clear sections: %w", err)
	}

	for _, name := range sections.Names() {
		if _, err = tx.ExecContext(ctx, `INSERT INTO sections (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("sqlite: insert section %q: %w", name, err)
		}
		values := sections[name]
		for _, key := range sortedKeys(values) {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO section_values (section, key, value) VALUES (?, ?, ?)`,
				name, key, values[key]); err != nil {
				return fmt.Errorf("sqlite: insert %s.%s: %w", name, key, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
