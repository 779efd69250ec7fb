// Package sqlite stores each table in a SQLite database, one SQL table per
// resource with a TEXT column per header field.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

type DB struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection keeps every statement on the same database handle
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

func (d *DB) Table(name string) *Table {
	return &Table{db: d.sqlDB, name: name}
}

// Table keeps rows in insertion order through the pos column.
type Table struct {
	db   *sql.DB
	name string
}

func (t *Table) Name() string { return t.name }

func (t *Table) Exists() (bool, error) {
	var n int
	err := t.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, t.name,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *Table) Create(header []string) error {
	if len(header) == 0 {
		return fmt.Errorf("table %s: empty header", t.name)
	}
	cols := make([]string, 0, len(header)+1)
	cols = append(cols, "pos INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, h := range header {
		cols = append(cols, quote(h)+" TEXT NOT NULL DEFAULT ''")
	}
	_, err := t.db.Exec(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(t.name), strings.Join(cols, ", ")))
	return err
}

func (t *Table) ReadAll() ([][]string, error) {
	header, err := t.columns()
	if err != nil {
		return nil, err
	}
	rows, err := t.db.Query(fmt.Sprintf("SELECT %s FROM %s ORDER BY pos", joinQuoted(header), quote(t.name)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]string{header}
	for rows.Next() {
		vals := make([]string, len(header))
		ptrs := make([]any, len(header))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, vals)
	}
	return out, rows.Err()
}

func (t *Table) Append(row []string) error {
	header, err := t.columns()
	if err != nil {
		return err
	}
	return insert(t.db, t.name, header, row)
}

// Rewrite replaces all data rows in one transaction. rows[0] is the header
// and is not stored; the schema fixes the columns.
func (t *Table) Rewrite(rows [][]string) error {
	header, err := t.columns()
	if err != nil {
		return err
	}
	tx, err := t.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", quote(t.name))); err != nil {
		return err
	}
	if len(rows) > 1 {
		for _, row := range rows[1:] {
			if err := insert(tx, t.name, header, row); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (t *Table) columns() ([]string, error) {
	rows, err := t.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quote(t.name)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		if name == "pos" {
			continue
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s: %w", t.name, fs.ErrNotExist)
	}
	return cols, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// insert pads or truncates row to the column count.
func insert(db execer, table string, header []string, row []string) error {
	if len(header) == 0 {
		return errors.New("insert: no columns")
	}
	args := make([]any, len(header))
	marks := make([]string, len(header))
	for i := range header {
		marks[i] = "?"
		if i < len(row) {
			args[i] = row[i]
		} else {
			args[i] = ""
		}
	}
	_, err := db.Exec(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), joinQuoted(header), strings.Join(marks, ", ")), args...)
	return err
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func joinQuoted(idents []string) string {
	q := make([]string, len(idents))
	for i, s := range idents {
		q[i] = quote(s)
	}
	return strings.Join(q, ", ")
}
