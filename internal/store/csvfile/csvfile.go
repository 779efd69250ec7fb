// Package csvfile stores each table as a comma-separated UTF-8 file.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir hands out tables stored as <dir>/<name>.csv.
type Dir struct {
	path string
}

func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Table(name string) *Table {
	return &Table{name: name, path: filepath.Join(d.path, name+".csv")}
}

type Table struct {
	name string
	path string
}

func (t *Table) Name() string { return t.name }
func (t *Table) Path() string { return t.path }

func (t *Table) Exists() (bool, error) {
	_, err := os.Stat(t.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Create writes the header to a new file. An existing file is left alone.
func (t *Table) Create(header []string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return writeAndClose(f, [][]string{header})
}

func (t *Table) ReadAll() ([][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", t.path, err)
	}
	return rows, nil
}

func (t *Table) Append(row []string) error {
	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return writeAndClose(f, [][]string{row})
}

// Rewrite writes rows to a temp file next to the table and renames it into
// place. On failure the existing file is untouched.
func (t *Table) Rewrite(rows [][]string) error {
	dir := filepath.Dir(t.path)
	tmp, err := os.CreateTemp(dir, "."+t.name+"-*.csv.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(t.path); err == nil {
		_ = os.Chmod(tmpPath, info.Mode().Perm())
	}
	if err := os.Rename(tmpPath, t.path); err != nil {
		return err
	}
	committed = true
	return nil
}

func writeAndClose(f *os.File, rows [][]string) error {
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
