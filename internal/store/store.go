// Package store implements the header-plus-rows record store shared by the
// entity managers. Backends only move rows; id generation, lookup and the
// read/replace/rewrite cycle live here.
package store

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"solrock/internal/util"
)

// Table is one backing resource: a header row followed by data rows.
// ReadAll returns an error wrapping fs.ErrNotExist when the resource is missing.
type Table interface {
	Name() string
	Exists() (bool, error)
	Create(header []string) error
	ReadAll() ([][]string, error)
	Append(row []string) error
	// Rewrite replaces the whole resource, header included. Implementations
	// must leave the previous contents intact if the write fails.
	Rewrite(rows [][]string) error
}

// RecordStore applies the id and row primitives to one Table.
type RecordStore struct {
	table  Table
	header []string
	log    *zap.Logger
}

// New wraps t and initializes its storage.
func New(t Table, header []string, log *zap.Logger) (*RecordStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &RecordStore{
		table:  t,
		header: append([]string(nil), header...),
		log:    log.With(zap.String("table", t.Name())),
	}
	if err := s.InitializeStorage(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name is the backing resource name.
func (s *RecordStore) Name() string { return s.table.Name() }

// Header returns a copy of the column layout.
func (s *RecordStore) Header() []string { return append([]string(nil), s.header...) }

// InitializeStorage writes the header once if the resource does not exist.
func (s *RecordStore) InitializeStorage() error {
	ok, err := s.table.Exists()
	if err != nil {
		return fmt.Errorf("check %s: %w", s.table.Name(), err)
	}
	if ok {
		return nil
	}
	if err := s.table.Create(s.header); err != nil {
		return fmt.Errorf("create %s: %w", s.table.Name(), err)
	}
	s.log.Info("storage initialized", zap.Strings("columns", s.header))
	return nil
}

// NextID returns max(id)+1 over rows whose first column is a digit string,
// or 1. Read errors yield 1.
func (s *RecordStore) NextID() int {
	rows, err := s.data()
	if err != nil {
		s.log.Warn("next id: read failed", zap.Error(err))
		return 1
	}
	top, found := 0, false
	for _, row := range rows {
		id, ok := rowID(row)
		if !ok {
			continue
		}
		if !found || id > top {
			top, found = id, true
		}
	}
	if !found {
		return 1
	}
	return top + 1
}

// FindByID returns the zero-based data-row index and row of the first match,
// or (-1, nil).
func (s *RecordStore) FindByID(id int) (int, []string) {
	rows, err := s.data()
	if err != nil {
		s.log.Warn("find by id: read failed", zap.Int("id", id), zap.Error(err))
		return -1, nil
	}
	for i, row := range rows {
		if rid, ok := rowID(row); ok && rid == id {
			return i, row
		}
	}
	return -1, nil
}

// ListAll returns the data rows in storage order. A missing resource is empty.
func (s *RecordStore) ListAll() ([][]string, error) {
	rows, err := s.data()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table.Name(), err)
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// Append adds row after the last data row.
func (s *RecordStore) Append(row []string) error {
	if err := s.table.Append(row); err != nil {
		return fmt.Errorf("append to %s: %w", s.table.Name(), err)
	}
	return nil
}

// ReplaceAt rewrites the resource with data row index replaced by row.
func (s *RecordStore) ReplaceAt(index int, row []string) error {
	all, err := s.table.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", s.table.Name(), err)
	}
	if index < 0 || index+1 >= len(all) {
		return fmt.Errorf("replace %s: row %d out of range", s.table.Name(), index)
	}
	all[index+1] = row
	return s.rewrite(all)
}

// DeleteByID rewrites the resource without the rows whose id equals id.
// It returns the number of rows removed.
func (s *RecordStore) DeleteByID(id int) (int, error) {
	all, err := s.table.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.table.Name(), err)
	}
	if len(all) == 0 {
		return 0, nil
	}
	kept := make([][]string, 0, len(all))
	kept = append(kept, all[0])
	removed := 0
	for _, row := range all[1:] {
		if rid, ok := rowID(row); ok && rid == id {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.rewrite(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *RecordStore) rewrite(rows [][]string) error {
	if err := s.table.Rewrite(rows); err != nil {
		return fmt.Errorf("rewrite %s: %w", s.table.Name(), err)
	}
	return nil
}

// data returns the rows after the header. Indices match ReplaceAt.
func (s *RecordStore) data() ([][]string, error) {
	all, err := s.table.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) <= 1 {
		return nil, nil
	}
	return all[1:], nil
}

func rowID(row []string) (int, bool) {
	if len(row) == 0 {
		return 0, false
	}
	return util.ParseID(row[0])
}
