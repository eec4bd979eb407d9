// Package dataset moves the four shop tables between memory and flat files.
// A Table is untyped: every cell is a string and an empty cell is a missing
// value, so data from any source can be checked by the validator.
package dataset

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/shop-dataset/models"
)

var ErrMissingTable = errors.New("table not found")

type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Index returns the position of col in the header, or -1.
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Cell returns row[i], or "" when the row is shorter than the header.
func (t *Table) Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *Table) Len() int { return len(t.Rows) }

// Clone deep-copies t so tests can mutate a copy.
func (t *Table) Clone() *Table {
	c := &Table{Name: t.Name, Columns: append([]string(nil), t.Columns...)}
	c.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}

// Snapshot is a set of tables read from one source, together with the
// reason any table could not be read.
type Snapshot struct {
	tables map[string]*Table
	errs   map[string]error
}

func NewSnapshot() *Snapshot {
	return &Snapshot{tables: map[string]*Table{}, errs: map[string]error{}}
}

func (s *Snapshot) Put(t *Table) {
	s.tables[t.Name] = t
	delete(s.errs, t.Name)
}

// Fail records that name could not be loaded.
func (s *Snapshot) Fail(name string, err error) {
	delete(s.tables, name)
	s.errs[name] = err
}

// Table returns the named table or an error wrapping ErrMissingTable.
func (s *Snapshot) Table(name string) (*Table, error) {
	if t, ok := s.tables[name]; ok {
		return t, nil
	}
	if err, ok := s.errs[name]; ok {
		if errors.Is(err, ErrMissingTable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingTable, name, err)
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
}

// Clone deep-copies every table.
func (s *Snapshot) Clone() *Snapshot {
	c := NewSnapshot()
	for _, t := range s.tables {
		c.tables[t.Name] = t.Clone()
	}
	for k, v := range s.errs {
		c.errs[k] = v
	}
	return c
}

// FromDataset renders an in-memory dataset as tables.
func FromDataset(ds *models.Dataset) *Snapshot {
	s := NewSnapshot()
	records := ds.Records()
	for _, name := range models.TableNames {
		s.Put(&Table{
			Name:    name,
			Columns: append([]string(nil), models.Schema[name]...),
			Rows:    records[name],
		})
	}
	return s
}
