package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeremiapane/shop-dataset/models"
)

const MetadataFile = "metadata.json"

// FileName is the CSV file a table is stored in.
func FileName(table string) string {
	return table + ".csv"
}

// WriteTable writes a header row followed by every row.
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s: %w", t.Name, err)
	}
	return nil
}

// ReadTable parses CSV with a header row. Rows may be shorter or longer
// than the header.
func ReadTable(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: no header row", name)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return &Table{Name: name, Columns: header, Rows: records[1:]}, nil
}

// WriteDir writes every table of ds to dir/<table>.csv and returns the
// paths written, keyed by table.
func WriteDir(dir string, ds *models.Dataset) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	snap := FromDataset(ds)
	paths := make(map[string]string, len(models.TableNames))
	for _, name := range models.TableNames {
		t, err := snap.Table(name)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, FileName(name))
		if err := writeFile(path, t); err != nil {
			return nil, err
		}
		paths[name] = path
	}
	return paths, nil
}

func writeFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteTable(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadDir reads the four tables from dir. Tables that are absent or
// unreadable are recorded as failures on the snapshot.
func LoadDir(dir string) *Snapshot {
	snap := NewSnapshot()
	for _, name := range models.TableNames {
		t, err := loadFile(filepath.Join(dir, FileName(name)), name)
		if err != nil {
			snap.Fail(name, err)
			continue
		}
		snap.Put(t)
	}
	return snap
}

func loadFile(path, name string) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: missing file %s", ErrMissingTable, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f, name)
}

func WriteMetadata(dir string, md models.Metadata) (string, error) {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, MetadataFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write metadata %s: %w", path, err)
	}
	return path, nil
}

func ReadMetadata(dir string) (*models.Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, err
	}
	var md models.Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &md, nil
}
