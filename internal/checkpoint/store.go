package checkpoint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

// ErrNotFound is returned when a checkpoint artifact does not exist.
var ErrNotFound = errors.New("checkpoint not found")

// Store persists pipeline artifacts in a directory: stage outputs as
// JSON documents and loaded relations as CSV mirrors. Writes go through
// a temp file plus rename so a crash mid-write never leaves a truncated
// artifact behind.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("checkpoint directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveObject writes value as JSON under name.
func (s *Store) SaveObject(name string, value any) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode checkpoint %s: %w", name, err)
	}
	return s.writeAtomic(name+".json", data)
}

// LoadObject decodes the JSON artifact saved under name into out.
func (s *Store) LoadObject(name string, out any) error {
	data, err := os.ReadFile(s.path(name + ".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("read checkpoint %s: %w", name, err)
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode checkpoint %s: %w", name, err)
	}
	return nil
}

// HasObject reports whether a JSON artifact exists under name.
func (s *Store) HasObject(name string) bool {
	_, err := os.Stat(s.path(name + ".json"))
	return err == nil
}

// SaveTable writes a relation mirror as CSV with a header row.
func (s *Store) SaveTable(name string, header []string, rows [][]string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header for %s: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv for %s: %w", name, err)
	}

	return s.writeAtomic(name+".csv", buf.Bytes())
}

// LoadTable reads a relation mirror back as header plus rows.
func (s *Store) LoadTable(name string) ([]string, [][]string, error) {
	f, err := os.Open(s.path(name + ".csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("open csv %s: %w", name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func (s *Store) writeAtomic(filename string, data []byte) error {
	target := s.path(filename)

	tmp, err := os.CreateTemp(s.dir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp checkpoint file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write checkpoint %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close checkpoint %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit checkpoint %s: %w", filename, err)
	}
	return nil
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dir, filename)
}
