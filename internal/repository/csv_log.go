package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// CSVLog is an append-only CSV file with a fixed header. The header is written
// together with the first row when the file is created or empty.
type CSVLog struct {
	path   string
	header []string
	mu     sync.Mutex
}

func NewCSVLog(path string, header []string) *CSVLog {
	return &CSVLog{path: path, header: header}
}

func (l *CSVLog) Path() string {
	return l.path
}

// Append encodes the row and writes it with a single write call on an
// O_APPEND descriptor, so concurrent writers never interleave partial lines.
func (l *CSVLog) Append(row []string) error {
	if len(row) != len(l.header) {
		return fmt.Errorf("csv row has %d fields, want %d", len(row), len(l.header))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", l.path, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(l.header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode csv row: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to append to %s: %w", l.path, err)
	}
	return nil
}

// ReadAll returns every data row in file order. A missing file is an empty log.
func (l *CSVLog) ReadAll() ([][]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return [][]string{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows := [][]string{}
	first := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}
