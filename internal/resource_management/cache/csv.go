package cache

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/resource_management/report"
)

// Read parses a cache table. A missing file yields an empty table and no
// error.
func Read(path string) (report.Table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return report.Table{}, nil
	}
	if err != nil {
		return report.Table{}, fmt.Errorf("read cache %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (report.Table, error) {
	data = stripBOM(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return report.Table{}, nil
	}

	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return report.Table{}, fmt.Errorf("cache header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	t := report.Table{Columns: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report.Table{}, fmt.Errorf("cache row: %w", err)
		}
		row := make(report.Row, len(header))
		for i, col := range header {
			if i < len(rec) && rec[i] != "" {
				row[col] = rec[i]
			}
		}
		if row[report.KeyColumn] == "" {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Write stores t at path through a temporary file so a crash never leaves
// a truncated cache behind.
func Write(path string, t report.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace cache %s: %w", path, err)
	}
	return nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
