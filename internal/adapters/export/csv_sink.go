package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"route-plan-service/internal/ports"
)

// CSVSink writes tabular payloads as semicolon-separated CSV, the
// dialect pt-BR Excel expects.
type CSVSink struct {
	OutDir string
}

func NewCSVSink(outDir string) *CSVSink {
	return &CSVSink{OutDir: outDir}
}

func (s *CSVSink) WriteSheet(_ context.Context, name string, doc ports.TableDocument) (string, error) {
	if s.OutDir == "" {
		return "", errors.New("csv sink: output dir not configured")
	}
	if err := os.MkdirAll(s.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("write sheet %q: %w", name, err)
	}

	path := filepath.Join(s.OutDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write sheet %q: %w", name, err)
	}
	defer f.Close()

	// Excel only detects UTF-8 when the file opens with a BOM.
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("write sheet %q: %w", name, err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(doc.Columns); err != nil {
		return "", fmt.Errorf("write sheet %q: header: %w", name, err)
	}
	for i, row := range doc.Rows {
		record := row.Cells
		if row.Span {
			// Spanning labels land in the first column of an
			// otherwise empty record.
			record = make([]string, len(doc.Columns))
			record[0] = row.Cells[0]
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write sheet %q: row %d: %w", name, i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write sheet %q: flush: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write sheet %q: close: %w", name, err)
	}

	return path, nil
}
