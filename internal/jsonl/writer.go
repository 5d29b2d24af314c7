// Package jsonl writes canonical records as line-delimited JSON.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Member09/scaling-laws/internal/record"
)

// progressInterval is how many records pass between progress log lines.
const progressInterval = 10000

// Source yields the records to write; a single forward pass.
type Source interface {
	Next() (record.Record, error)
}

// Write streams records to path as one JSON object per line, creating
// parent directories as needed. Records are written as they arrive, never
// buffered as a whole, so corpora larger than memory pass through fine.
// Non-ASCII text is emitted literally, not escaped.
//
// The file is written to a temporary sibling and renamed into place on
// success: an interrupted run leaves at most a stray temp file, never a
// truncated file at the final path. Any prior file at path is replaced
// whole, not appended to.
//
// total is used for progress logging only; pass 0 when unknown.
// Returns the number of records written.
func Write(path string, src Source, total int) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary output file: %w", err)
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var count int
	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read record %d: %w", count+1, err)
		}

		if err := enc.Encode(rec); err != nil {
			return count, fmt.Errorf("failed to encode record %d: %w", count+1, err)
		}
		count++

		if count%progressInterval == 0 {
			logProgress(path, count, total)
		}
	}

	if err := w.Flush(); err != nil {
		return count, fmt.Errorf("failed to flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return count, fmt.Errorf("failed to close temporary output file: %w", err)
	}

	tmpName := tmp.Name()
	tmp = nil
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return count, fmt.Errorf("failed to finalize output file: %w", err)
	}

	return count, nil
}

func logProgress(path string, count, total int) {
	if total > 0 {
		slog.Info("Writing records",
			"file", filepath.Base(path),
			"written", count,
			"total", total,
			"percentage", fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100))
		return
	}
	slog.Info("Writing records", "file", filepath.Base(path), "written", count)
}
