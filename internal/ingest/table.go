// Package ingest loads student, job and course records and their
// embeddings from disk into the engine's fixed record shapes.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Table is a header row plus data rows read from a spreadsheet or CSV file.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewTable indexes header names for alias lookup.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		key := headerKey(h)
		if _, ok := t.index[key]; !ok {
			t.index[key] = i
		}
	}
	return t
}

// Column returns the position of the first header matching any alias, or -1.
// Matching ignores case, spaces, underscores and dashes.
func (t *Table) Column(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := t.index[headerKey(a)]; ok {
			return i
		}
	}
	return -1
}

// Value returns the trimmed cell at row and column, or "" when absent.
func (t *Table) Value(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func headerKey(h string) string {
	var b strings.Builder
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ReadTable reads the file at path. The format follows the extension:
// .xlsx is read with excelize, anything else as CSV.
func ReadTable(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ReadTableBytes(content, ext)
}

// ReadTableBytes parses content according to ext, which includes the dot.
func ReadTableBytes(content []byte, ext string) (*Table, error) {
	var rows [][]string
	var err error
	switch ext {
	case ".xlsx":
		rows, err = readExcel(content)
	default:
		rows, err = readCSV(content)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewTable(nil, nil), nil
	}
	data := rows[1:]
	// drop fully blank rows
	kept := data[:0]
	for _, r := range data {
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				kept = append(kept, r)
				break
			}
		}
	}
	return NewTable(rows[0], kept), nil
}
