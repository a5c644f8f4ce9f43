// Package importer implements the CSV transaction-import pipeline: parsing
// raw file text into rows, mapping arbitrary columns onto transaction fields,
// tracking which rows the user selected, validating readiness, and submitting
// normalized transactions to the persistence layer one at a time.
//
// All state for one import lives in a Session owned by a single caller; see
// session.go for the lifecycle.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors raised by parsing. Both block the import; neither is
// retried automatically.
var (
	// ErrEmptyFile means the input contained no non-empty lines.
	ErrEmptyFile = errors.New("empty file")

	// ErrUnreadableFile means the underlying reader failed before parsing.
	ErrUnreadableFile = errors.New("unreadable file")
)

// Row is one parsed CSV record: column header -> raw cell value.
// Rows have a file-defined, open shape; values are validated only at the
// point of semantic field extraction.
type Row map[string]string

// ParseText splits raw CSV text into a header sequence and data rows.
//
// The first non-empty line is the header line. Lines are split on commas;
// cells are whitespace-trimmed and stripped of a single pair of enclosing
// double quotes. A line with fewer cells than headers maps the missing
// trailing headers to "".
//
// Quoted cells containing commas or embedded newlines are not supported;
// such cells split incorrectly. Callers importing exports from tools that
// quote freely should be aware of this limitation.
func ParseText(text string) ([]string, []Row, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, nil, ErrEmptyFile
	}

	headers := splitLine(lines[0])

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := splitLine(line)
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// Parse reads at most maxSize bytes from r and parses the content as CSV
// text. Read failures are reported as ErrUnreadableFile; oversized input is
// rejected before parsing.
func Parse(r io.Reader, maxSize int64) ([]string, []Row, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if int64(len(data)) > maxSize {
		return nil, nil, fmt.Errorf("%w: file exceeds %d bytes", ErrUnreadableFile, maxSize)
	}
	return ParseText(string(data))
}

// splitLine splits a single CSV line on commas and cleans each cell.
func splitLine(line string) []string {
	parts := strings.Split(line, ",")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = cleanCell(p)
	}
	return cells
}

// cleanCell trims whitespace and strips one pair of enclosing double quotes.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
