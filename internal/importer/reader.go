package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ReadFile parses the CSV file at path into rows of cells, transcoding to
// UTF-8 when the detected encoding differs. The returned encoding is the
// detected one. The file handle is closed on every path.
func ReadFile(path string, delimiter rune) ([][]string, string, error) {
	if delimiter == 0 {
		delimiter = ','
	}

	enc := DetectEncoding(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, enc, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)

	// Strip a UTF-8 BOM so it does not end up glued to the first header.
	if peek, err := br.Peek(len(utf8BOM)); err == nil && string(peek) == string(utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	var src io.Reader = br
	switch enc {
	case EncodingISO8859_1:
		src = transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	case EncodingWindows1252:
		src = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	}

	r := csv.NewReader(src)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, enc, fmt.Errorf("read csv: %w", err)
	}

	return rows, enc, nil
}

// CleanCell trims whitespace and stray BOM runes from a CSV cell.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

// CleanHeader normalizes a header cell. Beyond CleanCell it unwraps the
// `="value"` formula artifact some spreadsheet exports produce.
func CleanHeader(s string) string {
	s = CleanCell(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// isBlankHeader reports whether every header cell is blank.
func isBlankHeader(headers []string) bool {
	for _, h := range headers {
		if h != "" {
			return false
		}
	}
	return true
}
