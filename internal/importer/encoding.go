package importer

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

// Encodings the pipeline accepts. Anything else detected in the prefix is
// coerced to the closest of these.
const (
	EncodingUTF8        = "UTF-8"
	EncodingISO8859_1   = "ISO-8859-1"
	EncodingWindows1252 = "Windows-1252"
)

// encodingSniffLen bounds how much of the file is inspected for detection.
const encodingSniffLen = 8 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectEncoding sniffs the byte encoding of the file at path.
//
// A UTF-8 BOM is authoritative. A prefix that is valid UTF-8 is reported as
// UTF-8. Otherwise statistical detection picks among ISO-8859-1 and
// Windows-1252; when detection is inconclusive the prefix is known not to be
// UTF-8, so Windows-1252 is assumed (its table covers ISO-8859-1's printable
// range). An unreadable file reports UTF-8. Never returns an error.
func DetectEncoding(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return EncodingUTF8
	}
	defer f.Close()

	buf := make([]byte, encodingSniffLen)
	n, _ := io.ReadFull(f, buf)
	prefix := buf[:n]

	if len(prefix) == 0 {
		return EncodingUTF8
	}
	if bytes.HasPrefix(prefix, utf8BOM) {
		return EncodingUTF8
	}
	if utf8.Valid(prefix) {
		return EncodingUTF8
	}
	// The sniff window may have cut a multibyte sequence in half.
	if n == encodingSniffLen {
		for trimmed := prefix[:len(prefix)-1]; len(prefix)-len(trimmed) <= utf8.UTFMax; trimmed = trimmed[:len(trimmed)-1] {
			if utf8.Valid(trimmed) {
				return EncodingUTF8
			}
		}
	}

	if candidates, err := chardet.NewTextDetector().DetectAll(prefix); err == nil {
		for _, c := range candidates {
			cs := strings.ToLower(c.Charset)
			switch {
			case cs == "utf-8":
				// Prefix already failed utf8.Valid; keep looking.
			case strings.HasPrefix(cs, "iso-8859-1"):
				return EncodingISO8859_1
			case strings.HasPrefix(cs, "windows-125"):
				return EncodingWindows1252
			}
		}
	}

	return EncodingWindows1252
}
