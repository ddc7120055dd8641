package importer

// PreviewRows is how many data rows a preview includes.
const PreviewRows = 10

// Preview is the result of parsing a file before the import is confirmed.
type Preview struct {
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"preview"`
	TotalRows int        `json:"totalRows"`
	Encoding  string     `json:"encoding"`
}

// ParseAndPreview reads the file, splits off the header row, and returns the
// trimmed headers, up to PreviewRows sample data rows, the total data-row
// count, and the detected encoding. Returns ErrEmptyFile when no data rows
// remain after the header.
func ParseAndPreview(path string, delimiter rune) (*Preview, error) {
	rows, enc, err := ReadFile(path, delimiter)
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = CleanHeader(h)
	}

	data := rows[1:]
	sample := data
	if len(sample) > PreviewRows {
		sample = sample[:PreviewRows]
	}

	return &Preview{
		Headers:   headers,
		Rows:      sample,
		TotalRows: len(data),
		Encoding:  enc,
	}, nil
}
