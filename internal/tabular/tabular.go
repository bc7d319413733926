// Package tabular reads uploaded spreadsheet files into rows of strings.
//
// Three formats are accepted: CSV, TSV, and XLSX. The format is chosen by
// file extension, falling back to delimiter sniffing for files with no
// useful extension. District offices export from a mix of tools, so the
// parsers are deliberately lenient: stray quotes, ragged rows, and UTF-8
// byte order marks are all tolerated.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads the file contents into rows of cells. The file name is only
// used to pick the parser; data never touches the filesystem.
func Parse(fileName string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return ParseXLSX(data)
	case ".tsv":
		return ParseDelimited(data, '\t')
	case ".csv":
		return ParseDelimited(data, ',')
	default:
		return ParseDelimited(data, sniffDelimiter(data))
	}
}

// ParseDelimited reads CSV or TSV data. Rows may have varying widths and
// quoting does not have to be strict.
func ParseDelimited(data []byte, delimiter rune) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited data: %w", err)
	}
	return records, nil
}

// sniffDelimiter guesses the delimiter from the first line. Tabs win when
// present since a tab-separated line rarely contains commas.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{'\t'}) > bytes.Count(line, []byte{','}) {
		return '\t'
	}
	return ','
}
