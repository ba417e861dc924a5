// Package sheetimport reads uploaded spreadsheets (xlsx or csv) into rows and
// matches their header cells against column alias lists.
package sheetimport

import (
	"strings"

	"golang.org/x/text/cases"
)

// DataRowOffset converts a zero-based data row index into the 1-based
// spreadsheet row number, accounting for the header row.
const DataRowOffset = 2

// Sheet is the parsed content of the first worksheet
type Sheet struct {
	Headers []string
	Rows    []Row
}

// Row is one data row
type Row struct {
	// Number is the 1-based spreadsheet row number (rowIndex + 2)
	Number int
	Cells  []string
}

// Cell returns the trimmed value at idx, or "" when the row is shorter
func (r Row) Cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[idx])
}

// IsEmpty reports whether every cell is blank
func (r Row) IsEmpty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Column describes one logical column and the header spellings it accepts
type Column struct {
	Key      string
	Aliases  []string
	Required bool
}

// ColumnMap maps a column key to its index in the header row
type ColumnMap map[string]int

// Value returns the cell for key in row, or "" when the column is absent
func (m ColumnMap) Value(row Row, key string) string {
	idx, ok := m[key]
	if !ok {
		return ""
	}
	return row.Cell(idx)
}

// Has reports whether the column was found in the header
func (m ColumnMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// MatchColumns resolves column definitions against the header row. Matching
// is case-insensitive and ignores surrounding and repeated whitespace. The
// first header that matches a column wins.
func (s *Sheet) MatchColumns(columns []Column) (ColumnMap, error) {
	folder := cases.Fold()
	normalized := make([]string, len(s.Headers))
	for i, h := range s.Headers {
		normalized[i] = normalizeHeader(folder.String(h))
	}

	m := make(ColumnMap, len(columns))
	var missing []string
	for _, col := range columns {
		found := false
		for _, alias := range append([]string{col.Key}, col.Aliases...) {
			want := normalizeHeader(folder.String(alias))
			for i, h := range normalized {
				if h == want {
					m[col.Key] = i
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found && col.Required {
			missing = append(missing, col.Key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return m, nil
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(h), " ")
}

// newSheet builds a Sheet from raw rows, using the first non-empty row as
// the header. Empty rows after the header keep their position so row numbers
// stay aligned with the spreadsheet.
func newSheet(raw [][]string) (*Sheet, error) {
	headerIdx := -1
	for i, r := range raw {
		if !(Row{Cells: r}).IsEmpty() {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrMissingHeader
	}

	headers := make([]string, len(raw[headerIdx]))
	for i, h := range raw[headerIdx] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	data := raw[headerIdx+1:]
	rows := make([]Row, 0, len(data))
	for i, cells := range data {
		rows = append(rows, Row{Number: i + DataRowOffset, Cells: cells})
	}
	return &Sheet{Headers: headers, Rows: rows}, nil
}
