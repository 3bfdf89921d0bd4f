package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader reads a snapshot saved as CSV: one record per table row, cells
// verbatim, no header. Records may have differing field counts since
// rendered tables are ragged (the totals row often has fewer cells).
type CSVReader struct{}

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Read parses a CSV document into a Table.
func (r *CSVReader) Read(src io.Reader) (Table, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot CSV: %w", err)
	}

	var table Table
	for _, rec := range records {
		table = append(table, Row(rec))
	}
	return table, nil
}
