package snapshot

import (
	"fmt"
	"io"

	"github.com/tally-dev/tally/internal/htmltable"
)

// accountTableID is the id of the accounts-overview table in the demo
// bank's markup.
const accountTableID = "accountTable"

// HTMLReader reads a snapshot captured as an accounts-overview HTML page.
type HTMLReader struct {
	// TableID overrides the table element to extract. Empty means the
	// demo bank's default.
	TableID string
}

// Format returns the reader name.
func (r *HTMLReader) Format() string { return "html" }

// Read extracts the account table from an HTML document into a Table.
// A document without the table yields an empty Table: a page captured
// before rendering finished is a valid, if useless, snapshot.
func (r *HTMLReader) Read(src io.Reader) (Table, error) {
	id := r.TableID
	if id == "" {
		id = accountTableID
	}

	rows, found, err := htmltable.ParseTable(src, id)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot HTML: %w", err)
	}
	if !found {
		return nil, nil
	}

	var table Table
	for _, cells := range rows {
		table = append(table, Row(cells))
	}
	return table, nil
}
