// Package htmltable extracts row/cell text from a table element inside a
// captured HTML document. It is the seam between a rendered page and the
// snapshot model: callers get rows of cells and never touch markup.
package htmltable

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseTable parses an HTML document and returns the cell text of every row
// in the table with the given id attribute. found is false when no such
// table exists (for example a page captured before the table rendered);
// that is an expected condition, not an error.
func ParseTable(r io.Reader, id string) (rows [][]string, found bool, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, false, fmt.Errorf("parsing HTML: %w", err)
	}

	table := findTable(doc, id)
	if table == nil {
		return nil, false, nil
	}

	collectRows(table, &rows)
	return rows, true, nil
}

func findTable(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c, id); t != nil {
			return t
		}
	}
	return nil
}

func collectRows(n *html.Node, rows *[][]string) {
	if n.Type == html.ElementNode && n.Data == "tr" {
		var cells []string
		collectCells(n, &cells)
		*rows = append(*rows, cells)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectRows(c, rows)
	}
}

func collectCells(n *html.Node, cells *[]string) {
	if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
		*cells = append(*cells, cellText(n))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCells(c, cells)
	}
}

// cellText concatenates the text nodes under a cell. Only ASCII whitespace
// is trimmed: a non-breaking space is the page's "no value" placeholder and
// must survive extraction.
func cellText(n *html.Node) string {
	var b strings.Builder
	appendText(n, &b)
	return strings.Trim(b.String(), " \t\r\n")
}

func appendText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(c, b)
	}
}
