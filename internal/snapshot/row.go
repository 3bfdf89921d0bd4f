package snapshot

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one table row as an ordered sequence of cell strings.
type Row []string

// Table is a point-in-time capture of tabular account data, decoupled from
// how it was produced (page render, CSV export, or API response).
type Table []Row

// Options controls how cell text is interpreted. The defaults match the
// demo bank's en-US rendering; other locales swap the symbol and separator.
type Options struct {
	CurrencySymbol string
	GroupSeparator string
	Placeholder    string // token rendered for "no value" cells
	TotalsLabel    string
	Tolerance      decimal.Decimal
}

// DefaultOptions returns Options for the demo bank's rendering: dollar
// amounts with comma grouping, a non-breaking space for empty cells, and a
// one-cent reconciliation tolerance.
func DefaultOptions() Options {
	return Options{
		CurrencySymbol: "$",
		GroupSeparator: ",",
		Placeholder:    " ",
		TotalsLabel:    "Total",
		Tolerance:      decimal.New(1, -2),
	}
}

// IsAccountID reports whether s is syntactically a non-negative integer
// account identifier (non-empty, ASCII digits only).
func IsAccountID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeBalance strips the currency symbol and digit-grouping separators
// from a display string and parses the remainder as a decimal. ok is false
// when the cell is the placeholder token, the totals label, or still
// non-numeric after stripping.
func NormalizeBalance(s string, opts Options) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == opts.Placeholder || trimmed == opts.TotalsLabel {
		return decimal.Zero, false
	}

	cleaned := trimmed
	if opts.CurrencySymbol != "" {
		cleaned = strings.ReplaceAll(cleaned, opts.CurrencySymbol, "")
	}
	if opts.GroupSeparator != "" {
		cleaned = strings.ReplaceAll(cleaned, opts.GroupSeparator, "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
