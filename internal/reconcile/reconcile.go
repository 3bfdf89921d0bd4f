// Package reconcile derives account state from tabular snapshots and checks
// that per-account balances add up to the displayed total.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/snapshot"
)

// Result is the outcome of one reconciliation pass.
type Result struct {
	// AccountIDs are the numeric identifiers found in the data rows, in
	// input order. The totals row never contributes one.
	AccountIDs []string
	// Sum is the total of all parseable balance cells in the data rows.
	Sum decimal.Decimal
	// ExpectedTotal is the totals row's balance. Valid only when HasTotal
	// is true.
	ExpectedTotal decimal.Decimal
	HasTotal      bool
	// Agree is false only when a numeric expected total exists and the sum
	// differs from it beyond the tolerance. With nothing to check it is
	// vacuously true.
	Agree bool
}

// Reconcile partitions a snapshot into data rows and a trailing totals row,
// collects account identifiers, sums the parseable balances, and compares
// the sum against the stated total.
//
// The input is never mutated and cell-level problems never abort the pass:
// a malformed balance is excluded from the sum, a non-numeric identifier is
// excluded from the list, and only a genuine sum-versus-total divergence
// surfaces, as Agree == false. The caller decides whether that is fatal.
func Reconcile(table snapshot.Table, opts snapshot.Options) Result {
	res := Result{Sum: decimal.Zero, Agree: true}
	if len(table) == 0 {
		return res
	}

	// The last row of a multi-row snapshot holds the aggregate, but only
	// when it is not itself a data row: a totals row never carries a
	// numeric account identifier. API snapshots end on an ordinary account
	// row and so have nothing to reconcile against, as does a single row.
	data := table
	var totals snapshot.Row
	if len(table) > 1 {
		last := table[len(table)-1]
		if len(last) == 0 || !snapshot.IsAccountID(last[0]) {
			data = table[:len(table)-1]
			totals = last
		}
	}

	for _, row := range data {
		if len(row) == 0 {
			continue
		}
		if snapshot.IsAccountID(row[0]) {
			res.AccountIDs = append(res.AccountIDs, row[0])
		}
		if len(row) > 1 {
			if v, ok := snapshot.NormalizeBalance(row[1], opts); ok {
				res.Sum = res.Sum.Add(v)
			}
		}
	}

	if len(totals) > 1 {
		if total, ok := snapshot.NormalizeBalance(totals[1], opts); ok {
			res.ExpectedTotal = total
			res.HasTotal = true
			res.Agree = res.Sum.Sub(total).Abs().LessThan(opts.Tolerance)
		}
	}

	return res
}
