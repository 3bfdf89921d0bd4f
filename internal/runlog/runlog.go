package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tally-dev/tally/internal/reconcile"
)

// Entry is one row in the reconciliation run log.
type Entry struct {
	Timestamp     time.Time
	Source        string // csv, html, or api
	Accounts      int
	Sum           string
	ExpectedTotal string // empty when the snapshot had no totals row
	Agree         bool
}

// Header is the CSV header for reconcile-log.csv.
const Header = "timestamp,source,accounts,sum,expected_total,agree"

const (
	numFields   = 6
	logDir      = "logs"
	logFile     = "logs/reconcile-log.csv"
	colTime     = 0
	colSource   = 1
	colAccounts = 2
	colSum      = 3
	colExpected = 4
	colAgree    = 5
)

// FromResult builds an Entry from a reconciliation result.
func FromResult(source string, res reconcile.Result, at time.Time) Entry {
	e := Entry{
		Timestamp: at,
		Source:    source,
		Accounts:  len(res.AccountIDs),
		Sum:       res.Sum.StringFixed(2),
		Agree:     res.Agree,
	}
	if res.HasTotal {
		e.ExpectedTotal = res.ExpectedTotal.StringFixed(2)
	}
	return e
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colSource] = e.Source
	row[colAccounts] = strconv.Itoa(e.Accounts)
	row[colSum] = e.Sum
	row[colExpected] = e.ExpectedTotal
	row[colAgree] = strconv.FormatBool(e.Agree)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	accts, err := strconv.Atoi(record[colAccounts])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing accounts %q: %w", record[colAccounts], err)
	}

	agree, err := strconv.ParseBool(record[colAgree])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing agree %q: %w", record[colAgree], err)
	}

	return Entry{
		Timestamp:     ts,
		Source:        record[colSource],
		Accounts:      accts,
		Sum:           record[colSum],
		ExpectedTotal: record[colExpected],
		Agree:         agree,
	}, nil
}

// Append writes entries to <root>/logs/reconcile-log.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/reconcile-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
