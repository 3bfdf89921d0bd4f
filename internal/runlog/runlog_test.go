package runlog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/reconcile"
)

func sampleEntry(at time.Time) Entry {
	return Entry{
		Timestamp:     at,
		Source:        "html",
		Accounts:      2,
		Sum:           "800.00",
		ExpectedTotal: "800.00",
		Agree:         true,
	}
}

func TestAppendAndRead(t *testing.T) {
	root := t.TempDir()
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	err := Append(root, []Entry{sampleEntry(at)})
	require.NoError(t, err)

	second := sampleEntry(at.Add(time.Minute))
	second.Source = "api"
	second.ExpectedTotal = ""
	err = Append(root, []Entry{second})
	require.NoError(t, err)

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "html", entries[0].Source)
	assert.True(t, entries[0].Timestamp.Equal(at))
	assert.Equal(t, "api", entries[1].Source)
	assert.Empty(t, entries[1].ExpectedTotal)
	assert.True(t, entries[1].Agree)
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	require.Error(t, err)
}

func TestFromResult(t *testing.T) {
	at := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	res := reconcile.Result{
		AccountIDs:    []string{"1001", "1002"},
		Sum:           decimal.RequireFromString("800.5"),
		ExpectedTotal: decimal.RequireFromString("800"),
		HasTotal:      true,
		Agree:         false,
	}

	e := FromResult("csv", res, at)
	assert.Equal(t, "csv", e.Source)
	assert.Equal(t, 2, e.Accounts)
	assert.Equal(t, "800.50", e.Sum)
	assert.Equal(t, "800.00", e.ExpectedTotal)
	assert.False(t, e.Agree)
}

func TestFromResult_NoTotal(t *testing.T) {
	res := reconcile.Result{
		AccountIDs: []string{"1001"},
		Sum:        decimal.Zero,
		Agree:      true,
	}

	e := FromResult("api", res, time.Now())
	assert.Empty(t, e.ExpectedTotal)
	assert.True(t, e.Agree)
}
