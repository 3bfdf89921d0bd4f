package reconcile

import (
	"errors"
	"fmt"
)

// ErrNeedsMoreAccounts reports that fewer than two accounts remain
// available for a transfer even after one replenish attempt.
var ErrNeedsMoreAccounts = errors.New("not enough accounts for a transfer")

// Plan names the source and destination accounts of a fund transfer.
type Plan struct {
	From string
	To   string
}

// PlanTransfer picks the first two identifiers, in list order, as the
// transfer pair. With fewer than two available it invokes replenish once
// (the caller's hook to create an account and re-snapshot) and retries
// against its result; if that still yields fewer than two it returns
// ErrNeedsMoreAccounts. A replenish failure propagates as its own error so
// callers can tell "could not re-fetch" from "genuinely not enough".
func PlanTransfer(ids []string, replenish func() ([]string, error)) (Plan, error) {
	if len(ids) < 2 && replenish != nil {
		more, err := replenish()
		if err != nil {
			return Plan{}, fmt.Errorf("replenishing accounts: %w", err)
		}
		ids = more
	}
	if len(ids) < 2 {
		return Plan{}, ErrNeedsMoreAccounts
	}
	return Plan{From: ids[0], To: ids[1]}, nil
}
