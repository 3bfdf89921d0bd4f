package accounts

import (
	"strconv"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/snapshot"
)

// Service provides in-memory lookup over a fetched accounts list.
type Service struct {
	accounts []model.Account
	byID     map[int]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// All returns all accounts in fetch order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id int) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// IDs returns the account identifiers as strings, preserving fetch order.
func (s *Service) IDs() []string {
	ids := make([]string, 0, len(s.accounts))
	for _, a := range s.accounts {
		ids = append(ids, strconv.Itoa(a.ID))
	}
	return ids
}

// Snapshot converts the accounts list into the tabular shape reconciliation
// consumes: one row per account, no totals row. Balances are rendered as
// plain decimal strings, so normalization is a no-op on them.
func (s *Service) Snapshot() snapshot.Table {
	table := make(snapshot.Table, 0, len(s.accounts))
	for _, a := range s.accounts {
		table = append(table, snapshot.Row{
			strconv.Itoa(a.ID),
			a.Balance.String(),
			string(a.Type),
		})
	}
	return table
}
