package model

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies accounts as the banking API reports them.
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeLoan     AccountType = "LOAN"
)

// Account represents one entry in the accounts list returned by the
// customer accounts endpoint.
type Account struct {
	ID         int             `json:"id"`
	CustomerID int             `json:"customerId"`
	Type       AccountType     `json:"type"`
	Balance    decimal.Decimal `json:"balance"`
}
