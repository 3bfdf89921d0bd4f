// Package parabank is a thin client for the demo bank's session-
// authenticated REST endpoints. It owns transport only: the session token
// is handed in already obtained, and responses are normalized into the
// snapshot shape before any reconciliation logic sees them.
package parabank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

const (
	sessionCookie  = "JSESSIONID"
	userAgent      = "tally/1.0"
	defaultTimeout = 30 * time.Second
)

// Client issues authenticated reads and writes against the bank API.
type Client struct {
	baseURL    string
	customerID int
	session    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a Client. baseURL is the application root (for example
// "https://parabank.parasoft.com/parabank"); session is a previously
// obtained JSESSIONID value.
func NewClient(baseURL string, customerID int, session string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		customerID: customerID,
		session:    session,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

// Accounts fetches the customer's accounts list.
func (c *Client) Accounts(ctx context.Context) ([]model.Account, error) {
	endpoint := fmt.Sprintf("%s/services/bank/customers/%d/accounts", c.baseURL, c.customerID)

	body, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}

	var accounts []model.Account
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}
	return accounts, nil
}

// accountTypeCodes maps account types to the numeric codes the
// createAccount endpoint expects.
var accountTypeCodes = map[model.AccountType]string{
	model.AccountTypeChecking: "0",
	model.AccountTypeSavings:  "1",
	model.AccountTypeLoan:     "2",
}

// CreateAccount opens a new account of the given type, funded with the
// minimum opening deposit from fundingID, and returns it.
func (c *Client) CreateAccount(ctx context.Context, accountType model.AccountType, fundingID string) (model.Account, error) {
	code, ok := accountTypeCodes[accountType]
	if !ok {
		return model.Account{}, fmt.Errorf("unknown account type %q", accountType)
	}

	q := url.Values{}
	q.Set("customerId", fmt.Sprint(c.customerID))
	q.Set("newAccountType", code)
	q.Set("fromAccountId", fundingID)
	endpoint := c.baseURL + "/services/bank/createAccount?" + q.Encode()

	body, err := c.do(ctx, http.MethodPost, endpoint)
	if err != nil {
		return model.Account{}, fmt.Errorf("creating %s account: %w", accountType, err)
	}

	var account model.Account
	if err := json.Unmarshal(body, &account); err != nil {
		return model.Account{}, fmt.Errorf("decoding new account: %w", err)
	}
	c.log.Info().Int("id", account.ID).Str("type", string(account.Type)).Msg("account created")
	return account, nil
}

// Transfer moves amount from one account to another.
func (c *Client) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) error {
	q := url.Values{}
	q.Set("fromAccountId", fromID)
	q.Set("toAccountId", toID)
	q.Set("amount", amount.String())
	endpoint := c.baseURL + "/services/bank/transfer?" + q.Encode()

	if _, err := c.do(ctx, http.MethodPost, endpoint); err != nil {
		return fmt.Errorf("transferring %s from %s to %s: %w", amount, fromID, toID, err)
	}
	c.log.Info().Str("from", fromID).Str("to", toID).Stringer("amount", amount).Msg("transfer complete")
	return nil
}

// PayBill pays amount from the account to the payee.
func (c *Client) PayBill(ctx context.Context, accountID string, amount decimal.Decimal, payee model.Payee) error {
	q := url.Values{}
	q.Set("accountId", accountID)
	q.Set("amount", amount.String())
	endpoint := c.baseURL + "/services/bank/billpay?" + q.Encode()

	payload, err := json.Marshal(payee)
	if err != nil {
		return fmt.Errorf("encoding payee: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.send(req); err != nil {
		return fmt.Errorf("paying %s from %s to %q: %w", amount, accountID, payee.Name, err)
	}
	c.log.Info().Str("account", accountID).Str("payee", payee.Name).Stringer("amount", amount).Msg("bill paid")
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
