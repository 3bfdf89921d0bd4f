package parabank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

const accountsJSON = `[
  {"id": 13344, "customerId": 12212, "type": "CHECKING", "balance": 500.00},
  {"id": 13455, "customerId": 12212, "type": "SAVINGS", "balance": 300.50}
]`

func TestAccounts(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(accountsJSON))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 12212, "SESSION42", zerolog.Nop())
	accts, err := client.Accounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/services/bank/customers/12212/accounts", gotReq.URL.Path)
	assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
	cookie, err := gotReq.Cookie("JSESSIONID")
	require.NoError(t, err)
	assert.Equal(t, "SESSION42", cookie.Value)

	require.Len(t, accts, 2)
	assert.Equal(t, 13344, accts[0].ID)
	assert.Equal(t, model.AccountTypeChecking, accts[0].Type)
	assert.True(t, accts[1].Balance.Equal(decimal.NewFromFloat(300.50)))
}

func TestAccounts_NoSessionSendsNoCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("JSESSIONID")
		assert.ErrorIs(t, err, http.ErrNoCookie)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 12212, "", zerolog.Nop())
	accts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accts)
}

func TestAccounts_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 12212, "STALE", zerolog.Nop())
	_, err := client.Accounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "session expired")
}

func TestAccounts_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 12212, "S", zerolog.Nop())
	_, err := client.Accounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding accounts")
}

func TestTransfer(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		_, _ = w.Write([]byte("Successfully transferred"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 12212, "S", zerolog.Nop())
	err := client.Transfer(context.Background(), "13344", "13455", decimal.NewFromInt(1000))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/services/bank/transfer", gotReq.URL.Path)
	q := gotReq.URL.Query()
	assert.Equal(t, "13344", q.Get("fromAccountId"))
	assert.Equal(t, "13455", q.Get("toAccountId"))
	assert.Equal(t, "1000", q.Get("amount"))
}

func TestPayBill(t *testing.T) {
	var gotReq *http.Request
	var gotBody model.Payee
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	payee := model.Payee{
		Name: "Electricity Company",
		Address: model.Address{
			Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001",
		},
		PhoneNumber: "1234567890",
	}

	client := NewClient(srv.URL, 12212, "S", zerolog.Nop())
	err := client.PayBill(context.Background(), "13344", decimal.NewFromInt(500), payee)
	require.NoError(t, err)

	assert.Equal(t, "/services/bank/billpay", gotReq.URL.Path)
	q := gotReq.URL.Query()
	assert.Equal(t, "13344", q.Get("accountId"))
	assert.Equal(t, "500", q.Get("amount"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, payee, gotBody)
}

func TestCreateAccount(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(r.Context())
		_, _ = w.Write([]byte(`{"id": 14000, "customerId": 12212, "type": "SAVINGS", "balance": 100.00}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 12212, "S", zerolog.Nop())
	account, err := client.CreateAccount(context.Background(), model.AccountTypeSavings, "13344")
	require.NoError(t, err)

	assert.Equal(t, "/services/bank/createAccount", gotReq.URL.Path)
	q := gotReq.URL.Query()
	assert.Equal(t, "12212", q.Get("customerId"))
	assert.Equal(t, "1", q.Get("newAccountType"))
	assert.Equal(t, "13344", q.Get("fromAccountId"))

	assert.Equal(t, 14000, account.ID)
	assert.Equal(t, model.AccountTypeSavings, account.Type)
}

func TestCreateAccount_UnknownType(t *testing.T) {
	client := NewClient("http://localhost", 12212, "S", zerolog.Nop())
	_, err := client.CreateAccount(context.Background(), model.AccountType("CRYPTO"), "13344")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}
