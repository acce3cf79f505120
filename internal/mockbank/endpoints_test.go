package mockbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	store := NewStore(15*time.Minute, 24*time.Hour)
	_, err := store.Seed("demo@lumabank.dev", "demo", "demo12345")
	require.NoError(t, err)
	baseEndpoints := &BaseEndpoints{
		TokenAuthFilter: NewTokenAuthFilter(store),
	}
	router := mux.NewRouter()
	router.StrictSlash(true)
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	for _, eps := range []Endpoints{
		NewSessionsEndpoints(baseEndpoints, store),
		NewUsersEndpoints(baseEndpoints, store),
		NewAccountsEndpoints(baseEndpoints, store),
		NewTransactionsEndpoints(baseEndpoints, store),
	} {
		eps.Register(apiRouter)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, store
}

func doJSONRequest(
	t *testing.T,
	method string,
	url string,
	accessToken string,
	reqBodyObj interface{},
	respObj interface{},
) *http.Response {
	var reqBody []byte
	if reqBodyObj != nil {
		var err error
		reqBody, err = json.Marshal(reqBodyObj)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, url, bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set(
			"Authorization",
			fmt.Sprintf("Bearer %s", accessToken),
		)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if respObj != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(respObj))
	}
	return resp
}

func login(t *testing.T, server *httptest.Server) SessionTokens {
	tokens := SessionTokens{}
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/auth/sessions/users", server.URL),
		"",
		map[string]string{"username": "demo", "password": "demo12345"},
		&tokens,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	return tokens
}

func TestLoginBadCredentials(t *testing.T) {
	server, _ := newTestServer(t)
	respBody := struct {
		Message string `json:"message"`
	}{}
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/auth/sessions/users", server.URL),
		"",
		map[string]string{"username": "demo", "password": "wrong"},
		&respBody,
	)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "invalid username or password", respBody.Message)
}

func TestLoginRequestBodyValidation(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/auth/sessions/users", server.URL),
		"",
		map[string]string{"username": "demo"}, // no password
		nil,
	)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionRenewal(t *testing.T) {
	server, _ := newTestServer(t)
	tokens := login(t, server)

	renewed := SessionTokens{}
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/auth/sessions/renew", server.URL),
		tokens.RefreshToken,
		nil,
		&renewed,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEqual(t, tokens.AccessToken, renewed.AccessToken)

	// The old access token no longer works
	resp = doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/current", server.URL),
		tokens.AccessToken,
		nil,
		nil,
	)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The new one does
	resp = doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/current", server.URL),
		renewed.AccessToken,
		nil,
		nil,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionRenewalWithUnknownToken(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/auth/sessions/renew", server.URL),
		"bogus",
		nil,
		nil,
	)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	server, _ := newTestServer(t)
	tokens := login(t, server)
	resp := doJSONRequest(
		t,
		http.MethodDelete,
		fmt.Sprintf("%s/api/v1/auth/sessions/users", server.URL),
		tokens.AccessToken,
		nil,
		nil,
	)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/current", server.URL),
		tokens.AccessToken,
		nil,
		nil,
	)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateUser(t *testing.T) {
	server, _ := newTestServer(t)
	respBody := struct {
		User *User `json:"user"`
	}{}
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/users", server.URL),
		"",
		map[string]string{
			"email":    "jane@lumabank.dev",
			"username": "jane",
			"password": "password1",
		},
		&respBody,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, respBody.User)
	require.NotEmpty(t, respBody.User.ID)
	require.Equal(t, "jane", respBody.User.Username)
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doJSONRequest(
		t,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/users", server.URL),
		"",
		map[string]string{
			"email":    "jane@lumabank.dev",
			"username": "jane",
			"password": "short",
		},
		nil,
	)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrentUser(t *testing.T) {
	server, _ := newTestServer(t)
	tokens := login(t, server)
	respBody := struct {
		User *User `json:"user"`
	}{}
	resp := doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/current", server.URL),
		tokens.AccessToken,
		nil,
		&respBody,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, respBody.User)
	require.Equal(t, "demo", respBody.User.Username)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/current", server.URL),
		"",
		nil,
		nil,
	)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserAccounts(t *testing.T) {
	server, store := newTestServer(t)
	tokens := login(t, server)
	user, err := store.AuthenticateUser("demo", "demo12345")
	require.NoError(t, err)

	respBody := struct {
		Accounts []Account `json:"accounts"`
	}{}
	resp := doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/%s/accounts", server.URL, user.ID),
		tokens.AccessToken,
		nil,
		&respBody,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, respBody.Accounts, 2)

	// Asking for some other user's accounts reads as not-found
	resp = doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/%s/accounts", server.URL, "other-id"),
		tokens.AccessToken,
		nil,
		nil,
	)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAccount(t *testing.T) {
	server, store := newTestServer(t)
	tokens := login(t, server)
	user, err := store.AuthenticateUser("demo", "demo12345")
	require.NoError(t, err)
	accounts := store.AccountsByUserID(user.ID)
	require.NotEmpty(t, accounts)

	respBody := struct {
		Account *Account `json:"account"`
	}{}
	resp := doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf(
			"%s/api/v1/accounts/%s",
			server.URL,
			accounts[0].AccountNumber,
		),
		tokens.AccessToken,
		nil,
		&respBody,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, respBody.Account)
	require.Equal(t, accounts[0].AccountNumber, respBody.Account.AccountNumber)

	resp = doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/accounts/%s", server.URL, "0000000000"),
		tokens.AccessToken,
		nil,
		nil,
	)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListTransactions(t *testing.T) {
	server, _ := newTestServer(t)
	tokens := login(t, server)

	respBody := struct {
		Transactions []Transaction `json:"transactions"`
		Total        int           `json:"total"`
	}{}
	resp := doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf("%s/api/v1/transactions", server.URL),
		tokens.AccessToken,
		nil,
		&respBody,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 4, respBody.Total)
	require.Len(t, respBody.Transactions, 4)

	respBody.Transactions = nil
	resp = doJSONRequest(
		t,
		http.MethodGet,
		fmt.Sprintf(
			"%s/api/v1/transactions?transaction_type=WITHDRAWAL&limit=10",
			server.URL,
		),
		tokens.AccessToken,
		nil,
		&respBody,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, respBody.Total)
	require.Len(t, respBody.Transactions, 1)
	require.Equal(t, "WITHDRAWAL", respBody.Transactions[0].Type)
}

func TestListTransactionsRejectsBadPaging(t *testing.T) {
	server, _ := newTestServer(t)
	tokens := login(t, server)
	for _, query := range []string{"limit=0", "limit=abc", "offset=-1"} {
		resp := doJSONRequest(
			t,
			http.MethodGet,
			fmt.Sprintf("%s/api/v1/transactions?%s", server.URL, query),
			tokens.AccessToken,
			nil,
			nil,
		)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}
