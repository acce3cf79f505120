package mockbank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, User) {
	store := NewStore(15*time.Minute, 24*time.Hour)
	user, err := store.Seed("demo@lumabank.dev", "demo", "demo12345")
	require.NoError(t, err)
	return store, user
}

func TestCreateUserConflict(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.CreateUser("other@lumabank.dev", "demo", "password1")
	require.Error(t, err)
	require.IsType(t, &ErrConflict{}, err)
}

func TestCreateUserOpensStarterAccount(t *testing.T) {
	store := NewStore(15*time.Minute, 24*time.Hour)
	user, err := store.CreateUser("jane@lumabank.dev", "jane", "password1")
	require.NoError(t, err)
	accounts := store.AccountsByUserID(user.ID)
	require.Len(t, accounts, 1)
	require.Equal(t, "CHECKING", accounts[0].Type)
	require.Equal(t, "jane", accounts[0].Owner)
	require.Equal(t, "ACTIVE", accounts[0].Status)
}

func TestAuthenticateUser(t *testing.T) {
	store, user := newTestStore(t)

	authenticated, err := store.AuthenticateUser("demo", "demo12345")
	require.NoError(t, err)
	require.Equal(t, user.ID, authenticated.ID)

	_, err = store.AuthenticateUser("demo", "wrong")
	require.Error(t, err)
	require.IsType(t, &ErrAuthentication{}, err)

	_, err = store.AuthenticateUser("nobody", "demo12345")
	require.Error(t, err)
	require.IsType(t, &ErrAuthentication{}, err)
}

func TestSessionLifecycle(t *testing.T) {
	store, user := newTestStore(t)

	tokens := store.CreateSession(user.ID)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Greater(t, tokens.AccessTokenExpiresIn, time.Now().Unix())
	require.Greater(
		t,
		tokens.RefreshTokenExpiresIn,
		tokens.AccessTokenExpiresIn,
	)

	resolved, err := store.UserByAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)

	// Renewal rotates the pair and invalidates the old one
	renewed, err := store.RenewSession(tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, tokens.AccessToken, renewed.AccessToken)
	require.NotEqual(t, tokens.RefreshToken, renewed.RefreshToken)
	_, err = store.UserByAccessToken(tokens.AccessToken)
	require.Error(t, err)
	_, err = store.RenewSession(tokens.RefreshToken)
	require.Error(t, err)

	require.NoError(t, store.DeleteSessionByAccessToken(renewed.AccessToken))
	_, err = store.UserByAccessToken(renewed.AccessToken)
	require.Error(t, err)
}

func TestExpiredAccessTokenIsRejected(t *testing.T) {
	store := NewStore(-time.Minute, 24*time.Hour)
	user, err := store.CreateUser("jane@lumabank.dev", "jane", "password1")
	require.NoError(t, err)
	tokens := store.CreateSession(user.ID)
	_, err = store.UserByAccessToken(tokens.AccessToken)
	require.Error(t, err)
	require.IsType(t, &ErrAuthentication{}, err)
}

func TestAccountByNumberEnforcesOwnership(t *testing.T) {
	store, user := newTestStore(t)
	other, err := store.CreateUser("jane@lumabank.dev", "jane", "password1")
	require.NoError(t, err)

	accounts := store.AccountsByUserID(user.ID)
	require.NotEmpty(t, accounts)

	_, err = store.AccountByNumber(user.ID, accounts[0].AccountNumber)
	require.NoError(t, err)

	_, err = store.AccountByNumber(other.ID, accounts[0].AccountNumber)
	require.Error(t, err)
	require.IsType(t, &ErrNotFound{}, err)
}

func TestTransactions(t *testing.T) {
	store, user := newTestStore(t)

	all, total := store.Transactions(user.ID, TransactionsSelector{})
	require.Equal(t, 4, total)
	require.Len(t, all, 4)
	// Newest first, regardless of the order entries were recorded in. The
	// newest seed entry is the most recent payroll deposit; the oldest is
	// the savings opening balance.
	for i := 1; i < len(all); i++ {
		require.GreaterOrEqual(t, all[i-1].CreatedAt, all[i].CreatedAt)
	}
	require.Equal(t, float64(1061), all[0].Amount)
	require.Equal(t, "opening balance", all[3].Description)

	deposits, total := store.Transactions(
		user.ID,
		TransactionsSelector{Type: "deposit"},
	)
	require.Equal(t, 3, total)
	for _, transaction := range deposits {
		require.Equal(t, "DEPOSIT", transaction.Type)
	}

	page, total := store.Transactions(
		user.ID,
		TransactionsSelector{Limit: 2, Offset: 1},
	)
	require.Equal(t, 4, total)
	require.Len(t, page, 2)
	require.Equal(t, all[1].ID, page[0].ID)

	past, total := store.Transactions(
		user.ID,
		TransactionsSelector{Offset: 10},
	)
	require.Equal(t, 4, total)
	require.Empty(t, past)

	none, total := store.Transactions("no-such-user", TransactionsSelector{})
	require.Zero(t, total)
	require.Empty(t, none)
}

func TestTransactionsFilteredByAccount(t *testing.T) {
	store, user := newTestStore(t)
	accounts := store.AccountsByUserID(user.ID)
	require.Len(t, accounts, 2)
	for _, account := range accounts {
		matched, _ := store.Transactions(
			user.ID,
			TransactionsSelector{AccountNumber: account.AccountNumber},
		)
		for _, transaction := range matched {
			require.Equal(t, account.AccountNumber, transaction.AccountNumber)
		}
	}
}
