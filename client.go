package lumen

import (
	"time"

	"github.com/lumabank/lumen/session"
)

// ClientConfig holds everything needed to construct a Client. There is no
// ambient or global configuration; every client is built from one of these.
type ClientConfig struct {
	// APIAddress is the base URL of the banking API, including any base
	// path, e.g. "https://bank.example.com/api/v1".
	APIAddress string
	// Timeout is the per-request timeout. Zero selects
	// session.DefaultTimeout.
	Timeout time.Duration
	// AllowInsecure permits TLS connections with unverifiable certificates.
	AllowInsecure bool
}

// Client is the top-level client for the banking API. It aggregates
// specialized clients that share one session manager, so a refresh performed
// on behalf of any operation benefits all of them.
type Client interface {
	// Sessions returns the session manager owning this client's token pair.
	Sessions() *session.Manager
	// Users returns the specialized client for user profile operations.
	Users() UsersClient
	// Accounts returns the specialized client for account operations.
	Accounts() AccountsClient
	// Transactions returns the specialized client for transaction
	// operations.
	Transactions() TransactionsClient
}

type client struct {
	sessionManager     *session.Manager
	usersClient        UsersClient
	accountsClient     AccountsClient
	transactionsClient TransactionsClient
}

// NewClient returns a Client backed by the given configuration, persisting
// session credentials to the given store.
func NewClient(config ClientConfig, store session.SecretStore) Client {
	sessionManager := session.NewManager(
		config.APIAddress,
		store,
		config.Timeout,
		config.AllowInsecure,
	)
	return &client{
		sessionManager:     sessionManager,
		usersClient:        NewUsersClient(config, sessionManager),
		accountsClient:     NewAccountsClient(config, sessionManager),
		transactionsClient: NewTransactionsClient(config, sessionManager),
	}
}

func (c *client) Sessions() *session.Manager {
	return c.sessionManager
}

func (c *client) Users() UsersClient {
	return c.usersClient
}

func (c *client) Accounts() AccountsClient {
	return c.accountsClient
}

func (c *client) Transactions() TransactionsClient {
	return c.transactionsClient
}
