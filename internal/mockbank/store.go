package mockbank

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// User is a registered banking user.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	CreatedAt      string `json:"created_at,omitempty"`
	hashedPassword string
}

// Account is a bank account belonging to a user.
type Account struct {
	ID            string  `json:"id"`
	AccountNumber string  `json:"account_number"`
	Balance       float64 `json:"balance"`
	Owner         string  `json:"owner"`
	Status        string  `json:"status"`
	Currency      string  `json:"currency"`
	Type          string  `json:"account_type"`
	userID        string
}

// Transaction is a single movement on an account.
type Transaction struct {
	ID            string  `json:"id"`
	AccountNumber string  `json:"account_number"`
	Type          string  `json:"transaction_type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at"`
	userID        string
}

// SessionTokens is a freshly issued token pair with absolute expiries (Unix
// seconds).
type SessionTokens struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type sessionRecord struct {
	userID             string
	hashedAccessToken  string
	hashedRefreshToken string
	accessTokenExpiry  time.Time
	refreshTokenExpiry time.Time
}

// TransactionsSelector narrows a transactions listing.
type TransactionsSelector struct {
	Limit         int
	Offset        int
	Type          string
	AccountNumber string
}

// Store is an in-memory datastore holding users, accounts, transactions and
// sessions. It exists so client applications can be developed against a
// running backend with no external services.
type Store struct {
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	mu                sync.Mutex
	usersByID         map[string]*User
	usersByUsername   map[string]*User
	accountsByNumber  map[string]*Account
	transactions      []*Transaction
	sessionsByAccess  map[string]*sessionRecord
	sessionsByRefresh map[string]*sessionRecord
}

// NewStore returns an empty Store issuing sessions with the given TTLs.
func NewStore(accessTokenTTL, refreshTokenTTL time.Duration) *Store {
	return &Store{
		accessTokenTTL:    accessTokenTTL,
		refreshTokenTTL:   refreshTokenTTL,
		usersByID:         map[string]*User{},
		usersByUsername:   map[string]*User{},
		accountsByNumber:  map[string]*Account{},
		sessionsByAccess:  map[string]*sessionRecord{},
		sessionsByRefresh: map[string]*sessionRecord{},
	}
}

// CreateUser registers a new user and opens a starter account for them.
func (s *Store) CreateUser(email, username, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByUsername[username]; ok {
		return User{}, &ErrConflict{
			Type: "User",
			ID:   username,
		}
	}
	user := &User{
		ID:             uuid.NewV4().String(),
		Email:          email,
		Username:       username,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		hashedPassword: ShortSHA(username, password),
	}
	s.usersByID[user.ID] = user
	s.usersByUsername[user.Username] = user
	s.addAccount(user, 0, "CHECKING")
	return *user, nil
}

// AuthenticateUser verifies the given credentials and returns the matching
// user.
func (s *Store) AuthenticateUser(username, password string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.usersByUsername[username]
	if !ok || user.hashedPassword != ShortSHA(username, password) {
		return User{}, &ErrAuthentication{
			Reason: "invalid username or password",
		}
	}
	return *user, nil
}

// UserByID returns the identified user.
func (s *Store) UserByID(id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.usersByID[id]
	if !ok {
		return User{}, &ErrNotFound{
			Type: "User",
			ID:   id,
		}
	}
	return *user, nil
}

// CreateSession issues a new token pair for the identified user.
func (s *Store) CreateSession(userID string) SessionTokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSession(userID)
}

func (s *Store) createSession(userID string) SessionTokens {
	now := time.Now()
	tokens := SessionTokens{
		AccessToken:           NewToken(48),
		AccessTokenExpiresIn:  now.Add(s.accessTokenTTL).Unix(),
		RefreshToken:          NewToken(48),
		RefreshTokenExpiresIn: now.Add(s.refreshTokenTTL).Unix(),
	}
	record := &sessionRecord{
		userID:             userID,
		hashedAccessToken:  ShortSHA("", tokens.AccessToken),
		hashedRefreshToken: ShortSHA("", tokens.RefreshToken),
		accessTokenExpiry:  now.Add(s.accessTokenTTL),
		refreshTokenExpiry: now.Add(s.refreshTokenTTL),
	}
	s.sessionsByAccess[record.hashedAccessToken] = record
	s.sessionsByRefresh[record.hashedRefreshToken] = record
	return tokens
}

// UserByAccessToken resolves a live access token to its user.
func (s *Store) UserByAccessToken(accessToken string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.sessionsByAccess[ShortSHA("", accessToken)]
	if !ok || time.Now().After(record.accessTokenExpiry) {
		return User{}, &ErrAuthentication{
			Reason: "session not found or expired",
		}
	}
	user, ok := s.usersByID[record.userID]
	if !ok {
		return User{}, &ErrAuthentication{
			Reason: "session user no longer exists",
		}
	}
	return *user, nil
}

// RenewSession exchanges a live refresh token for a new token pair. The old
// pair is invalidated.
func (s *Store) RenewSession(refreshToken string) (SessionTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hashed := ShortSHA("", refreshToken)
	record, ok := s.sessionsByRefresh[hashed]
	if !ok || time.Now().After(record.refreshTokenExpiry) {
		return SessionTokens{}, &ErrAuthentication{
			Reason: "refresh token not found or expired",
		}
	}
	delete(s.sessionsByAccess, record.hashedAccessToken)
	delete(s.sessionsByRefresh, record.hashedRefreshToken)
	return s.createSession(record.userID), nil
}

// DeleteSessionByAccessToken ends the session identified by a live access
// token.
func (s *Store) DeleteSessionByAccessToken(accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hashed := ShortSHA("", accessToken)
	record, ok := s.sessionsByAccess[hashed]
	if !ok {
		return &ErrNotFound{
			Type: "Session",
			ID:   "",
		}
	}
	delete(s.sessionsByAccess, record.hashedAccessToken)
	delete(s.sessionsByRefresh, record.hashedRefreshToken)
	return nil
}

// AccountsByUserID returns all accounts belonging to the identified user.
func (s *Store) AccountsByUserID(userID string) []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := []Account{}
	for _, account := range s.accountsByNumber {
		if account.userID == userID {
			accounts = append(accounts, *account)
		}
	}
	return accounts
}

// AccountByNumber returns the identified account if it belongs to the
// identified user.
func (s *Store) AccountByNumber(
	userID string,
	accountNumber string,
) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accountsByNumber[accountNumber]
	if !ok || account.userID != userID {
		return Account{}, &ErrNotFound{
			Type: "Account",
			ID:   accountNumber,
		}
	}
	return *account, nil
}

// Transactions returns the identified user's transactions, newest first,
// narrowed by the selector, along with the total count before
// limit/offset were applied.
func (s *Store) Transactions(
	userID string,
	selector TransactionsSelector,
) ([]Transaction, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []Transaction{}
	for _, transaction := range s.transactions {
		if transaction.userID != userID {
			continue
		}
		if selector.Type != "" &&
			!strings.EqualFold(selector.Type, transaction.Type) {
			continue
		}
		if selector.AccountNumber != "" &&
			selector.AccountNumber != transaction.AccountNumber {
			continue
		}
		matched = append(matched, *transaction)
	}
	// RFC 3339 timestamps sort lexically; newest first.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt > matched[j].CreatedAt
	})
	total := len(matched)
	if selector.Offset > 0 {
		if selector.Offset >= len(matched) {
			matched = []Transaction{}
		} else {
			matched = matched[selector.Offset:]
		}
	}
	if selector.Limit > 0 && selector.Limit < len(matched) {
		matched = matched[:selector.Limit]
	}
	return matched, total
}

// Seed populates the store with a demo user, two accounts, and a handful of
// transactions so a freshly started server is immediately usable.
func (s *Store) Seed(email, username, password string) (User, error) {
	user, err := s.CreateUser(email, username, password)
	if err != nil {
		return User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	owner := s.usersByID[user.ID]
	checking := s.firstAccountOf(user.ID)
	checking.Balance = 2500.75
	savings := s.addAccount(owner, 10000, "SAVINGS")
	now := time.Now().UTC()
	seedTransactions := []struct {
		account     *Account
		kind        string
		amount      float64
		description string
		age         time.Duration
	}{
		{checking, "DEPOSIT", 1500, "payroll", 72 * time.Hour},
		{checking, "WITHDRAWAL", 60.25, "groceries", 48 * time.Hour},
		{checking, "DEPOSIT", 1061, "payroll", 24 * time.Hour},
		{savings, "DEPOSIT", 10000, "opening balance", 96 * time.Hour},
	}
	for _, seed := range seedTransactions {
		s.transactions = append(s.transactions, &Transaction{
			ID:            uuid.NewV4().String(),
			AccountNumber: seed.account.AccountNumber,
			Type:          seed.kind,
			Amount:        seed.amount,
			Description:   seed.description,
			CreatedAt:     now.Add(-seed.age).Format(time.RFC3339),
			userID:        user.ID,
		})
	}
	return user, nil
}

func (s *Store) addAccount(
	user *User,
	balance float64,
	accountType string,
) *Account {
	account := &Account{
		ID:            uuid.NewV4().String(),
		AccountNumber: fmt.Sprintf("%010d", seededRand.Intn(1000000000)),
		Balance:       balance,
		Owner:         user.Username,
		Status:        "ACTIVE",
		Currency:      "USD",
		Type:          accountType,
		userID:        user.ID,
	}
	s.accountsByNumber[account.AccountNumber] = account
	return account
}

func (s *Store) firstAccountOf(userID string) *Account {
	for _, account := range s.accountsByNumber {
		if account.userID == userID {
			return account
		}
	}
	return nil
}
