package session

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Keys under which credentials are persisted in the secret store.
const (
	keyAccessToken            = "access_token"
	keyAccessTokenExpireTime  = "access_token_expire_time"
	keyRefreshToken           = "refresh_token"
	keyRefreshTokenExpireTime = "refresh_token_expire_time"
)

// Paths of the authentication endpoints, relative to the API address.
const (
	sessionsPath = "auth/sessions/users"
	renewPath    = "auth/sessions/renew"
)

// DefaultTimeout is the per-request timeout applied when none is specified.
const DefaultTimeout = 5 * time.Second

// LoginResponse represents the payload returned by the login and renew
// endpoints. Expiry values are absolute Unix timestamps (UTC seconds).
type LoginResponse struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
	Message               string `json:"message,omitempty"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Manager owns the access/refresh token pair: persistence to a SecretStore,
// expiry checks, the refresh protocol against the renewal endpoint, and
// construction of authenticated headers for API requests. A caller asking
// for authenticated headers either receives a header set carrying a
// currently-valid access token or a session Error-- never a stale token.
//
// All exported methods are safe for concurrent use; the check-refresh-use
// sequence is serialized so two callers observing an expired token cannot
// race duplicate refreshes or interleave partial credential writes.
type Manager struct {
	apiAddress string
	httpClient *http.Client
	store      SecretStore

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	now          func() time.Time
}

// NewManager returns a Manager that authenticates against the API server at
// apiAddress and persists credentials to store. Previously persisted
// credentials, if any, are loaded immediately. A zero timeout selects
// DefaultTimeout.
func NewManager(
	apiAddress string,
	store SecretStore,
	timeout time.Duration,
	allowInsecure bool,
) *Manager {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	m := &Manager{
		apiAddress: strings.TrimSuffix(apiAddress, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: allowInsecure,
				},
			},
		},
		store: store,
		now:   time.Now,
	}
	if token, err := store.Get(keyAccessToken); err == nil {
		m.accessToken = token
	}
	if token, err := store.Get(keyRefreshToken); err == nil {
		m.refreshToken = token
	}
	return m
}

// Login exchanges the given credentials for a new token pair. On a 201 from
// the server the returned tokens and expiries are persisted as one unit,
// replacing any previous pair. On any other status the decoded payload is
// still returned, together with a Protocol-kind Error, and session state is
// left untouched-- the payload's own fields distinguish bad credentials from
// server trouble.
func (m *Manager) Login(
	ctx context.Context,
	username string,
	password string,
) (LoginResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loginResp := LoginResponse{}
	resp, err := m.submitRequest(
		ctx,
		http.MethodPost,
		sessionsPath,
		baseHeaders(),
		credentials{
			Username: username,
			Password: password,
		},
	)
	if err != nil {
		return loginResp, err
	}
	defer resp.Body.Close()
	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return loginResp, newError(
			ErrorKindTransport,
			"error reading login response body",
			err,
		)
	}
	if err := json.Unmarshal(respBodyBytes, &loginResp); err != nil {
		return loginResp, newError(
			ErrorKindMalformedResponse,
			"error unmarshaling login response body",
			err,
		)
	}
	if resp.StatusCode != http.StatusCreated {
		return loginResp, newError(
			ErrorKindProtocol,
			fmt.Sprintf("login returned status %d", resp.StatusCode),
			nil,
		)
	}
	if err := m.storeToken(
		loginResp.AccessToken,
		loginResp.AccessTokenExpiresIn,
		loginResp.RefreshToken,
		loginResp.RefreshTokenExpiresIn,
	); err != nil {
		return loginResp, err
	}
	return loginResp, nil
}

// Logout deletes the session server-side and, on a 204, clears all persisted
// credentials. Any other outcome leaves credentials in place so the caller
// can retry.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	headers, err := m.authenticatedHeaders(ctx)
	if err != nil {
		return err
	}
	resp, err := m.submitRequest(
		ctx,
		http.MethodDelete,
		sessionsPath,
		headers,
		nil,
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return newError(
			ErrorKindProtocol,
			fmt.Sprintf("logout returned status %d", resp.StatusCode),
			nil,
		)
	}
	m.clearTokens()
	return nil
}

// CheckExpiration reports whether the persisted access token is expired. A
// missing expiry reads as expired; an unparsable one additionally clears all
// persisted credentials as corruption recovery.
func (m *Manager) CheckExpiration() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkExpiration()
}

func (m *Manager) checkExpiration() bool {
	expiryStr, err := m.store.Get(keyAccessTokenExpireTime)
	if err != nil {
		return true
	}
	expiry, err := strconv.ParseInt(strings.TrimSpace(expiryStr), 10, 64)
	if err != nil {
		m.clearTokens()
		return true
	}
	// The boundary instant itself counts as expired.
	return !m.now().Before(time.Unix(expiry, 0))
}

// AttemptRefresh exchanges refreshToken for a new token pair at the renewal
// endpoint. An empty refreshToken is a Configuration-kind Error and makes no
// network call. Any failure of the attempt itself (network, bad status,
// response missing an access token) clears all credentials and returns an
// AuthenticationState-kind Error: the caller must log in again, not retry.
func (m *Manager) AttemptRefresh(
	ctx context.Context,
	refreshToken string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attemptRefresh(ctx, refreshToken)
}

func (m *Manager) attemptRefresh(
	ctx context.Context,
	refreshToken string,
) error {
	if refreshToken == "" {
		return newError(
			ErrorKindConfiguration,
			"no refresh token available",
			nil,
		)
	}
	// A refresh token already past its own stored expiry cannot succeed
	// server-side; skip the round trip. An absent or unparsable refresh
	// expiry does not block the attempt.
	if expiryStr, err := m.store.Get(keyRefreshTokenExpireTime); err == nil {
		if expiry, err := strconv.ParseInt(
			strings.TrimSpace(expiryStr), 10, 64,
		); err == nil && !m.now().Before(time.Unix(expiry, 0)) {
			m.clearTokens()
			return newError(
				ErrorKindAuthenticationState,
				"session refresh failed, please log in again",
				nil,
			)
		}
	}
	resp, err := m.submitRequest(
		ctx,
		http.MethodPost,
		renewPath,
		bearerHeaders(refreshToken),
		nil,
	)
	if err != nil {
		m.clearTokens()
		return newError(
			ErrorKindAuthenticationState,
			"session refresh failed, please log in again",
			err,
		)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusCreated {
		m.clearTokens()
		return newError(
			ErrorKindAuthenticationState,
			fmt.Sprintf(
				"session refresh returned status %d; please log in again",
				resp.StatusCode,
			),
			nil,
		)
	}
	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		m.clearTokens()
		return newError(
			ErrorKindAuthenticationState,
			"session refresh failed, please log in again",
			err,
		)
	}
	renewResp := LoginResponse{}
	if err := json.Unmarshal(respBodyBytes, &renewResp); err != nil {
		m.clearTokens()
		return newError(
			ErrorKindAuthenticationState,
			"session refresh failed, please log in again",
			err,
		)
	}
	if renewResp.AccessToken == "" {
		m.clearTokens()
		return newError(
			ErrorKindAuthenticationState,
			"session refresh response contained no access token; "+
				"please log in again",
			nil,
		)
	}
	newRefreshToken := renewResp.RefreshToken
	newRefreshExpiry := renewResp.RefreshTokenExpiresIn
	if newRefreshToken == "" {
		// The server may rotate only the access token. Keep using the
		// refresh token (and expiry) that just worked.
		newRefreshToken = refreshToken
		if newRefreshExpiry == 0 {
			if expiryStr, err := m.store.Get(
				keyRefreshTokenExpireTime,
			); err == nil {
				if expiry, err := strconv.ParseInt(
					strings.TrimSpace(expiryStr), 10, 64,
				); err == nil {
					newRefreshExpiry = expiry
				}
			}
		}
	}
	return m.storeToken(
		renewResp.AccessToken,
		renewResp.AccessTokenExpiresIn,
		newRefreshToken,
		newRefreshExpiry,
	)
}

// EnsureValid guarantees a currently-valid access token, refreshing at most
// once if the persisted one is expired. It performs no I/O when the token is
// still valid.
func (m *Manager) EnsureValid(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureValid(ctx)
}

func (m *Manager) ensureValid(ctx context.Context) error {
	if !m.checkExpiration() {
		return nil
	}
	refreshToken := m.refreshToken
	if refreshToken == "" {
		if stored, err := m.store.Get(keyRefreshToken); err == nil {
			refreshToken = stored
		}
	}
	return m.attemptRefresh(ctx, refreshToken)
}

// AuthenticatedHeaders returns the base JSON headers merged with a bearer
// Authorization entry carrying a currently-valid access token, refreshing
// the session first if needed.
func (m *Manager) AuthenticatedHeaders(
	ctx context.Context,
) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticatedHeaders(ctx)
}

func (m *Manager) authenticatedHeaders(
	ctx context.Context,
) (map[string]string, error) {
	if err := m.ensureValid(ctx); err != nil {
		return nil, err
	}
	accessToken := m.accessToken
	if accessToken == "" {
		// The validity check passed but no token is in hand. Treat the
		// session as unusable rather than sending a request that cannot
		// authenticate.
		m.clearTokens()
		return nil, newError(
			ErrorKindAuthenticationState,
			"authentication failed: no access token available",
			nil,
		)
	}
	return bearerHeaders(accessToken), nil
}

// StoreToken persists a new token pair and its expiries, replacing any
// previous pair in memory and in the secret store.
func (m *Manager) StoreToken(
	accessToken string,
	accessTokenExpiry int64,
	refreshToken string,
	refreshTokenExpiry int64,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeToken(
		accessToken,
		accessTokenExpiry,
		refreshToken,
		refreshTokenExpiry,
	)
}

func (m *Manager) storeToken(
	accessToken string,
	accessTokenExpiry int64,
	refreshToken string,
	refreshTokenExpiry int64,
) error {
	fields := []struct {
		key   string
		value string
	}{
		{keyAccessToken, accessToken},
		{keyAccessTokenExpireTime, strconv.FormatInt(accessTokenExpiry, 10)},
		{keyRefreshToken, refreshToken},
		{keyRefreshTokenExpireTime, strconv.FormatInt(refreshTokenExpiry, 10)},
	}
	for _, field := range fields {
		if err := m.store.Set(field.key, field.value); err != nil {
			return newError(
				ErrorKindConfiguration,
				fmt.Sprintf("error persisting %s", field.key),
				err,
			)
		}
	}
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	return nil
}

// ClearTokens removes all persisted credentials and forgets the in-memory
// copies.
func (m *Manager) ClearTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearTokens()
}

func (m *Manager) clearTokens() {
	for _, key := range []string{
		keyAccessToken,
		keyAccessTokenExpireTime,
		keyRefreshToken,
		keyRefreshTokenExpireTime,
	} {
		m.store.Delete(key) // nolint: errcheck
	}
	m.accessToken = ""
	m.refreshToken = ""
}

// AccessToken returns the in-memory access token, which may be empty.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken
}

// RefreshToken returns the in-memory refresh token, which may be empty.
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshToken
}

func (m *Manager) submitRequest(
	ctx context.Context,
	method string,
	path string,
	headers map[string]string,
	reqBodyObj interface{},
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if reqBodyObj != nil {
		reqBodyBytes, err := json.Marshal(reqBodyObj)
		if err != nil {
			return nil, newError(
				ErrorKindConfiguration,
				"error marshaling request body",
				err,
			)
		}
		reqBodyReader = bytes.NewBuffer(reqBodyBytes)
	}
	req, err := http.NewRequestWithContext(
		ctx,
		method,
		fmt.Sprintf("%s/%s", m.apiAddress, path),
		reqBodyReader,
	)
	if err != nil {
		return nil, newError(
			ErrorKindConfiguration,
			fmt.Sprintf("error creating request %s %s", method, path),
			err,
		)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, newError(
			ErrorKindTransport,
			"error invoking authentication endpoint",
			err,
		)
	}
	return resp, nil
}

func baseHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

func bearerHeaders(token string) map[string]string {
	headers := baseHeaders()
	headers["Authorization"] = fmt.Sprintf("Bearer %s", token)
	return headers
}
