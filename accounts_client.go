package lumen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lumabank/lumen/session"
)

// AccountsClient is the specialized client for account operations.
type AccountsClient interface {
	// Get retrieves details of the identified account.
	Get(ctx context.Context, accountNumber string) (Account, error)
	// GetFields retrieves details of the identified account, narrowed to the
	// requested fields. Requested fields absent from the response are
	// omitted from the result; with no fields requested, every field the
	// server returned is included.
	GetFields(
		ctx context.Context,
		accountNumber string,
		fields ...string,
	) (map[string]interface{}, error)
}

type accountsClient struct {
	*baseClient
}

// NewAccountsClient returns a specialized client for account operations.
func NewAccountsClient(
	config ClientConfig,
	sessions *session.Manager,
) AccountsClient {
	return &accountsClient{
		baseClient: newBaseClient(config, sessions),
	}
}

func (a *accountsClient) Get(
	ctx context.Context,
	accountNumber string,
) (Account, error) {
	respObj := struct {
		Account *Account `json:"account"`
	}{}
	if err := a.executeAPIRequest(
		ctx,
		apiRequest{
			method:       http.MethodGet,
			path:         fmt.Sprintf("accounts/%s", accountNumber),
			authenticate: true,
			successCode:  http.StatusOK,
			respObj:      &respObj,
		},
	); err != nil {
		return Account{}, err
	}
	if respObj.Account == nil {
		return Account{}, newClientError(
			ErrorKindMalformedResponse,
			fmt.Sprintf(
				"account data is missing from the response for account %s",
				accountNumber,
			),
			nil,
		)
	}
	return *respObj.Account, nil
}

func (a *accountsClient) GetFields(
	ctx context.Context,
	accountNumber string,
	fields ...string,
) (map[string]interface{}, error) {
	respObj := struct {
		Account map[string]interface{} `json:"account"`
	}{}
	if err := a.executeAPIRequest(
		ctx,
		apiRequest{
			method:       http.MethodGet,
			path:         fmt.Sprintf("accounts/%s", accountNumber),
			authenticate: true,
			successCode:  http.StatusOK,
			respObj:      &respObj,
		},
	); err != nil {
		return nil, err
	}
	if respObj.Account == nil {
		return nil, newClientError(
			ErrorKindMalformedResponse,
			fmt.Sprintf(
				"account data is missing from the response for account %s",
				accountNumber,
			),
			nil,
		)
	}
	if len(fields) == 0 {
		return respObj.Account, nil
	}
	filtered := map[string]interface{}{}
	for _, field := range fields {
		if value, ok := respObj.Account[field]; ok {
			filtered[field] = value
		}
	}
	return filtered, nil
}
