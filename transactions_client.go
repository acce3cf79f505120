package lumen

import (
	"context"
	"net/http"
	"strconv"

	"github.com/lumabank/lumen/session"
)

// DefaultTransactionsLimit is applied when a selector does not specify a
// limit.
const DefaultTransactionsLimit = 30

// TransactionsClient is the specialized client for transaction operations.
type TransactionsClient interface {
	// List retrieves the authenticated user's transactions, narrowed by the
	// given selector.
	List(context.Context, TransactionsSelector) (TransactionList, error)
}

type transactionsClient struct {
	*baseClient
}

// NewTransactionsClient returns a specialized client for transaction
// operations.
func NewTransactionsClient(
	config ClientConfig,
	sessions *session.Manager,
) TransactionsClient {
	return &transactionsClient{
		baseClient: newBaseClient(config, sessions),
	}
}

func (t *transactionsClient) List(
	ctx context.Context,
	selector TransactionsSelector,
) (TransactionList, error) {
	limit := selector.Limit
	if limit == 0 {
		limit = DefaultTransactionsLimit
	}
	queryParams := map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(selector.Offset),
	}
	if selector.Type != "" {
		queryParams["transaction_type"] = selector.Type
	}
	if selector.AccountNumber != "" {
		queryParams["account_number"] = selector.AccountNumber
	}
	transactionList := TransactionList{}
	return transactionList, t.executeAPIRequest(
		ctx,
		apiRequest{
			method:       http.MethodGet,
			path:         "transactions",
			queryParams:  queryParams,
			authenticate: true,
			successCode:  http.StatusOK,
			respObj:      &transactionList,
		},
	)
}
