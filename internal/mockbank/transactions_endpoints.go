package mockbank

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const defaultTransactionsLimit = 30

type transactionsEndpoints struct {
	*BaseEndpoints
	store *Store
}

// NewTransactionsEndpoints returns the endpoints for transaction listing.
func NewTransactionsEndpoints(
	baseEndpoints *BaseEndpoints,
	store *Store,
) Endpoints {
	return &transactionsEndpoints{
		BaseEndpoints: baseEndpoints,
		store:         store,
	}
}

func (t *transactionsEndpoints) Register(router *mux.Router) {
	router.HandleFunc(
		"/transactions",
		t.TokenAuthFilter.Decorate(t.list),
	).Methods(http.MethodGet)
}

func (t *transactionsEndpoints) list(w http.ResponseWriter, r *http.Request) {
	t.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				principal, ok := PrincipalFromContext(r.Context())
				if !ok {
					return nil, &ErrAuthentication{
						Reason: "no principal on request",
					}
				}
				selector := TransactionsSelector{
					Limit:         defaultTransactionsLimit,
					Type:          r.URL.Query().Get("transaction_type"),
					AccountNumber: r.URL.Query().Get("account_number"),
				}
				if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
					limit, err := strconv.Atoi(limitStr)
					if err != nil || limit < 1 {
						return nil, &ErrBadRequest{
							Reason: `"limit" must be a positive integer`,
						}
					}
					selector.Limit = limit
				}
				if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
					offset, err := strconv.Atoi(offsetStr)
					if err != nil || offset < 0 {
						return nil, &ErrBadRequest{
							Reason: `"offset" must be a non-negative integer`,
						}
					}
					selector.Offset = offset
				}
				transactions, total := t.store.Transactions(
					principal.ID,
					selector,
				)
				return map[string]interface{}{
					"transactions": transactions,
					"total":        total,
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
