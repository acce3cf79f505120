package mockbank

import (
	"net/http"

	"github.com/gorilla/mux"
)

type accountsEndpoints struct {
	*BaseEndpoints
	store *Store
}

// NewAccountsEndpoints returns the endpoints for account detail retrieval.
func NewAccountsEndpoints(
	baseEndpoints *BaseEndpoints,
	store *Store,
) Endpoints {
	return &accountsEndpoints{
		BaseEndpoints: baseEndpoints,
		store:         store,
	}
}

func (a *accountsEndpoints) Register(router *mux.Router) {
	router.HandleFunc(
		"/accounts/{number}",
		a.TokenAuthFilter.Decorate(a.get),
	).Methods(http.MethodGet)
}

func (a *accountsEndpoints) get(w http.ResponseWriter, r *http.Request) {
	accountNumber := mux.Vars(r)["number"]
	a.ServeRequest(
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
				account, err := a.store.AccountByNumber(
					principal.ID,
					accountNumber,
				)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"account": account}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
