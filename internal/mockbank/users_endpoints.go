package mockbank

import (
	"net/http"

	"github.com/gorilla/mux"
)

type usersEndpoints struct {
	*BaseEndpoints
	store *Store
}

// NewUsersEndpoints returns the endpoints for user registration and profile
// retrieval.
func NewUsersEndpoints(baseEndpoints *BaseEndpoints, store *Store) Endpoints {
	return &usersEndpoints{
		BaseEndpoints: baseEndpoints,
		store:         store,
	}
}

func (u *usersEndpoints) Register(router *mux.Router) {
	router.HandleFunc(
		"/users",
		u.create,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/users/current",
		u.TokenAuthFilter.Decorate(u.current),
	).Methods(http.MethodGet)
	router.HandleFunc(
		"/users/{id}/accounts",
		u.TokenAuthFilter.Decorate(u.accounts),
	).Methods(http.MethodGet)
}

func (u *usersEndpoints) create(w http.ResponseWriter, r *http.Request) {
	registration := struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	u.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: createUserSchemaLoader,
			ReqBodyObj:          &registration,
			EndpointLogic: func() (interface{}, error) {
				user, err := u.store.CreateUser(
					registration.Email,
					registration.Username,
					registration.Password,
				)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"user": user}, nil
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (u *usersEndpoints) current(w http.ResponseWriter, r *http.Request) {
	u.ServeRequest(
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
				return map[string]interface{}{"user": principal}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (u *usersEndpoints) accounts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	u.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				principal, ok := PrincipalFromContext(r.Context())
				if !ok || principal.ID != userID {
					// Users see their own accounts only. Anything else
					// reads as not-found rather than leaking existence.
					return nil, &ErrNotFound{
						Type: "User",
						ID:   userID,
					}
				}
				return map[string]interface{}{
					"accounts": u.store.AccountsByUserID(userID),
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}
