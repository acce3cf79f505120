package mockbank

import (
	"net/http"

	"github.com/gorilla/mux"
)

type sessionsEndpoints struct {
	*BaseEndpoints
	store *Store
}

// NewSessionsEndpoints returns the endpoints implementing the session
// lifecycle: login, renew, and logout.
func NewSessionsEndpoints(
	baseEndpoints *BaseEndpoints,
	store *Store,
) Endpoints {
	return &sessionsEndpoints{
		BaseEndpoints: baseEndpoints,
		store:         store,
	}
}

func (s *sessionsEndpoints) Register(router *mux.Router) {
	router.HandleFunc(
		"/auth/sessions/users",
		s.create,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/auth/sessions/renew",
		s.renew,
	).Methods(http.MethodPost)
	router.HandleFunc(
		"/auth/sessions/users",
		s.delete,
	).Methods(http.MethodDelete)
}

func (s *sessionsEndpoints) create(w http.ResponseWriter, r *http.Request) {
	creds := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	s.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: loginSchemaLoader,
			ReqBodyObj:          &creds,
			EndpointLogic: func() (interface{}, error) {
				user, err := s.store.AuthenticateUser(
					creds.Username,
					creds.Password,
				)
				if err != nil {
					return nil, err
				}
				return s.store.CreateSession(user.ID), nil
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (s *sessionsEndpoints) renew(w http.ResponseWriter, r *http.Request) {
	s.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				refreshToken := BearerToken(r)
				if refreshToken == "" {
					return nil, &ErrAuthentication{
						Reason: `"Authorization" header is missing or ` +
							"malformed",
					}
				}
				return s.store.RenewSession(refreshToken)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (s *sessionsEndpoints) delete(w http.ResponseWriter, r *http.Request) {
	s.TokenAuthFilter.Decorate(func(w http.ResponseWriter, r *http.Request) {
		s.ServeRequest(
			InboundRequest{
				W: w,
				R: r,
				EndpointLogic: func() (interface{}, error) {
					return nil, s.store.DeleteSessionByAccessToken(
						BearerToken(r),
					)
				},
				SuccessCode: http.StatusNoContent,
			},
		)
	})(w, r)
}
