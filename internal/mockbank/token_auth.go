package mockbank

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang/glog"
)

type principalContextKey struct{}

// PrincipalFromContext returns the authenticated user attached to the
// request context by the token auth filter.
func PrincipalFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(principalContextKey{}).(User)
	return user, ok
}

// BearerToken extracts the bearer credential from a request's Authorization
// header. It returns an empty string if the header is missing or isn't a
// bearer scheme.
func BearerToken(r *http.Request) string {
	headerValueParts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(headerValueParts) != 2 || headerValueParts[0] != "Bearer" {
		return ""
	}
	return headerValueParts[1]
}

// Filter decorates a handler with a cross-cutting concern.
type Filter interface {
	Decorate(http.HandlerFunc) http.HandlerFunc
}

type tokenAuthFilter struct {
	store *Store
}

// NewTokenAuthFilter returns a Filter that rejects requests lacking a live
// bearer access token and attaches the token's user to the request context.
func NewTokenAuthFilter(store *Store) Filter {
	return &tokenAuthFilter{
		store: store,
	}
}

func (t *tokenAuthFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			t.writeResponse(
				w,
				http.StatusUnauthorized,
				&ErrAuthentication{
					Reason: `"Authorization" header is missing or malformed`,
				},
			)
			return
		}
		user, err := t.store.UserByAccessToken(token)
		if err != nil {
			t.writeResponse(
				w,
				http.StatusUnauthorized,
				&ErrAuthentication{
					Reason: "session not found or expired",
				},
			)
			return
		}
		ctx := context.WithValue(r.Context(), principalContextKey{}, user)
		handle(w, r.WithContext(ctx))
	}
}

func (t *tokenAuthFilter) writeResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, err := json.Marshal(response)
	if err != nil {
		glog.Errorf("error marshaling response body: %s", err)
	}
	if _, err := w.Write(responseBody); err != nil {
		glog.Errorf("error writing response body: %s", err)
	}
}
