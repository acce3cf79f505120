package lumen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsersClientCurrent(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/users/current", r.URL.Path)
				require.Equal(
					t,
					fmt.Sprintf("Bearer %s", testAccessToken),
					r.Header.Get("Authorization"),
				)
				fmt.Fprint(
					w,
					`{"user":{"id":"u-123","email":"jdoe@example.com",`+
						`"username":"jdoe"}}`,
				)
			},
		),
	)
	defer server.Close()
	client := newTestClient(t, server.URL)
	user, err := client.Users().Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u-123", user.ID)
	require.Equal(t, "jdoe", user.Username)
}

func TestUsersClientCurrentMalformedProfile(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{
			name: "no user object",
			body: `{"message":"ok"}`,
		},
		{
			name: "user object without id",
			body: `{"user":{"username":"jdoe"}}`,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						fmt.Fprint(w, testCase.body)
					},
				),
			)
			defer server.Close()
			client := newTestClient(t, server.URL)
			_, err := client.Users().Current(context.Background())
			require.Error(t, err)
			require.True(t, IsErrorKind(err, ErrorKindMalformedResponse))
		})
	}
}

func TestUsersClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/users", r.URL.Path)
				// User creation requires no authentication.
				require.Empty(t, r.Header.Get("Authorization"))
				body := map[string]string{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				require.Equal(t, "jdoe@example.com", body["email"])
				require.Equal(t, "jdoe", body["username"])
				require.Equal(t, "opensesame", body["password"])
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(
					w,
					`{"user":{"id":"u-123","username":"jdoe"}}`,
				)
			},
		),
	)
	defer server.Close()
	client := newTestClient(t, server.URL)
	createResp, err := client.Users().Create(
		context.Background(),
		"jdoe@example.com",
		"jdoe",
		"opensesame",
	)
	require.NoError(t, err)
	require.NotNil(t, createResp.User)
	require.Equal(t, "u-123", createResp.User.ID)
}

func TestUsersClientCreateUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				// 200 instead of the expected 201.
				fmt.Fprint(w, `{"user":{"id":"u-123"}}`)
			},
		),
	)
	defer server.Close()
	client := newTestClient(t, server.URL)
	_, err := client.Users().Create(
		context.Background(),
		"jdoe@example.com",
		"jdoe",
		"opensesame",
	)
	require.Error(t, err)
	require.True(t, IsErrorKind(err, ErrorKindProtocol))
}

func TestUsersClientInfo(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/users/current":
					fmt.Fprint(w, `{"user":{"id":"u-123","username":"jdoe"}}`)
				case "/users/u-123/accounts":
					fmt.Fprint(
						w,
						`{"accounts":[{"id":"a-1","account_number":"12345",`+
							`"balance":1000,"owner":"jdoe"}]}`,
					)
				default:
					t.Errorf("unexpected request path %s", r.URL.Path)
					w.WriteHeader(http.StatusNotFound)
				}
			},
		),
	)
	defer server.Close()
	client := newTestClient(t, server.URL)
	userInfo, err := client.Users().Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u-123", userInfo.Profile.ID)
	require.Len(t, userInfo.Accounts.Accounts, 1)
	require.Equal(t, "12345", userInfo.Accounts.Accounts[0].AccountNumber)
}

func TestUsersClientInfoAccountsFailure(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/users/current":
					fmt.Fprint(w, `{"user":{"id":"u-123"}}`)
				default:
					w.WriteHeader(http.StatusInternalServerError)
				}
			},
		),
	)
	defer server.Close()
	client := newTestClient(t, server.URL)
	_, err := client.Users().Info(context.Background())
	require.Error(t, err)
	require.True(t, IsErrorKind(err, ErrorKindProtocol))
	require.Contains(t, err.Error(), "complete user information")
}
