package lumen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lumabank/lumen/session"
)

// UsersClient is the specialized client for user profile operations.
type UsersClient interface {
	// Current retrieves the authenticated user's profile.
	Current(context.Context) (User, error)
	// Create registers a new user. It requires no authentication.
	Create(
		ctx context.Context,
		email string,
		username string,
		password string,
	) (CreateUserResponse, error)
	// Accounts retrieves the accounts belonging to the identified user.
	Accounts(ctx context.Context, userID string) (AccountList, error)
	// Info retrieves the authenticated user's profile together with that
	// user's accounts.
	Info(context.Context) (UserInfo, error)
}

type usersClient struct {
	*baseClient
}

// NewUsersClient returns a specialized client for user profile operations.
func NewUsersClient(
	config ClientConfig,
	sessions *session.Manager,
) UsersClient {
	return &usersClient{
		baseClient: newBaseClient(config, sessions),
	}
}

func (u *usersClient) Current(ctx context.Context) (User, error) {
	respObj := struct {
		User *User `json:"user"`
	}{}
	if err := u.executeAPIRequest(
		ctx,
		apiRequest{
			method:       http.MethodGet,
			path:         "users/current",
			authenticate: true,
			successCode:  http.StatusOK,
			respObj:      &respObj,
		},
	); err != nil {
		return User{}, err
	}
	if respObj.User == nil || respObj.User.ID == "" {
		return User{}, newClientError(
			ErrorKindMalformedResponse,
			"user profile data is missing or malformed in response",
			nil,
		)
	}
	return *respObj.User, nil
}

func (u *usersClient) Create(
	ctx context.Context,
	email string,
	username string,
	password string,
) (CreateUserResponse, error) {
	createResp := CreateUserResponse{}
	err := u.executeAPIRequest(
		ctx,
		apiRequest{
			method: http.MethodPost,
			path:   "users",
			reqBodyObj: struct {
				Email    string `json:"email"`
				Username string `json:"username"`
				Password string `json:"password"`
			}{
				Email:    email,
				Username: username,
				Password: password,
			},
			successCode: http.StatusCreated,
			respObj:     &createResp,
		},
	)
	return createResp, err
}

func (u *usersClient) Accounts(
	ctx context.Context,
	userID string,
) (AccountList, error) {
	accountList := AccountList{}
	return accountList, u.executeAPIRequest(
		ctx,
		apiRequest{
			method:       http.MethodGet,
			path:         fmt.Sprintf("users/%s/accounts", userID),
			authenticate: true,
			successCode:  http.StatusOK,
			respObj:      &accountList,
		},
	)
}

func (u *usersClient) Info(ctx context.Context) (UserInfo, error) {
	userInfo := UserInfo{}
	profile, err := u.Current(ctx)
	if err != nil {
		return userInfo, newClientError(
			errorKind(err),
			"failed to retrieve complete user information",
			err,
		)
	}
	accounts, err := u.Accounts(ctx, profile.ID)
	if err != nil {
		return userInfo, newClientError(
			errorKind(err),
			"failed to retrieve complete user information",
			err,
		)
	}
	userInfo.Profile = profile
	userInfo.Accounts = accounts
	return userInfo, nil
}
