package lumen

// User represents a banking user's profile as returned by the API server.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// UserInfo bundles a user's profile with that user's accounts. It is
// assembled client-side from two API calls.
type UserInfo struct {
	Profile  User        `json:"user_profile"`
	Accounts AccountList `json:"user_accounts"`
}

// CreateUserResponse represents the payload returned by the user-creation
// endpoint.
type CreateUserResponse struct {
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}
