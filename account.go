package lumen

// Account represents a bank account as returned by the API server.
type Account struct {
	ID            string  `json:"id,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	Balance       float64 `json:"balance"`
	Owner         string  `json:"owner,omitempty"`
	Status        string  `json:"status,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	Type          string  `json:"account_type,omitempty"`
}

// AccountList is an ordered collection of accounts.
type AccountList struct {
	Accounts []Account `json:"accounts"`
}
