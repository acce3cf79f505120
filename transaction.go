package lumen

// Transaction represents a single account transaction as returned by the API
// server.
type Transaction struct {
	ID            string  `json:"id,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	Type          string  `json:"transaction_type,omitempty"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// TransactionList is an ordered collection of transactions.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total,omitempty"`
}

// TransactionsSelector narrows a transactions listing. The zero value
// selects the first DefaultTransactionsLimit transactions of all types
// across all accounts.
type TransactionsSelector struct {
	// Limit caps the number of transactions returned. Zero selects
	// DefaultTransactionsLimit.
	Limit int
	// Offset skips that many transactions for pagination.
	Offset int
	// Type restricts results to one transaction type, e.g. "DEPOSIT".
	Type string
	// AccountNumber restricts results to one account.
	AccountNumber string
}
