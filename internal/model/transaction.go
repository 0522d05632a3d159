package model

import (
	"fmt"
	"time"
)

// TransactionType records the direction of a transaction. Amounts are always
// stored as positive magnitudes; the type carries the sign.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// Transaction is a categorized candidate handed to the transaction store.
type Transaction struct {
	ID           string          `json:"id"`
	AccountID    int64           `json:"account_id"`
	Amount       int64           `json:"amount"` // positive magnitude, won
	Type         TransactionType `json:"type"`
	CategoryID   int64           `json:"category_id"`
	MerchantName string          `json:"merchant_name"`
	Date         time.Time       `json:"date"`
	Memo         string          `json:"memo"`
	SourceTag    string          `json:"source_tag"` // "csv" or the notification provider tag
	Fingerprint  string          `json:"fingerprint"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Fingerprint builds the dedup key for an imported transaction. Importing the
// same statement twice collides here instead of writing twice.
func Fingerprint(date string, amount int64, merchant string) string {
	return fmt.Sprintf("%s-%d-%s", date, amount, merchant)
}
