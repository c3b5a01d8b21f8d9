package transaction

import (
	"time"

	"github.com/carson-networks/workspace-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	CategoryID      string `json:"categoryID,omitempty" doc:"Category UUID"`
	Amount          string `json:"amount" doc:"Decimal amount"`
	TransactionName string `json:"transactionName" doc:"Name of the transaction"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
	RecurringRuleID string `json:"recurringRuleID,omitempty" doc:"Rule that generated this transaction, absent for manual ones"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func transactionFromService(tx service.Transaction) Transaction {
	out := Transaction{
		ID:              tx.ID.String(),
		AccountID:       tx.AccountID.String(),
		Amount:          tx.Amount.String(),
		TransactionName: tx.TransactionName,
		TransactionDate: tx.TransactionDate.Format(time.RFC3339),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		out.CategoryID = tx.CategoryID.String()
	}
	if tx.RecurringRuleID != nil {
		out.RecurringRuleID = tx.RecurringRuleID.String()
	}
	return out
}
