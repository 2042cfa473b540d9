package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Transaction is one realized cash movement on a project's ledger.
// Append/delete only; rows are never updated once created.
type Transaction struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:char(36);not null;index:idx_transactions_project" json:"projectId"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Category  string    `gorm:"size:255" json:"category"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate assigns a UUID when none was provided
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ValidTransactionType reports whether s is INCOME or EXPENSE.
func ValidTransactionType(s string) bool {
	return s == TransactionIncome || s == TransactionExpense
}
