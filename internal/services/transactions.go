package services

import (
	"errors"
	"time"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
)

// TransactionInput is the payload for recording a ledger entry.
type TransactionInput struct {
	Amount   types.FlexFloat64 `json:"amount"`
	Type     string            `json:"type"`
	Category string            `json:"category"`
	Date     string            `json:"date"`
}

// CreateTransaction appends a ledger entry and resyncs the project's
// financials in the same transaction. Ledger entries are immutable once
// created; the only later mutation is deletion.
func CreateTransaction(db *gorm.DB, projectID string, input TransactionInput) (*models.Transaction, *FinancialSnapshot, error) {
	if input.Amount.Float64() <= 0 {
		return nil, nil, types.NewValidation("transaction amount must be positive, got %.2f", input.Amount.Float64())
	}
	if !models.ValidTransactionType(input.Type) {
		return nil, nil, types.NewValidation("transaction type must be INCOME or EXPENSE, got '%s'", input.Type)
	}
	date, err := parseTransactionDate(input.Date)
	if err != nil {
		return nil, nil, err
	}

	var (
		entry    models.Transaction
		snapshot *FinancialSnapshot
	)
	txErr := db.Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; its ledger is frozen", projectID)
		}

		entry = models.Transaction{
			ProjectID: project.ID,
			Amount:    round2(input.Amount.Float64()),
			Type:      input.Type,
			Category:  input.Category,
			Date:      date,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		snapshot, err = syncFinancialsTx(tx, project)
		return err
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	return &entry, snapshot, nil
}

// DeleteTransaction removes a ledger entry and resyncs the project's
// financials in the same transaction.
func DeleteTransaction(db *gorm.DB, transactionID string) (*FinancialSnapshot, error) {
	var snapshot *FinancialSnapshot
	err := db.Transaction(func(tx *gorm.DB) error {
		var entry models.Transaction
		if err := tx.Where("id = ?", transactionID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound("transaction", transactionID)
			}
			return err
		}

		project, err := lockProject(tx, entry.ProjectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; its ledger is frozen", project.ID)
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		snapshot, err = syncFinancialsTx(tx, project)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// parseTransactionDate accepts RFC3339 or plain yyyy-mm-dd; empty means now.
func parseTransactionDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, types.NewValidation("invalid transaction date '%s'", s)
}
