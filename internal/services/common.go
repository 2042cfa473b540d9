package services

import (
	"errors"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// round2 rounds a monetary value to 2 decimals. Rounding happens at each
// point of computation, not at the end, so repeated runs are bit-stable.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// round4 rounds an equity percentage to 4 decimals.
func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

// lockProject reads a project row under FOR UPDATE so a second recompute for
// the same project cannot interleave with an in-flight one.
func lockProject(tx *gorm.DB, projectID string) (*models.Project, error) {
	var project models.Project
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", projectID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFound("project", projectID)
		}
		return nil, err
	}
	return &project, nil
}

// ledgerBalance computes the gross available balance for a project:
// realized income minus realized expense. May legitimately be negative.
func ledgerBalance(tx *gorm.DB, projectID string) (float64, error) {
	income, err := sumTransactions(tx, projectID, models.TransactionIncome)
	if err != nil {
		return 0, err
	}
	expense, err := sumTransactions(tx, projectID, models.TransactionExpense)
	if err != nil {
		return 0, err
	}
	return round2(income - expense), nil
}

func sumTransactions(tx *gorm.DB, projectID, txType string) (float64, error) {
	q := tx.Model(&models.Transaction{})
	// The index hint syntax is MySQL-only; the other dialects plan this fine.
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_transactions_project"))
	}
	var total float64
	err := q.Where("project_id = ? AND type = ?", projectID, txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
