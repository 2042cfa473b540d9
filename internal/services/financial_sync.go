package services

import (
	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinancialSnapshot is the persisted per-project breakdown plus the project's
// configured total value, returned to the caller on every sync.
type FinancialSnapshot struct {
	models.Financial
	TotalValue float64 `json:"totalValue"`
}

// SyncProjectFinancials refreshes a project's contribution set, recomputes
// the gross balance from its transaction ledger and upserts the Financial
// snapshot row. Idempotent; invoked after every transaction create/delete and
// on explicit recalculation.
//
// A negative balance is recorded as-is, pools included. When no contribution
// exists yet the snapshot still records the actual balance, so financial
// visibility is never blocked by an empty contribution set.
func SyncProjectFinancials(db *gorm.DB, projectID string) (*FinancialSnapshot, error) {
	var snapshot *FinancialSnapshot
	err := db.Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; financials are frozen", projectID)
		}
		snapshot, err = syncFinancialsTx(tx, project)
		return err
	})
	observeRecompute("financial_sync", err)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// syncFinancialsTx runs the recompute-and-upsert span inside the caller's
// transaction. Task and transaction mutators reuse it so a failed recompute
// rolls the triggering mutation back with it.
func syncFinancialsTx(tx *gorm.DB, project *models.Project) (*FinancialSnapshot, error) {
	// Contributions first, always: the profit split validates against them
	// and must never see a stale set.
	contributions, err := recomputeContributionsTx(tx, project)
	if err != nil {
		return nil, err
	}

	gross, err := ledgerBalance(tx, project.ID)
	if err != nil {
		return nil, err
	}

	fin := models.Financial{
		ProjectID:     project.ID,
		ActualBalance: gross,
	}
	if len(contributions) > 0 {
		fin.BusinessReserve, fin.ReligiousAllocation, fin.NetDistributable,
			fin.BasePool, fin.PerformancePool = SplitPools(gross)
	}

	if err := upsertFinancial(tx, &fin); err != nil {
		return nil, err
	}

	return &FinancialSnapshot{Financial: fin, TotalValue: project.TotalValue}, nil
}

// upsertFinancial writes the one logical snapshot row per project.
func upsertFinancial(tx *gorm.DB, fin *models.Financial) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"actual_balance",
			"business_reserve",
			"religious_allocation",
			"net_distributable",
			"base_pool",
			"performance_pool",
			"updated_at",
		}),
	}).Create(fin).Error
}
