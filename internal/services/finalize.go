package services

import (
	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinalizeProject is terminal: it recomputes contributions and financials one
// last time, generates the Payout rows, credits each partner's earnings and
// sets the project lock, all in one transaction so a double finalize cannot
// race past the lock check.
func FinalizeProject(db *gorm.DB, projectID string) ([]models.Payout, error) {
	var payouts []models.Payout
	err := db.Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is already finalized", projectID)
		}

		contributions, err := recomputeContributionsTx(tx, project)
		if err != nil {
			return err
		}

		gross, err := ledgerBalance(tx, project.ID)
		if err != nil {
			return err
		}

		// The base pool splits across the whole partnership, so every
		// partner participates, contributors or not.
		var partners []models.Partner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("id").
			Find(&partners).Error; err != nil {
			return err
		}

		inputs := make([]PartnerContribution, 0, len(partners))
		for _, p := range partners {
			inputs = append(inputs, PartnerContribution{
				PartnerID:           p.ID,
				ContributionPercent: contributions[p.ID],
			})
		}

		breakdown, err := CalculateProfitSharing(gross, inputs)
		if err != nil {
			return err
		}

		fin := models.Financial{
			ProjectID:           project.ID,
			ActualBalance:       gross,
			BusinessReserve:     breakdown.BusinessReserve,
			ReligiousAllocation: breakdown.ReligiousAllocation,
			NetDistributable:    breakdown.NetDistributable,
			BasePool:            breakdown.BasePool,
			PerformancePool:     breakdown.PerformancePool,
		}
		if err := upsertFinancial(tx, &fin); err != nil {
			return err
		}

		payouts = make([]models.Payout, 0, len(breakdown.Shares))
		for _, share := range breakdown.Shares {
			payouts = append(payouts, models.Payout{
				ProjectID:        project.ID,
				PartnerID:        share.PartnerID,
				BaseShare:        share.BaseShare,
				PerformanceShare: share.PerformanceShare,
				TotalPayout:      share.TotalPayout,
			})
		}
		if err := tx.Create(&payouts).Error; err != nil {
			return err
		}

		for _, share := range breakdown.Shares {
			result := tx.Model(&models.Partner{}).
				Where("id = ?", share.PartnerID).
				Update("total_earnings", gorm.Expr("total_earnings + ?", share.TotalPayout))
			if result.Error != nil {
				return result.Error
			}
		}

		return tx.Model(project).Update("is_locked", true).Error
	})
	if err != nil {
		return nil, err
	}
	return payouts, nil
}
