package services

import (
	"errors"
	"time"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InjectCapital records a capital injection for a partner and renormalizes
// every partner's equity against the new capital total. The full partner set
// is read and written under lock in one transaction; equity is always a fresh
// snapshot of relative capital, never an incremental patch.
func InjectCapital(db *gorm.DB, partnerID string, amount float64, notes string) (*models.CapitalInjection, error) {
	if amount <= 0 {
		return nil, types.NewValidation("injection amount must be positive, got %.2f", amount)
	}

	var entry *models.CapitalInjection
	err := db.Transaction(func(tx *gorm.DB) error {
		partners, err := lockAllPartners(tx)
		if err != nil {
			return err
		}

		partner := findPartner(partners, partnerID)
		if partner == nil {
			return types.NewNotFound("partner", partnerID)
		}

		preEquity := partner.EquityPercentage
		partner.TotalCapitalContributed = round2(partner.TotalCapitalContributed + amount)

		if err := recalcEquity(tx, partners); err != nil {
			return err
		}

		// EquityDelta and PostEquity are audit snapshots only. Future
		// recomputation always derives from TotalCapitalContributed.
		entry = &models.CapitalInjection{
			PartnerID:   partner.ID,
			Amount:      round2(amount),
			EquityDelta: round4(partner.EquityPercentage - preEquity),
			PostEquity:  partner.EquityPercentage,
			Notes:       notes,
			Date:        time.Now().UTC(),
		}
		return tx.Create(entry).Error
	})
	observeRecompute("equity", err)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteCapitalInjection removes a capital ledger entry and recomputes equity
// for every partner from the remaining capital, not just the partner whose
// entry was removed.
func DeleteCapitalInjection(db *gorm.DB, injectionID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var entry models.CapitalInjection
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", injectionID).
			First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFound("capital injection", injectionID)
			}
			return err
		}

		partners, err := lockAllPartners(tx)
		if err != nil {
			return err
		}

		partner := findPartner(partners, entry.PartnerID)
		if partner == nil {
			return types.NewNotFound("partner", entry.PartnerID)
		}

		// The accumulator never goes negative.
		remaining := round2(partner.TotalCapitalContributed - entry.Amount)
		if remaining < 0 {
			remaining = 0
		}
		partner.TotalCapitalContributed = remaining

		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		return recalcEquity(tx, partners)
	})
	observeRecompute("equity", err)
	return err
}

// lockAllPartners reads the whole partner set under FOR UPDATE. Concurrent
// capital movements must serialize against each other or the Σequity = 100
// invariant can be lost to a stale read.
func lockAllPartners(tx *gorm.DB) ([]*models.Partner, error) {
	var rows []models.Partner
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	partners := make([]*models.Partner, len(rows))
	for i := range rows {
		partners[i] = &rows[i]
	}
	return partners, nil
}

func findPartner(partners []*models.Partner, id string) *models.Partner {
	for _, p := range partners {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// recalcEquity rewrites every partner's equity as its share of total capital.
// With zero total capital the prior percentages are left untouched (no
// division by zero; typically everything is still zero).
func recalcEquity(tx *gorm.DB, partners []*models.Partner) error {
	totalCapital := 0.0
	for _, p := range partners {
		totalCapital += p.TotalCapitalContributed
	}

	for _, p := range partners {
		if totalCapital > 0 {
			p.EquityPercentage = round4(p.TotalCapitalContributed / totalCapital * 100)
		}
		result := tx.Model(&models.Partner{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"equity_percentage":         p.EquityPercentage,
				"total_capital_contributed": p.TotalCapitalContributed,
			})
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}
