package services

import (
	"sort"

	"github.com/jointventurehq/partnerbooks/internal/models"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecomputeContributions derives each partner's percentage contribution to a
// project from its task effort and category weights, then atomically replaces
// the project's contribution rows with the new set. Idempotent: with no
// intervening task mutation, two runs produce identical output.
//
// Designated leads always appear in the result, at 0 if they earned no
// credit. Whenever any credit exists the percentages sum to exactly 100.00.
func RecomputeContributions(db *gorm.DB, projectID string) (map[string]float64, error) {
	var result map[string]float64
	err := db.Transaction(func(tx *gorm.DB) error {
		project, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if project.IsLocked {
			return types.NewConflict("project '%s' is finalized; contributions are frozen", projectID)
		}
		result, err = recomputeContributionsTx(tx, project)
		return err
	})
	observeRecompute("contribution", err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// recomputeContributionsTx computes and persists the contribution set inside
// the caller's transaction, so orchestrators get the read-then-write span as
// one atomic unit.
func recomputeContributionsTx(tx *gorm.DB, project *models.Project) (map[string]float64, error) {
	var tasks []models.Task
	if err := tx.Where("project_id = ?", project.ID).Find(&tasks).Error; err != nil {
		return nil, err
	}

	var partners []models.Partner
	if err := tx.Find(&partners).Error; err != nil {
		return nil, err
	}

	weights, err := project.Weights.Map()
	if err != nil {
		return nil, types.NewValidation("project '%s' has an unreadable weight mapping: %v", project.ID, err)
	}

	result := computeContributionMap(project, tasks, partners, weights)

	// Replace-all: no stale partner entry may survive, and a partial
	// replacement must never be observable.
	if err := tx.Where("project_id = ?", project.ID).Delete(&models.Contribution{}).Error; err != nil {
		return nil, err
	}
	if len(result) > 0 {
		rows := make([]models.Contribution, 0, len(result))
		for _, partnerID := range sortedKeys(result) {
			rows = append(rows, models.Contribution{
				ProjectID:  project.ID,
				PartnerID:  partnerID,
				Percentage: result[partnerID],
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return nil, err
		}
	}

	return result, nil
}

// computeContributionMap is the pure attribution step: group task effort by
// category, distribute each category's weight proportionally, seed leads,
// normalize to 100.00.
func computeContributionMap(project *models.Project, tasks []models.Task, partners []models.Partner, weights map[string]float64) map[string]float64 {
	userToPartner := make(map[string]string, len(partners))
	for _, p := range partners {
		userToPartner[p.UserID] = p.ID
	}

	type categoryEffort struct {
		total      float64
		perPartner map[string]float64
	}
	categories := make(map[string]*categoryEffort)

	for _, task := range tasks {
		ce := categories[task.Category]
		if ce == nil {
			ce = &categoryEffort{perPartner: make(map[string]float64)}
			categories[task.Category] = ce
		}
		ce.total += task.EffortWeight
		if partnerID := creditedPartner(task, userToPartner); partnerID != "" {
			ce.perPartner[partnerID] += task.EffortWeight
		}
	}

	raw := make(map[string]float64)
	for category, ce := range categories {
		// Missing/blank categories carry weight 0; categories with zero
		// effort keep their weight unclaimed, not redistributed.
		weight := weights[category]
		if ce.total <= 0 || weight == 0 {
			continue
		}
		for partnerID, effort := range ce.perPartner {
			raw[partnerID] += (effort / ce.total) * weight
		}
	}

	// Leads are never silently omitted.
	leads := project.LeadIDs()
	for _, leadID := range leads {
		if _, ok := raw[leadID]; !ok {
			raw[leadID] = 0
		}
	}

	rawSum := 0.0
	for _, v := range raw {
		rawSum += v
	}

	result := make(map[string]float64, len(raw))
	switch {
	case rawSum > 0:
		for partnerID, v := range raw {
			result[partnerID] = decimal.NewFromFloat(v / rawSum * 100).Round(2).InexactFloat64()
		}
	case len(leads) > 0:
		equal := decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(len(leads)))).Round(2).InexactFloat64()
		for partnerID := range raw {
			result[partnerID] = 0
		}
		for _, leadID := range leads {
			result[leadID] = equal
		}
	default:
		// No leads and no credit: nothing to attribute.
		return result
	}

	correctRoundingResidual(result)
	return result
}

// creditedPartner applies the credit rule: the assignee by default; on DONE
// tasks the partner owned by the completing user, falling back to the
// assignee when the completer has no partner profile.
func creditedPartner(task models.Task, userToPartner map[string]string) string {
	if task.Status == models.TaskStatusDone && task.CompletedByID != "" {
		if partnerID, ok := userToPartner[task.CompletedByID]; ok {
			return partnerID
		}
	}
	return task.AssignedPartnerID
}

// correctRoundingResidual restores the exact-100.00 invariant after
// per-entry rounding by adding the residual to the first entry in sorted
// partner-ID order (deterministic, unlike map iteration).
func correctRoundingResidual(result map[string]float64) {
	if len(result) == 0 {
		return
	}
	sum := decimal.Zero
	for _, v := range result {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	residual := decimal.NewFromInt(100).Sub(sum)
	if residual.IsZero() {
		return
	}
	first := sortedKeys(result)[0]
	result[first] = decimal.NewFromFloat(result[first]).Add(residual).InexactFloat64()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
