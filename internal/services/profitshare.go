package services

import (
	"github.com/jointventurehq/partnerbooks/internal/types"
)

// Split rates. Reserve and charity come off gross first; the remainder is
// distributed 20/80 between the base and performance pools.
const (
	businessReserveRate     = 0.10
	religiousAllocationRate = 0.05
	basePoolRate            = 0.20
	performancePoolRate     = 0.80

	// contributionSumEpsilon is the tolerance on the contribution total.
	// Anything further from 100 means the contribution set is stale.
	contributionSumEpsilon = 0.1
)

// PartnerContribution is one partner's input to the profit split.
type PartnerContribution struct {
	PartnerID           string  `json:"partnerId"`
	ContributionPercent float64 `json:"contributionPercent"`
}

// PartnerShare is one partner's computed payout.
type PartnerShare struct {
	PartnerID           string  `json:"partnerId"`
	ContributionPercent float64 `json:"contributionPercent"`
	BaseShare           float64 `json:"baseShare"`
	PerformanceShare    float64 `json:"performanceShare"`
	TotalPayout         float64 `json:"totalPayout"`
}

// ProfitBreakdown is the full deterministic split of a realized balance.
type ProfitBreakdown struct {
	GrossBalance        float64        `json:"grossBalance"`
	BusinessReserve     float64        `json:"businessReserve"`
	ReligiousAllocation float64        `json:"religiousAllocation"`
	NetDistributable    float64        `json:"netDistributable"`
	BasePool            float64        `json:"basePool"`
	PerformancePool     float64        `json:"performancePool"`
	BaseShareEach       float64        `json:"baseShareEach"`
	Shares              []PartnerShare `json:"shares"`
}

// SplitPools computes the deterministic pool breakdown for any balance.
// A negative balance yields negative figures; they are surfaced, not clamped.
// Every figure is rounded to 2 decimals at its point of computation.
func SplitPools(gross float64) (reserve, religious, ndp, basePool, performancePool float64) {
	reserve = round2(gross * businessReserveRate)
	religious = round2(gross * religiousAllocationRate)
	ndp = round2(gross - reserve - religious)
	basePool = round2(ndp * basePoolRate)
	performancePool = round2(ndp * performancePoolRate)
	return
}

// CalculateProfitSharing splits a realized balance into pools and per-partner
// payouts. Pure function, no hidden state; safe to call concurrently.
//
// The base pool splits equally among all partners passed in, the whole
// partnership, not only those with nonzero contribution on the project. The
// performance pool splits proportionally to contribution percentages, which
// must sum to 100 within epsilon; the caller refreshes contributions first.
func CalculateProfitSharing(gross float64, partners []PartnerContribution) (*ProfitBreakdown, error) {
	if gross < 0 {
		return nil, types.NewValidation("gross balance must be non-negative, got %.2f", gross)
	}
	if len(partners) == 0 {
		return nil, types.NewValidation("at least one partner is required for profit sharing")
	}
	sum := 0.0
	for _, p := range partners {
		sum += p.ContributionPercent
	}
	if sum < 100-contributionSumEpsilon || sum > 100+contributionSumEpsilon {
		return nil, types.NewValidation("contribution percentages must sum to 100, got %.2f", sum)
	}

	reserve, religious, ndp, basePool, performancePool := SplitPools(gross)
	baseShareEach := round2(basePool / float64(len(partners)))

	shares := make([]PartnerShare, 0, len(partners))
	for _, p := range partners {
		performanceShare := round2(performancePool * (p.ContributionPercent / 100))
		shares = append(shares, PartnerShare{
			PartnerID:           p.PartnerID,
			ContributionPercent: p.ContributionPercent,
			BaseShare:           baseShareEach,
			PerformanceShare:    performanceShare,
			TotalPayout:         round2(baseShareEach + performanceShare),
		})
	}

	return &ProfitBreakdown{
		GrossBalance:        round2(gross),
		BusinessReserve:     reserve,
		ReligiousAllocation: religious,
		NetDistributable:    ndp,
		BasePool:            basePool,
		PerformancePool:     performancePool,
		BaseShareEach:       baseShareEach,
		Shares:              shares,
	}, nil
}
