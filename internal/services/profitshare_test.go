package services_test

import (
	"math"
	"testing"

	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// TestCalculateProfitSharing verifies the full pool breakdown and per-partner
// payouts for a realized balance of 24000 split 70/30/0 across three partners.
func TestCalculateProfitSharing(t *testing.T) {
	partners := []services.PartnerContribution{
		{PartnerID: "p1", ContributionPercent: 70},
		{PartnerID: "p2", ContributionPercent: 30},
		{PartnerID: "p3", ContributionPercent: 0},
	}

	breakdown, err := services.CalculateProfitSharing(24000, partners)
	if err != nil {
		t.Fatalf("CalculateProfitSharing failed: %v", err)
	}

	if !almostEqual(breakdown.BusinessReserve, 2400) {
		t.Errorf("Expected business reserve 2400, got %.2f", breakdown.BusinessReserve)
	}
	if !almostEqual(breakdown.ReligiousAllocation, 1200) {
		t.Errorf("Expected religious allocation 1200, got %.2f", breakdown.ReligiousAllocation)
	}
	if !almostEqual(breakdown.NetDistributable, 20400) {
		t.Errorf("Expected net distributable 20400, got %.2f", breakdown.NetDistributable)
	}
	if !almostEqual(breakdown.BasePool, 4080) {
		t.Errorf("Expected base pool 4080, got %.2f", breakdown.BasePool)
	}
	if !almostEqual(breakdown.PerformancePool, 16320) {
		t.Errorf("Expected performance pool 16320, got %.2f", breakdown.PerformancePool)
	}
	if !almostEqual(breakdown.BaseShareEach, 1360) {
		t.Errorf("Expected base share each 1360, got %.2f", breakdown.BaseShareEach)
	}

	expected := map[string][3]float64{
		"p1": {1360, 11424, 12784},
		"p2": {1360, 4896, 6256},
		"p3": {1360, 0, 1360},
	}
	if len(breakdown.Shares) != 3 {
		t.Fatalf("Expected 3 shares, got %d", len(breakdown.Shares))
	}
	for _, share := range breakdown.Shares {
		want, ok := expected[share.PartnerID]
		if !ok {
			t.Errorf("Unexpected partner in shares: %s", share.PartnerID)
			continue
		}
		if !almostEqual(share.BaseShare, want[0]) {
			t.Errorf("Partner %s: expected base share %.2f, got %.2f", share.PartnerID, want[0], share.BaseShare)
		}
		if !almostEqual(share.PerformanceShare, want[1]) {
			t.Errorf("Partner %s: expected performance share %.2f, got %.2f", share.PartnerID, want[1], share.PerformanceShare)
		}
		if !almostEqual(share.TotalPayout, want[2]) {
			t.Errorf("Partner %s: expected total payout %.2f, got %.2f", share.PartnerID, want[2], share.TotalPayout)
		}
	}
}

// TestCalculateProfitSharingConservation checks that pools and payouts add
// back up to the amounts they were carved from.
func TestCalculateProfitSharingConservation(t *testing.T) {
	partners := []services.PartnerContribution{
		{PartnerID: "p1", ContributionPercent: 49.09},
		{PartnerID: "p2", ContributionPercent: 50.91},
	}

	breakdown, err := services.CalculateProfitSharing(13570, partners)
	if err != nil {
		t.Fatalf("CalculateProfitSharing failed: %v", err)
	}

	poolSum := breakdown.BusinessReserve + breakdown.ReligiousAllocation + breakdown.NetDistributable
	if !almostEqual(poolSum, breakdown.GrossBalance) {
		t.Errorf("Reserve + religious + NDP = %.2f, expected %.2f", poolSum, breakdown.GrossBalance)
	}
	ndpSum := breakdown.BasePool + breakdown.PerformancePool
	if !almostEqual(ndpSum, breakdown.NetDistributable) {
		t.Errorf("Base + performance = %.2f, expected %.2f", ndpSum, breakdown.NetDistributable)
	}
	for _, share := range breakdown.Shares {
		if !almostEqual(share.BaseShare+share.PerformanceShare, share.TotalPayout) {
			t.Errorf("Partner %s: base %.2f + performance %.2f != total %.2f",
				share.PartnerID, share.BaseShare, share.PerformanceShare, share.TotalPayout)
		}
	}
}

// TestCalculateProfitSharingValidation covers the three rejection paths.
func TestCalculateProfitSharingValidation(t *testing.T) {
	valid := []services.PartnerContribution{
		{PartnerID: "p1", ContributionPercent: 100},
	}

	if _, err := services.CalculateProfitSharing(-100, valid); !types.IsValidation(err) {
		t.Errorf("Expected validation error for negative balance, got %v", err)
	}

	if _, err := services.CalculateProfitSharing(1000, nil); !types.IsValidation(err) {
		t.Errorf("Expected validation error for empty partner set, got %v", err)
	}

	stale := []services.PartnerContribution{
		{PartnerID: "p1", ContributionPercent: 60},
		{PartnerID: "p2", ContributionPercent: 30},
	}
	if _, err := services.CalculateProfitSharing(1000, stale); !types.IsValidation(err) {
		t.Errorf("Expected validation error for contribution sum 90, got %v", err)
	}

	// Within epsilon of 100 passes.
	nearHundred := []services.PartnerContribution{
		{PartnerID: "p1", ContributionPercent: 49.09},
		{PartnerID: "p2", ContributionPercent: 50.92},
	}
	if _, err := services.CalculateProfitSharing(1000, nearHundred); err != nil {
		t.Errorf("Expected sum 100.01 to pass, got %v", err)
	}
}

// TestSplitPoolsNegative verifies that a loss produces negative pool figures
// instead of being clamped to zero.
func TestSplitPoolsNegative(t *testing.T) {
	reserve, religious, ndp, basePool, performancePool := services.SplitPools(-5000)

	if !almostEqual(reserve, -500) {
		t.Errorf("Expected reserve -500, got %.2f", reserve)
	}
	if !almostEqual(religious, -250) {
		t.Errorf("Expected religious allocation -250, got %.2f", religious)
	}
	if !almostEqual(ndp, -4250) {
		t.Errorf("Expected net distributable -4250, got %.2f", ndp)
	}
	if !almostEqual(basePool, -850) {
		t.Errorf("Expected base pool -850, got %.2f", basePool)
	}
	if !almostEqual(performancePool, -3400) {
		t.Errorf("Expected performance pool -3400, got %.2f", performancePool)
	}
}
