// Package settlement computes how a gig's income is split between the
// manager and the other performers. Calculate is pure and total: it does no
// I/O, never fails, and expects its caller to have clamped the numeric
// fields already (see models.Gig.Clamp).
package settlement

import "math"

const (
	BonusTypeFixed      = "fixed"
	BonusTypePercentage = "percentage"
)

// GigFinancials is the read-only input snapshot of a gig's financial terms.
type GigFinancials struct {
	PerformanceFee          float64
	TechnicalFee            float64
	ManagerBonusType        string
	ManagerBonusAmount      float64
	NumberOfMusicians       int
	ClaimPerformanceFee     bool
	ClaimTechnicalFee       bool
	TechnicalFeeClaimAmount *float64
}

// Result holds the computed split. Every field is rounded independently to
// cent resolution, half away from zero.
type Result struct {
	ActualManagerBonus float64 `json:"actual_manager_bonus"`
	TotalReceived      float64 `json:"total_received"`
	AmountPerMusician  float64 `json:"amount_per_musician"`
	MyEarnings         float64 `json:"my_earnings"`
	AmountOwedToOthers float64 `json:"amount_owed_to_others"`
}

// Calculate computes the settlement for a single gig.
//
// Split policy ("remaining-performers split"): the performance fee is
// divided by the full headcount while the manager claims a share, and by
// the remaining headcount when they do not, so a manager who opts out of
// the performance fee is not counted in its split. The amount owed to the band
// is always (headcount-1) times the per-musician share, whatever the claim
// flags say: the other performers' shares don't shrink because the manager
// waived their own.
func Calculate(g GigFinancials) Result {
	bonus := g.ManagerBonusAmount
	if g.ManagerBonusType == BonusTypePercentage {
		// Percentage applies to the performance fee only, never to the
		// total (the total already contains the bonus).
		bonus = g.PerformanceFee * g.ManagerBonusAmount / 100
	}

	total := g.PerformanceFee + g.TechnicalFee + bonus

	divisor := g.NumberOfMusicians
	if !g.ClaimPerformanceFee {
		divisor = g.NumberOfMusicians - 1
	}
	if divisor < 1 {
		divisor = 1
	}
	perMusician := g.PerformanceFee / float64(divisor)

	perfShare := 0.0
	if g.ClaimPerformanceFee {
		perfShare = perMusician
	}

	techShare := 0.0
	if g.ClaimTechnicalFee {
		techShare = g.TechnicalFee
		if g.TechnicalFeeClaimAmount != nil {
			techShare = math.Min(*g.TechnicalFeeClaimAmount, g.TechnicalFee)
		}
	}

	myEarnings := perfShare + techShare + bonus

	owedToBand := 0.0
	if g.NumberOfMusicians > 1 {
		owedToBand = float64(g.NumberOfMusicians-1) * perMusician
	}

	owedForTechnical := 0.0
	if !g.ClaimTechnicalFee {
		owedForTechnical = g.TechnicalFee
	} else if g.TechnicalFeeClaimAmount != nil {
		owedForTechnical = math.Max(0, g.TechnicalFee-*g.TechnicalFeeClaimAmount)
	}

	return Result{
		ActualManagerBonus: roundCents(bonus),
		TotalReceived:      roundCents(total),
		AmountPerMusician:  roundCents(perMusician),
		MyEarnings:         roundCents(myEarnings),
		AmountOwedToOthers: roundCents(owedToBand + owedForTechnical),
	}
}

// roundCents rounds to two decimal places, half away from zero.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
