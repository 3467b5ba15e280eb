/**
 * @description
 * This file implements the plan-based commission calculator. Fees depend on
 * the payer's service plan and, for the silver plan, on the RON equivalent of
 * the amount being moved.
 *
 * @notes
 * - The silver reduced fee is computed in RON and converted back into the
 *   payment currency, so it goes through two independently rounded
 *   conversions. When no conversion path to RON exists the amount passes
 *   through Convert unchanged and is treated as already being in RON.
 */

package app

import (
	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
)

const (
	standardFeeRate      = 0.002
	silverReducedFeeRate = 0.001
)

// plan upgrade fees in RON, keyed by (current, requested) tier rank.
var upgradeFeesRON = map[[2]int]float64{
	{0, 1}: 100,
	{1, 2}: 250,
	{0, 2}: 350,
}

// planRank orders plans for upgrade fee lookups. standard and student share a
// rank; unknown plans rank below everything.
func planRank(plan domain.Plan) int {
	switch plan {
	case domain.PlanStandard, domain.PlanStudent:
		return 0
	case domain.PlanSilver:
		return 1
	case domain.PlanGold:
		return 2
	default:
		return -1
	}
}

// ComputeFee returns the commission for moving an amount under a service
// plan, denominated in the amount's currency. Gold, student and unknown plans
// pay no fee.
func ComputeFee(plan domain.Plan, amount float64, cur string, graph *currency.Graph) float64 {
	switch plan {
	case domain.PlanStandard:
		return amount * standardFeeRate
	case domain.PlanSilver:
		ronAmount := graph.Convert(amount, cur, BaseCurrency)
		if ronAmount >= SilverFeeThresholdRON {
			return graph.Convert(ronAmount*silverReducedFeeRate, BaseCurrency, cur)
		}
		return amount * standardFeeRate
	default:
		return 0
	}
}

// upgradeFeeRON returns the RON fee for a plan change, or false when the
// change is not an upgrade.
func upgradeFeeRON(from, to domain.Plan) (float64, bool) {
	fee, ok := upgradeFeesRON[[2]int{planRank(from), planRank(to)}]
	return fee, ok
}
