/**
 * @description
 * This file implements the cashback ledger. A merchant carries exactly one
 * cashback strategy, so at most one strategy applies per transaction:
 *
 * - nrOfTransactions: per (account, merchant) transaction counting with
 *   category-gated reward tiers, each tier usable once per pair and at most
 *   three tier payouts over the pair's lifetime.
 * - spendingThreshold: an account-level running total of RON-normalized spend
 *   across every spendingThreshold merchant, with plan-dependent rates at the
 *   100/300/500 RON thresholds.
 *
 * The trigger points differ on purpose and are pinned by tests: the
 * transaction-count strategy increments the counter first and then evaluates
 * tiers, so the Nth transaction can pay for itself; the spending-threshold
 * strategy selects the rate from the total accumulated before the current
 * transaction, so a newly crossed threshold pays out starting with the next
 * qualifying transaction.
 *
 * @dependencies
 * - internal/currency, internal/domain: Rate graph and models.
 */

package app

import (
	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
)

// transactionTier is one reward step of the transaction-count strategy.
type transactionTier struct {
	threshold int
	category  string
	rate      float64
}

// Tiers are evaluated in ascending threshold order; only the tier whose
// category matches the merchant's own category can fire.
var transactionTiers = []transactionTier{
	{threshold: 2, category: "Food", rate: 0.02},
	{threshold: 5, category: "Clothes", rate: 0.05},
	{threshold: 10, category: "Tech", rate: 0.10},
}

// maxTransactionTierPayouts caps lifetime tier payouts per (account, merchant).
const maxTransactionTierPayouts = 3

// spendingThresholds in RON, checked highest first.
var spendingThresholds = []float64{500, 300, 100}

// spendingRates maps plan -> RON threshold -> cashback rate.
var spendingRates = map[domain.Plan]map[float64]float64{
	domain.PlanStandard: {100: 0.001, 300: 0.002, 500: 0.0025},
	domain.PlanStudent:  {100: 0.001, 300: 0.002, 500: 0.0025},
	domain.PlanSilver:   {100: 0.003, 300: 0.004, 500: 0.005},
	domain.PlanGold:     {100: 0.005, 300: 0.0055, 500: 0.007},
}

// pairKey identifies one (account, merchant) counting state.
type pairKey struct {
	iban     string
	merchant string
}

// pairState is the mutable transaction-count state for one pair. Created
// lazily on the first qualifying transaction.
type pairState struct {
	count      int
	totalSpent float64
	tierUsed   []bool
	payouts    int
}

// CashbackLedger owns all cashback bookkeeping outside the accounts
// themselves (the spending-threshold accumulator lives on the account).
type CashbackLedger struct {
	graph *currency.Graph
	pairs map[pairKey]*pairState
}

// NewCashbackLedger creates an empty cashback ledger.
func NewCashbackLedger(graph *currency.Graph) *CashbackLedger {
	return &CashbackLedger{
		graph: graph,
		pairs: make(map[pairKey]*pairState),
	}
}

// Apply runs the merchant's strategy for one payment and returns the cashback
// to credit back to the paying account, in the account's currency. The amount
// is the debited value in the account's currency.
func (cl *CashbackLedger) Apply(account *domain.Account, merchant *domain.Merchant, amount float64) float64 {
	switch merchant.Strategy {
	case domain.CashbackTransactions:
		return cl.applyTransactionCount(account, merchant, amount)
	case domain.CashbackSpending:
		return cl.applySpendingThreshold(account, amount)
	default:
		return 0
	}
}

// applyTransactionCount increments the pair counter, then fires the tier that
// matches both the reached threshold and the merchant's category, if that
// tier is still unused and fewer than three tiers have paid out.
func (cl *CashbackLedger) applyTransactionCount(account *domain.Account, merchant *domain.Merchant, amount float64) float64 {
	if !tierCategoryEligible(merchant.Category) {
		return 0
	}

	key := pairKey{iban: account.IBAN, merchant: merchant.Name}
	st, ok := cl.pairs[key]
	if !ok {
		st = &pairState{tierUsed: make([]bool, len(transactionTiers))}
		cl.pairs[key] = st
	}

	st.count++
	st.totalSpent += amount

	for i, tier := range transactionTiers {
		if st.count < tier.threshold {
			break
		}
		if tier.category != merchant.Category || st.tierUsed[i] {
			continue
		}
		if st.payouts >= maxTransactionTierPayouts {
			return 0
		}
		st.tierUsed[i] = true
		st.payouts++
		return tier.rate * amount
	}
	return 0
}

// applySpendingThreshold selects the rate from the account's accumulated
// total before this transaction, then folds the transaction into the
// accumulator. The comparison happens in the account's own currency, with the
// usual per-step rounding on every converted figure.
func (cl *CashbackLedger) applySpendingThreshold(account *domain.Account, amount float64) float64 {
	rates, ok := spendingRates[account.Plan]
	if !ok {
		return 0
	}

	accumulated := cl.graph.Convert(account.ThresholdSpendRON, BaseCurrency, account.Currency)
	var rate float64
	for _, threshold := range spendingThresholds {
		if accumulated >= cl.graph.Convert(threshold, BaseCurrency, account.Currency) {
			rate = rates[threshold]
			break
		}
	}

	account.ThresholdSpendRON += cl.graph.Convert(amount, account.Currency, BaseCurrency)

	if rate == 0 {
		return 0
	}
	account.ThresholdPayoutsCount++
	return rate * amount
}

// PairCount exposes the transaction counter for one (account, merchant) pair.
// Used by listing endpoints and tests.
func (cl *CashbackLedger) PairCount(iban, merchant string) int {
	if st, ok := cl.pairs[pairKey{iban: iban, merchant: merchant}]; ok {
		return st.count
	}
	return 0
}

// PairPayouts exposes the lifetime tier payout count for one pair.
func (cl *CashbackLedger) PairPayouts(iban, merchant string) int {
	if st, ok := cl.pairs[pairKey{iban: iban, merchant: merchant}]; ok {
		return st.payouts
	}
	return 0
}

func tierCategoryEligible(category string) bool {
	for _, t := range transactionTiers {
		if t.category == category {
			return true
		}
	}
	return false
}
