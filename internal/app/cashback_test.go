package app

import (
	"testing"

	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
)

func TestTransactionCountCashbackFoodTier(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanStandard}
	food := &domain.Merchant{Name: "Pizza Bros", Category: "Food", Strategy: domain.CashbackTransactions}

	// First transaction only counts.
	if got := cl.Apply(account, food, 50); got != 0 {
		t.Fatalf("first transaction cashback = %v, want 0", got)
	}
	if count := cl.PairCount("RO01", "Pizza Bros"); count != 1 {
		t.Fatalf("pair count after first transaction = %d, want 1", count)
	}

	// Second transaction reaches the Food tier and pays 2% of itself.
	if got := cl.Apply(account, food, 80); got != 0.02*80 {
		t.Fatalf("second transaction cashback = %v, want %v", got, 0.02*80)
	}
	if payouts := cl.PairPayouts("RO01", "Pizza Bros"); payouts != 1 {
		t.Fatalf("payouts after tier fired = %d, want 1", payouts)
	}

	// The tier is spent for this pair: later transactions earn nothing.
	for i := 0; i < 10; i++ {
		if got := cl.Apply(account, food, 100); got != 0 {
			t.Fatalf("transaction %d after tier spent earned %v, want 0", i+3, got)
		}
	}
}

func TestTransactionCountCashbackCategoryGate(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanStandard}

	tests := []struct {
		name         string
		merchant     *domain.Merchant
		transactions int
		lastWant     float64
	}{
		{
			// A Tech merchant never unlocks the Food or Clothes tiers even
			// though their numeric thresholds are reached along the way.
			name:         "tech merchant pays only at ten",
			merchant:     &domain.Merchant{Name: "Gadgetry", Category: "Tech", Strategy: domain.CashbackTransactions},
			transactions: 10,
			lastWant:     0.10 * 100,
		},
		{
			name:         "clothes merchant pays at five",
			merchant:     &domain.Merchant{Name: "Thread Co", Category: "Clothes", Strategy: domain.CashbackTransactions},
			transactions: 5,
			lastWant:     0.05 * 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last float64
			for i := 0; i < tt.transactions; i++ {
				last = cl.Apply(account, tt.merchant, 100)
				if i < tt.transactions-1 && last != 0 {
					t.Fatalf("transaction %d earned %v, want 0 before the tier", i+1, last)
				}
			}
			if last != tt.lastWant {
				t.Fatalf("final transaction earned %v, want %v", last, tt.lastWant)
			}
		})
	}
}

func TestTransactionCountCashbackIneligibleCategory(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanStandard}
	travel := &domain.Merchant{Name: "FlyAway", Category: "Travel", Strategy: domain.CashbackTransactions}

	for i := 0; i < 12; i++ {
		if got := cl.Apply(account, travel, 100); got != 0 {
			t.Fatalf("ineligible category earned %v on transaction %d, want 0", got, i+1)
		}
	}
	if count := cl.PairCount("RO01", "FlyAway"); count != 0 {
		t.Fatalf("ineligible category accrued count %d, want 0", count)
	}
}

func TestTransactionCountCashbackPerPairState(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	first := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanStandard}
	second := &domain.Account{IBAN: "RO02", Currency: "RON", Plan: domain.PlanStandard}
	food := &domain.Merchant{Name: "Pizza Bros", Category: "Food", Strategy: domain.CashbackTransactions}

	cl.Apply(first, food, 50)
	cl.Apply(first, food, 50)

	// The second account starts from scratch at the same merchant.
	if got := cl.Apply(second, food, 50); got != 0 {
		t.Fatalf("fresh account first transaction earned %v, want 0", got)
	}
	if got := cl.Apply(second, food, 60); got != 0.02*60 {
		t.Fatalf("fresh account second transaction earned %v, want %v", got, 0.02*60)
	}
}

func TestSpendingThresholdCashbackGoldTiers(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanGold}
	shop := &domain.Merchant{Name: "MegaMart", Category: "other", Strategy: domain.CashbackSpending}

	// Below the 100 RON threshold nothing is earned.
	if got := cl.Apply(account, shop, 99); got != 0 {
		t.Fatalf("below-threshold transaction earned %v, want 0", got)
	}

	// The accumulated 99 is still below 100: no payout, but this transaction
	// lifts the total to 199.
	if got := cl.Apply(account, shop, 100); got != 0 {
		t.Fatalf("transaction with 99 accumulated earned %v, want 0", got)
	}

	// 199 accumulated: the 100 tier applies at the gold rate.
	if got := cl.Apply(account, shop, 200); got != 0.005*200 {
		t.Fatalf("transaction with 199 accumulated earned %v, want %v", got, 0.005*200)
	}

	// 399 accumulated: the 300 tier applies.
	if got := cl.Apply(account, shop, 101); got != 0.0055*101 {
		t.Fatalf("transaction with 399 accumulated earned %v, want %v", got, 0.0055*101)
	}

	// 500 accumulated exactly: the 500 tier applies on the next transaction.
	if got := cl.Apply(account, shop, 50); got != 0.007*50 {
		t.Fatalf("transaction with 500 accumulated earned %v, want %v", got, 0.007*50)
	}

	if account.ThresholdPayoutsCount != 3 {
		t.Fatalf("payout counter = %d, want 3", account.ThresholdPayoutsCount)
	}
}

func TestSpendingThresholdCashbackPlanRates(t *testing.T) {
	tests := []struct {
		plan domain.Plan
		want float64
	}{
		{domain.PlanStandard, 0.001 * 100},
		{domain.PlanStudent, 0.001 * 100},
		{domain.PlanSilver, 0.003 * 100},
		{domain.PlanGold, 0.005 * 100},
	}
	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			graph := currency.NewGraph()
			cl := NewCashbackLedger(graph)
			account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: tt.plan}
			shop := &domain.Merchant{Name: "MegaMart", Category: "other", Strategy: domain.CashbackSpending}

			cl.Apply(account, shop, 150) // accumulate past 100
			if got := cl.Apply(account, shop, 100); got != tt.want {
				t.Fatalf("plan %s earned %v, want %v", tt.plan, got, tt.want)
			}
		})
	}
}

func TestSpendingThresholdAccumulatesAcrossMerchants(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanStandard}
	grocer := &domain.Merchant{Name: "Grocer", Category: "other", Strategy: domain.CashbackSpending}
	kiosk := &domain.Merchant{Name: "Kiosk", Category: "other", Strategy: domain.CashbackSpending}

	cl.Apply(account, grocer, 60)
	cl.Apply(account, kiosk, 60)

	// 120 accumulated across both merchants unlocks the 100 tier.
	if got := cl.Apply(account, grocer, 100); got != 0.001*100 {
		t.Fatalf("cross-merchant accumulation earned %v, want %v", got, 0.001*100)
	}
}

func TestCashbackNoneStrategy(t *testing.T) {
	graph := currency.NewGraph()
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "RON", Plan: domain.PlanGold}
	plain := &domain.Merchant{Name: "Utility", Category: "other", Strategy: domain.CashbackNone}

	for i := 0; i < 5; i++ {
		if got := cl.Apply(account, plain, 1000); got != 0 {
			t.Fatalf("none strategy earned %v, want 0", got)
		}
	}
}

func TestSpendingThresholdConvertsAccumulatorIntoAccountCurrency(t *testing.T) {
	graph := currency.NewGraph()
	graph.AddRate("EUR", "RON", 5.0)
	cl := NewCashbackLedger(graph)
	account := &domain.Account{IBAN: "RO01", Currency: "EUR", Plan: domain.PlanStandard}
	shop := &domain.Merchant{Name: "MegaMart", Category: "other", Strategy: domain.CashbackSpending}

	// 30 EUR spend accumulates 150 RON.
	if got := cl.Apply(account, shop, 30); got != 0 {
		t.Fatalf("first transaction earned %v, want 0", got)
	}
	if account.ThresholdSpendRON != 150 {
		t.Fatalf("accumulator = %v RON, want 150", account.ThresholdSpendRON)
	}

	// 150 RON accumulated is 30 EUR, past the 100 RON threshold of 20 EUR.
	if got := cl.Apply(account, shop, 10); got != 0.001*10 {
		t.Fatalf("second transaction earned %v, want %v", got, 0.001*10)
	}
}
