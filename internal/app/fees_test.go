package app

import (
	"testing"

	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
)

func TestComputeFee(t *testing.T) {
	graph := currency.NewGraph()
	graph.AddRate("EUR", "RON", 5.0)

	tests := []struct {
		name   string
		plan   domain.Plan
		amount float64
		cur    string
		want   float64
	}{
		{"standard pays 0.2 percent", domain.PlanStandard, 1000, "RON", 2.0},
		{"student pays nothing", domain.PlanStudent, 1000, "RON", 0},
		{"gold pays nothing", domain.PlanGold, 1000, "RON", 0},
		{"unknown plan pays nothing", domain.Plan("platinum"), 1000, "RON", 0},
		{"silver below threshold pays 0.2 percent", domain.PlanSilver, 400, "RON", 0.8},
		{"silver at threshold pays 0.1 percent", domain.PlanSilver, 500, "RON", 0.5},
		{"silver above threshold in foreign currency", domain.PlanSilver, 100, "EUR", 0.1},
		// 100 EUR -> 500 RON, fee 0.5 RON -> 0.1 EUR, both conversions rounded.
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeFee(tt.plan, tt.amount, tt.cur, graph); got != tt.want {
				t.Errorf("ComputeFee(%s, %v, %s) = %v, want %v", tt.plan, tt.amount, tt.cur, got, tt.want)
			}
		})
	}
}

func TestComputeFeeSilverNoConversionPath(t *testing.T) {
	graph := currency.NewGraph()

	// USD is not registered, so the amount passes through as if it were
	// already RON: 600 >= 500 selects the reduced fee, and the fee converts
	// back unchanged.
	got := ComputeFee(domain.PlanSilver, 600, "USD", graph)
	want := 0.6
	if got != want {
		t.Fatalf("ComputeFee(silver, 600, USD) = %v, want %v", got, want)
	}
}

func TestUpgradeFeeTable(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Plan
		to      domain.Plan
		wantFee float64
		wantOK  bool
	}{
		{"standard to silver", domain.PlanStandard, domain.PlanSilver, 100, true},
		{"student to silver", domain.PlanStudent, domain.PlanSilver, 100, true},
		{"silver to gold", domain.PlanSilver, domain.PlanGold, 250, true},
		{"standard to gold", domain.PlanStandard, domain.PlanGold, 350, true},
		{"gold to silver is not an upgrade", domain.PlanGold, domain.PlanSilver, 0, false},
		{"silver to standard is not an upgrade", domain.PlanSilver, domain.PlanStandard, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, ok := upgradeFeeRON(tt.from, tt.to)
			if ok != tt.wantOK || fee != tt.wantFee {
				t.Errorf("upgradeFeeRON(%s, %s) = (%v, %v), want (%v, %v)", tt.from, tt.to, fee, ok, tt.wantFee, tt.wantOK)
			}
		})
	}
}
