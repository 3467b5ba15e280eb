package app

import (
	"testing"

	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
	"github.com/vaultbank/transaction-core/internal/store"
)

func newTestCoordinator(t *testing.T) (*SplitCoordinator, *store.MemoryLedger, *currency.Graph) {
	t.Helper()
	ledger := store.NewMemoryLedger()
	graph := currency.NewGraph()
	return NewSplitCoordinator(ledger, graph), ledger, graph
}

func TestSplitCreateEqualShares(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedUser(t, ledger, "cat@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "bob@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO03", "cat@bank.ro", "RON", 1000, domain.PlanStandard)

	sp := c.Create(domain.SplitEqual, []string{"RO01", "RO02", "RO03"}, 300, nil, "RON", 10)

	for i, iban := range sp.Accounts {
		if sp.Amounts[i] != 100 {
			t.Fatalf("share of %s = %v, want 100", iban, sp.Amounts[i])
		}
	}
	if sp.Status != domain.SplitPending {
		t.Fatalf("status = %s, want %s", sp.Status, domain.SplitPending)
	}
	for _, email := range []string{"ana@bank.ro", "bob@bank.ro", "cat@bank.ro"} {
		if c.OldestPending(email) != sp {
			t.Fatalf("payment not pending for %s", email)
		}
	}
}

func TestSplitCreateCustomAmountsVerbatim(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "bob@bank.ro", "RON", 1000, domain.PlanStandard)

	// The custom amounts do not have to add up to the total.
	sp := c.Create(domain.SplitCustom, []string{"RO01", "RO02"}, 300, []float64{10, 20}, "RON", 10)

	if sp.Amounts[0] != 10 || sp.Amounts[1] != 20 {
		t.Fatalf("amounts = %v, want [10 20]", sp.Amounts)
	}
	if sp.Total != 300 {
		t.Fatalf("total = %v, want 300", sp.Total)
	}
}

func TestSplitSettleDebitsEveryParticipant(t *testing.T) {
	c, ledger, graph := newTestCoordinator(t)
	graph.AddRate("EUR", "RON", 5.0)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "bob@bank.ro", "EUR", 1000, domain.PlanStandard)

	sp := c.Create(domain.SplitEqual, []string{"RO01", "RO02"}, 200, nil, "RON", 10)
	c.Accept("ana@bank.ro")
	c.Accept("bob@bank.ro")
	if !sp.FullyAccepted() {
		t.Fatal("payment not fully accepted after both owners accepted")
	}

	shortIBAN, settled := c.Settle(sp)
	if !settled || shortIBAN != "" {
		t.Fatalf("Settle() = (%q, %v), want (\"\", true)", shortIBAN, settled)
	}
	if sp.Status != domain.SplitSettled {
		t.Fatalf("status = %s, want %s", sp.Status, domain.SplitSettled)
	}

	ana, _ := ledger.FindAccountByIBAN("RO01")
	if ana.Balance != 900 {
		t.Fatalf("RON participant balance = %v, want 900", ana.Balance)
	}
	bob, _ := ledger.FindAccountByIBAN("RO02")
	if bob.Balance != 980 { // 100 RON at 0.2 -> 20 EUR
		t.Fatalf("EUR participant balance = %v, want 980", bob.Balance)
	}
	if c.OldestPending("ana@bank.ro") != nil || c.OldestPending("bob@bank.ro") != nil {
		t.Fatal("settled payment still queued")
	}
}

func TestSplitSettleAllOrNothing(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedUser(t, ledger, "cat@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "bob@bank.ro", "RON", 50, domain.PlanStandard)
	seedAccount(t, ledger, "RO03", "cat@bank.ro", "RON", 40, domain.PlanStandard)

	sp := c.Create(domain.SplitEqual, []string{"RO01", "RO02", "RO03"}, 300, nil, "RON", 10)

	shortIBAN, settled := c.Settle(sp)
	if settled {
		t.Fatal("Settle() settled with insufficient participants")
	}
	// Both RO02 and RO03 are short; the first in participant order is reported.
	if shortIBAN != "RO02" {
		t.Fatalf("short IBAN = %s, want RO02", shortIBAN)
	}
	if sp.Status != domain.SplitCancelled {
		t.Fatalf("status = %s, want %s", sp.Status, domain.SplitCancelled)
	}

	// Nobody was debited, including the account that could afford its share.
	for _, want := range []struct {
		iban    string
		balance float64
	}{{"RO01", 1000}, {"RO02", 50}, {"RO03", 40}} {
		account, _ := ledger.FindAccountByIBAN(want.iban)
		if account.Balance != want.balance {
			t.Fatalf("balance of %s = %v, want %v", want.iban, account.Balance, want.balance)
		}
	}
}

func TestSplitAcceptTargetsOldestPending(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "bob@bank.ro", "RON", 1000, domain.PlanStandard)

	first := c.Create(domain.SplitEqual, []string{"RO01", "RO02"}, 100, nil, "RON", 10)
	second := c.Create(domain.SplitEqual, []string{"RO01", "RO02"}, 200, nil, "RON", 20)

	got := c.Accept("ana@bank.ro")
	if got != first {
		t.Fatal("Accept did not target the oldest pending payment")
	}
	if second.Accepted["RO01"] {
		t.Fatal("newer payment flagged accepted")
	}

	// Resolving the first payment moves the second to the head of the queue.
	c.Cancel(first)
	if c.OldestPending("ana@bank.ro") != second {
		t.Fatal("second payment did not become the oldest pending")
	}
}

func TestSplitAcceptFlagsAllAccountsOfUser(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO03", "bob@bank.ro", "RON", 1000, domain.PlanStandard)

	sp := c.Create(domain.SplitEqual, []string{"RO01", "RO02", "RO03"}, 300, nil, "RON", 10)

	c.Accept("ana@bank.ro")
	if !sp.Accepted["RO01"] || !sp.Accepted["RO02"] {
		t.Fatal("one accept did not cover both accounts of the same owner")
	}
	if sp.FullyAccepted() {
		t.Fatal("payment fully accepted before the second owner accepted")
	}
	c.Accept("bob@bank.ro")
	if !sp.FullyAccepted() {
		t.Fatal("payment not fully accepted after all owners accepted")
	}
}

func TestSplitCancelRemovesFromEveryQueue(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedAccount(t, ledger, "RO01", "ana@bank.ro", "RON", 1000, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "bob@bank.ro", "RON", 1000, domain.PlanStandard)

	sp := c.Create(domain.SplitEqual, []string{"RO01", "RO02"}, 100, nil, "RON", 10)
	c.Accept("ana@bank.ro")

	c.Cancel(sp)
	if sp.Status != domain.SplitCancelled {
		t.Fatalf("status = %s, want %s", sp.Status, domain.SplitCancelled)
	}
	if c.OldestPending("ana@bank.ro") != nil || c.OldestPending("bob@bank.ro") != nil {
		t.Fatal("cancelled payment still queued")
	}
}

func TestSplitParticipantOwnersDistinctInOrder(t *testing.T) {
	c, ledger, _ := newTestCoordinator(t)
	seedUser(t, ledger, "ana@bank.ro")
	seedUser(t, ledger, "bob@bank.ro")
	seedAccount(t, ledger, "RO01", "bob@bank.ro", "RON", 0, domain.PlanStandard)
	seedAccount(t, ledger, "RO02", "ana@bank.ro", "RON", 0, domain.PlanStandard)
	seedAccount(t, ledger, "RO03", "bob@bank.ro", "RON", 0, domain.PlanStandard)

	sp := c.Create(domain.SplitEqual, []string{"RO01", "RO02", "RO03"}, 30, nil, "RON", 10)

	owners := c.ParticipantOwners(sp)
	if len(owners) != 2 || owners[0] != "bob@bank.ro" || owners[1] != "ana@bank.ro" {
		t.Fatalf("owners = %v, want [bob@bank.ro ana@bank.ro]", owners)
	}
}
