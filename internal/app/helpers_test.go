package app

import (
	"testing"

	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
	"github.com/vaultbank/transaction-core/internal/store"
)

func newTestEngine() (*Service, *store.MemoryLedger, *currency.Graph) {
	ledger := store.NewMemoryLedger()
	graph := currency.NewGraph()
	return NewService(ledger, graph, nil, 42), ledger, graph
}

func seedUser(t *testing.T, ledger *store.MemoryLedger, email string) {
	t.Helper()
	if err := ledger.CreateUser(domain.User{Email: email, FirstName: "Test", LastName: "User"}); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
}

func seedAccount(t *testing.T, ledger *store.MemoryLedger, iban, owner, cur string, balance float64, plan domain.Plan) *domain.Account {
	t.Helper()
	account := &domain.Account{
		IBAN:       iban,
		OwnerEmail: owner,
		Currency:   cur,
		Balance:    balance,
		Kind:       domain.AccountClassic,
		Plan:       plan,
	}
	if err := ledger.CreateAccount(account); err != nil {
		t.Fatalf("seed account %s: %v", iban, err)
	}
	return account
}

func seedCard(t *testing.T, ledger *store.MemoryLedger, number, iban, holder string) *domain.Card {
	t.Helper()
	card := &domain.Card{
		Number:      number,
		AccountIBAN: iban,
		HolderEmail: holder,
		Status:      domain.CardActive,
	}
	if err := ledger.CreateCard(card); err != nil {
		t.Fatalf("seed card %s: %v", number, err)
	}
	return card
}

func seedMerchant(t *testing.T, ledger *store.MemoryLedger, name, category string, strategy domain.CashbackStrategy) *domain.Merchant {
	t.Helper()
	m := domain.Merchant{Name: name, Category: category, Strategy: strategy}
	if err := ledger.CreateMerchant(m); err != nil {
		t.Fatalf("seed merchant %s: %v", name, err)
	}
	found, err := ledger.FindMerchantByName(name)
	if err != nil {
		t.Fatalf("find merchant %s: %v", name, err)
	}
	return found
}

func lastTransaction(t *testing.T, ledger *store.MemoryLedger, email string) domain.Transaction {
	t.Helper()
	log := ledger.TransactionsByEmail(email)
	if len(log) == 0 {
		t.Fatalf("no transactions logged for %s", email)
	}
	return log[len(log)-1]
}
