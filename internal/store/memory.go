/**
 * @description
 * This file provides the in-memory implementation of the `Ledger` interface.
 * The service replays an ordered command sequence against a deterministic
 * in-memory state, so the ledger is plain maps plus per-user append-only
 * transaction logs. Command processing is strictly serial; the engine holds
 * one lock around every command, so the ledger itself does no locking.
 *
 * @dependencies
 * - errors: Standard Go library, for the sentinel errors.
 * - internal/domain: Contains the domain models held by the ledger.
 */

package store

import (
	"errors"

	"github.com/vaultbank/transaction-core/internal/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrMerchantNotFound  = errors.New("merchant not found")
	ErrMerchantExists    = errors.New("merchant already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAliasTaken        = errors.New("alias already registered")
)

// MemoryLedger is the in-memory implementation of the Ledger interface.
type MemoryLedger struct {
	users     map[string]*domain.User
	accounts  map[string]*domain.Account
	ownership map[string][]string // email -> IBANs in creation order
	aliases   map[string]string   // alias -> IBAN
	cards     map[string]*domain.Card
	merchants map[string]*domain.Merchant
	logs      map[string][]domain.Transaction
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		users:     make(map[string]*domain.User),
		accounts:  make(map[string]*domain.Account),
		ownership: make(map[string][]string),
		aliases:   make(map[string]string),
		cards:     make(map[string]*domain.Card),
		merchants: make(map[string]*domain.Merchant),
		logs:      make(map[string][]domain.Transaction),
	}
}

// CreateUser registers a new user keyed by email.
func (l *MemoryLedger) CreateUser(user domain.User) error {
	if _, ok := l.users[user.Email]; ok {
		return ErrUserExists
	}
	u := user
	l.users[user.Email] = &u
	return nil
}

// FindUserByEmail looks a user up by email.
func (l *MemoryLedger) FindUserByEmail(email string) (*domain.User, error) {
	u, ok := l.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// CreateAccount registers a new account under its owner. The owner must exist.
func (l *MemoryLedger) CreateAccount(account *domain.Account) error {
	if _, ok := l.users[account.OwnerEmail]; !ok {
		return ErrUserNotFound
	}
	l.accounts[account.IBAN] = account
	l.ownership[account.OwnerEmail] = append(l.ownership[account.OwnerEmail], account.IBAN)
	return nil
}

// FindAccountByIBAN looks an account up by IBAN.
func (l *MemoryLedger) FindAccountByIBAN(iban string) (*domain.Account, error) {
	a, ok := l.accounts[iban]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// ResolveAccount looks an account up by IBAN first, then by alias.
func (l *MemoryLedger) ResolveAccount(identifier string) (*domain.Account, error) {
	if a, ok := l.accounts[identifier]; ok {
		return a, nil
	}
	if iban, ok := l.aliases[identifier]; ok {
		if a, ok := l.accounts[iban]; ok {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

// AccountsByOwner returns a user's accounts in creation order.
func (l *MemoryLedger) AccountsByOwner(email string) []*domain.Account {
	ibans := l.ownership[email]
	accounts := make([]*domain.Account, 0, len(ibans))
	for _, iban := range ibans {
		if a, ok := l.accounts[iban]; ok {
			accounts = append(accounts, a)
		}
	}
	return accounts
}

// SetAlias registers an alias for an IBAN. Re-registering an existing alias to
// a different account is rejected; pointing it at the same account is a no-op.
func (l *MemoryLedger) SetAlias(alias, iban string) error {
	if _, ok := l.accounts[iban]; !ok {
		return ErrAccountNotFound
	}
	if existing, ok := l.aliases[alias]; ok && existing != iban {
		return ErrAliasTaken
	}
	l.aliases[alias] = iban
	return nil
}

// Deposit credits an account.
func (l *MemoryLedger) Deposit(iban string, amount float64) error {
	a, ok := l.accounts[iban]
	if !ok {
		return ErrAccountNotFound
	}
	a.Balance += amount
	return nil
}

// Spend debits an account. The balance may not go negative.
func (l *MemoryLedger) Spend(iban string, amount float64) error {
	a, ok := l.accounts[iban]
	if !ok {
		return ErrAccountNotFound
	}
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

// CreateCard attaches a card to its account. The account must exist.
func (l *MemoryLedger) CreateCard(card *domain.Card) error {
	if _, ok := l.accounts[card.AccountIBAN]; !ok {
		return ErrAccountNotFound
	}
	l.cards[card.Number] = card
	return nil
}

// FindCardByNumber looks a card up by number.
func (l *MemoryLedger) FindCardByNumber(number string) (*domain.Card, error) {
	c, ok := l.cards[number]
	if !ok {
		return nil, ErrCardNotFound
	}
	return c, nil
}

// DeleteCard removes a card by number.
func (l *MemoryLedger) DeleteCard(number string) error {
	if _, ok := l.cards[number]; !ok {
		return ErrCardNotFound
	}
	delete(l.cards, number)
	return nil
}

// CreateMerchant registers a merchant keyed by name.
func (l *MemoryLedger) CreateMerchant(merchant domain.Merchant) error {
	if _, ok := l.merchants[merchant.Name]; ok {
		return ErrMerchantExists
	}
	m := merchant
	l.merchants[merchant.Name] = &m
	return nil
}

// FindMerchantByName looks a merchant up by name.
func (l *MemoryLedger) FindMerchantByName(name string) (*domain.Merchant, error) {
	m, ok := l.merchants[name]
	if !ok {
		return nil, ErrMerchantNotFound
	}
	return m, nil
}

// AppendTransaction appends a record to a user's transaction log.
func (l *MemoryLedger) AppendTransaction(email string, tx domain.Transaction) {
	l.logs[email] = append(l.logs[email], tx)
}

// TransactionsByEmail returns a user's transaction log in append order.
func (l *MemoryLedger) TransactionsByEmail(email string) []domain.Transaction {
	return l.logs[email]
}
