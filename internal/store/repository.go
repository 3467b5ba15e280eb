/**
 * @description
 * This file defines the `Ledger` interface, the contract for every account,
 * card, merchant and transaction-log access the engine needs. Keeping the
 * engine behind an interface decouples the business rules from the concrete
 * ledger implementation and keeps them testable in isolation.
 *
 * @dependencies
 * - internal/domain: For the service's domain models.
 */

package store

import "github.com/vaultbank/transaction-core/internal/domain"

// Ledger defines the account-ledger operations the engine depends on.
type Ledger interface {
	// Users
	CreateUser(user domain.User) error
	FindUserByEmail(email string) (*domain.User, error)

	// Accounts
	CreateAccount(account *domain.Account) error
	FindAccountByIBAN(iban string) (*domain.Account, error)
	// ResolveAccount accepts either an IBAN or a registered alias.
	ResolveAccount(identifier string) (*domain.Account, error)
	AccountsByOwner(email string) []*domain.Account
	SetAlias(alias, iban string) error
	Deposit(iban string, amount float64) error
	Spend(iban string, amount float64) error

	// Cards
	CreateCard(card *domain.Card) error
	FindCardByNumber(number string) (*domain.Card, error)
	DeleteCard(number string) error

	// Merchants
	CreateMerchant(merchant domain.Merchant) error
	FindMerchantByName(name string) (*domain.Merchant, error)

	// Transaction log, append-only per user.
	AppendTransaction(email string, tx domain.Transaction)
	TransactionsByEmail(email string) []domain.Transaction
}
