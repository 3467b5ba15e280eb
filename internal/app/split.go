/**
 * @description
 * This file implements the split-payment coordinator: creation of multi-party
 * charges, per-user FIFO pending queues, unanimous-acceptance tracking and
 * all-or-nothing settlement against the account ledger.
 *
 * @notes
 * - A user's accept or reject always targets their oldest pending payment;
 *   multiple pending payments for the same user are otherwise independent.
 * - Settlement verifies every participant's balance before debiting anyone,
 *   in participant order. Command processing is strictly serial, so nothing
 *   can interleave between the checks and the debits.
 *
 * @dependencies
 * - github.com/google/uuid: Payment identifiers.
 * - internal/currency, internal/domain, internal/store: Core collaborators.
 */

package app

import (
	"github.com/google/uuid"
	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
	"github.com/vaultbank/transaction-core/internal/store"
)

// SplitCoordinator owns every pending split payment and the per-user FIFO
// queues pointing at them.
type SplitCoordinator struct {
	ledger store.Ledger
	graph  *currency.Graph
	queues map[string][]*domain.SplitPayment // owner email -> pending, oldest first
}

// NewSplitCoordinator creates an empty coordinator.
func NewSplitCoordinator(ledger store.Ledger, graph *currency.Graph) *SplitCoordinator {
	return &SplitCoordinator{
		ledger: ledger,
		graph:  graph,
		queues: make(map[string][]*domain.SplitPayment),
	}
}

// Create registers a new pending split payment and enqueues it for every
// participating account's owner. Equal splits divide the total by the account
// count with plain floating-point division; custom splits take the caller's
// amounts verbatim and never validate their sum.
func (c *SplitCoordinator) Create(splitType domain.SplitType, accounts []string, total float64, customAmounts []float64, cur string, timestamp int64) *domain.SplitPayment {
	amounts := customAmounts
	if splitType == domain.SplitEqual {
		share := total / float64(len(accounts))
		amounts = make([]float64, len(accounts))
		for i := range amounts {
			amounts[i] = share
		}
	}

	sp := &domain.SplitPayment{
		ID:        uuid.New(),
		Type:      splitType,
		Accounts:  append([]string(nil), accounts...),
		Amounts:   amounts,
		Currency:  cur,
		Total:     total,
		Timestamp: timestamp,
		Status:    domain.SplitPending,
		Accepted:  make(map[string]bool),
	}

	for _, email := range c.participantOwners(sp) {
		c.queues[email] = append(c.queues[email], sp)
	}
	return sp
}

// OldestPending returns the user's oldest outstanding split payment, or nil.
func (c *SplitCoordinator) OldestPending(email string) *domain.SplitPayment {
	queue := c.queues[email]
	if len(queue) == 0 {
		return nil
	}
	return queue[0]
}

// Accept flags every participating account owned by the user as accepted on
// their oldest pending payment and returns it. Returns nil when the user has
// nothing pending.
func (c *SplitCoordinator) Accept(email string) *domain.SplitPayment {
	sp := c.OldestPending(email)
	if sp == nil {
		return nil
	}
	for _, iban := range sp.Accounts {
		if account, err := c.ledger.FindAccountByIBAN(iban); err == nil && account.OwnerEmail == email {
			sp.Accepted[iban] = true
		}
	}
	return sp
}

// Settle verifies every participant's balance against its converted share and
// then debits all of them. If any account is short, nothing is debited and
// the first insufficient IBAN in participant order is returned. Either
// outcome is terminal: the payment leaves every pending queue.
func (c *SplitCoordinator) Settle(sp *domain.SplitPayment) (shortIBAN string, settled bool) {
	needed := make([]float64, len(sp.Accounts))
	for i, iban := range sp.Accounts {
		account, err := c.ledger.FindAccountByIBAN(iban)
		if err != nil {
			c.finish(sp, domain.SplitCancelled)
			return iban, false
		}
		needed[i] = c.graph.Convert(sp.Amounts[i], sp.Currency, account.Currency)
		if account.Balance < needed[i] {
			c.finish(sp, domain.SplitCancelled)
			return iban, false
		}
	}

	for i, iban := range sp.Accounts {
		if err := c.ledger.Spend(iban, needed[i]); err != nil {
			// Balances were verified above and processing is serial; a debit
			// cannot fail here.
			panic(err)
		}
	}
	c.finish(sp, domain.SplitSettled)
	return "", true
}

// Cancel rejects the payment outright and removes it from every queue.
func (c *SplitCoordinator) Cancel(sp *domain.SplitPayment) {
	c.finish(sp, domain.SplitCancelled)
}

// ParticipantOwners returns the distinct owner emails of the participating
// accounts, in participant order.
func (c *SplitCoordinator) ParticipantOwners(sp *domain.SplitPayment) []string {
	return c.participantOwners(sp)
}

func (c *SplitCoordinator) participantOwners(sp *domain.SplitPayment) []string {
	seen := make(map[string]bool)
	owners := make([]string, 0, len(sp.Accounts))
	for _, iban := range sp.Accounts {
		account, err := c.ledger.FindAccountByIBAN(iban)
		if err != nil {
			continue
		}
		if !seen[account.OwnerEmail] {
			seen[account.OwnerEmail] = true
			owners = append(owners, account.OwnerEmail)
		}
	}
	return owners
}

// finish marks the payment terminal and removes it from every owner's queue.
func (c *SplitCoordinator) finish(sp *domain.SplitPayment, status domain.SplitStatus) {
	sp.Status = status
	for _, email := range c.participantOwners(sp) {
		queue := c.queues[email]
		for i, pending := range queue {
			if pending == sp {
				c.queues[email] = append(queue[:i], queue[i+1:]...)
				break
			}
		}
	}
}
