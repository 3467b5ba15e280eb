/**
 * @description
 * This file wires the split-payment commands into the coordinator: creation,
 * acceptance with all-or-nothing settlement on unanimity, and rejection. Each
 * terminal outcome emits one record to every participating account's owner.
 */

package app

import (
	"context"
	"fmt"

	"github.com/vaultbank/transaction-core/internal/domain"
)

// createSplitPayment validates the participants and registers the pending
// payment on every owner's FIFO queue. Silent: records are only emitted when
// the negotiation terminates.
func (s *Service) createSplitPayment(ctx context.Context, cmd domain.Command) *domain.Result {
	if len(cmd.Accounts) == 0 {
		return nil
	}
	for _, iban := range cmd.Accounts {
		if _, err := s.ledger.FindAccountByIBAN(iban); err != nil {
			return nil
		}
	}
	splitType := domain.SplitType(cmd.SplitType)
	if splitType != domain.SplitEqual && splitType != domain.SplitCustom {
		return nil
	}
	if splitType == domain.SplitCustom && len(cmd.AmountPerAccount) != len(cmd.Accounts) {
		return nil
	}

	s.splits.Create(splitType, cmd.Accounts, cmd.Amount, cmd.AmountPerAccount, cmd.Currency, cmd.Timestamp)
	return nil
}

// acceptSplitPayment flags the user's oldest pending payment accepted and
// settles it once every participant has accepted. Settlement failure leaves
// every balance untouched and names the first short IBAN in the failure
// records.
func (s *Service) acceptSplitPayment(ctx context.Context, cmd domain.Command) *domain.Result {
	if _, err := s.ledger.FindUserByEmail(cmd.Email); err != nil {
		return nil
	}
	sp := s.splits.Accept(cmd.Email)
	if sp == nil {
		return nil
	}
	if !sp.FullyAccepted() {
		return nil
	}

	owners := s.splits.ParticipantOwners(sp)
	shortIBAN, settled := s.splits.Settle(sp)
	if settled {
		s.broadcastSplitRecord(ctx, sp, owners, cmd.Timestamp, "")
	} else {
		s.broadcastSplitRecord(ctx, sp, owners, cmd.Timestamp,
			fmt.Sprintf("Account %s has insufficient funds for a split payment.", shortIBAN))
	}
	return nil
}

// rejectSplitPayment cancels the user's oldest pending payment outright and
// notifies every participant.
func (s *Service) rejectSplitPayment(ctx context.Context, cmd domain.Command) *domain.Result {
	if _, err := s.ledger.FindUserByEmail(cmd.Email); err != nil {
		return nil
	}
	sp := s.splits.OldestPending(cmd.Email)
	if sp == nil {
		return nil
	}

	owners := s.splits.ParticipantOwners(sp)
	s.splits.Cancel(sp)
	s.broadcastSplitRecord(ctx, sp, owners, cmd.Timestamp, "One user rejected the payment.")
	return nil
}

// broadcastSplitRecord appends the terminal split record to every
// participant's log, with the shared description and the optional error.
func (s *Service) broadcastSplitRecord(ctx context.Context, sp *domain.SplitPayment, owners []string, timestamp int64, errText string) {
	for _, email := range owners {
		s.record(ctx, email, domain.Transaction{
			Timestamp:        timestamp,
			Description:      fmt.Sprintf("Split payment of %.2f %s", sp.Total, sp.Currency),
			SplitType:        string(sp.Type),
			SplitCurrency:    sp.Currency,
			SplitTotal:       sp.Total,
			InvolvedAccounts: sp.Accounts,
			SplitAmounts:     sp.Amounts,
			Error:            errText,
		})
	}
}
