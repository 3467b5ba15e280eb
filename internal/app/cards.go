/**
 * @description
 * This file implements card lifecycle commands: creation of regular and
 * one-time cards, deletion, and the minimum-balance freeze check. One-time
 * cards are rotated by the payment flow in payments.go.
 */

package app

import (
	"context"

	"github.com/vaultbank/transaction-core/internal/domain"
)

// createCard attaches a new card to an account. Business associates may
// create cards on the business account; on personal accounts only the owner
// can. Unauthorized and unknown requesters are silently ignored.
func (s *Service) createCard(ctx context.Context, cmd domain.Command, oneTime bool) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	if !s.mayUseAccount(account, cmd.Email) {
		return nil
	}

	card := &domain.Card{
		Number:      s.seq.CardNumber(),
		AccountIBAN: account.IBAN,
		HolderEmail: cmd.Email,
		Status:      domain.CardActive,
		OneTime:     oneTime,
	}
	if err := s.ledger.CreateCard(card); err != nil {
		return nil
	}
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: "New card created",
		CardNumber:  card.Number,
		CardHolder:  cmd.Email,
		AccountIBAN: account.IBAN,
	})
	return nil
}

// deleteCard removes a card. Employees may only delete cards they created
// themselves; owners and managers may delete any card on the account.
func (s *Service) deleteCard(ctx context.Context, cmd domain.Command) *domain.Result {
	card, err := s.ledger.FindCardByNumber(cmd.CardNumber)
	if err != nil {
		return nil
	}
	account, err := s.ledger.FindAccountByIBAN(card.AccountIBAN)
	if err != nil {
		return nil
	}

	allowed := cmd.Email == account.OwnerEmail
	if !allowed && account.Kind == domain.AccountBusiness {
		role, ok := account.IsAssociate(cmd.Email)
		allowed = ok && (role == domain.RoleManager || card.HolderEmail == cmd.Email)
	}
	if !allowed {
		return nil
	}

	if err := s.ledger.DeleteCard(card.Number); err != nil {
		return nil
	}
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: "The card has been destroyed",
		CardNumber:  card.Number,
		CardHolder:  cmd.Email,
		AccountIBAN: account.IBAN,
	})
	return nil
}

// checkCardStatus freezes a card whose account has dropped to the minimum
// balance. An unknown card number surfaces an error record.
func (s *Service) checkCardStatus(ctx context.Context, cmd domain.Command) *domain.Result {
	card, err := s.ledger.FindCardByNumber(cmd.CardNumber)
	if err != nil {
		return errorResult(cmd, "Card not found")
	}
	account, err := s.ledger.FindAccountByIBAN(card.AccountIBAN)
	if err != nil {
		return nil
	}

	if account.Balance <= account.MinBalance && card.Status == domain.CardActive {
		card.Status = domain.CardFrozen
		s.record(ctx, account.OwnerEmail, domain.Transaction{
			Timestamp:   cmd.Timestamp,
			Description: "You have reached the minimum amount of funds, the card will be frozen",
		})
	}
	return nil
}

// mayUseAccount reports whether an email may operate the account: the owner
// always, business associates on business accounts.
func (s *Service) mayUseAccount(account *domain.Account, email string) bool {
	if email == account.OwnerEmail {
		return true
	}
	if account.Kind == domain.AccountBusiness {
		_, ok := account.IsAssociate(email)
		return ok
	}
	return false
}

// rotateOneTimeCard retires a used one-time card and issues a fresh number on
// the same account, logging both steps.
func (s *Service) rotateOneTimeCard(ctx context.Context, card *domain.Card, account *domain.Account, timestamp int64) {
	if err := s.ledger.DeleteCard(card.Number); err != nil {
		return
	}
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   timestamp,
		Description: "The card has been destroyed",
		CardNumber:  card.Number,
		CardHolder:  card.HolderEmail,
		AccountIBAN: account.IBAN,
	})

	fresh := &domain.Card{
		Number:      s.seq.CardNumber(),
		AccountIBAN: account.IBAN,
		HolderEmail: card.HolderEmail,
		Status:      domain.CardActive,
		OneTime:     true,
	}
	if err := s.ledger.CreateCard(fresh); err != nil {
		return
	}
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   timestamp,
		Description: "New card created",
		CardNumber:  fresh.Number,
		CardHolder:  fresh.HolderEmail,
		AccountIBAN: account.IBAN,
	})
}
