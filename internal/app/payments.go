/**
 * @description
 * This file implements the money-moving commands: online card payments to
 * merchants, account-to-account transfers and RON-denominated cash
 * withdrawals. These flows compose the rate graph, the fee engine and the
 * cashback ledger: the payment is converted into the paying account's
 * currency, the plan fee is added, and any cashback is deposited back
 * immediately after the debit within the same command.
 */

package app

import (
	"context"
	"fmt"

	"github.com/vaultbank/transaction-core/internal/domain"
	"github.com/vaultbank/transaction-core/internal/store"
)

// payOnline processes a card payment at a merchant. Unknown cards surface an
// error record; an unknown merchant drops the command silently. A frozen card
// and insufficient funds both land on the log without debiting.
func (s *Service) payOnline(ctx context.Context, cmd domain.Command) *domain.Result {
	card, err := s.ledger.FindCardByNumber(cmd.CardNumber)
	if err != nil {
		return errorResult(cmd, "Card not found")
	}
	account, err := s.ledger.FindAccountByIBAN(card.AccountIBAN)
	if err != nil {
		return nil
	}
	if !s.mayUseAccount(account, cmd.Email) {
		return errorResult(cmd, "Card not found")
	}
	merchant, err := s.ledger.FindMerchantByName(cmd.Merchant)
	if err != nil {
		return nil
	}
	if cmd.Amount == 0 {
		return nil
	}

	if card.Status == domain.CardFrozen {
		s.record(ctx, account.OwnerEmail, domain.Transaction{
			Timestamp:   cmd.Timestamp,
			Description: "The card is frozen",
		})
		return nil
	}

	converted := s.graph.Convert(cmd.Amount, cmd.Currency, account.Currency)

	// Employees on business accounts are bound by the per-associate spending
	// limit; exceeding it drops the payment silently.
	if account.Kind == domain.AccountBusiness && cmd.Email != account.OwnerEmail {
		if role, ok := account.IsAssociate(cmd.Email); ok && role == domain.RoleEmployee && converted > account.SpendLimit {
			return nil
		}
	}

	fee := ComputeFee(account.Plan, converted, account.Currency, s.graph)
	if err := s.ledger.Spend(account.IBAN, converted+fee); err != nil {
		if err == store.ErrInsufficientFunds {
			s.record(ctx, account.OwnerEmail, domain.Transaction{
				Timestamp:   cmd.Timestamp,
				Description: "Insufficient funds",
			})
		}
		return nil
	}

	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:    cmd.Timestamp,
		Description:  "Card payment",
		Amount:       converted,
		Currency:     account.Currency,
		MerchantName: merchant.Name,
		AccountIBAN:  account.IBAN,
	})

	// Settle the merchant side when its account is registered in the ledger.
	if merchant.AccountIBAN != "" {
		if merchantAccount, err := s.ledger.FindAccountByIBAN(merchant.AccountIBAN); err == nil {
			s.ledger.Deposit(merchantAccount.IBAN, s.graph.Convert(converted, account.Currency, merchantAccount.Currency))
		}
	}

	if cashback := s.cashback.Apply(account, merchant, converted); cashback > 0 {
		s.ledger.Deposit(account.IBAN, cashback)
	}

	s.trackLargePayment(ctx, account, converted, cmd.Timestamp)

	if card.OneTime {
		s.rotateOneTimeCard(ctx, card, account, cmd.Timestamp)
	}
	return nil
}

// sendMoney transfers between two accounts. The sender is addressed by IBAN,
// the receiver by IBAN or alias. The sender pays the plan fee on top of the
// amount; the receiver is credited with the converted amount. Unknown parties
// drop the command silently.
func (s *Service) sendMoney(ctx context.Context, cmd domain.Command) *domain.Result {
	sender, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	receiver, err := s.ledger.ResolveAccount(cmd.Receiver)
	if err != nil {
		return nil
	}

	fee := ComputeFee(sender.Plan, cmd.Amount, sender.Currency, s.graph)
	if err := s.ledger.Spend(sender.IBAN, cmd.Amount+fee); err != nil {
		if err == store.ErrInsufficientFunds {
			s.record(ctx, sender.OwnerEmail, domain.Transaction{
				Timestamp:   cmd.Timestamp,
				Description: "Insufficient funds",
			})
		}
		return nil
	}

	received := s.graph.Convert(cmd.Amount, sender.Currency, receiver.Currency)
	s.ledger.Deposit(receiver.IBAN, received)

	s.record(ctx, sender.OwnerEmail, domain.Transaction{
		Timestamp:    cmd.Timestamp,
		Description:  cmd.Description,
		Amount:       cmd.Amount,
		Currency:     sender.Currency,
		SenderIBAN:   sender.IBAN,
		ReceiverIBAN: receiver.IBAN,
		TransferType: "sent",
	})
	s.record(ctx, receiver.OwnerEmail, domain.Transaction{
		Timestamp:    cmd.Timestamp,
		Description:  cmd.Description,
		Amount:       received,
		Currency:     receiver.Currency,
		SenderIBAN:   sender.IBAN,
		ReceiverIBAN: receiver.IBAN,
		TransferType: "received",
	})

	s.trackLargePayment(ctx, sender, cmd.Amount, cmd.Timestamp)
	return nil
}

// cashWithdrawal debits a RON-denominated ATM withdrawal through a card. The
// plan fee applies on the converted amount.
func (s *Service) cashWithdrawal(ctx context.Context, cmd domain.Command) *domain.Result {
	card, err := s.ledger.FindCardByNumber(cmd.CardNumber)
	if err != nil {
		return errorResult(cmd, "Card not found")
	}
	account, err := s.ledger.FindAccountByIBAN(card.AccountIBAN)
	if err != nil {
		return nil
	}
	if !s.mayUseAccount(account, cmd.Email) {
		return errorResult(cmd, "Card not found")
	}

	if card.Status == domain.CardFrozen {
		s.record(ctx, account.OwnerEmail, domain.Transaction{
			Timestamp:   cmd.Timestamp,
			Description: "The card is frozen",
		})
		return nil
	}

	converted := s.graph.Convert(cmd.Amount, BaseCurrency, account.Currency)
	fee := ComputeFee(account.Plan, converted, account.Currency, s.graph)
	if err := s.ledger.Spend(account.IBAN, converted+fee); err != nil {
		if err == store.ErrInsufficientFunds {
			s.record(ctx, account.OwnerEmail, domain.Transaction{
				Timestamp:   cmd.Timestamp,
				Description: "Insufficient funds",
			})
		}
		return nil
	}

	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: fmt.Sprintf("Cash withdrawal of %v", cmd.Amount),
		Amount:      cmd.Amount,
		AccountIBAN: account.IBAN,
	})
	return nil
}

// trackLargePayment counts payments of at least 300 RON equivalent on silver
// accounts; the fifth one upgrades the account to gold free of charge.
func (s *Service) trackLargePayment(ctx context.Context, account *domain.Account, amount float64, timestamp int64) {
	if account.Plan != domain.PlanSilver {
		return
	}
	if s.graph.Convert(amount, account.Currency, BaseCurrency) < AutoUpgradePaymentMinRON {
		return
	}
	account.LargePaymentCount++
	if account.LargePaymentCount < AutoUpgradePaymentCount {
		return
	}
	account.Plan = domain.PlanGold
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   timestamp,
		Description: "Upgrade plan",
		AccountIBAN: account.IBAN,
		NewPlanType: string(domain.PlanGold),
	})
}
