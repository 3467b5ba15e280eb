/**
 * @description
 * This file implements the account lifecycle and account-scoped commands:
 * creation, funding, aliases, minimum balance, savings interest and plan
 * upgrades. Handlers follow the shared error policy: unknown entities drop
 * the command silently, business-rule failures land on the transaction log,
 * and only savings-specific misuse surfaces an explicit error record.
 */

package app

import (
	"context"
	"fmt"
	"log"

	"github.com/vaultbank/transaction-core/internal/domain"
)

// addAccount creates a classic, savings or business account for a user. New
// accounts start on the owner's default plan. Silent on success; the creation
// lands on the owner's transaction log.
func (s *Service) addAccount(ctx context.Context, cmd domain.Command) *domain.Result {
	user, err := s.ledger.FindUserByEmail(cmd.Email)
	if err != nil {
		return nil
	}

	account := &domain.Account{
		IBAN:       s.seq.IBAN(),
		Currency:   cmd.Currency,
		Kind:       domain.AccountKind(cmd.AccountType),
		Plan:       user.DefaultPlan(),
		OwnerEmail: user.Email,
	}
	switch account.Kind {
	case domain.AccountSavings:
		account.InterestRate = cmd.InterestRate
	case domain.AccountBusiness:
		limit := s.graph.Convert(AssociateDefaultLimitRON, BaseCurrency, account.Currency)
		account.SpendLimit = limit
		account.DepositLimit = limit
	case domain.AccountClassic:
		// nothing extra
	default:
		log.Printf("level=warn component=engine msg=\"unknown account type\" type=%q", cmd.AccountType)
		return nil
	}

	if err := s.ledger.CreateAccount(account); err != nil {
		return nil
	}
	s.record(ctx, user.Email, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: "New account created",
		AccountIBAN: account.IBAN,
	})
	return nil
}

// addFunds deposits into an account. On business accounts, employees may not
// exceed the per-associate deposit limit and strangers may not deposit at
// all. Produces no output and no log record.
func (s *Service) addFunds(ctx context.Context, cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}

	if account.Kind == domain.AccountBusiness && cmd.Email != account.OwnerEmail {
		role, ok := account.IsAssociate(cmd.Email)
		if !ok {
			return nil
		}
		if role == domain.RoleEmployee && cmd.Amount > account.DepositLimit {
			return nil
		}
	}

	if err := s.ledger.Deposit(account.IBAN, cmd.Amount); err != nil {
		log.Printf("level=warn component=engine msg=\"deposit failed\" iban=%s err=%v", account.IBAN, err)
	}
	return nil
}

// setAlias registers an alias for an account. Silent in every outcome.
func (s *Service) setAlias(cmd domain.Command) *domain.Result {
	if _, err := s.ledger.FindUserByEmail(cmd.Email); err != nil {
		return nil
	}
	if err := s.ledger.SetAlias(cmd.Alias, cmd.Account); err != nil {
		log.Printf("level=warn component=engine msg=\"alias not set\" alias=%q err=%v", cmd.Alias, err)
	}
	return nil
}

// setMinimumBalance sets the account's minimum balance. Only the owner may;
// anyone else is silently ignored.
func (s *Service) setMinimumBalance(cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	if cmd.Email != "" && cmd.Email != account.OwnerEmail {
		return nil
	}
	account.MinBalance = cmd.Amount
	return nil
}

// addInterest credits a savings account with its accrued interest. On any
// other account kind it surfaces an explicit error record and changes
// nothing.
func (s *Service) addInterest(ctx context.Context, cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	if account.Kind != domain.AccountSavings {
		return errorResult(cmd, "This is not a savings account")
	}

	interest := account.Balance * account.InterestRate
	if err := s.ledger.Deposit(account.IBAN, interest); err != nil {
		return nil
	}
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: "Interest rate income",
		Amount:      interest,
		Currency:    account.Currency,
		AccountIBAN: account.IBAN,
	})
	return nil
}

// changeInterestRate updates a savings account's interest rate, with the same
// savings-only gate as addInterest.
func (s *Service) changeInterestRate(ctx context.Context, cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	if account.Kind != domain.AccountSavings {
		return errorResult(cmd, "This is not a savings account")
	}

	account.InterestRate = cmd.InterestRate
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: fmt.Sprintf("Interest rate of the account changed to %v", cmd.InterestRate),
		AccountIBAN: account.IBAN,
	})
	return nil
}

// upgradePlan moves an account to a higher plan tier for a RON-denominated
// fee converted into the account currency. Downgrades and same-plan requests
// land on the log as errors; an unknown account surfaces an error record.
func (s *Service) upgradePlan(ctx context.Context, cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return errorResult(cmd, "Account not found")
	}
	requested := domain.Plan(cmd.PlanType)

	if requested == account.Plan {
		s.record(ctx, account.OwnerEmail, domain.Transaction{
			Timestamp:   cmd.Timestamp,
			Description: fmt.Sprintf("The user already has the %s plan.", requested),
			AccountIBAN: account.IBAN,
		})
		return nil
	}
	feeRON, ok := upgradeFeeRON(account.Plan, requested)
	if !ok {
		s.record(ctx, account.OwnerEmail, domain.Transaction{
			Timestamp:   cmd.Timestamp,
			Description: "You cannot downgrade your plan.",
			AccountIBAN: account.IBAN,
		})
		return nil
	}

	fee := s.graph.Convert(feeRON, BaseCurrency, account.Currency)
	if account.Balance < fee {
		s.record(ctx, account.OwnerEmail, domain.Transaction{
			Timestamp:   cmd.Timestamp,
			Description: "Insufficient funds",
			AccountIBAN: account.IBAN,
		})
		return nil
	}

	if err := s.ledger.Spend(account.IBAN, fee); err != nil {
		return nil
	}
	account.Plan = requested
	s.record(ctx, account.OwnerEmail, domain.Transaction{
		Timestamp:   cmd.Timestamp,
		Description: "Upgrade plan",
		AccountIBAN: account.IBAN,
		NewPlanType: string(requested),
	})
	return nil
}
