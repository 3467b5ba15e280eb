/**
 * @description
 * This file implements business-account association commands: attaching
 * managers and employees, and changing the per-associate spending and deposit
 * limits. Association commands are silent on success; limit changes by
 * anyone but the owner surface explicit error records.
 */

package app

import "github.com/vaultbank/transaction-core/internal/domain"

// addBusinessAssociate attaches a user to a business account under a role.
// Already-associated emails and the owner are ignored.
func (s *Service) addBusinessAssociate(cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil || account.Kind != domain.AccountBusiness {
		return nil
	}
	if _, err := s.ledger.FindUserByEmail(cmd.Email); err != nil {
		return nil
	}
	if cmd.Email == account.OwnerEmail {
		return nil
	}
	if _, ok := account.IsAssociate(cmd.Email); ok {
		return nil
	}

	switch domain.BusinessRole(cmd.Role) {
	case domain.RoleManager:
		account.Managers = append(account.Managers, cmd.Email)
	case domain.RoleEmployee:
		account.Employees = append(account.Employees, cmd.Email)
	}
	return nil
}

// changeSpendingLimit sets the per-employee spending limit. Owner only.
func (s *Service) changeSpendingLimit(cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	if account.Kind != domain.AccountBusiness {
		return errorResult(cmd, "This is not a business account")
	}
	if cmd.Email != account.OwnerEmail {
		return errorResult(cmd, "You must be owner in order to change spending limit.")
	}
	account.SpendLimit = cmd.Amount
	return nil
}

// changeDepositLimit sets the per-employee deposit limit. Owner only.
func (s *Service) changeDepositLimit(cmd domain.Command) *domain.Result {
	account, err := s.ledger.FindAccountByIBAN(cmd.Account)
	if err != nil {
		return nil
	}
	if account.Kind != domain.AccountBusiness {
		return errorResult(cmd, "This is not a business account")
	}
	if cmd.Email != account.OwnerEmail {
		return errorResult(cmd, "You must be owner in order to change deposit limit.")
	}
	account.DepositLimit = cmd.Amount
	return nil
}
