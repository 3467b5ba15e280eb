/**
 * @description
 * This file defines the core domain models for the transaction-core service:
 * users, accounts, cards, merchants and service plans. These structs are the
 * entities the command engine, the account ledger and the API layer share.
 *
 * @notes
 * - Monetary amounts are float64 rounded half-up to 2 decimals at every
 *   conversion step. The rounding points are part of the business rules, so
 *   the usual minor-unit int64 representation does not apply here.
 * - Accounts come in three kinds (classic, savings, business) with explicit
 *   capability checks at the call site instead of polymorphic dispatch.
 */

package domain

// Plan identifies a service plan tier. The plan drives transaction fees and
// spending-threshold cashback rates.
type Plan string

const (
	PlanStandard Plan = "standard"
	PlanStudent  Plan = "student"
	PlanSilver   Plan = "silver"
	PlanGold     Plan = "gold"
)

// AccountKind tags the account variant.
type AccountKind string

const (
	AccountClassic  AccountKind = "classic"
	AccountSavings  AccountKind = "savings"
	AccountBusiness AccountKind = "business"
)

// BusinessRole is the association role an email holds on a business account.
type BusinessRole string

const (
	RoleManager  BusinessRole = "manager"
	RoleEmployee BusinessRole = "employee"
)

// User owns accounts and receives the transaction log entries the engine
// produces.
type User struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Occupation string `json:"occupation,omitempty"` // "student" selects the student plan
}

// DefaultPlan derives the plan a user's new accounts start on.
func (u *User) DefaultPlan() Plan {
	if u.Occupation == "student" {
		return PlanStudent
	}
	return PlanStandard
}

// Account is a user's wallet in a single currency. Business accounts
// additionally carry associate email sets and per-associate limits; those
// fields stay zero-valued for the other kinds.
type Account struct {
	IBAN         string      `json:"iban"`
	Currency     string      `json:"currency"`
	Balance      float64     `json:"balance"`
	Kind         AccountKind `json:"type"`
	Plan         Plan        `json:"plan"`
	OwnerEmail   string      `json:"-"`
	MinBalance   float64     `json:"min_balance"`
	InterestRate float64     `json:"interest_rate,omitempty"` // savings only

	// Running RON-normalized spend total feeding the spending-threshold
	// cashback strategy, and the uncapped count of payouts it produced.
	ThresholdSpendRON     float64 `json:"-"`
	ThresholdPayoutsCount int     `json:"-"`

	// Count of >=300 RON payments by a silver account, driving the automatic
	// upgrade to gold on the fifth.
	LargePaymentCount int `json:"-"`

	// Business accounts only. Associate slices keep insertion order for
	// deterministic reporting.
	Managers     []string `json:"-"`
	Employees    []string `json:"-"`
	SpendLimit   float64  `json:"-"` // per employee, account currency
	DepositLimit float64  `json:"-"` // per employee, account currency
}

// IsAssociate reports whether the email is attached to a business account and
// with which role. The owner is not an associate.
func (a *Account) IsAssociate(email string) (BusinessRole, bool) {
	for _, m := range a.Managers {
		if m == email {
			return RoleManager, true
		}
	}
	for _, e := range a.Employees {
		if e == email {
			return RoleEmployee, true
		}
	}
	return "", false
}

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardActive CardStatus = "active"
	CardFrozen CardStatus = "frozen"
)

// Card is a payment instrument attached to one account. One-time cards are
// rotated (old number retired, fresh number issued) after each successful
// payment.
type Card struct {
	Number      string     `json:"card_number"`
	AccountIBAN string     `json:"-"`
	HolderEmail string     `json:"-"` // who created the card
	Status      CardStatus `json:"status"`
	OneTime     bool       `json:"one_time"`
}

// CashbackStrategy tags how a merchant rewards payments.
type CashbackStrategy string

const (
	CashbackNone         CashbackStrategy = "none"
	CashbackTransactions CashbackStrategy = "nrOfTransactions"
	CashbackSpending     CashbackStrategy = "spendingThreshold"
)

// Merchant is a payment destination. Immutable after creation.
type Merchant struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"` // Food, Clothes, Tech or other
	Strategy    CashbackStrategy `json:"cashback_strategy"`
	AccountIBAN string           `json:"account_iban"` // settlement account
}
