/**
 * @description
 * This file defines the command and result DTOs processed by the engine. A
 * command is one record of the ordered input sequence, discriminated by its
 * name; unused fields stay zero-valued. Results carry either a success payload
 * or an error payload shaped as {description|error, timestamp}. Many mutating
 * commands intentionally produce no result record on success.
 */

package domain

// Command is one inbound instruction. The engine dispatches on Name and reads
// only the fields that command defines.
type Command struct {
	Name      string `json:"command"`
	Timestamp int64  `json:"timestamp"`

	Account     string  `json:"account,omitempty"`
	Email       string  `json:"email,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Description string  `json:"description,omitempty"`
	CardNumber  string  `json:"card_number,omitempty"`
	Merchant    string  `json:"merchant,omitempty"`
	Receiver    string  `json:"receiver,omitempty"` // IBAN or alias
	Alias       string  `json:"alias,omitempty"`

	AccountType  string  `json:"account_type,omitempty"` // classic, savings, business
	InterestRate float64 `json:"interest_rate,omitempty"`
	MinBalance   float64 `json:"min_balance,omitempty"`
	PlanType     string  `json:"plan_type,omitempty"`
	Role         string  `json:"role,omitempty"` // manager, employee

	SplitType        string    `json:"split_payment_type,omitempty"` // equal, custom
	Accounts         []string  `json:"accounts,omitempty"`
	AmountPerAccount []float64 `json:"amounts_for_users,omitempty"`
}

// Result is one outbound record. A nil Result means the command was silent.
type Result struct {
	Command   string      `json:"command"`
	Timestamp int64       `json:"timestamp"`
	Output    interface{} `json:"output"`
}

// ErrorOutput is the error payload shape shared by every command that surfaces
// an explicit error record.
type ErrorOutput struct {
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
}
