/**
 * @description
 * This file defines the transaction-log record model. Every state change the
 * engine produces is appended to the owning user's log as one of these
 * records; listing and report commands later consume the log in append order.
 *
 * @notes
 * - The log is append-only and per-user. Records have a common (id,
 *   description, timestamp) core plus optional fields depending on the
 *   producing command, mirrored by omitempty JSON tags.
 */

package domain

import "github.com/google/uuid"

// Transaction is one append-only log record on a user's transaction log.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	Timestamp   int64     `json:"timestamp"`
	Description string    `json:"description"`

	Amount       float64  `json:"amount,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	SenderIBAN   string   `json:"sender_iban,omitempty"`
	ReceiverIBAN string   `json:"receiver_iban,omitempty"`
	TransferType string   `json:"transfer_type,omitempty"` // sent, received
	CardNumber   string   `json:"card,omitempty"`
	CardHolder   string   `json:"card_holder,omitempty"`
	MerchantName string   `json:"commerciant,omitempty"`
	AccountIBAN  string   `json:"account,omitempty"`
	NewPlanType  string   `json:"new_plan_type,omitempty"`

	// Split-payment records.
	SplitType        string    `json:"split_payment_type,omitempty"`
	SplitCurrency    string    `json:"split_currency,omitempty"`
	SplitTotal       float64   `json:"split_total,omitempty"`
	InvolvedAccounts []string  `json:"involved_accounts,omitempty"`
	SplitAmounts     []float64 `json:"amounts,omitempty"`
	Error            string    `json:"error,omitempty"`
}
