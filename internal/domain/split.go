/**
 * @description
 * This file defines the split-payment model: one charge divided across several
 * accounts, settled only after every participant accepts. The coordinator in
 * internal/app owns the per-user FIFO pending queues; this file only carries
 * the negotiated state.
 */

package domain

import "github.com/google/uuid"

// SplitType selects how per-account shares are derived.
type SplitType string

const (
	SplitEqual  SplitType = "equal"
	SplitCustom SplitType = "custom"
)

// SplitStatus is the lifecycle state of a split payment.
type SplitStatus string

const (
	SplitPending   SplitStatus = "PENDING"
	SplitSettled   SplitStatus = "SETTLED"
	SplitCancelled SplitStatus = "CANCELLED"
)

// SplitPayment is one multi-party charge under negotiation. Accounts and
// Amounts are parallel slices in participant order; Accepted is keyed by IBAN
// and holds only accounts that have accepted so far.
type SplitPayment struct {
	ID        uuid.UUID       `json:"id"`
	Type      SplitType       `json:"split_payment_type"`
	Accounts  []string        `json:"accounts"`
	Amounts   []float64       `json:"amounts"`
	Currency  string          `json:"currency"`
	Total     float64         `json:"total"`
	Timestamp int64           `json:"timestamp"`
	Status    SplitStatus     `json:"status"`
	Accepted  map[string]bool `json:"-"`
}

// FullyAccepted reports whether every participating account has accepted.
func (sp *SplitPayment) FullyAccepted() bool {
	for _, iban := range sp.Accounts {
		if !sp.Accepted[iban] {
			return false
		}
	}
	return true
}

// Share returns the amount assigned to one participating IBAN, or false when
// the IBAN does not participate.
func (sp *SplitPayment) Share(iban string) (float64, bool) {
	for i, a := range sp.Accounts {
		if a == iban {
			return sp.Amounts[i], true
		}
	}
	return 0, false
}
