/**
 * @description
 * This file contains the core command engine for the transaction-core service.
 * The `Service` struct owns all banking state collaborators — the account
 * ledger, the exchange-rate graph, the cashback ledger and the split-payment
 * coordinator — and dispatches every inbound command to one handler.
 *
 * Key features:
 * - Strictly serial command processing: one mutex guards every command from
 *   dispatch to completion, preserving submission-order semantics.
 * - Validation failures (unknown user/account/card/merchant) drop the command
 *   silently; business-rule failures are recovered locally and recorded on the
 *   transaction log, never propagated as errors.
 * - Every appended log record is also published to the message broker when a
 *   producer is configured.
 *
 * @dependencies
 * - context, log, sync: Standard Go libraries.
 * - github.com/google/uuid: For record identifiers.
 * - internal/currency, internal/domain, internal/store: Core collaborators.
 * - pkg/rabbitmq: Event producer for transaction records.
 */

package app

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/vaultbank/transaction-core/internal/currency"
	"github.com/vaultbank/transaction-core/internal/domain"
	"github.com/vaultbank/transaction-core/internal/store"
	"github.com/vaultbank/transaction-core/pkg/rabbitmq"
)

// BaseCurrency normalizes fee and cashback thresholds. The tier tables are
// defined in RON, so the reference currency is fixed rather than configured.
const BaseCurrency = "RON"

const (
	// A silver plan pays the reduced 0.1% fee once the payment's RON
	// equivalent reaches this threshold.
	SilverFeeThresholdRON = 500.0

	// Default per-employee spending and deposit limit on new business
	// accounts, in RON, converted to the account currency at creation.
	AssociateDefaultLimitRON = 500.0

	// A silver account is upgraded to gold free of charge after this many
	// payments of at least AutoUpgradePaymentMinRON each.
	AutoUpgradePaymentCount  = 5
	AutoUpgradePaymentMinRON = 300.0
)

// Service is the command engine. All banking state is reached through it and
// mutated only while its lock is held.
type Service struct {
	mu sync.Mutex

	ledger   store.Ledger
	graph    *currency.Graph
	producer rabbitmq.Publisher
	cashback *CashbackLedger
	splits   *SplitCoordinator
	seq      *Sequence
}

// NewService creates a new engine instance. The producer may be nil, in which
// case record events are not published.
func NewService(ledger store.Ledger, graph *currency.Graph, producer rabbitmq.Publisher, seed int64) *Service {
	return &Service{
		ledger:   ledger,
		graph:    graph,
		producer: producer,
		cashback: NewCashbackLedger(graph),
		splits:   NewSplitCoordinator(ledger, graph),
		seq:      NewSequence(seed),
	}
}

// Reset discards cashback state, pending split payments and the identifier
// sequence, keeping the ledger and rate graph. Callers use it between replay
// batches instead of process-wide shared state.
func (s *Service) Reset(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashback = NewCashbackLedger(s.graph)
	s.splits = NewSplitCoordinator(s.ledger, s.graph)
	s.seq = NewSequence(seed)
}

// Process dispatches one command to its handler and returns the result
// record, or nil for silent commands. Unrecognized command names are skipped.
func (s *Service) Process(ctx context.Context, cmd domain.Command) *domain.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Name {
	case "addAccount":
		return s.addAccount(ctx, cmd)
	case "addFunds":
		return s.addFunds(ctx, cmd)
	case "createCard":
		return s.createCard(ctx, cmd, false)
	case "createOneTimeCard":
		return s.createCard(ctx, cmd, true)
	case "deleteCard":
		return s.deleteCard(ctx, cmd)
	case "setAlias":
		return s.setAlias(cmd)
	case "setMinimumBalance":
		return s.setMinimumBalance(cmd)
	case "checkCardStatus":
		return s.checkCardStatus(ctx, cmd)
	case "payOnline":
		return s.payOnline(ctx, cmd)
	case "sendMoney":
		return s.sendMoney(ctx, cmd)
	case "cashWithdrawal":
		return s.cashWithdrawal(ctx, cmd)
	case "splitPayment":
		return s.createSplitPayment(ctx, cmd)
	case "acceptSplitPayment":
		return s.acceptSplitPayment(ctx, cmd)
	case "rejectSplitPayment":
		return s.rejectSplitPayment(ctx, cmd)
	case "addInterest":
		return s.addInterest(ctx, cmd)
	case "changeInterestRate":
		return s.changeInterestRate(ctx, cmd)
	case "upgradePlan":
		return s.upgradePlan(ctx, cmd)
	case "addNewBusinessAssociate":
		return s.addBusinessAssociate(cmd)
	case "changeSpendingLimit":
		return s.changeSpendingLimit(cmd)
	case "changeDepositLimit":
		return s.changeDepositLimit(cmd)
	case "printTransactions":
		return s.printTransactions(cmd)
	default:
		log.Printf("level=warn component=engine msg=\"unrecognized command skipped\" command=%q timestamp=%d", cmd.Name, cmd.Timestamp)
		return nil
	}
}

// SeedUser registers a user ahead of command processing.
func (s *Service) SeedUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CreateUser(user)
}

// SeedMerchant registers a merchant ahead of command processing.
func (s *Service) SeedMerchant(merchant domain.Merchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CreateMerchant(merchant)
}

// SeedRate registers an exchange rate ahead of command processing.
func (s *Service) SeedRate(from, to string, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.AddRate(from, to, rate)
}

// AccountsForUser returns a user's accounts in creation order.
func (s *Service) AccountsForUser(email string) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ledger.FindUserByEmail(email); err != nil {
		return nil, err
	}
	return s.ledger.AccountsByOwner(email), nil
}

// record appends a transaction record to a user's log and publishes it to the
// broker when a producer is configured. The record ID is assigned here.
func (s *Service) record(ctx context.Context, email string, tx domain.Transaction) {
	tx.ID = uuid.New()
	s.ledger.AppendTransaction(email, tx)

	if s.producer == nil {
		return
	}
	event := rabbitmq.TransactionRecordEvent{
		RecordID:    tx.ID,
		UserEmail:   email,
		Description: tx.Description,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Timestamp:   tx.Timestamp,
	}
	if err := s.producer.PublishTransactionRecordEvent(ctx, event); err != nil {
		log.Printf("level=warn component=engine msg=\"record event publish failed\" user=%s err=%v", email, err)
	}
}

// errorResult builds the {description, timestamp} error payload for commands
// that surface explicit error records.
func errorResult(cmd domain.Command, description string) *domain.Result {
	return &domain.Result{
		Command:   cmd.Name,
		Timestamp: cmd.Timestamp,
		Output: domain.ErrorOutput{
			Description: description,
			Timestamp:   cmd.Timestamp,
		},
	}
}

// printTransactions returns a user's transaction log in append order. Unknown
// users are dropped silently.
func (s *Service) printTransactions(cmd domain.Command) *domain.Result {
	if _, err := s.ledger.FindUserByEmail(cmd.Email); err != nil {
		return nil
	}
	return &domain.Result{
		Command:   cmd.Name,
		Timestamp: cmd.Timestamp,
		Output:    s.ledger.TransactionsByEmail(cmd.Email),
	}
}
