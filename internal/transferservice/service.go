// Package transferservice manages business logic layer of transfers.
//
// A transfer is a single forward pass of conditional operations against two
// account rows with no multi-row transaction: atomic conditional debit on the
// sender first, then unconditional credit on the recipient, then the
// transaction record. Concurrency safety comes entirely from the per-row
// conditional balance adjustment, not from locking.
package transferservice

import (
	"context"
	"errors"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// AccountService provides the account layer interface needed by the transfer engine.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountService interface {
	GetByOwner(ctx context.Context, ownerID int64) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	AddBalance(ctx context.Context, delta string, id int64) (domain.Account, error)
}

// Repo provides the transaction log interface needed by the transfer engine.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	ListForAccount(ctx context.Context, accountNumber string, limit int32) ([]domain.Transaction, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, as AccountService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

func validAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return d, domain.ErrInvalidAmount
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return d, domain.ErrInvalidAmount
	}

	return d, nil
}

// validRequest resolves both accounts and checks every business precondition
// in order. The balance check here is advisory only: it saves a wasted write
// when funds are clearly missing, but the authoritative check is the
// conditional debit itself.
func (s *Service) validRequest(ctx context.Context, fromUserID int64, amount decimal.Decimal, arg domain.TransferParams) (sender, recipient domain.Account, err error) {
	l := zerolog.Ctx(ctx)

	sender, err = s.accountService.GetByOwner(ctx, fromUserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return sender, recipient, domain.ErrSenderNotFound
		}

		l.Error().Err(err).Send()

		return sender, recipient, errorspkg.ErrInternal
	}

	recipient, err = s.accountService.GetByNumber(ctx, arg.ToAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return sender, recipient, domain.ErrRecipientNotFound
		}

		l.Error().Err(err).Send()

		return sender, recipient, errorspkg.ErrInternal
	}

	if recipient.Number == sender.Number {
		return sender, recipient, domain.ErrSelfTransfer
	}

	if !sender.IsActive || !recipient.IsActive {
		return sender, recipient, domain.ErrAccountInactive
	}

	senderBalance, err := decimal.NewFromString(sender.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return sender, recipient, errorspkg.ErrInternal
	}

	if senderBalance.LessThan(amount) {
		return sender, recipient, domain.ErrInsufficientBalance
	}

	return sender, recipient, nil
}

// Transfer moves the given amount from the caller's account to the account
// with the given number.
//
// The debit is an atomic conditional adjustment: if a concurrent transfer
// drained the balance after the advisory read, it fails with
// ErrInsufficientBalance and nothing has been mutated. Once the debit is
// confirmed the credit and the record are executed on a context detached from
// the caller's cancellation, because a debited-but-uncredited ledger is the
// one state that must never be reached silently. A credit failure after a
// confirmed debit is returned as ErrCreditFailedAfterDebit.
//
// Every rejected attempt except an invalid amount leaves a best-effort failed
// transaction record; its own failure is logged and never masks the original
// error.
func (s *Service) Transfer(ctx context.Context, fromUserID int64, arg domain.TransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	// An unparsable or non-positive amount cannot be stored in the log's
	// numeric column; it is the one rejection without a record. Normalizing
	// the string here also strips decoration like a leading plus sign, so
	// the negated debit delta below stays well formed.
	amount, err := validAmount(arg.Amount)
	if err != nil {
		l.Info().Str("amount", arg.Amount).Msg("invalid transfer amount")
		return result, err
	}

	arg.Amount = amount.String()

	sender, recipient, err := s.validRequest(ctx, fromUserID, amount, arg)
	if err != nil {
		s.recordFailed(ctx, sender.Number, arg, fromUserID)

		return result, err
	}

	debited, err := s.accountService.AddBalance(ctx, amount.Neg().String(), sender.ID)
	if err != nil {
		s.recordFailed(ctx, sender.Number, arg, fromUserID)

		if errors.Is(err, domain.ErrInsufficientBalance) {
			// Lost the race: balance changed between the advisory read
			// and the atomic debit. No compensation needed.
			return result, domain.ErrInsufficientBalance
		}

		l.Error().Err(err).Msg("transfer debit failed")

		return result, errorspkg.ErrInternal
	}

	// The caller may be gone; the transfer must still finish.
	dctx := context.WithoutCancel(ctx)

	credited, err := s.accountService.AddBalance(dctx, amount.String(), recipient.ID)
	if err != nil {
		l.Error().Err(err).
			Bool("unreconciled", true).
			Str("from_account", sender.Number).
			Str("to_account", recipient.Number).
			Str("amount", arg.Amount).
			Msg("credit failed after confirmed debit")

		return result, domain.ErrCreditFailedAfterDebit
	}

	transaction, err := s.repo.Create(dctx, domain.CreateTransactionParams{
		FromAccount: sender.Number,
		ToAccount:   recipient.Number,
		Amount:      arg.Amount,
		Description: arg.Description,
		Status:      domain.StatusSuccess,
		InitiatedBy: &fromUserID,
	})
	if err != nil {
		// Both balances are consistent; only the audit record is missing.
		l.Error().Err(err).
			Str("from_account", sender.Number).
			Str("to_account", recipient.Number).
			Str("amount", arg.Amount).
			Msg("transaction record failed after completed transfer")

		return result, errorspkg.ErrInternal
	}

	result.Transaction = transaction
	result.FromAccount = debited
	result.ToAccount = credited

	return result, nil
}

// recordFailed appends a failed transaction record with whatever is known
// about the attempt. Best effort: append errors are logged only.
func (s *Service) recordFailed(ctx context.Context, senderNumber string, arg domain.TransferParams, fromUserID int64) {
	l := zerolog.Ctx(ctx)

	dctx := context.WithoutCancel(ctx)

	_, err := s.repo.Create(dctx, domain.CreateTransactionParams{
		FromAccount: senderNumber,
		ToAccount:   arg.ToAccountNumber,
		Amount:      arg.Amount,
		Description: arg.Description,
		Status:      domain.StatusFailed,
		InitiatedBy: &fromUserID,
	})
	if err != nil {
		l.Error().Err(err).Msg("cannot record failed transfer attempt")
	}
}

// ListTransactions returns the caller's transactions as sender or recipient,
// newest first, bounded by limit (default 50, capped at 100).
func (s *Service) ListTransactions(ctx context.Context, fromUserID int64, limit int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if limit <= 0 {
		limit = defaultListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	account, err := s.accountService.GetByOwner(ctx, fromUserID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSenderNotFound
		}

		l.Error().Err(err).Send()

		return nil, errorspkg.ErrInternal
	}

	return s.repo.ListForAccount(ctx, account.Number, limit)
}
