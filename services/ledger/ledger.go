// Package ledger is the single write path for user balances. Every credit
// and debit in the system goes through Apply, which runs inside one store
// transaction: a locked read of the balance row, a guarded update, and a
// ledger entry carrying before/after values under a unique reference.
package ledger

import (
	"encoding/json"
	"errors"

	"nrxpay/metrics"
	"nrxpay/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Currency string

const (
	CurrencyINR  Currency = "INR"
	CurrencyUSDT Currency = "USDT"
)

const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
	KindExchange   = "exchange"
	KindTaskBonus  = "task_bonus"
	KindGame       = "game"
	KindAdjustment = "adjustment"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownCurrency   = errors.New("unknown currency")
	ErrMissingReference  = errors.New("missing reference")
)

// Request describes one balance mutation. Reference doubles as the
// idempotency key: applying the same reference twice returns the entry
// written the first time.
type Request struct {
	UserID    uint
	Currency  Currency
	Delta     decimal.Decimal
	Reference string
	Kind      string
	Note      string
	ActorID   uint
}

type Store interface {
	InTx(fn func(Store) error) error
	EntryByReference(ref string) (*models.BalanceEntry, error)
	// Balance returns the row without locking, creating a zero row on
	// first touch. BalanceForUpdate locks it for the current transaction.
	Balance(userID uint) (*models.UserBalance, error)
	BalanceForUpdate(userID uint) (*models.UserBalance, error)
	SaveBalance(bal *models.UserBalance) error
	CreateEntry(entry *models.BalanceEntry) error
	CreateAudit(log *models.AuditLog) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Apply performs one balance mutation. A negative resulting balance is
// refused for every caller; there is no clamping to zero.
func (s *Service) Apply(req Request) (*models.BalanceEntry, error) {
	if req.Reference == "" {
		return nil, ErrMissingReference
	}
	if req.Currency != CurrencyINR && req.Currency != CurrencyUSDT {
		return nil, ErrUnknownCurrency
	}

	// Fast path for replays, outside any lock.
	if existing, err := s.store.EntryByReference(req.Reference); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	var out *models.BalanceEntry
	err := s.store.InTx(func(tx Store) error {
		bal, err := tx.BalanceForUpdate(req.UserID)
		if err != nil {
			return err
		}

		// The balance row lock serializes appliers per user, so this
		// re-check cannot race. The unique index on reference is the
		// backstop for appliers of different users sharing a key.
		if existing, err := tx.EntryByReference(req.Reference); err != nil {
			return err
		} else if existing != nil {
			out = existing
			return nil
		}

		var before decimal.Decimal
		switch req.Currency {
		case CurrencyINR:
			before = bal.CurrentBalance
		case CurrencyUSDT:
			before = bal.UsdtBalance
		}

		after := before.Add(req.Delta)
		if after.IsNegative() {
			return ErrInsufficientFunds
		}

		switch req.Currency {
		case CurrencyINR:
			bal.CurrentBalance = after
		case CurrencyUSDT:
			bal.UsdtBalance = after
		}

		if err := tx.SaveBalance(bal); err != nil {
			return err
		}

		entry := &models.BalanceEntry{
			UserID:        req.UserID,
			Currency:      string(req.Currency),
			Kind:          req.Kind,
			Amount:        req.Delta,
			BalanceBefore: before,
			BalanceAfter:  after,
			Reference:     req.Reference,
			ActorID:       req.ActorID,
			Note:          req.Note,
		}
		if err := tx.CreateEntry(entry); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]string{
			"currency": string(req.Currency),
			"amount":   req.Delta.String(),
			"after":    after.String(),
		})
		if err := tx.CreateAudit(&models.AuditLog{
			ActorID:  req.ActorID,
			Action:   "balance." + req.Kind,
			Entity:   "user_balance",
			EntityID: req.UserID,
			Details:  datatypes.JSON(details),
		}); err != nil {
			return err
		}

		out = entry
		return nil
	})
	if errors.Is(err, ErrInsufficientFunds) {
		metrics.LedgerRefusals.WithLabelValues("insufficient_funds").Inc()
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	metrics.LedgerApplies.WithLabelValues(req.Kind, string(req.Currency)).Inc()
	return out, nil
}

// Balance returns the caller's balance row, creating a zero row on first
// touch so reads never fail for a registered user.
func (s *Service) Balance(userID uint) (*models.UserBalance, error) {
	return s.store.Balance(userID)
}
