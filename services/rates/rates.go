// Package rates exposes the single active conversion rate per family and
// performs rate activation as one atomic statement pair, so readers never
// observe zero or two active rows.
package rates

import (
	"encoding/json"
	"errors"

	"nrxpay/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	FamilyUsdt   = "usdt"
	FamilyFund   = "fund"
	FamilyCrypto = "crypto"
)

var (
	ErrNoActiveRate  = errors.New("no active rate for family")
	ErrRateNotFound  = errors.New("rate not found")
	ErrUnknownFamily = errors.New("unknown rate family")
)

func ValidFamily(family string) bool {
	switch family {
	case FamilyUsdt, FamilyFund, FamilyCrypto:
		return true
	}
	return false
}

// Store persists rate rows. InTx runs fn in one transaction; in Postgres
// the partial unique index on (family) WHERE is_active backs the swap.
type Store interface {
	InTx(fn func(Store) error) error
	// ActiveRate and RateByID return nil, nil when no row matches.
	ActiveRate(family string) (*models.Rate, error)
	RateByID(family string, id uint) (*models.Rate, error)
	CreateRate(rate *models.Rate) error
	DeactivateFamily(family string) error
	MarkActive(id uint) error
	RatesByFamily(family string) ([]models.Rate, error)
	CreateAudit(log *models.AuditLog) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Active returns the one active rate of the family. There is no fallback
// constant: a missing rate is a loud error for every consumer.
func (s *Service) Active(family string) (*models.Rate, error) {
	if !ValidFamily(family) {
		return nil, ErrUnknownFamily
	}
	rate, err := s.store.ActiveRate(family)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, ErrNoActiveRate
	}
	return rate, nil
}

func (s *Service) Create(rate *models.Rate) error {
	if !ValidFamily(rate.Family) {
		return ErrUnknownFamily
	}
	rate.IsActive = false
	return s.store.CreateRate(rate)
}

// Activate deactivates the family and activates the target row in one
// transaction, with the audit row written in the same transaction. The
// target is checked before anything is deactivated, so a bad id leaves
// the current active rate untouched.
func (s *Service) Activate(family string, id, actorID uint) error {
	if !ValidFamily(family) {
		return ErrUnknownFamily
	}
	return s.store.InTx(func(tx Store) error {
		target, err := tx.RateByID(family, id)
		if err != nil {
			return err
		}
		if target == nil {
			return ErrRateNotFound
		}
		if err := tx.DeactivateFamily(family); err != nil {
			return err
		}
		if err := tx.MarkActive(id); err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]string{"family": family})
		return tx.CreateAudit(&models.AuditLog{
			ActorID:  actorID,
			Action:   "rate.activate",
			Entity:   "rate",
			EntityID: id,
			Details:  datatypes.JSON(details),
		})
	})
}

func (s *Service) List(family string) ([]models.Rate, error) {
	if !ValidFamily(family) {
		return nil, ErrUnknownFamily
	}
	return s.store.RatesByFamily(family)
}

// InrFromUsdt values a USDT amount in INR at the given rate, rounded to
// paise.
func InrFromUsdt(usdt, rate decimal.Decimal) decimal.Decimal {
	return usdt.Mul(rate).Round(2)
}

// UsdtFromInr converts an INR amount to USDT at the given rate.
func UsdtFromInr(inr, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return inr.DivRound(rate, 8)
}
