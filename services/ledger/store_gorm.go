package ledger

import (
	"errors"

	"nrxpay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore runs ledger operations against Postgres. Row locking uses
// SELECT ... FOR UPDATE; nested InTx calls become savepoints, so callers
// already inside a transaction (admin approvals) can pass their tx handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InTx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) EntryByReference(ref string) (*models.BalanceEntry, error) {
	var entry models.BalanceEntry
	err := s.db.Where("reference = ?", ref).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *GormStore) Balance(userID uint) (*models.UserBalance, error) {
	var bal models.UserBalance
	err := s.db.Where(models.UserBalance{UserID: userID}).
		FirstOrCreate(&bal).Error
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (s *GormStore) BalanceForUpdate(userID uint) (*models.UserBalance, error) {
	var bal models.UserBalance
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bal = models.UserBalance{UserID: userID}
		if err := s.db.Create(&bal).Error; err != nil {
			return nil, err
		}
		return s.BalanceForUpdate(userID)
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (s *GormStore) SaveBalance(bal *models.UserBalance) error {
	return s.db.Model(&models.UserBalance{}).
		Where("id = ?", bal.ID).
		Updates(map[string]any{
			"current_balance": bal.CurrentBalance,
			"usdt_balance":    bal.UsdtBalance,
		}).Error
}

func (s *GormStore) CreateEntry(entry *models.BalanceEntry) error {
	return s.db.Create(entry).Error
}

func (s *GormStore) CreateAudit(log *models.AuditLog) error {
	return s.db.Create(log).Error
}
