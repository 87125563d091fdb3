package rates

import (
	"errors"

	"nrxpay/models"

	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) InTx(fn func(Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (g *GormStore) ActiveRate(family string) (*models.Rate, error) {
	var rate models.Rate
	err := g.db.Where("family = ? AND is_active = true", family).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (g *GormStore) RateByID(family string, id uint) (*models.Rate, error) {
	var rate models.Rate
	err := g.db.Where("id = ? AND family = ?", id, family).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (g *GormStore) CreateRate(rate *models.Rate) error {
	return g.db.Create(rate).Error
}

func (g *GormStore) DeactivateFamily(family string) error {
	return g.db.Model(&models.Rate{}).
		Where("family = ? AND is_active = true", family).
		Update("is_active", false).Error
}

func (g *GormStore) MarkActive(id uint) error {
	return g.db.Model(&models.Rate{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

func (g *GormStore) RatesByFamily(family string) ([]models.Rate, error) {
	var out []models.Rate
	err := g.db.Where("family = ?", family).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (g *GormStore) CreateAudit(log *models.AuditLog) error {
	return g.db.Create(log).Error
}
