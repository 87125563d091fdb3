package rankings

import (
	"time"

	"nrxpay/models"
	"nrxpay/services/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (g *GormStore) Rows(horizon string) ([]models.RankingRow, error) {
	var rows []models.RankingRow
	err := g.db.Where("horizon = ?", horizon).Find(&rows).Error
	return rows, err
}

func (g *GormStore) UpsertRow(row *models.RankingRow) error {
	return g.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "horizon"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_volume":       row.TotalVolume,
			"total_transactions": row.TotalTransactions,
			"rank_score":         row.RankScore,
		}),
	}).Create(row).Error
}

// PruneRows hard-deletes, so a pruned user can be re-upserted later
// without colliding with a soft-deleted row on the (user, horizon) index.
func (g *GormStore) PruneRows(horizon string, keep []uint) error {
	q := g.db.Unscoped().Where("horizon = ?", horizon)
	if len(keep) > 0 {
		q = q.Where("user_id NOT IN ?", keep)
	}
	return q.Delete(&models.RankingRow{}).Error
}

func (g *GormStore) UpsertScore(horizon string, userID uint, score decimal.Decimal) error {
	row := models.RankingRow{UserID: userID, Horizon: horizon, RankScore: score}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "horizon"}},
		DoUpdates: clause.Assignments(map[string]any{"rank_score": score}),
	}).Create(&row).Error
}

func (g *GormStore) AggregateVolume(since time.Time) ([]Aggregate, error) {
	q := g.db.Model(&models.BalanceEntry{}).
		Select("user_id, SUM(ABS(amount)) AS volume, COUNT(*) AS count").
		Where("kind IN ?", []string{ledger.KindDeposit, ledger.KindWithdrawal}).
		Group("user_id")
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var out []Aggregate
	err := q.Scan(&out).Error
	return out, err
}

func (g *GormStore) CreateAudit(log *models.AuditLog) error {
	return g.db.Create(log).Error
}
