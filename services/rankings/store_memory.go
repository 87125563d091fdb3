package rankings

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"nrxpay/models"
	"nrxpay/services/ledger"

	"github.com/shopspring/decimal"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the service
// tests and local development without a database.
type MemoryStore struct {
	mu      sync.Mutex
	rows    map[string]*models.RankingRow
	entries []models.BalanceEntry
	audits  []*models.AuditLog
	nextID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:   make(map[string]*models.RankingRow),
		nextID: 1,
	}
}

func rowKey(horizon string, userID uint) string {
	return fmt.Sprintf("%s/%d", horizon, userID)
}

// AddEntry records a ledger entry for AggregateVolume to count.
func (s *MemoryStore) AddEntry(entry models.BalanceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// InTx serializes the whole rebuild under one lock.
func (s *MemoryStore) InTx(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memoryTx{store: s})
}

func (s *MemoryStore) Rows(horizon string) ([]models.RankingRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).Rows(horizon)
}

func (s *MemoryStore) UpsertRow(row *models.RankingRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).UpsertRow(row)
}

func (s *MemoryStore) PruneRows(horizon string, keep []uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).PruneRows(horizon, keep)
}

func (s *MemoryStore) UpsertScore(horizon string, userID uint, score decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).UpsertScore(horizon, userID, score)
}

func (s *MemoryStore) AggregateVolume(since time.Time) ([]Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).AggregateVolume(since)
}

func (s *MemoryStore) CreateAudit(log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).CreateAudit(log)
}

// Audits returns a snapshot of recorded audit rows.
func (s *MemoryStore) Audits() []*models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}

// memoryTx operates on the store while the store mutex is held.
type memoryTx struct {
	store *MemoryStore
}

func (t *memoryTx) InTx(fn func(Store) error) error {
	return fn(t)
}

func (t *memoryTx) Rows(horizon string) ([]models.RankingRow, error) {
	var out []models.RankingRow
	for _, row := range t.store.rows {
		if row.Horizon == horizon {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (t *memoryTx) UpsertRow(row *models.RankingRow) error {
	key := rowKey(row.Horizon, row.UserID)
	if existing, ok := t.store.rows[key]; ok {
		existing.TotalVolume = row.TotalVolume
		existing.TotalTransactions = row.TotalTransactions
		existing.RankScore = row.RankScore
		return nil
	}
	row.ID = t.store.nextID
	t.store.nextID++
	cp := *row
	t.store.rows[key] = &cp
	return nil
}

func (t *memoryTx) PruneRows(horizon string, keep []uint) error {
	kept := make(map[uint]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	for key, row := range t.store.rows {
		if row.Horizon == horizon && !kept[row.UserID] {
			delete(t.store.rows, key)
		}
	}
	return nil
}

func (t *memoryTx) UpsertScore(horizon string, userID uint, score decimal.Decimal) error {
	key := rowKey(horizon, userID)
	if existing, ok := t.store.rows[key]; ok {
		existing.RankScore = score
		return nil
	}
	row := &models.RankingRow{UserID: userID, Horizon: horizon, RankScore: score}
	row.ID = t.store.nextID
	t.store.nextID++
	t.store.rows[key] = row
	return nil
}

func (t *memoryTx) AggregateVolume(since time.Time) ([]Aggregate, error) {
	byUser := make(map[uint]*Aggregate)
	for _, entry := range t.store.entries {
		if entry.Kind != ledger.KindDeposit && entry.Kind != ledger.KindWithdrawal {
			continue
		}
		if !since.IsZero() && entry.CreatedAt.Before(since) {
			continue
		}
		agg, ok := byUser[entry.UserID]
		if !ok {
			agg = &Aggregate{UserID: entry.UserID}
			byUser[entry.UserID] = agg
		}
		agg.Volume = agg.Volume.Add(entry.Amount.Abs())
		agg.Count++
	}

	out := make([]Aggregate, 0, len(byUser))
	for _, agg := range byUser {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (t *memoryTx) CreateAudit(log *models.AuditLog) error {
	log.ID = t.store.nextID
	t.store.nextID++
	t.store.audits = append(t.store.audits, log)
	return nil
}
