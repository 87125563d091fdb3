package ledger

import (
	"sync"

	"nrxpay/models"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the service
// tests and local development without a database.
type MemoryStore struct {
	mu       sync.Mutex
	balances map[uint]*models.UserBalance
	entries  map[string]*models.BalanceEntry
	audits   []*models.AuditLog
	nextID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		balances: make(map[uint]*models.UserBalance),
		entries:  make(map[string]*models.BalanceEntry),
		nextID:   1,
	}
}

// InTx serializes the whole mutation under one lock, matching the
// serialization the row lock provides in Postgres.
func (s *MemoryStore) InTx(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memoryTx{store: s})
}

func (s *MemoryStore) EntryByReference(ref string) (*models.BalanceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).EntryByReference(ref)
}

func (s *MemoryStore) Balance(userID uint) (*models.UserBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).BalanceForUpdate(userID)
}

func (s *MemoryStore) BalanceForUpdate(userID uint) (*models.UserBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).BalanceForUpdate(userID)
}

func (s *MemoryStore) SaveBalance(bal *models.UserBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).SaveBalance(bal)
}

func (s *MemoryStore) CreateEntry(entry *models.BalanceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).CreateEntry(entry)
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

func (t *memoryTx) EntryByReference(ref string) (*models.BalanceEntry, error) {
	if entry, ok := t.store.entries[ref]; ok {
		cp := *entry
		return &cp, nil
	}
	return nil, nil
}

func (t *memoryTx) Balance(userID uint) (*models.UserBalance, error) {
	return t.BalanceForUpdate(userID)
}

func (t *memoryTx) BalanceForUpdate(userID uint) (*models.UserBalance, error) {
	bal, ok := t.store.balances[userID]
	if !ok {
		bal = &models.UserBalance{UserID: userID}
		bal.ID = t.store.nextID
		t.store.nextID++
		t.store.balances[userID] = bal
	}
	cp := *bal
	return &cp, nil
}

func (t *memoryTx) SaveBalance(bal *models.UserBalance) error {
	cp := *bal
	t.store.balances[bal.UserID] = &cp
	return nil
}

func (t *memoryTx) CreateEntry(entry *models.BalanceEntry) error {
	entry.ID = t.store.nextID
	t.store.nextID++
	cp := *entry
	t.store.entries[entry.Reference] = &cp
	return nil
}

func (t *memoryTx) CreateAudit(log *models.AuditLog) error {
	log.ID = t.store.nextID
	t.store.nextID++
	t.store.audits = append(t.store.audits, log)
	return nil
}
