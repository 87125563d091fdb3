package rates

import (
	"sync"

	"nrxpay/models"
)

// MemoryStore is a mutex-guarded in-memory Store. It backs the service
// tests and local development without a database.
type MemoryStore struct {
	mu     sync.Mutex
	rates  map[uint]*models.Rate
	order  []uint
	audits []*models.AuditLog
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rates:  make(map[uint]*models.Rate),
		nextID: 1,
	}
}

// InTx serializes the whole swap under one lock, matching the
// serialization the partial unique index forces in Postgres.
func (s *MemoryStore) InTx(fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memoryTx{store: s})
}

func (s *MemoryStore) ActiveRate(family string) (*models.Rate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).ActiveRate(family)
}

func (s *MemoryStore) RateByID(family string, id uint) (*models.Rate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).RateByID(family, id)
}

func (s *MemoryStore) CreateRate(rate *models.Rate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).CreateRate(rate)
}

func (s *MemoryStore) DeactivateFamily(family string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).DeactivateFamily(family)
}

func (s *MemoryStore) MarkActive(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).MarkActive(id)
}

func (s *MemoryStore) RatesByFamily(family string) ([]models.Rate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memoryTx{store: s}).RatesByFamily(family)
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

func (t *memoryTx) ActiveRate(family string) (*models.Rate, error) {
	for _, id := range t.store.order {
		rate := t.store.rates[id]
		if rate.Family == family && rate.IsActive {
			cp := *rate
			return &cp, nil
		}
	}
	return nil, nil
}

func (t *memoryTx) RateByID(family string, id uint) (*models.Rate, error) {
	rate, ok := t.store.rates[id]
	if !ok || rate.Family != family {
		return nil, nil
	}
	cp := *rate
	return &cp, nil
}

func (t *memoryTx) CreateRate(rate *models.Rate) error {
	rate.ID = t.store.nextID
	t.store.nextID++
	cp := *rate
	t.store.rates[rate.ID] = &cp
	t.store.order = append(t.store.order, rate.ID)
	return nil
}

func (t *memoryTx) DeactivateFamily(family string) error {
	for _, rate := range t.store.rates {
		if rate.Family == family {
			rate.IsActive = false
		}
	}
	return nil
}

func (t *memoryTx) MarkActive(id uint) error {
	if rate, ok := t.store.rates[id]; ok {
		rate.IsActive = true
	}
	return nil
}

func (t *memoryTx) RatesByFamily(family string) ([]models.Rate, error) {
	var out []models.Rate
	for i := len(t.store.order) - 1; i >= 0; i-- {
		rate := t.store.rates[t.store.order[i]]
		if rate.Family == family {
			out = append(out, *rate)
		}
	}
	return out, nil
}

func (t *memoryTx) CreateAudit(log *models.AuditLog) error {
	log.ID = t.store.nextID
	t.store.nextID++
	t.store.audits = append(t.store.audits, log)
	return nil
}
