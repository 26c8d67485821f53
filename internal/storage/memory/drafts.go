// memory — in-memory хранилище черновиков оплаты для одного экземпляра сервиса.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/storage"
)

type entry struct {
	draft     models.PaymentDraft
	expiresAt time.Time
}

// DefaultMaxEntries — предел числа черновиков по умолчанию.
const DefaultMaxEntries = 10000

// gcInterval — как часто SaveDraft сканирует хранилище в поисках истёкших записей.
const gcInterval = time.Minute

// Drafts хранит не более maxEntries черновиков; при переполнении
// вытесняется черновик с самым ранним сроком истечения.
type Drafts struct {
	mu         sync.Mutex
	items      map[string]entry
	maxEntries int
	lastGC     time.Time
	now        func() time.Time
}

func New() *Drafts { return NewWithLimit(DefaultMaxEntries) }

// NewWithLimit — хранилище с пределом maxEntries (<=0 — DefaultMaxEntries).
func NewWithLimit(maxEntries int) *Drafts {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &Drafts{items: make(map[string]entry), maxEntries: maxEntries, now: time.Now}
}

// Len — текущее число записей (включая ещё не вычищенные истёкшие).
func (s *Drafts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Drafts) SaveDraft(ctx context.Context, d *models.PaymentDraft, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	_, exists := s.items[d.ID]
	switch {
	case !exists && len(s.items) >= s.maxEntries:
		s.gcLocked(now)
		if len(s.items) >= s.maxEntries {
			s.evictLocked()
		}
	case now.Sub(s.lastGC) >= gcInterval:
		s.gcLocked(now)
	}

	s.items[d.ID] = entry{draft: *d, expiresAt: now.Add(ttl)}

	return nil
}

func (s *Drafts) DraftByID(ctx context.Context, id string) (*models.PaymentDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok || !s.now().Before(e.expiresAt) {
		delete(s.items, id)
		return nil, storage.ErrNotFound
	}

	d := e.draft
	return &d, nil
}

func (s *Drafts) DeleteDraft(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()

	return nil
}

func (s *Drafts) Close() error { return nil }

// gcLocked выбрасывает истёкшие черновики; вызывается под s.mu.
func (s *Drafts) gcLocked(now time.Time) {
	s.lastGC = now
	for id, e := range s.items {
		if !now.Before(e.expiresAt) {
			delete(s.items, id)
		}
	}
}

// evictLocked удаляет черновик, который истекает раньше всех; вызывается под s.mu.
func (s *Drafts) evictLocked() {
	var (
		victim string
		oldest time.Time
	)
	for id, e := range s.items {
		if victim == "" || e.expiresAt.Before(oldest) {
			victim, oldest = id, e.expiresAt
		}
	}

	delete(s.items, victim)
}
