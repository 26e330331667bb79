package memorystore

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/foodshare/internal/domain/entity"
	"github.com/oksasatya/foodshare/internal/domain/repository"
)

type item struct {
	rec     entity.VerificationRecord
	evictAt time.Time
}

// CodeStore is an in-process verification record store.
// It is only safe for single-process deployments.
type CodeStore struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

func NewCodeStore() *CodeStore {
	return &CodeStore{items: make(map[string]item), now: time.Now}
}

// WithClock replaces the eviction clock; used by tests.
func (s *CodeStore) WithClock(now func() time.Time) *CodeStore {
	s.now = now
	return s
}

func (s *CodeStore) Save(_ context.Context, rec entity.VerificationRecord, retain time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var evict time.Time
	if retain > 0 {
		evict = s.now().Add(retain)
	}
	s.items[rec.Phone] = item{rec: rec, evictAt: evict}
	return nil
}

func (s *CodeStore) Get(_ context.Context, phone string) (*entity.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[phone]
	if !ok {
		return nil, nil
	}
	if !it.evictAt.IsZero() && s.now().After(it.evictAt) {
		delete(s.items, phone)
		return nil, nil
	}
	rec := it.rec
	return &rec, nil
}

func (s *CodeStore) Delete(_ context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[phone]
	if !ok || it.rec.Code != code {
		return false, nil
	}
	delete(s.items, phone)
	return true, nil
}

var _ repository.CodeStore = (*CodeStore)(nil)
