package session

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	Save(ctx context.Context, key string, id Identity, ttl time.Duration) error
	// Load devolve ok=false para chave ausente, expirada ou malformada.
	Load(ctx context.Context, key string) (Identity, bool, error)
	Delete(ctx context.Context, key string) error
}

// MemoryStore é o armazenamento de desenvolvimento e de testes.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (m *MemoryStore) Save(ctx context.Context, key string, id Identity, ttl time.Duration) error {
	data, err := encode(id)
	if err != nil {
		return err
	}
	m.SaveRaw(key, data, ttl)
	return nil
}

// SaveRaw grava bytes arbitrários; usado para simular dados corrompidos.
func (m *MemoryStore) SaveRaw(key string, data []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = item
}

func (m *MemoryStore) Load(ctx context.Context, key string) (Identity, bool, error) {
	m.mu.Lock()
	item, found := m.items[key]
	if found && !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		found = false
	}
	m.mu.Unlock()

	if !found {
		return Identity{}, false, nil
	}
	id, ok := decode(item.data)
	return id, ok, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}
