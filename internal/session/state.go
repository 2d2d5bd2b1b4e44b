package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/navigation"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
)

// State é o objeto de sessão explícito repassado aos view-models.
// Carrega do Store na partida (Restore) e grava a cada troca de identidade.
type State struct {
	store Store
	key   string
	ttl   time.Duration

	mu      sync.RWMutex
	current *Identity
}

func NewState(store Store, key string, ttl time.Duration) *State {
	return &State{store: store, key: key, ttl: ttl}
}

func (s *State) Key() string {
	return s.key
}

// Restore nunca falha por dado corrompido: nesse caso a sessão fica vazia.
func (s *State) Restore(ctx context.Context) bool {
	id, ok, err := s.store.Load(ctx, s.key)
	if err != nil {
		slog.Warn("session restore failed", slog.String("error", err.Error()))
		ok = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.current = nil
		return false
	}
	s.current = &id
	return true
}

func (s *State) Set(ctx context.Context, id Identity) error {
	if err := s.store.Save(ctx, s.key, id, s.ttl); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
	return nil
}

// Clear é idempotente e sempre limpa o estado local, mesmo se o Store falhar.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return s.store.Delete(ctx, s.key)
}

func (s *State) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

func (s *State) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

func (s *State) Role() user.Role {
	id, _ := s.Current()
	return id.Role
}

// Menu é recalculado a cada chamada a partir do papel atual.
// Sem sessão, nenhum item.
func (s *State) Menu() []navigation.MenuItem {
	id, ok := s.Current()
	if !ok {
		return []navigation.MenuItem{}
	}
	return navigation.MenuFor(id.Role)
}

func (s *State) Allows(item navigation.ItemID) bool {
	id, ok := s.Current()
	return ok && navigation.Allows(id.Role, item)
}
