package auth

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/mv-autocenter/internal/session"
)

type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusValidating      Status = "validating"
	StatusAuthenticated   Status = "authenticated"
)

// Flow é a máquina de estados do login vista pela interface:
// Unauthenticated -> Validating -> Authenticated | Unauthenticated+erro.
type Flow struct {
	svc   *Service
	state *session.State

	mu     sync.Mutex
	status Status
	failed bool
}

func NewFlow(svc *Service, state *session.State) *Flow {
	f := &Flow{svc: svc, state: state, status: StatusUnauthenticated}
	if state.Authenticated() {
		f.status = StatusAuthenticated
	}
	return f
}

func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Failed indica que a última tentativa de login foi recusada.
func (f *Flow) Failed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

func (f *Flow) set(status Status, failed bool) {
	f.mu.Lock()
	f.status = status
	f.failed = failed
	f.mu.Unlock()
}

func (f *Flow) Submit(ctx context.Context, email, plain string) bool {
	f.set(StatusValidating, false)

	if f.svc.Login(ctx, f.state, email, plain) {
		f.set(StatusAuthenticated, false)
		return true
	}

	f.set(StatusUnauthenticated, true)
	return false
}

func (f *Flow) Logout(ctx context.Context) {
	_ = f.state.Clear(ctx)
	f.set(StatusUnauthenticated, false)
}

// Restore é chamado na partida do processo.
func (f *Flow) Restore(ctx context.Context) Status {
	if f.state.Restore(ctx) {
		f.set(StatusAuthenticated, false)
	} else {
		f.set(StatusUnauthenticated, false)
	}
	return f.Status()
}
