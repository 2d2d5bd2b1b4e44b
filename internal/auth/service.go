package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/password"
	"github.com/BruksfildServices01/mv-autocenter/internal/session"
	"github.com/BruksfildServices01/mv-autocenter/internal/validators"
)

// ErrInvalidCredentials é a única falha de credencial exposta:
// e-mail desconhecido, senha errada e usuário inativo são indistinguíveis.
var ErrInvalidCredentials = errors.New("invalid_credentials")

type LoginRecorder interface {
	RecordLogin(outcome string)
}

type Result struct {
	Identity   session.Identity `json:"user"`
	SessionKey string           `json:"-"`
	Token      string           `json:"token"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

type Service struct {
	users  user.CredentialSource
	hasher password.Hasher
	store  session.Store
	tokens *TokenIssuer
	ttl    time.Duration

	// comparado quando o e-mail não existe, para igualar o custo da resposta
	dummyHash string
	recorder  LoginRecorder
}

func NewService(
	users user.CredentialSource,
	hasher password.Hasher,
	store session.Store,
	tokens *TokenIssuer,
	ttl time.Duration,
) (*Service, error) {

	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		store:     store,
		tokens:    tokens,
		ttl:       ttl,
		dummyHash: dummy,
	}, nil
}

func (s *Service) WithRecorder(r LoginRecorder) *Service {
	s.recorder = r
	return s
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordLogin(outcome)
	}
}

// verify confere a senha e devolve a identidade. Não grava nada.
func (s *Service) verify(ctx context.Context, email, plain string) (session.Identity, error) {
	email = validators.NormalizeEmail(email)

	u, err := s.users.FindCredentialsByEmail(ctx, email)
	if err != nil {
		// mesmo custo de bcrypt que um e-mail existente
		s.hasher.Verify(plain, s.dummyHash)
		if httperr.IsNotFound(err) {
			s.record("invalid")
			return session.Identity{}, ErrInvalidCredentials
		}
		s.record("error")
		return session.Identity{}, err
	}

	if !s.hasher.Verify(plain, u.PasswordHash) || !u.Active {
		s.record("invalid")
		return session.Identity{}, ErrInvalidCredentials
	}

	id := session.FromUser(u)
	if !id.Valid() {
		slog.Warn("login refused: stored role is not recognised", slog.String("user_id", u.ID))
		s.record("invalid")
		return session.Identity{}, ErrInvalidCredentials
	}

	s.record("success")
	return id, nil
}

// Authenticate cria uma nova sessão persistida e o token de acesso da API.
func (s *Service) Authenticate(ctx context.Context, email, plain string) (*Result, error) {
	id, err := s.verify(ctx, email, plain)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString()
	if err := s.store.Save(ctx, key, id, s.ttl); err != nil {
		return nil, httperr.Persistence("save session", err)
	}

	token, exp, err := s.tokens.Issue(id.ID, key, id.Role)
	if err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	return &Result{Identity: id, SessionKey: key, Token: token, ExpiresAt: exp}, nil
}

// Login estabelece a identidade no State quando as credenciais conferem.
func (s *Service) Login(ctx context.Context, st *session.State, email, plain string) bool {
	id, err := s.verify(ctx, email, plain)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			slog.Error("login failed", slog.String("error", err.Error()))
		}
		return false
	}

	if err := st.Set(ctx, id); err != nil {
		slog.Error("login failed: session not saved", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Logout remove a sessão persistida. Chave inexistente não é erro.
func (s *Service) Logout(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionKey)
}

// Restore carrega a sessão persistida; ausente ou malformada = não autenticado.
func (s *Service) Restore(ctx context.Context, sessionKey string) (session.Identity, bool) {
	if sessionKey == "" {
		return session.Identity{}, false
	}
	id, ok, err := s.store.Load(ctx, sessionKey)
	if err != nil {
		slog.Warn("session load failed", slog.String("error", err.Error()))
		return session.Identity{}, false
	}
	return id, ok
}

func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}
