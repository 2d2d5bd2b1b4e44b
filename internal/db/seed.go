package db

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

type seedUsers interface {
	Create(ctx context.Context, in user.CreateInput) (*user.Projection, error)
	CountByRole(ctx context.Context, role user.Role) (int64, error)
}

// SeedDeveloper cria o primeiro usuário desenvolvedor quando não há nenhum.
// Sem e-mail/senha configurados, não faz nada.
func SeedDeveloper(ctx context.Context, users seedUsers, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := users.CountByRole(ctx, user.RoleDesenvolvedor)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = users.Create(ctx, user.CreateInput{
		Name:     "Desenvolvedor",
		Email:    email,
		Password: password,
		Role:     user.RoleDesenvolvedor,
	})
	if httperr.IsConflict(err) {
		slog.Warn("seed user email already registered with another role", slog.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("seeded developer account", slog.String("email", email))
	return nil
}
