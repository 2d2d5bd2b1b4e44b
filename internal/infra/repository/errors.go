package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

const pgUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translate converte erros do GORM para a taxonomia da aplicação.
func translate(op, entity, id string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return httperr.NotFoundErr(entity, id)
	case isDuplicateKey(err):
		return httperr.Conflict(entity, "key")
	}
	return httperr.Persistence(op, err)
}
