package httperr

import (
	"errors"
	"fmt"
)

// ValidationError: campo obrigatório ausente ou inválido. O formulário continua aberto.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// ConflictError: violação de unicidade (ex.: e-mail já cadastrado).
type ConflictError struct {
	Entity string
	Field  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s.%s already exists", e.Entity, e.Field)
}

// NotFoundError: referência inexistente (ex.: removido por outra sessão).
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s %s", e.Entity, e.ID)
}

// PersistenceError: falha inesperada do banco. Nenhum estado parcial é aplicado.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func Conflict(entity, field string) error {
	return &ConflictError{Entity: entity, Field: field}
}

func NotFoundErr(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
