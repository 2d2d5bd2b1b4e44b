// Package viewmodel reúne o que os view-models de tela compartilham:
// estado do diálogo e avisos ao usuário.
package viewmodel

import (
	"errors"
	"log/slog"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

type Mode string

const (
	ModeIdle     Mode = "idle"
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

type NoticeKind string

const (
	NoticeSuccess    NoticeKind = "success"
	NoticeValidation NoticeKind = "validation"
	NoticeError      NoticeKind = "error"
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Messages são os textos de uma tela.
type Messages struct {
	Conflict string
	NotFound string
	Generic  string
}

// Classify separa erro de validação (o usuário corrige) do resto.
func Classify(err error, msgs Messages) Notice {
	var ve *httperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return Notice{Kind: NoticeValidation, Message: validationMessage(ve)}
	case httperr.IsConflict(err):
		return Notice{Kind: NoticeValidation, Message: msgs.Conflict}
	case httperr.IsNotFound(err):
		return Notice{Kind: NoticeError, Message: msgs.NotFound}
	}
	return Notice{Kind: NoticeError, Message: msgs.Generic}
}

var fieldLabels = map[string]string{
	"name":     "Nome",
	"email":    "E-mail",
	"password": "Senha",
	"role":     "Cargo",
	"model":    "Modelo",
}

func validationMessage(ve *httperr.ValidationError) string {
	label, ok := fieldLabels[ve.Field]
	if !ok {
		label = ve.Field
	}
	if ve.Reason == "is required" {
		return label + " é obrigatório."
	}
	return label + " inválido."
}

// Report loga o detalhe e avisa o usuário com a mensagem classificada.
func Report(log *slog.Logger, n Notifier, op string, err error, msgs Messages) {
	log.Error(op+" failed", slog.String("error", err.Error()))
	if n != nil {
		n.Notify(Classify(err, msgs))
	}
}

func Success(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Kind: NoticeSuccess, Message: msg})
	}
}
