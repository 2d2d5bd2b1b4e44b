package audit

import (
	"context"
	"log/slog"
	"strings"
)

const Redacted = "[REDACTED]"

var secretKeys = []string{"password", "password_hash", "token", "secret"}

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata map[string]any
}

// Logger escreve cada evento como uma linha de log estruturada.
type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log}
}

func (l *Logger) Log(ev Event) {
	attrs := []any{
		slog.String("action", ev.Action),
		slog.String("entity", ev.Entity),
	}
	if ev.ActorID != "" {
		attrs = append(attrs, slog.String("actor_id", ev.ActorID))
	}
	if ev.EntityID != "" {
		attrs = append(attrs, slog.String("entity_id", ev.EntityID))
	}
	if len(ev.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", Redact(ev.Metadata)))
	}

	l.log.Info("audit", attrs...)
}

// Redact devolve uma cópia com valores de chaves sensíveis substituídos.
func Redact(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		if isSecret(k) {
			out[k] = Redacted
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = Redact(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func isSecret(key string) bool {
	k := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

type actorKey struct{}

func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func ActorFrom(ctx context.Context) string {
	id, _ := ctx.Value(actorKey{}).(string)
	return id
}
