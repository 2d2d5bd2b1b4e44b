package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return New(slog.New(slog.NewJSONHandler(buf, nil)))
}

func TestRedact(t *testing.T) {
	meta := map[string]any{
		"email":    "a@mvauto.com",
		"password": "123456",
		"changes": map[string]any{
			"Password_Hash": "$2a$...",
			"name":          "Ana",
		},
	}

	got := Redact(meta)

	if got["password"] != Redacted {
		t.Errorf("password = %v", got["password"])
	}
	if got["email"] != "a@mvauto.com" {
		t.Errorf("email = %v", got["email"])
	}
	nested := got["changes"].(map[string]any)
	if nested["Password_Hash"] != Redacted || nested["name"] != "Ana" {
		t.Errorf("nested = %v", nested)
	}
	if meta["password"] != "123456" {
		t.Error("Redact must not mutate its input")
	}
}

func TestLogger_NeverWritesSecrets(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf)

	l.Log(Event{
		ActorID:  "u1",
		Action:   "user_created",
		Entity:   "user",
		EntityID: "u2",
		Metadata: map[string]any{"password": "hunter2", "role": "funcionario"},
	})

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Fatalf("secret leaked into log: %s", out)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["msg"] != "audit" || entry["action"] != "user_created" || entry["actor_id"] != "u1" {
		t.Errorf("entry = %v", entry)
	}
}

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(newBufferLogger(&buf))

	for i := 0; i < 3; i++ {
		d.Dispatch(Event{Action: "client_created", Entity: "client"})
	}
	d.Close()

	if got := strings.Count(buf.String(), "client_created"); got != 3 {
		t.Errorf("logged %d events, want 3", got)
	}

	// depois de fechado, Dispatch é ignorado sem pânico
	d.Dispatch(Event{Action: "late"})
	d.Close()
}

func TestActorContext(t *testing.T) {
	ctx := WithActor(context.Background(), "u9")
	if got := ActorFrom(ctx); got != "u9" {
		t.Errorf("ActorFrom = %q", got)
	}
	if got := ActorFrom(context.Background()); got != "" {
		t.Errorf("ActorFrom(empty) = %q", got)
	}
}
