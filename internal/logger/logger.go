package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup cria um slog.Logger com saída JSON no writer informado.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault instala o logger JSON como logger global. nil = os.Stdout.
func SetupDefault(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
	return logger
}
