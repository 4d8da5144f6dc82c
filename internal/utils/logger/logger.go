// Package logger настраивает slog-логгер по окружению приложения.
package logger

import (
	"os"

	"golang.org/x/exp/slog"

	"recordbase/internal/config"
)

// New возвращает логгер для окружения: local - текстовый вывод с debug,
// dev - JSON с debug, prod - JSON c info.
func New(env string) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return setupPrettySlog()
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}

func setupPrettySlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
