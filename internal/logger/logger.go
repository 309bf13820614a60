package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

var log *slog.Logger

// Init инициализирует глобальный логгер
// env: "development" - текст и уровень debug, иначе JSON и info
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter - то же, что Init, но с произвольным выводом (нужно в тестах)
func InitWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: env != "development",
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

// ============================================
// Convenience функции
// ============================================

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает новый логгер с дополнительными полями
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// ============================================
// Специализированные логгеры
// ============================================

// HTTPLog логирует HTTP запрос. Уровень зависит от статуса.
func HTTPLog(requestID, method, path string, status int, duration time.Duration, size int) {
	fields := []any{
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	}

	switch {
	case status >= 500:
		GetLogger().Error("http request", fields...)
	case status >= 400:
		GetLogger().Warn("http request", fields...)
	default:
		GetLogger().Info("http request", fields...)
	}
}

// DBLog логирует SQL запрос
func DBLog(query string, rows int64, duration time.Duration, err error) {
	fields := []any{
		"query", query,
		"rows", rows,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("database query failed", fields...)
	} else {
		GetLogger().Debug("database query", fields...)
	}
}

// SlowQueryLog - запрос дольше порога
func SlowQueryLog(query string, rows int64, duration, threshold time.Duration) {
	GetLogger().Warn("slow database query",
		"query", query,
		"rows", rows,
		"duration_ms", duration.Milliseconds(),
		"threshold_ms", threshold.Milliseconds(),
	)
}

// WorkerLog логирует операцию фоновой задачи
func WorkerLog(worker, operation string, err error, args ...any) {
	fields := append([]any{
		"worker", worker,
		"operation", operation,
	}, args...)

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("worker operation failed", fields...)
	} else {
		GetLogger().Info("worker operation completed", fields...)
	}
}
