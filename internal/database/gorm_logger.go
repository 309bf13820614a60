package database

import (
	"context"
	"errors"
	"time"

	"gym_backend/internal/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlogGormLogger пересылает SQL-запросы GORM в slog через logger.DBLog
type SlogGormLogger struct {
	SlowThreshold time.Duration
	LogAll        bool
	level         gormlogger.LogLevel
}

func NewSlogGormLogger(slow time.Duration, logAll bool) *SlogGormLogger {
	return &SlogGormLogger{
		SlowThreshold: slow,
		LogAll:        logAll,
		level:         gormlogger.Info,
	}
}

func (l *SlogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.CtxInfo(ctx, msg, "args", args)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.CtxWarn(ctx, msg, "args", args)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.CtxError(ctx, msg, "args", args)
	}
}

// Trace вызывается GORM после каждого запроса
func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	duration := time.Since(begin)
	sql, rows := fc()

	// "не найдено" - обычный результат, а не ошибка запроса
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}

	switch {
	case err != nil:
		logger.DBLog(sql, rows, duration, err)
	case l.SlowThreshold > 0 && duration > l.SlowThreshold:
		logger.SlowQueryLog(sql, rows, duration, l.SlowThreshold)
	case l.LogAll:
		logger.DBLog(sql, rows, duration, nil)
	}
}
