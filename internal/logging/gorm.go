package logging

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger 将 gorm 的 SQL 日志输出到 slog。
type GormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

// NewGormLogger 构造 gorm logger；debug 级别下记录全部 SQL，其他级别只记录慢查询与错误。
func NewGormLogger(logger *slog.Logger) *GormLogger {
	level := gormlogger.Warn
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		level = gormlogger.Info
	}
	return &GormLogger{logger: logger, level: level}
}

// LogMode implements gormlogger.Interface.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.InfoContext(ctx, msg, "args", args)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.WarnContext(ctx, msg, "args", args)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.ErrorContext(ctx, msg, "args", args)
	}
}

// Trace implements gormlogger.Interface.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "sql error", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds(), "error", err)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "slow sql", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.DebugContext(ctx, "sql", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
