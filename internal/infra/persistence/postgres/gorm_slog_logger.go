package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Queries slower than this are logged as warnings.
const slowQueryThreshold = 200 * time.Millisecond

// queryLogger routes GORM's logging through the service slog logger so
// database noise shows up in the same structured stream as everything else.
// Record-not-found is part of normal control flow and is never logged.
type queryLogger struct {
	log   *slog.Logger
	level logger.LogLevel
}

func newQueryLogger(baseLogger *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &queryLogger{log: baseLogger, level: level}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &queryLogger{log: l.log, level: level}
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.log.InfoContext(ctx, "db: "+fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.log.WarnContext(ctx, "db: "+fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.log.ErrorContext(ctx, "db: "+fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := sqlAndRowsFn()
		l.log.LogAttrs(ctx, slog.LevelError, "db query failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		sql, rows := sqlAndRowsFn()
		l.log.LogAttrs(ctx, slog.LevelWarn, "db slow query",
			slog.Duration("elapsed", elapsed),
			slog.Duration("threshold", slowQueryThreshold),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	case l.level >= logger.Info:
		sql, rows := sqlAndRowsFn()
		l.log.LogAttrs(ctx, slog.LevelDebug, "db query",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		)
	}
}
