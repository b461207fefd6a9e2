package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a statement is logged as a warning.
const slowQuery = 200 * time.Millisecond

// logger sends gorm's statements and messages to zerolog, tagged with
// the database component.
type logger struct {
	zerolog.Logger
	level gorm_logger.LogLevel
}

func newLogger(l zerolog.Logger) *logger {
	return &logger{
		Logger: l.With().Str("component", "database").Logger(),
		level:  gorm_logger.Info,
	}
}

// LogMode returns a copy of the logger with the level changed, as used by
// db.Debug() and db.Session(&gorm.Session{Logger: ...}).
func (l *logger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *logger) Info(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Info {
		l.Logger.Info().Msgf(s, args...)
	}
}

func (l *logger) Warn(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Warn {
		l.Logger.Warn().Msgf(s, args...)
	}
}

func (l *logger) Error(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Error {
		l.Logger.Error().Msgf(s, args...)
	}
}

// Trace logs every statement at debug level. Failed statements are errors,
// slow ones warnings. Missing records are expected, e.g. for expense IDs
// of other users, and are not errors.
func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	event := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed)
	}

	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm_logger.ErrRecordNotFound):
		event(l.Logger.Error().Err(err)).Msg("Query failed")
	case elapsed > slowQuery && l.level >= gorm_logger.Warn:
		event(l.Logger.Warn()).Dur("threshold", slowQuery).Msg("Slow query")
	case l.level >= gorm_logger.Info:
		event(l.Logger.Debug()).Msg("Query")
	}
}
