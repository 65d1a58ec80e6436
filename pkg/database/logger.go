package database

import (
	"context"
	"errors"
	"time"

	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration after which a query is logged as a warning.
const slowQuery = 200 * time.Millisecond

// queryLogger writes gorm output to zerolog. Statements are logged at
// debug level, slow statements as warnings.
type queryLogger struct {
	log   zerolog.Logger
	level gorm_logger.LogLevel
}

func newQueryLogger(l zerolog.Logger) *queryLogger {
	return &queryLogger{log: l.With().Str("component", "gorm").Logger(), level: gorm_logger.Info}
}

func (q *queryLogger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	c := *q
	c.level = level
	return &c
}

func (q *queryLogger) Info(_ context.Context, s string, args ...any) {
	if q.level >= gorm_logger.Info {
		q.log.Info().Msgf(s, args...)
	}
}

func (q *queryLogger) Warn(_ context.Context, s string, args ...any) {
	if q.level >= gorm_logger.Warn {
		q.log.Warn().Msgf(s, args...)
	}
}

func (q *queryLogger) Error(_ context.Context, s string, args ...any) {
	if q.level >= gorm_logger.Error {
		q.log.Error().Msgf(s, args...)
	}
}

func (q *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if q.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	event := func(e *zerolog.Event) *zerolog.Event {
		return e.Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed)
	}

	switch {
	// Missing records are answered with ErrResourceNotFound, not logged
	case err != nil && !errors.Is(err, gorm_logger.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound):
		event(q.log.Error().Err(err)).Msg("query failed")
	case elapsed > slowQuery && q.level >= gorm_logger.Warn:
		event(q.log.Warn()).Msg("slow query")
	case q.level >= gorm_logger.Info:
		event(q.log.Debug()).Msg("query")
	}
}
