// Package database connects to the SQLite database that backs the ledger
// store and keeps its schema up to date.
package database

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/envelope-zero/ledger/pkg/models"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the SQLite database, migrates the schema and registers the
// callbacks that translate database errors.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: newQueryLogger(log.Logger),
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors and makes every
	// transaction exclusive.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(models.Registry...)
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "ledger:after_query", queryCallback},
		{db.Callback().Query().After("*"), "ledger:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "ledger:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "ledger:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "ledger:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "ledger:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "ledger:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	return nil
}

var plural = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = plural.ReplaceAllString(name, "y")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, name)
	}
}

// uniqueConstraints maps the columns of each unique index to the error
// that replaces the database error when the index is violated.
var uniqueConstraints = map[string]error{
	"UNIQUE constraint failed: envelopes.name":                                 models.ErrEnvelopeNameNotUnique,
	"UNIQUE constraint failed: categories.envelope_id, categories.name":        models.ErrCategoryNameNotUnique,
	"UNIQUE constraint failed: budgets.category_id, budgets.period":            models.ErrBudgetPeriodNotUnique,
	"UNIQUE constraint failed: carryovers.category_id, carryovers.from_period": models.ErrCarryoverNotUnique,
	"UNIQUE constraint failed: monthly_snapshots.period":                       models.ErrMonthlySnapshotNotUnique,
}

// createUpdateCallback wraps unique constraint violations in the sentinel
// of the violated index. The database error stays in the chain.
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if sentinel := uniqueViolation(db.Error); sentinel != nil && !errors.Is(db.Error, sentinel) {
		db.Error = fmt.Errorf("%w: %w", sentinel, db.Error)
	}
}

// uniqueViolation returns the sentinel for the unique index err violates,
// nil if it does not violate one.
func uniqueViolation(err error) error {
	for constraint, sentinel := range uniqueConstraints {
		if strings.Contains(err.Error(), constraint) {
			return sentinel
		}
	}

	return nil
}

// generalCallback marks database failures the user cannot act on.
//
// They are logged and wrapped in ErrGeneral so that they are reported as
// server errors. The database error stays in the chain.
func generalCallback(db *gorm.DB) {
	if db.Error == nil || errors.Is(db.Error, models.ErrGeneral) || uniqueViolation(db.Error) != nil {
		return
	}

	var sqliteErr *go_sqlite.Error

	// "sql: database is closed" is hard-coded in the sql module
	if errors.As(db.Error, &sqliteErr) || strings.HasSuffix(db.Error.Error(), "sql: database is closed") {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = fmt.Errorf("%w: %w", models.ErrGeneral, db.Error)
	}
}
