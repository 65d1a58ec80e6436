// Package store defines the persistence contract of the ledger and its
// implementation on top of gorm.
package store

import (
	"context"

	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/google/uuid"
)

// Collection is the set of operations available for one kind of record.
//
// GetAll and QueryByField return records in insertion order.
// QueryByCompositeKey returns nil without an error when no record matches.
type Collection[T any] interface {
	Insert(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWhere(ctx context.Context, field string, value any) error
	GetAll(ctx context.Context) ([]T, error)
	QueryByField(ctx context.Context, field string, value any) ([]T, error)
	QueryByCompositeKey(ctx context.Context, fields []string, values []any) (*T, error)
	BulkInsert(ctx context.Context, records []T) error
	Clear(ctx context.Context) error
}

// Store gives access to all collections of the ledger.
type Store interface {
	Envelopes() Collection[models.Envelope]
	Categories() Collection[models.Category]
	Budgets() Collection[models.Budget]
	Incomes() Collection[models.Income]
	Allocations() Collection[models.Allocation]
	Expenses() Collection[models.Expense]
	Subsidies() Collection[models.Subsidy]
	Carryovers() Collection[models.Carryover]
	MonthlySnapshots() Collection[models.MonthlySnapshot]

	// Atomic runs fn with a Store whose operations either all persist or,
	// when fn returns an error, none do.
	Atomic(ctx context.Context, fn func(Store) error) error

	// Ping verifies that the database is reachable.
	Ping(ctx context.Context) error
}
