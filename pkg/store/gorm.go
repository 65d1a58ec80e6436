package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrKeyMismatch is returned when a composite key query has a different
// number of fields and values.
var ErrKeyMismatch = errors.New("the number of key fields and values must match")

const batchSize = 100

type gormStore struct {
	db *gorm.DB
}

// NewGorm returns a Store backed by the gorm database.
//
// The database must have been set up with database.Connect so that the
// schema exists and errors are translated.
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Envelopes() Collection[models.Envelope] {
	return &gormCollection[models.Envelope]{db: s.db}
}

func (s *gormStore) Categories() Collection[models.Category] {
	return &gormCollection[models.Category]{db: s.db}
}

func (s *gormStore) Budgets() Collection[models.Budget] {
	return &gormCollection[models.Budget]{db: s.db}
}

func (s *gormStore) Incomes() Collection[models.Income] {
	return &gormCollection[models.Income]{db: s.db}
}

func (s *gormStore) Allocations() Collection[models.Allocation] {
	return &gormCollection[models.Allocation]{db: s.db}
}

func (s *gormStore) Expenses() Collection[models.Expense] {
	return &gormCollection[models.Expense]{db: s.db}
}

func (s *gormStore) Subsidies() Collection[models.Subsidy] {
	return &gormCollection[models.Subsidy]{db: s.db}
}

func (s *gormStore) Carryovers() Collection[models.Carryover] {
	return &gormCollection[models.Carryover]{db: s.db}
}

func (s *gormStore) MonthlySnapshots() Collection[models.MonthlySnapshot] {
	return &gormCollection[models.MonthlySnapshot]{db: s.db}
}

func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

type gormCollection[T any] struct {
	db *gorm.DB
}

func (c *gormCollection[T]) Insert(ctx context.Context, record *T) error {
	return c.db.WithContext(ctx).Create(record).Error
}

func (c *gormCollection[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var record T
	err := c.db.WithContext(ctx).First(&record, "id = ?", id).Error
	return record, err
}

// Update sets the given columns. Model hooks do not run, callers pass every
// derived column they need changed.
func (c *gormCollection[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	tx := c.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(new(T)).
		Where("id = ?", id).
		Updates(fields)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return c.notFound(ctx, id)
	}

	return nil
}

func (c *gormCollection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	tx := c.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return c.notFound(ctx, id)
	}

	return nil
}

func (c *gormCollection[T]) DeleteWhere(ctx context.Context, field string, value any) error {
	return c.db.WithContext(ctx).
		Where(eq(field, value)).
		Delete(new(T)).
		Error
}

func (c *gormCollection[T]) GetAll(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	err := c.db.WithContext(ctx).Order("rowid").Find(&records).Error
	return records, err
}

func (c *gormCollection[T]) QueryByField(ctx context.Context, field string, value any) ([]T, error) {
	records := make([]T, 0)
	err := c.db.WithContext(ctx).
		Where(eq(field, value)).
		Order("rowid").
		Find(&records).
		Error
	return records, err
}

func (c *gormCollection[T]) QueryByCompositeKey(ctx context.Context, fields []string, values []any) (*T, error) {
	if len(fields) != len(values) {
		return nil, fmt.Errorf("%w: %d fields, %d values", ErrKeyMismatch, len(fields), len(values))
	}

	q := c.db.WithContext(ctx)
	for i, field := range fields {
		q = q.Where(eq(field, values[i]))
	}

	var records []T
	err := q.Limit(1).Find(&records).Error
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, nil
	}

	return &records[0], nil
}

func (c *gormCollection[T]) BulkInsert(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}

	return c.db.WithContext(ctx).CreateInBatches(&records, batchSize).Error
}

func (c *gormCollection[T]) Clear(ctx context.Context) error {
	return c.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(new(T)).
		Error
}

// notFound looks up the record so that the query callback produces
// the not found error for the resource type.
func (c *gormCollection[T]) notFound(ctx context.Context, id uuid.UUID) error {
	err := c.db.WithContext(ctx).Select("id").First(new(T), "id = ?", id).Error
	if err == nil {
		return fmt.Errorf("%w record with id %s", models.ErrResourceNotFound, id)
	}
	return err
}

func eq(field string, value any) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: field}, Value: value}
}
