package ledger

import (
	"context"
	"time"

	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
)

// BackupVersion is the version of the backup format written by Export.
const BackupVersion = "1.0"

// Backup contains all records of the ledger.
type Backup struct {
	Version          string                   `json:"version" example:"1.0"`
	ExportDate       time.Time                `json:"exportDate" example:"2025-03-01T08:00:00Z"`
	Envelopes        []models.Envelope        `json:"envelopes"`
	Categories       []models.Category        `json:"categories"`
	Budgets          []models.Budget          `json:"budgets"`
	Incomes          []models.Income          `json:"incomes"`
	Allocations      []models.Allocation      `json:"allocations"`
	Expenses         []models.Expense         `json:"expenses"`
	Subsidies        []models.Subsidy         `json:"subsidies"`
	Carryovers       []models.Carryover       `json:"carryovers"`
	MonthlySnapshots []models.MonthlySnapshot `json:"monthlySnapshots"`
}

// Export returns all records. No other operation runs while the export
// is in progress.
func (l *Ledger) Export(ctx context.Context) (Backup, error) {
	defer l.exclusive()()

	b := Backup{
		Version:    BackupVersion,
		ExportDate: l.timestamp(),
	}

	var err error
	if b.Envelopes, err = l.store.Envelopes().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Categories, err = l.store.Categories().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Budgets, err = l.store.Budgets().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Incomes, err = l.store.Incomes().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Allocations, err = l.store.Allocations().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Expenses, err = l.store.Expenses().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Subsidies, err = l.store.Subsidies().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.Carryovers, err = l.store.Carryovers().GetAll(ctx); err != nil {
		return Backup{}, err
	}
	if b.MonthlySnapshots, err = l.store.MonthlySnapshots().GetAll(ctx); err != nil {
		return Backup{}, err
	}

	l.log.Info().Int("envelopes", len(b.Envelopes)).Int("expenses", len(b.Expenses)).Msg("ledger exported")
	return b, nil
}

// Import replaces all records with the ones in the backup. Record IDs and
// timestamps are kept. No other operation runs while the import is in
// progress.
func (l *Ledger) Import(ctx context.Context, b Backup) error {
	defer l.exclusive()()

	if b.Version == "" {
		return &InvalidBackupFormatError{Reason: "the version is missing"}
	}

	if b.Envelopes == nil {
		return &InvalidBackupFormatError{Reason: "the envelopes are missing"}
	}

	err := l.store.Atomic(ctx, func(tx store.Store) error {
		clears := []func(context.Context) error{
			tx.MonthlySnapshots().Clear,
			tx.Carryovers().Clear,
			tx.Subsidies().Clear,
			tx.Expenses().Clear,
			tx.Allocations().Clear,
			tx.Incomes().Clear,
			tx.Budgets().Clear,
			tx.Categories().Clear,
			tx.Envelopes().Clear,
		}
		for _, clearTable := range clears {
			if err := clearTable(ctx); err != nil {
				return err
			}
		}

		inserts := []func() error{
			func() error { return tx.Envelopes().BulkInsert(ctx, b.Envelopes) },
			func() error { return tx.Categories().BulkInsert(ctx, b.Categories) },
			func() error { return tx.Budgets().BulkInsert(ctx, b.Budgets) },
			func() error { return tx.Incomes().BulkInsert(ctx, b.Incomes) },
			func() error { return tx.Allocations().BulkInsert(ctx, b.Allocations) },
			func() error { return tx.Expenses().BulkInsert(ctx, b.Expenses) },
			func() error { return tx.Subsidies().BulkInsert(ctx, b.Subsidies) },
			func() error { return tx.Carryovers().BulkInsert(ctx, b.Carryovers) },
			func() error { return tx.MonthlySnapshots().BulkInsert(ctx, b.MonthlySnapshots) },
		}
		for _, insert := range inserts {
			if err := insert(); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	l.log.Info().Str("version", b.Version).Time("exportDate", b.ExportDate).Int("envelopes", len(b.Envelopes)).Msg("ledger imported")
	return nil
}
