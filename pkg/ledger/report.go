package ledger

import (
	"context"
	"fmt"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnvelopeTotal returns the sum of the remaining budget of all categories
// in the envelope.
func (l *Ledger) EnvelopeTotal(ctx context.Context, envelopeID uuid.UUID, period types.Period) (decimal.Decimal, error) {
	defer l.shared()()

	var total decimal.Decimal
	err := l.read(ctx, func(tx store.Store) (err error) {
		if _, err := tx.Envelopes().GetByID(ctx, envelopeID); err != nil {
			return err
		}

		total, err = envelopeTotal(ctx, tx, envelopeID, period)
		return err
	})
	return total, err
}

// DashboardSummary returns the aggregate figures of a period.
//
// TotalExpense only contains real expenses, subsidies are not included.
func (l *Ledger) DashboardSummary(ctx context.Context, period types.Period) (models.DashboardSummary, error) {
	defer l.shared()()

	if !period.Valid() {
		return models.DashboardSummary{}, ErrInvalidPeriod
	}

	var sum models.DashboardSummary
	err := l.read(ctx, func(tx store.Store) (err error) {
		sum, err = summary(ctx, tx, period)
		return err
	})
	return sum, err
}

// SaveMonthlySnapshot stores the current DashboardSummary of the period,
// replacing an earlier snapshot.
func (l *Ledger) SaveMonthlySnapshot(ctx context.Context, period types.Period) (models.MonthlySnapshot, error) {
	defer l.shared()()

	if !period.Valid() {
		return models.MonthlySnapshot{}, ErrInvalidPeriod
	}

	var snapshot models.MonthlySnapshot
	err := l.store.Atomic(ctx, func(tx store.Store) error {
		sum, err := summary(ctx, tx, period)
		if err != nil {
			return err
		}

		existing, err := findSnapshot(ctx, tx, period)
		if err != nil {
			return err
		}

		if existing == nil {
			snapshot = models.MonthlySnapshot{DashboardSummary: sum}
			snapshot.Stamp(l.timestamp())
			return tx.MonthlySnapshots().Insert(ctx, &snapshot)
		}

		err = tx.MonthlySnapshots().Update(ctx, existing.ID, map[string]any{
			"total_income":       sum.TotalIncome,
			"total_expense":      sum.TotalExpense,
			"total_budget":       sum.TotalBudget,
			"total_remaining":    sum.TotalRemaining,
			"saved_amount":       sum.SavedAmount,
			"budget_utilization": sum.BudgetUtilization,
			"over_budget_count":  sum.OverBudgetCount,
			"updated_at":         l.timestamp(),
		})
		if err != nil {
			return err
		}

		snapshot, err = tx.MonthlySnapshots().GetByID(ctx, existing.ID)
		return err
	})
	if err != nil {
		return models.MonthlySnapshot{}, err
	}

	l.log.Debug().Str("period", period.String()).Msg("monthly snapshot saved")
	return snapshot, nil
}

// MonthlySnapshot returns the stored snapshot of a period.
func (l *Ledger) MonthlySnapshot(ctx context.Context, period types.Period) (models.MonthlySnapshot, error) {
	defer l.shared()()

	snapshot, err := findSnapshot(ctx, l.store, period)
	if err != nil {
		return models.MonthlySnapshot{}, err
	}

	if snapshot == nil {
		return models.MonthlySnapshot{}, fmt.Errorf("%w monthly snapshot for %s", ErrNotFound, period)
	}

	return *snapshot, nil
}

func findSnapshot(ctx context.Context, s store.Store, period types.Period) (*models.MonthlySnapshot, error) {
	return s.MonthlySnapshots().QueryByCompositeKey(ctx, []string{"period"}, []any{period})
}

func envelopeTotal(ctx context.Context, s store.Store, envelopeID uuid.UUID, period types.Period) (decimal.Decimal, error) {
	categories, err := s.Categories().QueryByField(ctx, "envelope_id", envelopeID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, c := range categories {
		b, err := breakdown(ctx, s, c.ID, period)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(b.Remaining)
	}

	return total, nil
}

// summary computes the DashboardSummary of a period.
func summary(ctx context.Context, s store.Store, period types.Period) (models.DashboardSummary, error) {
	sum := models.DashboardSummary{Period: period}

	incomes, err := s.Incomes().QueryByField(ctx, "period", period)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	for _, i := range incomes {
		sum.TotalIncome = sum.TotalIncome.Add(i.Amount)
	}

	expenses, err := s.Expenses().QueryByField(ctx, "period", period)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	for _, e := range expenses {
		sum.TotalExpense = sum.TotalExpense.Add(e.Amount)
		if e.IsOverBudget {
			sum.OverBudgetCount++
		}
	}

	budgets, err := s.Budgets().QueryByField(ctx, "period", period)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	for _, b := range budgets {
		sum.TotalBudget = sum.TotalBudget.Add(b.TotalBudget)
	}

	envelopes, err := s.Envelopes().GetAll(ctx)
	if err != nil {
		return models.DashboardSummary{}, err
	}
	for _, e := range envelopes {
		total, err := envelopeTotal(ctx, s, e.ID, period)
		if err != nil {
			return models.DashboardSummary{}, err
		}
		sum.TotalRemaining = sum.TotalRemaining.Add(total)
	}

	sum.SavedAmount = sum.TotalIncome.Sub(sum.TotalExpense)
	if !sum.TotalBudget.IsZero() {
		sum.BudgetUtilization = sum.TotalExpense.Div(sum.TotalBudget).Mul(hundred)
	}

	return sum, nil
}
