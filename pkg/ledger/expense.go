package ledger

import (
	"context"
	"errors"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
)

// ExpenseCreate contains the data for a new expense.
type ExpenseCreate struct {
	Date       string          `json:"date" example:"2025-02-05"`                                    // Date of the expense, ISO 8601
	CategoryID uuid.UUID       `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`    // Category to book the expense on
	Amount     decimal.Decimal `json:"amount" example:"3200000" minimum:"0" multipleOf:"0.00000001"` // Amount spent
	Note       string          `json:"note" example:"Lunch" default:""`                              // Free text
}

// SubsidizedExpenseCreate contains the data for an expense whose deficit is
// covered by another category.
type SubsidizedExpenseCreate struct {
	ExpenseCreate
	FromCategoryID uuid.UUID `json:"fromCategoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // Donor category
	SubsidyNote    string    `json:"subsidyNote" example:"Borrowed from Food" default:""`           // Note for the subsidy
}

// SubsidizedExpense is the result of CreateExpenseWithSubsidy.
type SubsidizedExpense struct {
	ExpenseID uuid.UUID       `json:"expenseId"`
	SubsidyID uuid.UUID       `json:"subsidyId"`
	Deficit   decimal.Decimal `json:"deficit"`
	Expense   models.Expense  `json:"expense"`
	Subsidy   models.Subsidy  `json:"subsidy"`
}

// CreateExpense books an expense if the remaining budget of its category
// covers it. Otherwise, an *InsufficientBudgetError is returned and nothing
// is written.
func (l *Ledger) CreateExpense(ctx context.Context, in ExpenseCreate) (models.Expense, error) {
	defer l.shared()()

	period, err := types.PeriodOfDate(in.Date)
	if err != nil {
		return models.Expense{}, err
	}

	if err := checkAmount("amount", in.Amount); err != nil {
		return models.Expense{}, err
	}

	var expense models.Expense
	err = l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Categories().GetByID(ctx, in.CategoryID); err != nil {
			return err
		}

		b, err := breakdown(ctx, tx, in.CategoryID, period)
		if err != nil {
			return err
		}

		if b.Remaining.LessThan(in.Amount) {
			return &InsufficientBudgetError{
				CategoryID: in.CategoryID,
				Period:     period,
				Required:   in.Amount,
				Available:  b.Remaining,
			}
		}

		expense = models.Expense{
			Date:       in.Date,
			Period:     period,
			CategoryID: in.CategoryID,
			Amount:     in.Amount,
			Note:       in.Note,
		}
		expense.Stamp(l.timestamp())
		return tx.Expenses().Insert(ctx, &expense)
	})
	if err != nil {
		var insufficient *InsufficientBudgetError
		if errors.As(err, &insufficient) {
			l.log.Info().Str("category", in.CategoryID.String()).Str("required", in.Amount.String()).Str("available", insufficient.Available.String()).Msg("expense rejected")
			rejectionsTotal.WithLabelValues(insufficient.Code()).Inc()
		}
		return models.Expense{}, err
	}

	expensesTotal.WithLabelValues("authorized").Inc()
	l.log.Debug().Str("id", expense.ID.String()).Str("category", in.CategoryID.String()).Str("amount", in.Amount.String()).Msg("expense created")
	return expense, nil
}

// CreateExpenseWithSubsidy books an expense and covers what the remaining
// budget of its category lacks with a subsidy from the donor category.
//
// The deficit is never negative. If the category can cover the expense on
// its own, a subsidy of 0 is recorded. Budgets are not modified, the
// subsidy only counts towards the remaining budget of both categories.
func (l *Ledger) CreateExpenseWithSubsidy(ctx context.Context, in SubsidizedExpenseCreate) (SubsidizedExpense, error) {
	defer l.shared()()

	period, err := types.PeriodOfDate(in.Date)
	if err != nil {
		return SubsidizedExpense{}, err
	}

	if err := checkAmount("amount", in.Amount); err != nil {
		return SubsidizedExpense{}, err
	}

	if in.FromCategoryID == in.CategoryID {
		return SubsidizedExpense{}, ErrSameCategory
	}

	var result SubsidizedExpense
	err = l.store.Atomic(ctx, func(tx store.Store) error {
		for _, id := range []uuid.UUID{in.CategoryID, in.FromCategoryID} {
			if _, err := tx.Categories().GetByID(ctx, id); err != nil {
				return err
			}
		}

		recipient, err := breakdown(ctx, tx, in.CategoryID, period)
		if err != nil {
			return err
		}

		deficit := decimal.Max(in.Amount.Sub(recipient.Remaining), decimal.Zero)

		donor, err := breakdown(ctx, tx, in.FromCategoryID, period)
		if err != nil {
			return err
		}

		if donor.Remaining.LessThan(deficit) {
			return &DonorBudgetInsufficientError{
				FromCategoryID: in.FromCategoryID,
				Period:         period,
				Deficit:        deficit,
				Available:      donor.Remaining,
			}
		}

		// The recipient needs a budget for the subsidy to count
		_, err = l.addToBudget(ctx, tx, in.CategoryID, period, decimal.Zero, decimal.Zero)
		if err != nil {
			return err
		}

		now := l.timestamp()
		expense := models.Expense{
			Date:         in.Date,
			Period:       period,
			CategoryID:   in.CategoryID,
			Amount:       in.Amount,
			Note:         in.Note,
			IsOverBudget: true,
		}
		expense.Stamp(now)
		if err := tx.Expenses().Insert(ctx, &expense); err != nil {
			return err
		}

		subsidy := models.Subsidy{
			ExpenseID:      expense.ID,
			FromCategoryID: in.FromCategoryID,
			ToCategoryID:   in.CategoryID,
			Amount:         deficit,
			Period:         period,
			Note:           in.SubsidyNote,
		}
		subsidy.Stamp(now)
		if err := tx.Subsidies().Insert(ctx, &subsidy); err != nil {
			return err
		}

		result = SubsidizedExpense{
			ExpenseID: expense.ID,
			SubsidyID: subsidy.ID,
			Deficit:   deficit,
			Expense:   expense,
			Subsidy:   subsidy,
		}
		return nil
	})
	if err != nil {
		var insufficient *DonorBudgetInsufficientError
		if errors.As(err, &insufficient) {
			l.log.Info().Str("donor", in.FromCategoryID.String()).Str("deficit", insufficient.Deficit.String()).Str("available", insufficient.Available.String()).Msg("subsidy rejected")
			rejectionsTotal.WithLabelValues(insufficient.Code()).Inc()
		}
		return SubsidizedExpense{}, err
	}

	expensesTotal.WithLabelValues("subsidized").Inc()
	l.log.Debug().Str("id", result.ExpenseID.String()).Str("category", in.CategoryID.String()).Str("donor", in.FromCategoryID.String()).Str("deficit", result.Deficit.String()).Msg("subsidized expense created")
	return result, nil
}

// DeleteExpense deletes an expense and the subsidies created for it.
//
// Budgets are left as they are. Since subsidies only count towards the
// remaining budget, the remaining budget of both donor and recipient is
// restored.
func (l *Ledger) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	defer l.shared()()

	err := l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Expenses().GetByID(ctx, id); err != nil {
			return err
		}

		if err := tx.Subsidies().DeleteWhere(ctx, "expense_id", id); err != nil {
			return err
		}

		return tx.Expenses().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	l.log.Debug().Str("id", id.String()).Msg("expense deleted")
	return nil
}

// GetExpense returns a single expense.
func (l *Ledger) GetExpense(ctx context.Context, id uuid.UUID) (models.Expense, error) {
	defer l.shared()()

	return l.store.Expenses().GetByID(ctx, id)
}

// ListExpenses returns the expenses of a period, all expenses if the
// period is empty. If note is set, only expenses whose note matches the
// glob pattern are returned.
func (l *Ledger) ListExpenses(ctx context.Context, period types.Period, note string) ([]models.Expense, error) {
	defer l.shared()()

	var list []models.Expense
	var err error
	if period == "" {
		list, err = l.store.Expenses().GetAll(ctx)
	} else {
		list, err = l.store.Expenses().QueryByField(ctx, "period", period)
	}
	if err != nil {
		return nil, err
	}

	if note == "" {
		return list, nil
	}

	filtered := make([]models.Expense, 0, len(list))
	for _, e := range list {
		if glob.Glob(note, e.Note) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

// ListSubsidies returns the subsidies of a period, all subsidies if the
// period is empty.
func (l *Ledger) ListSubsidies(ctx context.Context, period types.Period) ([]models.Subsidy, error) {
	defer l.shared()()

	if period == "" {
		return l.store.Subsidies().GetAll(ctx)
	}

	return l.store.Subsidies().QueryByField(ctx, "period", period)
}
