package ledger

import (
	"context"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var hundred = decimal.NewFromInt(100)

// Breakdown is the report of a category's budget for a period.
//
// Subsidies never change the Budget record, TotalBudget is always
// OriginalBudget + CarriedOver. The budget a category has after receiving
// subsidies is EffectiveBudget.
type Breakdown struct {
	CategoryID         uuid.UUID       `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // ID of the category
	Period             types.Period    `json:"period" example:"2025-02"`                                  // Period of the report
	OriginalBudget     decimal.Decimal `json:"originalBudget" example:"3000000"`                          // budgetAmount of the Budget
	CarriedOver        decimal.Decimal `json:"carriedOver" example:"0"`                                   // carriedOver of the Budget
	TotalBudget        decimal.Decimal `json:"totalBudget" example:"3000000"`                             // totalBudget of the Budget
	EffectiveBudget    decimal.Decimal `json:"effectiveBudget" example:"3200000"`                         // totalBudget plus subsidies received
	ActualSpent        decimal.Decimal `json:"actualSpent" example:"3200000"`                             // Sum of the category's expenses
	SubsidyReceived    decimal.Decimal `json:"subsidyReceived" example:"200000"`                          // Sum of subsidies the category received
	SubsidyGiven       decimal.Decimal `json:"subsidyGiven" example:"0"`                                  // Sum of subsidies the category gave
	TotalSpent         decimal.Decimal `json:"totalSpent" example:"3200000"`                              // actualSpent plus subsidyGiven
	Remaining          decimal.Decimal `json:"remaining" example:"0"`                                     // Remaining budget
	UtilizationPercent decimal.Decimal `json:"utilizationPercent" example:"106.7"`                        // totalSpent as percentage of the original budget
}

// SetBudget sets the budget of a category for a period, replacing any
// previous amounts. Calling it repeatedly with the same arguments results
// in the same stored budget.
func (l *Ledger) SetBudget(ctx context.Context, categoryID uuid.UUID, period types.Period, budgetAmount, carriedOver decimal.Decimal) (models.Budget, error) {
	defer l.shared()()

	if !period.Valid() {
		return models.Budget{}, ErrInvalidPeriod
	}

	if err := checkAmount("budgetAmount", budgetAmount); err != nil {
		return models.Budget{}, err
	}

	if err := checkAmount("carriedOver", carriedOver); err != nil {
		return models.Budget{}, err
	}

	var budget models.Budget
	err := l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Categories().GetByID(ctx, categoryID); err != nil {
			return err
		}

		existing, err := findBudget(ctx, tx, categoryID, period)
		if err != nil {
			return err
		}

		if existing == nil {
			budget = models.Budget{
				CategoryID:   categoryID,
				Period:       period,
				BudgetAmount: budgetAmount,
				CarriedOver:  carriedOver,
			}
			budget.Stamp(l.timestamp())
			return tx.Budgets().Insert(ctx, &budget)
		}

		err = tx.Budgets().Update(ctx, existing.ID, map[string]any{
			"budget_amount": budgetAmount,
			"carried_over":  carriedOver,
			"total_budget":  budgetAmount.Add(carriedOver),
			"updated_at":    l.timestamp(),
		})
		if err != nil {
			return err
		}

		budget, err = tx.Budgets().GetByID(ctx, existing.ID)
		return err
	})
	if err != nil {
		return models.Budget{}, err
	}

	l.log.Debug().Str("category", categoryID.String()).Str("period", period.String()).Str("total", budget.TotalBudget.String()).Msg("budget set")
	return budget, nil
}

// ListBudgets returns the budgets of a period. All budgets are returned
// when the period is empty.
func (l *Ledger) ListBudgets(ctx context.Context, period types.Period) ([]models.Budget, error) {
	defer l.shared()()

	if period == "" {
		return l.store.Budgets().GetAll(ctx)
	}

	return l.store.Budgets().QueryByField(ctx, "period", period)
}

// BudgetRemaining returns the remaining budget of a category for a period.
//
// It is 0 when no budget has been set for the category and period.
func (l *Ledger) BudgetRemaining(ctx context.Context, categoryID uuid.UUID, period types.Period) (decimal.Decimal, error) {
	b, err := l.BudgetBreakdown(ctx, categoryID, period)
	if err != nil {
		return decimal.Zero, err
	}

	return b.Remaining, nil
}

// BudgetBreakdown returns the budget report of a category for a period.
func (l *Ledger) BudgetBreakdown(ctx context.Context, categoryID uuid.UUID, period types.Period) (Breakdown, error) {
	defer l.shared()()

	var b Breakdown
	err := l.read(ctx, func(tx store.Store) (err error) {
		b, err = breakdown(ctx, tx, categoryID, period)
		return err
	})
	return b, err
}

// findBudget returns the budget of a category for a period or nil.
func findBudget(ctx context.Context, s store.Store, categoryID uuid.UUID, period types.Period) (*models.Budget, error) {
	return s.Budgets().QueryByCompositeKey(ctx, []string{"category_id", "period"}, []any{categoryID, period})
}

// addToBudget adds to the budget of a category for a period. The budget
// is created when it does not exist yet.
func (l *Ledger) addToBudget(ctx context.Context, s store.Store, categoryID uuid.UUID, period types.Period, budgetAmount, carriedOver decimal.Decimal) (models.Budget, error) {
	existing, err := findBudget(ctx, s, categoryID, period)
	if err != nil {
		return models.Budget{}, err
	}

	if existing == nil {
		budget := models.Budget{
			CategoryID:   categoryID,
			Period:       period,
			BudgetAmount: budgetAmount,
			CarriedOver:  carriedOver,
		}
		budget.Stamp(l.timestamp())
		err := s.Budgets().Insert(ctx, &budget)
		return budget, err
	}

	if budgetAmount.IsZero() && carriedOver.IsZero() {
		return *existing, nil
	}

	budget := *existing
	budget.BudgetAmount = budget.BudgetAmount.Add(budgetAmount)
	budget.CarriedOver = budget.CarriedOver.Add(carriedOver)
	budget.TotalBudget = budget.BudgetAmount.Add(budget.CarriedOver)
	budget.UpdatedAt = l.timestamp()

	err = s.Budgets().Update(ctx, budget.ID, map[string]any{
		"budget_amount": budget.BudgetAmount,
		"carried_over":  budget.CarriedOver,
		"total_budget":  budget.TotalBudget,
		"updated_at":    budget.UpdatedAt,
	})
	return budget, err
}

// breakdown computes the budget report of a category for a period.
func breakdown(ctx context.Context, s store.Store, categoryID uuid.UUID, period types.Period) (Breakdown, error) {
	b := Breakdown{
		CategoryID: categoryID,
		Period:     period,
	}

	budget, err := findBudget(ctx, s, categoryID, period)
	if err != nil {
		return Breakdown{}, err
	}

	if budget != nil {
		b.OriginalBudget = budget.BudgetAmount
		b.CarriedOver = budget.CarriedOver
		b.TotalBudget = budget.TotalBudget
	}

	expenses, err := s.Expenses().QueryByField(ctx, "category_id", categoryID)
	if err != nil {
		return Breakdown{}, err
	}
	for _, e := range inPeriod(expenses, period, func(e models.Expense) types.Period { return e.Period }) {
		b.ActualSpent = b.ActualSpent.Add(e.Amount)
	}

	received, err := s.Subsidies().QueryByField(ctx, "to_category_id", categoryID)
	if err != nil {
		return Breakdown{}, err
	}
	for _, sub := range inPeriod(received, period, subsidyPeriod) {
		b.SubsidyReceived = b.SubsidyReceived.Add(sub.Amount)
	}

	given, err := s.Subsidies().QueryByField(ctx, "from_category_id", categoryID)
	if err != nil {
		return Breakdown{}, err
	}
	for _, sub := range inPeriod(given, period, subsidyPeriod) {
		b.SubsidyGiven = b.SubsidyGiven.Add(sub.Amount)
	}

	b.EffectiveBudget = b.TotalBudget.Add(b.SubsidyReceived)
	b.TotalSpent = b.ActualSpent.Add(b.SubsidyGiven)

	// Without a budget there is nothing to spend
	if budget != nil {
		b.Remaining = b.EffectiveBudget.Sub(b.ActualSpent).Sub(b.SubsidyGiven)
	}

	if !b.OriginalBudget.IsZero() {
		b.UtilizationPercent = b.TotalSpent.Div(b.OriginalBudget).Mul(hundred).Round(1)
	}

	return b, nil
}

func subsidyPeriod(s models.Subsidy) types.Period {
	return s.Period
}

// inPeriod removes all records not in the period.
func inPeriod[T any](records []T, period types.Period, periodOf func(T) types.Period) []T {
	return slices.DeleteFunc(records, func(r T) bool {
		return periodOf(r) != period
	})
}
