package ledger

import (
	"context"
	"errors"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement is the result of ProcessCarryOver.
type Settlement struct {
	CategoryID      uuid.UUID          `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // Category that was settled
	FromPeriod      types.Period       `json:"fromPeriod" example:"2025-03"`                              // Period that was closed
	ToPeriod        types.Period       `json:"toPeriod" example:"2025-04"`                                // The next period
	RemainingBudget decimal.Decimal    `json:"remainingBudget" example:"500000"`                          // Remaining budget at settlement time
	NothingToCarry  bool               `json:"nothingToCarry" example:"false"`                            // True if there was no remaining budget. Nothing was written in this case.
	Carryover       *models.Carryover  `json:"carryover"`                                                 // The settlement record
	Budget          *models.Budget     `json:"budget"`                                                    // The budget of the next period, if an amount was carried
	Allocation      *models.Allocation `json:"allocation"`                                                // The carry-over allocation, if an amount was carried
}

// CategoryRemaining pairs a category with its budget report.
type CategoryRemaining struct {
	Category  models.Category `json:"category"`
	Breakdown Breakdown       `json:"breakdown"`
}

// ProcessCarryOver settles the remaining budget of a category at the end
// of a period.
//
// With the carry action, carriedAmount (or the whole remaining budget if
// it is nil) is added to the carriedOver amount of the next period's
// budget. With the reset action, the remaining budget is forfeited. Either
// way, the decision is recorded as a Carryover. A category can only be
// settled once per period.
func (l *Ledger) ProcessCarryOver(ctx context.Context, categoryID uuid.UUID, fromPeriod types.Period, action models.CarryoverAction, carriedAmount *decimal.Decimal) (Settlement, error) {
	defer l.shared()()

	if err := action.Valid(); err != nil {
		return Settlement{}, err
	}

	if !fromPeriod.Valid() {
		return Settlement{}, ErrInvalidPeriod
	}

	if carriedAmount != nil {
		if err := checkAmount("carriedAmount", *carriedAmount); err != nil {
			return Settlement{}, err
		}
	}

	s := Settlement{
		CategoryID: categoryID,
		FromPeriod: fromPeriod,
		ToPeriod:   fromPeriod.Next(),
	}

	err := l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Categories().GetByID(ctx, categoryID); err != nil {
			return err
		}

		b, err := breakdown(ctx, tx, categoryID, fromPeriod)
		if err != nil {
			return err
		}
		s.RemainingBudget = b.Remaining

		if !b.Remaining.IsPositive() {
			s.NothingToCarry = true
			return nil
		}

		amount := b.Remaining
		if carriedAmount != nil {
			amount = *carriedAmount
		}

		if amount.GreaterThan(b.Remaining) {
			return &ExcessCarryAmountError{
				CategoryID: categoryID,
				Period:     fromPeriod,
				Requested:  amount,
				Available:  b.Remaining,
			}
		}

		if action == models.CarryoverActionReset {
			amount = decimal.Zero
		}

		now := l.timestamp()
		carryover := models.Carryover{
			CategoryID:      categoryID,
			FromPeriod:      fromPeriod,
			ToPeriod:        s.ToPeriod,
			RemainingBudget: b.Remaining,
			CarriedAmount:   amount,
			Action:          action,
		}
		carryover.Stamp(now)
		if err := tx.Carryovers().Insert(ctx, &carryover); err != nil {
			return err
		}
		s.Carryover = &carryover

		if !amount.IsPositive() {
			return nil
		}

		budget, err := l.addToBudget(ctx, tx, categoryID, s.ToPeriod, decimal.Zero, amount)
		if err != nil {
			return err
		}
		s.Budget = &budget

		allocation := models.Allocation{
			BudgetID: budget.ID,
			Amount:   amount,
			Type:     models.AllocationTypeCarryover,
			Note:     "Carry-over from " + fromPeriod.String(),
		}
		allocation.Stamp(now)
		if err := tx.Allocations().Insert(ctx, &allocation); err != nil {
			return err
		}
		s.Allocation = &allocation

		return nil
	})
	if err != nil {
		var rule RuleError
		if errors.As(err, &rule) {
			l.log.Info().Str("category", categoryID.String()).Str("period", fromPeriod.String()).Err(err).Msg("carry-over rejected")
			rejectionsTotal.WithLabelValues(rule.Code()).Inc()
		}
		return Settlement{}, err
	}

	if s.NothingToCarry {
		l.log.Debug().Str("category", categoryID.String()).Str("period", fromPeriod.String()).Msg("nothing to carry")
		return s, nil
	}

	carryoversTotal.WithLabelValues(string(action)).Inc()
	l.log.Debug().Str("category", categoryID.String()).Str("period", fromPeriod.String()).Str("action", string(action)).Str("carried", s.Carryover.CarriedAmount.String()).Msg("carry-over processed")
	return s, nil
}

// CategoriesWithRemainingBudget returns all categories with a positive
// remaining budget in the period, in the order they were created.
func (l *Ledger) CategoriesWithRemainingBudget(ctx context.Context, period types.Period) ([]CategoryRemaining, error) {
	defer l.shared()()

	if !period.Valid() {
		return nil, ErrInvalidPeriod
	}

	result := make([]CategoryRemaining, 0)
	err := l.read(ctx, func(tx store.Store) error {
		categories, err := tx.Categories().GetAll(ctx)
		if err != nil {
			return err
		}

		for _, c := range categories {
			b, err := breakdown(ctx, tx, c.ID, period)
			if err != nil {
				return err
			}

			if b.Remaining.IsPositive() {
				result = append(result, CategoryRemaining{Category: c, Breakdown: b})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListCarryovers returns the settlements of a period, all settlements if
// the period is empty.
func (l *Ledger) ListCarryovers(ctx context.Context, fromPeriod types.Period) ([]models.Carryover, error) {
	defer l.shared()()

	if fromPeriod == "" {
		return l.store.Carryovers().GetAll(ctx)
	}

	return l.store.Carryovers().QueryByField(ctx, "from_period", fromPeriod)
}
