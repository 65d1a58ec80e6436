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

// AllocationRequest assigns an amount to the budget of a category for a period.
type AllocationRequest struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`    // Category to allocate to
	Period     types.Period    `json:"period" example:"2025-03"`                                     // Period to allocate to
	Amount     decimal.Decimal `json:"amount" example:"1000000" minimum:"0" multipleOf:"0.00000001"` // Amount to allocate
	Note       string          `json:"note" example:"March groceries" default:""`                    // Note for the allocation
}

// AllocateIncomeToBudgets adds each requested amount to the budget of its
// category and period and records an Allocation for it. Requests are
// processed in order and never merged.
//
// If incomeID is set, the Income is marked as allocated afterwards. The
// allocated sum is not compared with the income amount.
func (l *Ledger) AllocateIncomeToBudgets(ctx context.Context, incomeID *uuid.UUID, requests []AllocationRequest, allocationType models.AllocationType) ([]models.Allocation, error) {
	defer l.shared()()

	if err := allocationType.Valid(); err != nil {
		return nil, err
	}

	for i, r := range requests {
		if !r.Period.Valid() {
			return nil, fmt.Errorf("%w: allocation %d has period %q", ErrInvalidPeriod, i, r.Period)
		}

		if err := checkAmount(fmt.Sprintf("allocation %d", i), r.Amount); err != nil {
			return nil, err
		}
	}

	allocations := make([]models.Allocation, 0, len(requests))
	err := l.store.Atomic(ctx, func(tx store.Store) error {
		for _, r := range requests {
			if _, err := tx.Categories().GetByID(ctx, r.CategoryID); err != nil {
				return err
			}

			budget, err := l.addToBudget(ctx, tx, r.CategoryID, r.Period, r.Amount, decimal.Zero)
			if err != nil {
				return err
			}

			allocation := models.Allocation{
				IncomeID: incomeID,
				BudgetID: budget.ID,
				Amount:   r.Amount,
				Type:     allocationType,
				Note:     r.Note,
			}
			allocation.Stamp(l.timestamp())
			if err := tx.Allocations().Insert(ctx, &allocation); err != nil {
				return err
			}

			allocations = append(allocations, allocation)
		}

		if incomeID == nil {
			return nil
		}

		return tx.Incomes().Update(ctx, *incomeID, map[string]any{
			"is_allocated": true,
			"updated_at":   l.timestamp(),
		})
	})
	if err != nil {
		return nil, err
	}

	allocationsTotal.WithLabelValues(string(allocationType)).Add(float64(len(allocations)))
	l.log.Debug().Int("count", len(allocations)).Str("type", string(allocationType)).Msg("allocations created")
	return allocations, nil
}

// ListAllocations returns all allocations, or only those of one income if
// incomeID is set.
func (l *Ledger) ListAllocations(ctx context.Context, incomeID *uuid.UUID) ([]models.Allocation, error) {
	defer l.shared()()

	if incomeID == nil {
		return l.store.Allocations().GetAll(ctx)
	}

	return l.store.Allocations().QueryByField(ctx, "income_id", *incomeID)
}
