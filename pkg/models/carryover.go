package models

import (
	"errors"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidCarryAction is returned for settlement actions other than carry and reset.
var ErrInvalidCarryAction = errors.New("carry-over action must be one of: carry, reset")

// CarryoverAction is the decision taken for the remaining budget at period close.
type CarryoverAction string

const (
	CarryoverActionCarry CarryoverAction = "carry"
	CarryoverActionReset CarryoverAction = "reset"
)

func (a CarryoverAction) Valid() error {
	if a != CarryoverActionCarry && a != CarryoverActionReset {
		return ErrInvalidCarryAction
	}
	return nil
}

// Carryover records the settlement of a category's remaining budget at the
// end of a period. There is at most one per category and period.
type Carryover struct {
	DefaultModel
	CategoryID      uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:carryover_category_period" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`                // Category that was settled
	FromPeriod      types.Period    `json:"fromPeriod" gorm:"uniqueIndex:carryover_category_period" example:"2025-01"`                                             // Period that was closed
	ToPeriod        types.Period    `json:"toPeriod" example:"2025-02"`                                                                                            // The period after FromPeriod
	RemainingBudget decimal.Decimal `json:"remainingBudget" gorm:"type:TEXT" example:"200000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Remaining budget at settlement time
	CarriedAmount   decimal.Decimal `json:"carriedAmount" gorm:"type:TEXT" example:"150000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`   // Amount moved to ToPeriod, zero on reset
	Action          CarryoverAction `json:"action" example:"carry" enums:"carry,reset"`                                                                            // Settlement decision
	Note            string          `json:"note" example:"Saved for next month" default:""`                                                                        // Free text
}
