package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidAllocationType is returned for allocation types other than income and carryover.
var ErrInvalidAllocationType = errors.New("allocation type must be one of: income, carryover")

// AllocationType tells where the money of an Allocation came from.
type AllocationType string

const (
	AllocationTypeIncome    AllocationType = "income"
	AllocationTypeCarryover AllocationType = "carryover"
)

func (t AllocationType) Valid() error {
	if t != AllocationTypeIncome && t != AllocationTypeCarryover {
		return ErrInvalidAllocationType
	}
	return nil
}

// Allocation records money assigned to a Budget.
//
// IncomeID is nil for carry-over allocations. It is not checked for
// existence, deleting an Income leaves its allocations in place.
type Allocation struct {
	DefaultModel
	IncomeID *uuid.UUID      `json:"incomeId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`                                                       // Income the money came from
	BudgetID uuid.UUID       `json:"budgetId" gorm:"index" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`                                          // Budget the money was assigned to
	Amount   decimal.Decimal `json:"amount" gorm:"type:TEXT" example:"3000000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount allocated
	Type     AllocationType  `json:"type" example:"income" enums:"income,carryover"`                                                                // Source of the allocation
	Note     string          `json:"note" example:"Monthly allocation" default:""`                                                                  // Free text
}
