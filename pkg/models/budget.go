package models

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the nominal budget of a category for a single period.
//
// TotalBudget is always BudgetAmount + CarriedOver. It is recomputed
// whenever the record is saved through a struct.
type Budget struct {
	DefaultModel
	CategoryID   uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:budget_category_period" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`                 // ID of the category the budget is for
	Period       types.Period    `json:"period" gorm:"uniqueIndex:budget_category_period" example:"2025-02"`                                                  // Period of the budget in YYYY-MM format
	BudgetAmount decimal.Decimal `json:"budgetAmount" gorm:"type:TEXT" example:"3000000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount allocated from income
	CarriedOver  decimal.Decimal `json:"carriedOver" gorm:"type:TEXT" example:"150000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`   // Amount carried over from the previous period
	TotalBudget  decimal.Decimal `json:"totalBudget" gorm:"type:TEXT" example:"3150000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`  // Sum of budgetAmount and carriedOver
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.TotalBudget = b.BudgetAmount.Add(b.CarriedOver)
	return nil
}
