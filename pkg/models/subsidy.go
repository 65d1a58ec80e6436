package models

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subsidy moves spending capacity from one category to another within a
// period to cover the deficit of an over-budget Expense.
type Subsidy struct {
	DefaultModel
	ExpenseID      uuid.UUID       `json:"expenseId" gorm:"index" example:"0f3b1a94-4c1c-4c3a-8f38-4d8a3e0d2b7e"`                                         // Expense the subsidy covers
	FromCategoryID uuid.UUID       `json:"fromCategoryId" gorm:"index" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                                    // Donor category
	ToCategoryID   uuid.UUID       `json:"toCategoryId" gorm:"index" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`                                      // Recipient category
	Amount         decimal.Decimal `json:"amount" gorm:"type:TEXT" example:"1000000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The deficit that was covered
	Period         types.Period    `json:"period" gorm:"index" example:"2025-02"`                                                                         // Period of the expense
	Note           string          `json:"note" example:"Covered by Food" default:""`                                                                     // Free text
}
