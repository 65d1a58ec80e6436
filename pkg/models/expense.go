package models

import (
	"strings"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money spent from a category.
type Expense struct {
	DefaultModel
	Date         string          `json:"date" example:"2025-02-05"`                                                                                     // Date of the expense, ISO 8601
	Period       types.Period    `json:"period" gorm:"index" example:"2025-02"`                                                                         // Derived from the date
	CategoryID   uuid.UUID       `json:"categoryId" gorm:"index" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`                                        // Category the expense is booked on
	Amount       decimal.Decimal `json:"amount" gorm:"type:TEXT" example:"2500000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount spent
	Note         string          `json:"note" example:"Train ticket" default:""`                                                                        // Free text
	IsOverBudget bool            `json:"isOverBudget" example:"false" default:"false"`                                                                  // True if the expense was covered by a subsidy
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if e.Period == "" {
		p, err := types.PeriodOfDate(e.Date)
		if err != nil {
			return err
		}
		e.Period = p
	}

	return nil
}
