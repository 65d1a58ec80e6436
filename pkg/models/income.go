package models

import (
	"strings"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is money received on a date, e.g. a salary payment.
type Income struct {
	DefaultModel
	Date        string          `json:"date" example:"2025-02-01"`                                                                                     // Date the income was received, ISO 8601
	Period      types.Period    `json:"period" gorm:"index" example:"2025-02"`                                                                         // Derived from the date
	Source      string          `json:"source" example:"Salary" default:""`                                                                            // Where the money came from
	Amount      decimal.Decimal `json:"amount" gorm:"type:TEXT" example:"8500000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount received
	Note        string          `json:"note" example:"February salary" default:""`                                                                     // Free text
	IsAllocated bool            `json:"isAllocated" example:"false" default:"false"`                                                                   // Set once the income has been distributed to budgets
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Source = strings.TrimSpace(i.Source)
	i.Note = strings.TrimSpace(i.Note)

	if i.Period == "" {
		p, err := types.PeriodOfDate(i.Date)
		if err != nil {
			return err
		}
		i.Period = p
	}

	return nil
}
