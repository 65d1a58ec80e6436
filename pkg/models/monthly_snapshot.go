package models

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/shopspring/decimal"
)

// DashboardSummary contains the aggregate figures of a period.
type DashboardSummary struct {
	Period            types.Period    `json:"period" gorm:"uniqueIndex:monthly_snapshot_period" example:"2025-02"` // Period the figures are for
	TotalIncome       decimal.Decimal `json:"totalIncome" gorm:"type:TEXT" example:"8500000"`                      // Sum of all income
	TotalExpense      decimal.Decimal `json:"totalExpense" gorm:"type:TEXT" example:"6200000"`                     // Sum of all expenses, subsidies excluded
	TotalBudget       decimal.Decimal `json:"totalBudget" gorm:"type:TEXT" example:"8000000"`                      // Sum of the totalBudget of all budgets
	TotalRemaining    decimal.Decimal `json:"totalRemaining" gorm:"type:TEXT" example:"1800000"`                   // Sum of the remaining budget of all envelopes
	SavedAmount       decimal.Decimal `json:"savedAmount" gorm:"type:TEXT" example:"2300000"`                      // totalIncome minus totalExpense
	BudgetUtilization decimal.Decimal `json:"budgetUtilization" gorm:"type:TEXT" example:"77.5"`                   // totalExpense as percentage of totalBudget
	OverBudgetCount   int             `json:"overBudgetCount" example:"1"`                                         // Number of expenses covered by a subsidy
}

// MonthlySnapshot is a persisted DashboardSummary. There is at most one per period.
type MonthlySnapshot struct {
	DefaultModel
	DashboardSummary
}
