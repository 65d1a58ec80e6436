package importer

import (
	"context"
	"errors"

	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result lists what happened to the rows of a statement.
type Result struct {
	Incomes  []models.Income  `json:"incomes"`  // Incomes created from inflows
	Expenses []models.Expense `json:"expenses"` // Expenses created from outflows
	Rejected []Rejection      `json:"rejected"` // Rows the ledger did not accept
}

// Rejection is a row that could not be booked.
type Rejection struct {
	Row   Row    `json:"row"`
	Error string `json:"error" example:"the category does not have enough remaining budget"`
	Code  string `json:"code,omitempty" example:"INSUFFICIENT_BUDGET"`
}

// Book creates an income for every inflow and an expense on the category
// for every outflow, in the order of the rows.
//
// Expenses are authorized like any other expense. Rows that violate a
// business rule are rejected and booking continues with the next row.
// Every other error aborts the import, rows booked before stay booked.
func Book(ctx context.Context, l *ledger.Ledger, rows []Row, categoryID uuid.UUID) (Result, error) {
	if _, err := l.GetCategory(ctx, categoryID); err != nil {
		return Result{}, err
	}

	result := Result{
		Incomes:  []models.Income{},
		Expenses: []models.Expense{},
		Rejected: []Rejection{},
	}

	for _, row := range rows {
		var err error
		if row.Inflow {
			var income models.Income
			income, err = l.CreateIncome(ctx, ledger.IncomeCreate{
				Date:   row.Date,
				Source: row.Payee,
				Amount: row.Amount,
				Note:   row.Memo,
			})
			if err == nil {
				result.Incomes = append(result.Incomes, income)
				continue
			}
		} else {
			var expense models.Expense
			expense, err = l.CreateExpense(ctx, ledger.ExpenseCreate{
				Date:       row.Date,
				CategoryID: categoryID,
				Amount:     row.Amount,
				Note:       note(row),
			})
			if err == nil {
				result.Expenses = append(result.Expenses, expense)
				continue
			}
		}

		var rule ledger.RuleError
		if !errors.As(err, &rule) {
			return result, err
		}

		result.Rejected = append(result.Rejected, Rejection{Row: row, Error: err.Error(), Code: rule.Code()})
	}

	log.Info().Int("incomes", len(result.Incomes)).Int("expenses", len(result.Expenses)).Int("rejected", len(result.Rejected)).Msg("statement booked")
	return result, nil
}

func note(row Row) string {
	if row.Memo == "" {
		return row.Payee
	}

	return row.Payee + ": " + row.Memo
}
