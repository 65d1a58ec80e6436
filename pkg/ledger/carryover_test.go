package ledger_test

import (
	"errors"

	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// settlementScenario creates a category with a remaining budget of 500,000
// at the end of 2025-03.
func (suite *TestSuiteStandard) settlementScenario() models.Category {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")
	suite.setBudget(category.ID, "2025-03", 800000)

	_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-03-12", CategoryID: category.ID, Amount: d(300000)})
	suite.Require().Nil(err)
	suite.assertDecimal(500000, suite.remaining(category.ID, "2025-03"))

	return category
}

func (suite *TestSuiteStandard) TestCarryPartialAmount() {
	category := suite.settlementScenario()
	amount := d(300000)

	s, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, &amount)
	suite.Require().Nil(err)
	suite.Assert().False(s.NothingToCarry)
	suite.Assert().Equal("2025-04", s.ToPeriod.String())
	suite.assertDecimal(500000, s.RemainingBudget)

	suite.Require().NotNil(s.Carryover)
	suite.Assert().Equal(models.CarryoverActionCarry, s.Carryover.Action)
	suite.assertDecimal(300000, s.Carryover.CarriedAmount)
	suite.assertDecimal(500000, s.Carryover.RemainingBudget)
	suite.Assert().Equal("2025-03", s.Carryover.FromPeriod.String())
	suite.Assert().Equal("2025-04", s.Carryover.ToPeriod.String())

	b, err := suite.ledger.BudgetBreakdown(suite.ctx, category.ID, "2025-04")
	suite.Require().Nil(err)
	suite.assertDecimal(0, b.OriginalBudget, "carry-over must not touch the budget amount")
	suite.assertDecimal(300000, b.CarriedOver)
	suite.assertDecimal(300000, b.TotalBudget)

	suite.Require().NotNil(s.Allocation)
	suite.Assert().Nil(s.Allocation.IncomeID)
	suite.Assert().Equal(models.AllocationTypeCarryover, s.Allocation.Type)
	suite.Assert().Equal(s.Budget.ID, s.Allocation.BudgetID)
	suite.assertDecimal(300000, s.Allocation.Amount)
	suite.assertBudgetTotals()
}

func (suite *TestSuiteStandard) TestCarryIntoExistingBudget() {
	category := suite.settlementScenario()
	suite.setBudget(category.ID, "2025-04", 1000000)

	_, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, nil)
	suite.Require().Nil(err)

	b, err := suite.ledger.BudgetBreakdown(suite.ctx, category.ID, "2025-04")
	suite.Require().Nil(err)
	suite.assertDecimal(1000000, b.OriginalBudget)
	suite.assertDecimal(500000, b.CarriedOver, "the whole remaining budget is carried by default")
	suite.assertDecimal(1500000, b.TotalBudget)
	suite.assertBudgetTotals()
}

func (suite *TestSuiteStandard) TestCarryExcessAmount() {
	category := suite.settlementScenario()
	amount := d(600000)

	_, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, &amount)
	suite.Require().ErrorIs(err, ledger.ErrExcessCarryAmount)

	var excess *ledger.ExcessCarryAmountError
	suite.Require().True(errors.As(err, &excess))
	suite.assertDecimal(600000, excess.Requested)
	suite.assertDecimal(500000, excess.Available)

	carryovers, err := suite.ledger.ListCarryovers(suite.ctx, "2025-03")
	suite.Require().Nil(err)
	suite.Assert().Len(carryovers, 0)

	budgets, err := suite.ledger.ListBudgets(suite.ctx, "2025-04")
	suite.Require().Nil(err)
	suite.Assert().Len(budgets, 0)
}

func (suite *TestSuiteStandard) TestReset() {
	category := suite.settlementScenario()

	s, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionReset, nil)
	suite.Require().Nil(err)
	suite.Require().NotNil(s.Carryover)
	suite.Assert().Equal(models.CarryoverActionReset, s.Carryover.Action)
	suite.assertDecimal(0, s.Carryover.CarriedAmount)
	suite.assertDecimal(500000, s.Carryover.RemainingBudget)
	suite.Assert().Nil(s.Budget)
	suite.Assert().Nil(s.Allocation)

	budgets, err := suite.ledger.ListBudgets(suite.ctx, "2025-04")
	suite.Require().Nil(err)
	suite.Assert().Len(budgets, 0, "a reset must not create a budget")
}

func (suite *TestSuiteStandard) TestNothingToCarry() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")
	suite.setBudget(category.ID, "2025-03", 100)

	_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-03-12", CategoryID: category.ID, Amount: d(100)})
	suite.Require().Nil(err)

	s, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, nil)
	suite.Require().Nil(err)
	suite.Assert().True(s.NothingToCarry)
	suite.Assert().Nil(s.Carryover)

	carryovers, err := suite.ledger.ListCarryovers(suite.ctx, "")
	suite.Require().Nil(err)
	suite.Assert().Len(carryovers, 0)
}

func (suite *TestSuiteStandard) TestSettleTwice() {
	category := suite.settlementScenario()
	amount := d(100000)

	_, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, &amount)
	suite.Require().Nil(err)

	_, err = suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, &amount)
	suite.Assert().ErrorIs(err, ledger.ErrCarryoverExists)

	b, err := suite.ledger.BudgetBreakdown(suite.ctx, category.ID, "2025-04")
	suite.Require().Nil(err)
	suite.assertDecimal(100000, b.CarriedOver, "the failed settlement must not have carried anything")
}

func (suite *TestSuiteStandard) TestCarryOverYearEnd() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")
	suite.setBudget(category.ID, "2025-12", 100)

	s, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-12", models.CarryoverActionCarry, nil)
	suite.Require().Nil(err)
	suite.Assert().Equal("2026-01", s.ToPeriod.String())
	suite.assertDecimal(100, suite.remaining(category.ID, "2026-01"))
}

func (suite *TestSuiteStandard) TestCarryOverValidation() {
	category := suite.settlementScenario()
	negative := decimal.NewFromInt(-1)

	_, err := suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", "keep", nil)
	suite.Assert().ErrorIs(err, ledger.ErrInvalidCarryAction)

	_, err = suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-3", models.CarryoverActionCarry, nil)
	suite.Assert().ErrorIs(err, ledger.ErrInvalidPeriod)

	_, err = suite.ledger.ProcessCarryOver(suite.ctx, category.ID, "2025-03", models.CarryoverActionCarry, &negative)
	suite.Assert().ErrorIs(err, ledger.ErrNegativeAmount)
}

func (suite *TestSuiteStandard) TestCategoriesWithRemainingBudget() {
	envelope := suite.createEnvelope("Living Cost")
	transport := suite.createCategory(envelope.ID, "Transport")
	empty := suite.createCategory(envelope.ID, "Empty")
	spent := suite.createCategory(envelope.ID, "Spent")
	food := suite.createCategory(suite.createEnvelope("Food").ID, "Groceries")

	suite.setBudget(transport.ID, "2025-03", 300)
	suite.setBudget(spent.ID, "2025-03", 50)
	suite.setBudget(food.ID, "2025-03", 700)

	_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-03-02", CategoryID: spent.ID, Amount: d(50)})
	suite.Require().Nil(err)

	result, err := suite.ledger.CategoriesWithRemainingBudget(suite.ctx, "2025-03")
	suite.Require().Nil(err)
	suite.Require().Len(result, 2)

	suite.Assert().Equal(transport.ID, result[0].Category.ID)
	suite.assertDecimal(300, result[0].Breakdown.Remaining)
	suite.Assert().Equal(food.ID, result[1].Category.ID)
	suite.assertDecimal(700, result[1].Breakdown.Remaining)

	for _, r := range result {
		suite.Assert().NotEqual(empty.ID, r.Category.ID)
	}
}
