package ledger_test

import (
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// spendingScenario books an income, a regular expense and a subsidized
// expense on top of the expense test scenario.
func (suite *TestSuiteStandard) spendingScenario() {
	meals, household := suite.scenario()
	suite.createIncome("2025-02-01", 8500000)

	_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-02-03", CategoryID: meals.ID, Amount: d(2000000)})
	suite.Require().Nil(err)

	_, err = suite.ledger.CreateExpenseWithSubsidy(suite.ctx, ledger.SubsidizedExpenseCreate{
		ExpenseCreate:  ledger.ExpenseCreate{Date: "2025-02-20", CategoryID: meals.ID, Amount: d(1500000)},
		FromCategoryID: household.ID,
	})
	suite.Require().Nil(err)
}

func (suite *TestSuiteStandard) TestEnvelopeTotal() {
	envelope := suite.createEnvelope("Living Cost")
	groceries := suite.createCategory(envelope.ID, "Groceries")
	rent := suite.createCategory(envelope.ID, "Rent")
	other := suite.createCategory(suite.createEnvelope("Fun").ID, "Cinema")

	suite.setBudget(groceries.ID, "2025-03", 400)
	suite.setBudget(rent.ID, "2025-03", 1000)
	suite.setBudget(other.ID, "2025-03", 50)

	_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-03-04", CategoryID: groceries.ID, Amount: d(150)})
	suite.Require().Nil(err)

	total, err := suite.ledger.EnvelopeTotal(suite.ctx, envelope.ID, "2025-03")
	suite.Require().Nil(err)
	suite.assertDecimal(1250, total)

	total, err = suite.ledger.EnvelopeTotal(suite.ctx, envelope.ID, "2025-04")
	suite.Require().Nil(err)
	suite.assertDecimal(0, total, "there are no budgets in 2025-04")

	_, err = suite.ledger.EnvelopeTotal(suite.ctx, uuid.New(), "2025-03")
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
}

func (suite *TestSuiteStandard) TestDashboardSummary() {
	suite.spendingScenario()

	sum, err := suite.ledger.DashboardSummary(suite.ctx, "2025-02")
	suite.Require().Nil(err)

	suite.Assert().Equal("2025-02", sum.Period.String())
	suite.assertDecimal(8500000, sum.TotalIncome)
	suite.assertDecimal(3500000, sum.TotalExpense, "subsidies are not counted as expenses")
	suite.assertDecimal(4000000, sum.TotalBudget)
	suite.assertDecimal(500000, sum.TotalRemaining)
	suite.assertDecimal(5000000, sum.SavedAmount)
	suite.Assert().Equal("87.5", sum.BudgetUtilization.String())
	suite.Assert().Equal(1, sum.OverBudgetCount)
}

func (suite *TestSuiteStandard) TestDashboardSummaryEmptyPeriod() {
	suite.spendingScenario()

	sum, err := suite.ledger.DashboardSummary(suite.ctx, "2024-07")
	suite.Require().Nil(err)
	suite.assertDecimal(0, sum.TotalIncome)
	suite.assertDecimal(0, sum.TotalBudget)
	suite.assertDecimal(0, sum.BudgetUtilization, "utilization is zero without budgets")
	suite.Assert().Equal(0, sum.OverBudgetCount)

	_, err = suite.ledger.DashboardSummary(suite.ctx, "July")
	suite.Assert().ErrorIs(err, ledger.ErrInvalidPeriod)
}

func (suite *TestSuiteStandard) TestMonthlySnapshot() {
	suite.spendingScenario()

	_, err := suite.ledger.MonthlySnapshot(suite.ctx, "2025-02")
	suite.Require().ErrorIs(err, ledger.ErrNotFound)

	first, err := suite.ledger.SaveMonthlySnapshot(suite.ctx, "2025-02")
	suite.Require().Nil(err)
	suite.assertDecimal(3500000, first.TotalExpense)
	suite.Assert().Equal(now, first.CreatedAt)

	suite.createIncome("2025-02-25", 100)

	second, err := suite.ledger.SaveMonthlySnapshot(suite.ctx, "2025-02")
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, second.ID, "the snapshot must be replaced, not duplicated")
	suite.assertDecimal(8500100, second.TotalIncome)

	stored, err := suite.ledger.MonthlySnapshot(suite.ctx, "2025-02")
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, stored.ID)
	suite.assertDecimal(8500100, stored.TotalIncome)
	suite.Assert().Equal(1, stored.OverBudgetCount)
}

// TestDashboardSummaryDuringWrites reads summaries while expenses and
// subsidized expenses are booked. Every summary must describe one
// committed state, in which the remaining budget and the expenses add up
// to the total budget.
func (suite *TestSuiteStandard) TestDashboardSummaryDuringWrites() {
	groceries := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Groceries")
	cinema := suite.createCategory(suite.createEnvelope("Fun").ID, "Cinema")
	suite.setBudget(groceries.ID, "2025-02", 1000)

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 150; i++ {
			_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-02-10", CategoryID: groceries.ID, Amount: d(1)})
			if err != nil {
				return err
			}

			_, err = suite.ledger.CreateExpenseWithSubsidy(suite.ctx, ledger.SubsidizedExpenseCreate{
				ExpenseCreate:  ledger.ExpenseCreate{Date: "2025-02-11", CategoryID: cinema.ID, Amount: d(1)},
				FromCategoryID: groceries.ID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	for i := 0; i < 30; i++ {
		sum, err := suite.ledger.DashboardSummary(suite.ctx, "2025-02")
		suite.Require().Nil(err)
		suite.Assert().True(sum.TotalRemaining.Add(sum.TotalExpense).Equal(sum.TotalBudget), "remaining %s + expenses %s != budget %s", sum.TotalRemaining, sum.TotalExpense, sum.TotalBudget)

		_, err = suite.ledger.CategoriesWithRemainingBudget(suite.ctx, "2025-02")
		suite.Require().Nil(err)
	}

	suite.Require().Nil(g.Wait())

	sum, err := suite.ledger.DashboardSummary(suite.ctx, "2025-02")
	suite.Require().Nil(err)
	suite.assertDecimal(300, sum.TotalExpense)
	suite.assertDecimal(700, sum.TotalRemaining)
}
