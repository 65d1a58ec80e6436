package ledger_test

import (
	"errors"
	"testing"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSetBudget() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")

	b, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", d(3000000), d(150000))
	suite.Require().Nil(err)
	suite.assertDecimal(3000000, b.BudgetAmount)
	suite.assertDecimal(150000, b.CarriedOver)
	suite.assertDecimal(3150000, b.TotalBudget)
	suite.Assert().Equal(now, b.CreatedAt)
	suite.Assert().Equal(now, b.UpdatedAt)
	suite.assertBudgetTotals()
}

func (suite *TestSuiteStandard) TestSetBudgetIdempotent() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")

	first, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", d(500), d(20))
	suite.Require().Nil(err)

	second, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", d(500), d(20))
	suite.Require().Nil(err)

	suite.Assert().Equal(first.ID, second.ID)
	suite.assertDecimal(500, second.BudgetAmount, "setting a budget overwrites, it does not accumulate")
	suite.assertDecimal(20, second.CarriedOver)
	suite.assertDecimal(520, second.TotalBudget)

	budgets, err := suite.ledger.ListBudgets(suite.ctx, "2025-02")
	suite.Require().Nil(err)
	suite.Assert().Len(budgets, 1)
}

func (suite *TestSuiteStandard) TestSetBudgetOverwrites() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")

	suite.setBudget(category.ID, "2025-02", 500)
	b, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", d(200), decimal.Zero)
	suite.Require().Nil(err)

	suite.assertDecimal(200, b.TotalBudget)
	suite.assertBudgetTotals()
}

func (suite *TestSuiteStandard) TestSetBudgetValidation() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")

	tests := []struct {
		name        string
		categoryID  uuid.UUID
		period      types.Period
		amount      decimal.Decimal
		carriedOver decimal.Decimal
		err         error
	}{
		{"Invalid period", category.ID, "2025-2", d(1), d(0), ledger.ErrInvalidPeriod},
		{"Negative amount", category.ID, "2025-02", d(-1), d(0), ledger.ErrNegativeAmount},
		{"Negative carry-over", category.ID, "2025-02", d(1), d(-5), ledger.ErrNegativeAmount},
		{"Unknown category", uuid.New(), "2025-02", d(1), d(0), ledger.ErrNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.ledger.SetBudget(suite.ctx, tt.categoryID, tt.period, tt.amount, tt.carriedOver)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetRemainingWithoutBudget() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")

	suite.assertDecimal(0, suite.remaining(category.ID, "2025-02"))
	suite.assertDecimal(0, suite.remaining(uuid.New(), "2025-02"), "unknown categories have no budget")
}

func (suite *TestSuiteStandard) TestBudgetBreakdown() {
	envelope := suite.createEnvelope("Living Cost")
	meals := suite.createCategory(envelope.ID, "Meals")
	household := suite.createCategory(envelope.ID, "Household")

	suite.setBudget(meals.ID, "2025-02", 3000000)
	suite.setBudget(household.ID, "2025-02", 1000000)

	_, err := suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-02-03", CategoryID: household.ID, Amount: d(100000)})
	suite.Require().Nil(err)

	_, err = suite.ledger.CreateExpenseWithSubsidy(suite.ctx, ledger.SubsidizedExpenseCreate{
		ExpenseCreate:  ledger.ExpenseCreate{Date: "2025-02-05", CategoryID: meals.ID, Amount: d(3200000)},
		FromCategoryID: household.ID,
	})
	suite.Require().Nil(err)

	// An expense in another period must not count
	suite.setBudget(household.ID, "2025-03", 50000)
	_, err = suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-03-01", CategoryID: household.ID, Amount: d(50000)})
	suite.Require().Nil(err)

	b, err := suite.ledger.BudgetBreakdown(suite.ctx, household.ID, "2025-02")
	suite.Require().Nil(err)
	suite.assertDecimal(1000000, b.OriginalBudget)
	suite.assertDecimal(0, b.CarriedOver)
	suite.assertDecimal(1000000, b.TotalBudget)
	suite.assertDecimal(1000000, b.EffectiveBudget)
	suite.assertDecimal(100000, b.ActualSpent)
	suite.assertDecimal(0, b.SubsidyReceived)
	suite.assertDecimal(200000, b.SubsidyGiven)
	suite.assertDecimal(300000, b.TotalSpent)
	suite.assertDecimal(700000, b.Remaining)
	suite.assertDecimal(30, b.UtilizationPercent)

	b, err = suite.ledger.BudgetBreakdown(suite.ctx, meals.ID, "2025-02")
	suite.Require().Nil(err)
	suite.assertDecimal(3200000, b.EffectiveBudget)
	suite.assertDecimal(200000, b.SubsidyReceived)
	suite.assertDecimal(3200000, b.TotalSpent)
	suite.assertDecimal(0, b.Remaining)
	suite.Assert().True(decimal.RequireFromString("106.7").Equal(b.UtilizationPercent), "utilization is %s", b.UtilizationPercent)
}

func (suite *TestSuiteStandard) TestBudgetBreakdownZeroBudget() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Transport")

	_, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", decimal.Zero, d(100))
	suite.Require().Nil(err)

	_, err = suite.ledger.CreateExpense(suite.ctx, ledger.ExpenseCreate{Date: "2025-02-10", CategoryID: category.ID, Amount: d(40)})
	suite.Require().Nil(err)

	b, err := suite.ledger.BudgetBreakdown(suite.ctx, category.ID, "2025-02")
	suite.Require().Nil(err)
	suite.assertDecimal(0, b.UtilizationPercent, "utilization must be 0 without an original budget")
	suite.assertDecimal(60, b.Remaining)
}

func (suite *TestSuiteStandard) TestSetBudgetStoreFailure() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Meals")
	suite.Require().Nil(suite.db.Migrator().DropTable(&models.Budget{}))

	_, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", d(100), decimal.Zero)
	suite.Require().NotNil(err)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	var sqliteErr *go_sqlite.Error
	suite.Assert().True(errors.As(err, &sqliteErr), "store error is not in the chain: %v", err)
}

func (suite *TestSuiteStandard) TestAmountsKeepFullPrecision() {
	category := suite.createCategory(suite.createEnvelope("Living Cost").ID, "Meals")
	amount := decimal.RequireFromString("123456789012.12345678")

	_, err := suite.ledger.SetBudget(suite.ctx, category.ID, "2025-02", amount, decimal.RequireFromString("0.00000001"))
	suite.Require().Nil(err)

	budgets, err := suite.ledger.ListBudgets(suite.ctx, "2025-02")
	suite.Require().Nil(err)
	suite.Require().Len(budgets, 1)
	suite.Assert().True(amount.Equal(budgets[0].BudgetAmount), "stored %s, read %s", amount, budgets[0].BudgetAmount)
	suite.Assert().Equal("123456789012.12345679", budgets[0].TotalBudget.String())

	remaining, err := suite.ledger.BudgetRemaining(suite.ctx, category.ID, "2025-02")
	suite.Require().Nil(err)
	suite.Assert().Equal("123456789012.12345679", remaining.String())
}
