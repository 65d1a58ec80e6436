package v1_test

import (
	"net/http"

	v1 "github.com/envelope-zero/ledger/pkg/controllers/v1"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/test"
	"github.com/google/uuid"
)

// settlementScenario leaves Meals with a remaining budget of 500,000
// in 2025-03.
func (suite *TestSuiteStandard) settlementScenario() models.Category {
	meals := suite.createTestCategory(suite.createTestEnvelope("Living Cost").ID, "Meals")
	suite.setTestBudget(meals.ID, "2025-03", 800000)
	suite.createTestExpense(meals.ID, "2025-03-10", 300000, "Market")

	return meals
}

func (suite *TestSuiteStandard) TestSettlements() {
	meals := suite.settlementScenario()

	r := suite.request(http.MethodGet, "http://example.com/v1/settlements?period=2025-03", "", http.StatusOK)
	var list v1.CategoryRemainingListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(meals.ID, list.Data[0].Category.ID)
	suite.assertDecimal(500000, list.Data[0].Breakdown.Remaining)

	suite.request(http.MethodGet, "http://example.com/v1/settlements", "", http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCarryPartially() {
	meals := suite.settlementScenario()
	amount := d(300000)

	r := suite.request(http.MethodPost, "http://example.com/v1/carryovers", v1.CarryoverCreate{
		CategoryID:    meals.ID,
		FromPeriod:    "2025-03",
		Action:        models.CarryoverActionCarry,
		CarriedAmount: &amount,
	}, http.StatusCreated)

	var s v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &s)
	suite.Assert().False(s.Data.NothingToCarry)
	suite.Assert().Equal("2025-04", s.Data.ToPeriod.String())
	suite.assertDecimal(500000, s.Data.RemainingBudget)
	suite.Require().NotNil(s.Data.Budget)
	suite.assertDecimal(300000, s.Data.Budget.CarriedOver)
	suite.Require().NotNil(s.Data.Allocation)
	suite.Assert().Equal(models.AllocationTypeCarryover, s.Data.Allocation.Type)

	suite.assertDecimal(300000, suite.breakdown(meals.ID, "2025-04").Remaining)

	r = suite.request(http.MethodGet, "http://example.com/v1/carryovers?period=2025-03", "", http.StatusOK)
	var carryovers v1.CarryoverListResponse
	test.DecodeResponse(suite.T(), &r, &carryovers)
	suite.Require().Len(carryovers.Data, 1)
	suite.assertDecimal(300000, carryovers.Data[0].CarriedAmount)

	// A category can only be settled once per period
	suite.request(http.MethodPost, "http://example.com/v1/carryovers", v1.CarryoverCreate{
		CategoryID: meals.ID,
		FromPeriod: "2025-03",
		Action:     models.CarryoverActionReset,
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCarryReset() {
	meals := suite.settlementScenario()

	r := suite.request(http.MethodPost, "http://example.com/v1/carryovers", v1.CarryoverCreate{
		CategoryID: meals.ID,
		FromPeriod: "2025-03",
		Action:     models.CarryoverActionReset,
	}, http.StatusCreated)

	var s v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &s)
	suite.Require().NotNil(s.Data.Carryover)
	suite.assertDecimal(0, s.Data.Carryover.CarriedAmount)
	suite.Assert().Nil(s.Data.Budget)

	r = suite.request(http.MethodGet, "http://example.com/v1/budgets?period=2025-04", "", http.StatusOK)
	var budgets v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &budgets)
	suite.Assert().Len(budgets.Data, 0)
}

func (suite *TestSuiteStandard) TestCarryErrors() {
	meals := suite.settlementScenario()
	excess := d(600000)

	r := suite.request(http.MethodPost, "http://example.com/v1/carryovers", v1.CarryoverCreate{
		CategoryID:    meals.ID,
		FromPeriod:    "2025-03",
		Action:        models.CarryoverActionCarry,
		CarriedAmount: &excess,
	}, http.StatusUnprocessableEntity)
	suite.Assert().Equal("EXCESS_CARRY_AMOUNT", suite.apiError(&r).Code)

	suite.request(http.MethodPost, "http://example.com/v1/carryovers", map[string]any{"categoryId": meals.ID, "fromPeriod": "2025-03", "action": "keep"}, http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/carryovers", map[string]any{"categoryId": meals.ID, "fromPeriod": "March", "action": "carry"}, http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/carryovers", map[string]any{"categoryId": uuid.New(), "fromPeriod": "2025-03", "action": "carry"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestNothingToCarry() {
	meals := suite.settlementScenario()

	r := suite.request(http.MethodPost, "http://example.com/v1/carryovers", v1.CarryoverCreate{
		CategoryID: meals.ID,
		FromPeriod: "2025-05",
		Action:     models.CarryoverActionCarry,
	}, http.StatusOK)

	var s v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &s)
	suite.Assert().True(s.Data.NothingToCarry)
	suite.Assert().Nil(s.Data.Carryover)
}
