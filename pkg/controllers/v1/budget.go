package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetResponse struct {
	Data models.Budget `json:"data"` // Data for the budget
}

type BudgetListResponse struct {
	Data []models.Budget `json:"data"` // List of budgets
}

// BudgetSet contains the amounts of a budget.
type BudgetSet struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`          // ID of the category
	Period       types.Period    `json:"period" example:"2025-02"`                                           // Year and month, YYYY-MM
	BudgetAmount decimal.Decimal `json:"budgetAmount" example:"3000000" minimum:"0" multipleOf:"0.00000001"` // Amount budgeted for the period
	CarriedOver  decimal.Decimal `json:"carriedOver" example:"0" minimum:"0" multipleOf:"0.00000001"`        // Amount carried over from the previous period
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudgetList)
	r.GET("", co.GetBudgets)
	r.PUT("", co.SetBudget)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Set budget
// @Description	Sets the budget of a category for a period, replacing earlier amounts
// @Tags			Budgets
// @Accept		json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			budget	body		BudgetSet	true	"Budget"
// @Router			/v1/budgets [put]
func (co Controller) SetBudget(c *gin.Context) {
	var set BudgetSet
	if err := httputil.BindData(c, &set); err != nil {
		httperrors.Handler(c, err)
		return
	}

	budget, err := co.Ledger.SetBudget(c.Request.Context(), set.CategoryID, set.Period, set.BudgetAmount, set.CarriedOver)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// @Summary		Get budgets
// @Description	Returns the budgets of a period, or all budgets
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	query		string	false	"Year and month, YYYY-MM"
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	budgets, err := co.Ledger.ListBudgets(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: budgets})
}
