package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
)

type ExpenseResponse struct {
	Data models.Expense `json:"data"` // Data for the expense
}

type ExpenseListResponse struct {
	Data []models.Expense `json:"data"` // List of expenses
}

type SubsidizedExpenseResponse struct {
	Data ledger.SubsidizedExpense `json:"data"` // The expense and the subsidy covering its deficit
}

type SubsidyListResponse struct {
	Data []models.Subsidy `json:"data"` // List of subsidies
}

// ExpenseQueryFilter filters the expense list.
type ExpenseQueryFilter struct {
	Period string `form:"period" example:"2025-02"` // Year and month, YYYY-MM
	Note   string `form:"note" example:"*lunch*"`   // Glob pattern the note must match
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
		r.OPTIONS("/subsidized", OptionsSubsidizedExpense)
		r.POST("/subsidized", co.CreateSubsidizedExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// RegisterSubsidyRoutes registers the routes for subsidies with
// the RouterGroup that is passed.
func (co Controller) RegisterSubsidyRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSubsidyList)
	r.GET("", co.GetSubsidies)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses/subsidized [options]
func OptionsSubsidizedExpense(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subsidies
// @Success		204
// @Router			/v1/subsidies [options]
func OptionsSubsidyList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create expense
// @Description	Books an expense if the remaining budget of its category covers it
// @Tags			Expenses
// @Accept		json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		422		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			expense	body		ledger.ExpenseCreate	true	"Expense"
// @Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var create ledger.ExpenseCreate
	if err := httputil.BindData(c, &create); err != nil {
		httperrors.Handler(c, err)
		return
	}

	expense, err := co.Ledger.CreateExpense(c.Request.Context(), create)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: expense})
}

// @Summary		Create subsidized expense
// @Description	Books an expense and covers the part exceeding the remaining budget from another category
// @Tags			Expenses
// @Accept		json
// @Produce		json
// @Success		201		{object}	SubsidizedExpenseResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		422		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			expense	body		ledger.SubsidizedExpenseCreate	true	"Expense"
// @Router			/v1/expenses/subsidized [post]
func (co Controller) CreateSubsidizedExpense(c *gin.Context) {
	var create ledger.SubsidizedExpenseCreate
	if err := httputil.BindData(c, &create); err != nil {
		httperrors.Handler(c, err)
		return
	}

	result, err := co.Ledger.CreateExpenseWithSubsidy(c.Request.Context(), create)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubsidizedExpenseResponse{Data: result})
}

// @Summary		Get expenses
// @Description	Returns a list of expenses
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	query		string	false	"Year and month, YYYY-MM"
// @Param			note	query		string	false	"Glob pattern the note must match"
// @Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	_ = c.ShouldBindQuery(&filter)

	period, err := httputil.PeriodFromString(filter.Period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	expenses, err := co.Ledger.ListExpenses(c.Request.Context(), period, filter.Note)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := co.Ledger.GetExpense(c.Request.Context(), id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: expense})
}

// @Summary		Delete expense
// @Description	Deletes an expense together with the subsidies covering it
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := co.Ledger.DeleteExpense(c.Request.Context(), id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get subsidies
// @Description	Returns the subsidies of a period, or all subsidies
// @Tags			Subsidies
// @Produce		json
// @Success		200		{object}	SubsidyListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	query		string	false	"Year and month, YYYY-MM"
// @Router			/v1/subsidies [get]
func (co Controller) GetSubsidies(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	subsidies, err := co.Ledger.ListSubsidies(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, SubsidyListResponse{Data: subsidies})
}
