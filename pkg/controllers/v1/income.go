package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
)

type IncomeResponse struct {
	Data models.Income `json:"data"` // Data for the income
}

type IncomeListResponse struct {
	Data []models.Income `json:"data"` // List of incomes
}

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsIncomeList)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncome)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", co.GetIncome)
		r.DELETE("/:id", co.DeleteIncome)
		r.OPTIONS("/:id/allocations", OptionsAllocationList)
		r.GET("/:id/allocations", co.GetIncomeAllocations)
		r.POST("/:id/allocations", co.AllocateIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create income
// @Description	Records an income. The period is derived from the date.
// @Tags			Incomes
// @Produce		json
// @Success		201		{object}	IncomeResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			income	body		ledger.IncomeCreate	true	"Income"
// @Router			/v1/incomes [post]
func (co Controller) CreateIncome(c *gin.Context) {
	var create ledger.IncomeCreate
	if err := httputil.BindData(c, &create); err != nil {
		httperrors.Handler(c, err)
		return
	}

	income, err := co.Ledger.CreateIncome(c.Request.Context(), create)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, IncomeResponse{Data: income})
}

// @Summary		Get incomes
// @Description	Returns the incomes of a period, or all incomes
// @Tags			Incomes
// @Produce		json
// @Success		200		{object}	IncomeListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	query		string	false	"Year and month, YYYY-MM"
// @Router			/v1/incomes [get]
func (co Controller) GetIncomes(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	incomes, err := co.Ledger.ListIncomes(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeListResponse{Data: incomes})
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [get]
func (co Controller) GetIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	income, err := co.Ledger.GetIncome(c.Request.Context(), id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, IncomeResponse{Data: income})
}

// @Summary		Delete income
// @Description	Deletes an income. Its allocations stay in the budgets.
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := co.Ledger.DeleteIncome(c.Request.Context(), id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
