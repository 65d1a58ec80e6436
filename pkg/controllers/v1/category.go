package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
)

type CategoryResponse struct {
	Data models.Category `json:"data"` // Data for the category
}

type CategoryListResponse struct {
	Data []models.Category `json:"data"` // List of categories
}

type BreakdownResponse struct {
	Data ledger.Breakdown `json:"data"` // Budget report of the category
}

// CategoryQueryFilter filters the category list.
type CategoryQueryFilter struct {
	Envelope string `form:"envelope" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the envelope
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.PATCH("/:id", co.UpdateCategory)
		r.DELETE("/:id", co.DeleteCategory)
		r.GET("/:id/breakdown", co.GetCategoryBreakdown)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category
// @Description	Creates a new category in an existing envelope
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			category	body		ledger.CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable ledger.CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	category, err := co.Ledger.CreateCategory(c.Request.Context(), editable)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: category})
}

// @Summary		Get categories
// @Description	Returns a list of categories
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	CategoryListResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			envelope	query		string	false	"Filter by envelope ID"
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.ShouldBindQuery(&filter)

	envelopeID, err := httputil.UUIDFromString(filter.Envelope)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	categories, err := co.Ledger.ListCategories(c.Request.Context(), envelopeID)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := co.Ledger.GetCategory(c.Request.Context(), id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// @Summary		Update category
// @Description	Updates a category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept		json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			id			path		string					true	"ID formatted as string"
// @Param			category	body		ledger.CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := co.Ledger.GetCategory(c.Request.Context(), id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	editable := ledger.CategoryEditable{
		EnvelopeID:   category.EnvelopeID,
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	category, err = co.Ledger.UpdateCategory(c.Request.Context(), id, editable)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// @Summary		Delete category
// @Description	Deletes a category with its budgets, expenses, subsidies and carry-overs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := co.Ledger.DeleteCategory(c.Request.Context(), id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get budget breakdown
// @Description	Returns the budget report of a category for a period
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	BreakdownResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		string	true	"ID formatted as string"
// @Param			period	query		string	true	"Year and month, YYYY-MM"
// @Router			/v1/categories/{id}/breakdown [get]
func (co Controller) GetCategoryBreakdown(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	period, ok := requiredPeriod(c)
	if !ok {
		return
	}

	if _, err := co.Ledger.GetCategory(c.Request.Context(), id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	breakdown, err := co.Ledger.BudgetBreakdown(c.Request.Context(), id, period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, BreakdownResponse{Data: breakdown})
}
