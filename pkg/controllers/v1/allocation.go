package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AllocationListResponse struct {
	Data []models.Allocation `json:"data"` // List of allocations
}

// AllocationCreate distributes money to budgets.
type AllocationCreate struct {
	IncomeID    *uuid.UUID                 `json:"incomeId" example:"0f3b1a94-4c1c-4c3a-8f38-4d8a3e0d2b7e"`         // Income that is distributed. Ignored when posting to an income.
	Type        models.AllocationType      `json:"type" example:"income" enums:"income,carryover" default:"income"` // Type of the allocations
	Allocations []ledger.AllocationRequest `json:"allocations"`                                                     // Amounts per category and period
}

// AllocationQueryFilter filters the allocation list.
type AllocationQueryFilter struct {
	Income string `form:"income" example:"0f3b1a94-4c1c-4c3a-8f38-4d8a3e0d2b7e"` // ID of the income
}

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func (co Controller) RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAllocationList)
	r.GET("", co.GetAllocations)
	r.POST("", co.CreateAllocations)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations [options]
func OptionsAllocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Create allocations
// @Description	Adds each amount to the budget of its category and period. The budget is created if it does not exist.
// @Tags			Allocations
// @Accept		json
// @Produce		json
// @Success		201			{object}	AllocationListResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			allocations	body		AllocationCreate	true	"Allocations"
// @Router			/v1/allocations [post]
func (co Controller) CreateAllocations(c *gin.Context) {
	var create AllocationCreate
	if err := httputil.BindData(c, &create); err != nil {
		httperrors.Handler(c, err)
		return
	}

	co.allocate(c, create)
}

// @Summary		Allocate income
// @Description	Distributes an income to budgets and marks it as allocated
// @Tags			Incomes
// @Accept		json
// @Produce		json
// @Success		201			{object}	AllocationListResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			allocations	body		AllocationCreate	true	"Allocations"
// @Router			/v1/incomes/{id}/allocations [post]
func (co Controller) AllocateIncome(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var create AllocationCreate
	if err := httputil.BindData(c, &create); err != nil {
		httperrors.Handler(c, err)
		return
	}

	create.IncomeID = &id
	co.allocate(c, create)
}

func (co Controller) allocate(c *gin.Context, create AllocationCreate) {
	if create.Type == "" {
		create.Type = models.AllocationTypeIncome
	}

	allocations, err := co.Ledger.AllocateIncomeToBudgets(c.Request.Context(), create.IncomeID, create.Allocations, create.Type)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, AllocationListResponse{Data: allocations})
}

// @Summary		Get allocations
// @Description	Returns all allocations, or those of one income
// @Tags			Allocations
// @Produce		json
// @Success		200		{object}	AllocationListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			income	query		string	false	"Filter by income ID"
// @Router			/v1/allocations [get]
func (co Controller) GetAllocations(c *gin.Context) {
	var filter AllocationQueryFilter
	_ = c.ShouldBindQuery(&filter)

	id, err := httputil.UUIDFromString(filter.Income)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	var incomeID *uuid.UUID
	if id != uuid.Nil {
		incomeID = &id
	}

	co.listAllocations(c, incomeID)
}

// @Summary		Get income allocations
// @Description	Returns the allocations of an income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	AllocationListResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id}/allocations [get]
func (co Controller) GetIncomeAllocations(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	co.listAllocations(c, &id)
}

func (co Controller) listAllocations(c *gin.Context, incomeID *uuid.UUID) {
	allocations, err := co.Ledger.ListAllocations(c.Request.Context(), incomeID)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, AllocationListResponse{Data: allocations})
}
