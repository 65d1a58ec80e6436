package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SettlementResponse struct {
	Data ledger.Settlement `json:"data"` // Result of the settlement
}

type CarryoverListResponse struct {
	Data []models.Carryover `json:"data"` // List of carry-overs
}

type CategoryRemainingListResponse struct {
	Data []ledger.CategoryRemaining `json:"data"` // Categories with a positive remaining budget
}

// CarryoverCreate settles the remaining budget of a category.
type CarryoverCreate struct {
	CategoryID    uuid.UUID              `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`          // ID of the category
	FromPeriod    types.Period           `json:"fromPeriod" example:"2025-03"`                                       // Period to close
	Action        models.CarryoverAction `json:"action" example:"carry" enums:"carry,reset"`                         // Carry the amount to the next period or forfeit it
	CarriedAmount *decimal.Decimal       `json:"carriedAmount" example:"300000" minimum:"0" extensions:"x-nullable"` // Amount to carry. Defaults to the whole remaining budget.
}

// RegisterCarryoverRoutes registers the routes for carry-overs with
// the RouterGroup that is passed.
func (co Controller) RegisterCarryoverRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCarryoverList)
	r.GET("", co.GetCarryovers)
	r.POST("", co.CreateCarryover)
}

// RegisterSettlementRoutes registers the routes for the settlement
// overview with the RouterGroup that is passed.
func (co Controller) RegisterSettlementRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettlementList)
	r.GET("", co.GetSettlements)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Carry-overs
// @Success		204
// @Router			/v1/carryovers [options]
func OptionsCarryoverList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Carry-overs
// @Success		204
// @Router			/v1/settlements [options]
func OptionsSettlementList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Settle period
// @Description	Carries the remaining budget of a category to the next period or resets it.
// @Description	Returns 200 without a carry-over when there is no remaining budget.
// @Tags			Carry-overs
// @Accept		json
// @Produce		json
// @Success		200			{object}	SettlementResponse
// @Success		201			{object}	SettlementResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		422			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			carryover	body		CarryoverCreate	true	"Carry-over"
// @Router			/v1/carryovers [post]
func (co Controller) CreateCarryover(c *gin.Context) {
	var create CarryoverCreate
	if err := httputil.BindData(c, &create); err != nil {
		httperrors.Handler(c, err)
		return
	}

	settlement, err := co.Ledger.ProcessCarryOver(c.Request.Context(), create.CategoryID, create.FromPeriod, create.Action, create.CarriedAmount)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	status := http.StatusCreated
	if settlement.NothingToCarry {
		status = http.StatusOK
	}

	c.JSON(status, SettlementResponse{Data: settlement})
}

// @Summary		Get carry-overs
// @Description	Returns the settlements of a period, or all settlements
// @Tags			Carry-overs
// @Produce		json
// @Success		200		{object}	CarryoverListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	query		string	false	"Year and month of the closed period, YYYY-MM"
// @Router			/v1/carryovers [get]
func (co Controller) GetCarryovers(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	carryovers, err := co.Ledger.ListCarryovers(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CarryoverListResponse{Data: carryovers})
}

// @Summary		Get categories to settle
// @Description	Returns all categories with a positive remaining budget in the period
// @Tags			Carry-overs
// @Produce		json
// @Success		200		{object}	CategoryRemainingListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	query		string	true	"Year and month, YYYY-MM"
// @Router			/v1/settlements [get]
func (co Controller) GetSettlements(c *gin.Context) {
	period, ok := requiredPeriod(c)
	if !ok {
		return
	}

	categories, err := co.Ledger.CategoriesWithRemainingBudget(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryRemainingListResponse{Data: categories})
}
