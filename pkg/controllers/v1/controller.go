// Package v1 implements the v1 REST API of the ledger.
package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/gin-gonic/gin"
)

// Controller serves the v1 API from a Ledger.
type Controller struct {
	Ledger *ledger.Ledger
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	co.RegisterEnvelopeRoutes(r.Group("/envelopes"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterIncomeRoutes(r.Group("/incomes"))
	co.RegisterAllocationRoutes(r.Group("/allocations"))
	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterSubsidyRoutes(r.Group("/subsidies"))
	co.RegisterCarryoverRoutes(r.Group("/carryovers"))
	co.RegisterSettlementRoutes(r.Group("/settlements"))
	co.RegisterMonthRoutes(r.Group("/months"))
	co.RegisterBackupRoutes(r)
}

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Envelopes   string `json:"envelopes" example:"https://example.com/api/v1/envelopes"`     // URL of envelope list endpoint
	Categories  string `json:"categories" example:"https://example.com/api/v1/categories"`   // URL of category list endpoint
	Budgets     string `json:"budgets" example:"https://example.com/api/v1/budgets"`         // URL of budget list endpoint
	Incomes     string `json:"incomes" example:"https://example.com/api/v1/incomes"`         // URL of income list endpoint
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations"` // URL of allocation list endpoint
	Expenses    string `json:"expenses" example:"https://example.com/api/v1/expenses"`       // URL of expense list endpoint
	Subsidies   string `json:"subsidies" example:"https://example.com/api/v1/subsidies"`     // URL of subsidy list endpoint
	Carryovers  string `json:"carryovers" example:"https://example.com/api/v1/carryovers"`   // URL of carry-over list endpoint
	Settlements string `json:"settlements" example:"https://example.com/api/v1/settlements"` // URL of the list of categories to settle
	Months      string `json:"months" example:"https://example.com/api/v1/months"`           // URL of the month endpoints
	Export      string `json:"export" example:"https://example.com/api/v1/export"`           // URL of the backup export
	Import      string `json:"import" example:"https://example.com/api/v1/import"`           // URL of the backup import
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	RootResponse
// @Router			/v1 [get]
func GetRoot(c *gin.Context) {
	url := httputil.URL(c) + "/v1"

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Envelopes:   url + "/envelopes",
			Categories:  url + "/categories",
			Budgets:     url + "/budgets",
			Incomes:     url + "/incomes",
			Allocations: url + "/allocations",
			Expenses:    url + "/expenses",
			Subsidies:   url + "/subsidies",
			Carryovers:  url + "/carryovers",
			Settlements: url + "/settlements",
			Months:      url + "/months",
			Export:      url + "/export",
			Import:      url + "/import",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
