package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
)

type DashboardResponse struct {
	Data models.DashboardSummary `json:"data"` // Aggregate figures of the period
}

type MonthlySnapshotResponse struct {
	Data models.MonthlySnapshot `json:"data"` // The stored summary
}

// RegisterMonthRoutes registers the routes for months with
// the RouterGroup that is passed.
func (co Controller) RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:period", OptionsMonth)
	r.GET("/:period", co.GetMonth)
	r.OPTIONS("/:period/snapshot", OptionsMonthSnapshot)
	r.GET("/:period/snapshot", co.GetMonthSnapshot)
	r.POST("/:period/snapshot", co.CreateMonthSnapshot)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			period	path	string	true	"Year and month, YYYY-MM"
// @Router			/v1/months/{period} [options]
func OptionsMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Param			period	path	string	true	"Year and month, YYYY-MM"
// @Router			/v1/months/{period}/snapshot [options]
func OptionsMonthSnapshot(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get month
// @Description	Returns the dashboard summary of a period, computed from the current data
// @Tags			Months
// @Produce		json
// @Success		200		{object}	DashboardResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	path		string	true	"Year and month, YYYY-MM"
// @Router			/v1/months/{period} [get]
func (co Controller) GetMonth(c *gin.Context) {
	period, ok := pathPeriod(c)
	if !ok {
		return
	}

	summary, err := co.Ledger.DashboardSummary(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: summary})
}

// @Summary		Save snapshot
// @Description	Stores the current dashboard summary of a period, replacing an earlier snapshot
// @Tags			Months
// @Produce		json
// @Success		201		{object}	MonthlySnapshotResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	path		string	true	"Year and month, YYYY-MM"
// @Router			/v1/months/{period}/snapshot [post]
func (co Controller) CreateMonthSnapshot(c *gin.Context) {
	period, ok := pathPeriod(c)
	if !ok {
		return
	}

	snapshot, err := co.Ledger.SaveMonthlySnapshot(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, MonthlySnapshotResponse{Data: snapshot})
}

// @Summary		Get snapshot
// @Description	Returns the stored dashboard summary of a period
// @Tags			Months
// @Produce		json
// @Success		200		{object}	MonthlySnapshotResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			period	path		string	true	"Year and month, YYYY-MM"
// @Router			/v1/months/{period}/snapshot [get]
func (co Controller) GetMonthSnapshot(c *gin.Context) {
	period, ok := pathPeriod(c)
	if !ok {
		return
	}

	snapshot, err := co.Ledger.MonthlySnapshot(c.Request.Context(), period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthlySnapshotResponse{Data: snapshot})
}
