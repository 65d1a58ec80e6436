package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type EnvelopeResponse struct {
	Data models.Envelope `json:"data"` // Data for the envelope
}

type EnvelopeListResponse struct {
	Data []models.Envelope `json:"data"` // List of envelopes
}

type EnvelopeTotalResponse struct {
	Data EnvelopeTotal `json:"data"` // Remaining budget of the envelope
}

type EnvelopeTotal struct {
	Period    string          `json:"period" example:"2025-02"`    // Period of the total
	Remaining decimal.Decimal `json:"remaining" example:"1250000"` // Sum of the remaining budget of all categories of the envelope
}

// RegisterEnvelopeRoutes registers the routes for envelopes with
// the RouterGroup that is passed.
func (co Controller) RegisterEnvelopeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEnvelopeList)
		r.GET("", co.GetEnvelopes)
		r.POST("", co.CreateEnvelope)
	}

	// Envelope with ID
	{
		r.OPTIONS("/:id", OptionsEnvelopeDetail)
		r.GET("/:id", co.GetEnvelope)
		r.PATCH("/:id", co.UpdateEnvelope)
		r.DELETE("/:id", co.DeleteEnvelope)
		r.GET("/:id/total", co.GetEnvelopeTotal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Router			/v1/envelopes [options]
func OptionsEnvelopeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Envelopes
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/envelopes/{id} [options]
func OptionsEnvelopeDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create envelope
// @Description	Creates a new envelope
// @Tags			Envelopes
// @Produce		json
// @Success		201			{object}	EnvelopeResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			envelope	body		ledger.EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes [post]
func (co Controller) CreateEnvelope(c *gin.Context) {
	var editable ledger.EnvelopeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	envelope, err := co.Ledger.CreateEnvelope(c.Request.Context(), editable)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, EnvelopeResponse{Data: envelope})
}

// @Summary		Get envelopes
// @Description	Returns all envelopes sorted by their display order
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeListResponse
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/v1/envelopes [get]
func (co Controller) GetEnvelopes(c *gin.Context) {
	envelopes, err := co.Ledger.ListEnvelopes(c.Request.Context())
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, EnvelopeListResponse{Data: envelopes})
}

// @Summary		Get envelope
// @Description	Returns a specific envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200	{object}	EnvelopeResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/envelopes/{id} [get]
func (co Controller) GetEnvelope(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	envelope, err := co.Ledger.GetEnvelope(c.Request.Context(), id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: envelope})
}

// @Summary		Update envelope
// @Description	Updates an envelope. Only values to be updated need to be specified.
// @Tags			Envelopes
// @Accept		json
// @Produce		json
// @Success		200			{object}	EnvelopeResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			id			path		string					true	"ID formatted as string"
// @Param			envelope	body		ledger.EnvelopeEditable	true	"Envelope"
// @Router			/v1/envelopes/{id} [patch]
func (co Controller) UpdateEnvelope(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	envelope, err := co.Ledger.GetEnvelope(c.Request.Context(), id)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	// Fields not in the body keep their current value
	editable := ledger.EnvelopeEditable{
		Name:         envelope.Name,
		Description:  envelope.Description,
		DisplayOrder: envelope.DisplayOrder,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		httperrors.Handler(c, err)
		return
	}

	envelope, err = co.Ledger.UpdateEnvelope(c.Request.Context(), id, editable)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, EnvelopeResponse{Data: envelope})
}

// @Summary		Delete envelope
// @Description	Deletes an envelope with all of its categories
// @Tags			Envelopes
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/envelopes/{id} [delete]
func (co Controller) DeleteEnvelope(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := co.Ledger.DeleteEnvelope(c.Request.Context(), id); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Get envelope total
// @Description	Returns the sum of the remaining budget of all categories in the envelope
// @Tags			Envelopes
// @Produce		json
// @Success		200		{object}	EnvelopeTotalResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			id		path		string	true	"ID formatted as string"
// @Param			period	query		string	true	"Year and month, YYYY-MM"
// @Router			/v1/envelopes/{id}/total [get]
func (co Controller) GetEnvelopeTotal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	period, ok := requiredPeriod(c)
	if !ok {
		return
	}

	total, err := co.Ledger.EnvelopeTotal(c.Request.Context(), id, period)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, EnvelopeTotalResponse{Data: EnvelopeTotal{Period: period.String(), Remaining: total}})
}
