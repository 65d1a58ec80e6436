package root

import (
	"context"
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz serves the health of the application.
type Healthz struct {
	DB Pinger
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/healthz [get]
func (h Healthz) Get(c *gin.Context) {
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
