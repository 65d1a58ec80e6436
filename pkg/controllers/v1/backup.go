package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/gin-gonic/gin"
)

// RegisterBackupRoutes registers the export and import routes with the
// RouterGroup that is passed.
func (co Controller) RegisterBackupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/export", OptionsExport)
	r.GET("/export", co.Export)
	r.OPTIONS("/import", OptionsImport)
	r.POST("/import", co.Import)

	co.RegisterStatementRoutes(r.Group("/import/csv"))
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Backup
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Backup
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Export
// @Description	Returns all records as a backup document
// @Tags			Backup
// @Produce		json
// @Success		200	{object}	ledger.Backup
// @Failure		500	{object}	httperrors.HTTPError
// @Router			/v1/export [get]
func (co Controller) Export(c *gin.Context) {
	backup, err := co.Ledger.Export(c.Request.Context())
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ledger-%s.json", backup.ExportDate.Format("2006-01-02")))
	c.JSON(http.StatusOK, backup)
}

// @Summary		Import
// @Description	Replaces all records with the ones in the backup document
// @Tags			Backup
// @Accept		json
// @Success		204
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		422		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			backup	body		ledger.Backup	true	"Backup document"
// @Router			/v1/import [post]
func (co Controller) Import(c *gin.Context) {
	var backup ledger.Backup
	if err := httputil.BindData(c, &backup); err != nil {
		if errors.Is(err, httputil.ErrInvalidBody) {
			err = &ledger.InvalidBackupFormatError{Reason: err.Error()}
		}

		httperrors.Handler(c, err)
		return
	}

	if err := co.Ledger.Import(c.Request.Context(), backup); err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
