package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/importer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errNoFilePost      = fmt.Errorf("%w: you must send a file to this endpoint", importer.ErrInvalidCSV)
	errWrongFileSuffix = fmt.Errorf("%w: this endpoint only supports files of the following type", importer.ErrInvalidCSV)
	errCategoryNotSet  = fmt.Errorf("%w: the category query parameter must be set", httputil.ErrInvalidUUID)
)

type StatementPreviewResponse struct {
	Data []importer.Row `json:"data"` // Rows of the statement
}

type StatementResponse struct {
	Data importer.Result `json:"data"` // What was booked and what was rejected
}

// StatementQuery selects the category outflows are booked on.
type StatementQuery struct {
	Category string `form:"category" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"` // ID of the category
}

// RegisterStatementRoutes registers the routes for statement imports with
// the RouterGroup that is passed.
func (co Controller) RegisterStatementRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsStatement)
	r.POST("", co.ImportStatement)
	r.OPTIONS("/preview", OptionsStatement)
	r.POST("/preview", co.PreviewStatement)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	return formFile.Open()
}

// parseStatement reads the uploaded statement.
func parseStatement(c *gin.Context) ([]importer.Row, bool) {
	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		httperrors.Handler(c, err)
		return nil, false
	}
	defer f.Close()

	rows, err := importer.Parse(f)
	if err != nil {
		httperrors.Handler(c, err)
		return nil, false
	}

	return rows, true
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/csv [options]
// @Router			/v1/import/csv/preview [options]
func OptionsStatement(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Statement preview
// @Description	Parses a bank statement in the YNAB import CSV format and returns its rows without booking them
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	StatementPreviewResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Param			file	formData	file	true	"File to import"
// @Router			/v1/import/csv/preview [post]
func (co Controller) PreviewStatement(c *gin.Context) {
	rows, ok := parseStatement(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, StatementPreviewResponse{Data: rows})
}

// @Summary		Statement import
// @Description	Books a bank statement in the YNAB import CSV format. Inflows become incomes, outflows become expenses of the category. Rows that violate a business rule are returned as rejected.
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201			{object}	StatementResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		404			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Param			file		formData	file			true	"File to import"
// @Param			category	query		StatementQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import/csv [post]
func (co Controller) ImportStatement(c *gin.Context) {
	var query StatementQuery
	_ = c.ShouldBindQuery(&query)

	categoryID, err := httputil.UUIDFromString(query.Category)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	if categoryID == uuid.Nil {
		httperrors.Handler(c, errCategoryNotSet)
		return
	}

	rows, ok := parseStatement(c)
	if !ok {
		return
	}

	result, err := importer.Book(c.Request.Context(), co.Ledger, rows, categoryID)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, StatementResponse{Data: result})
}
