// Package httperrors translates ledger errors into HTTP responses.
package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/importer"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPError is the body of all error responses.
type HTTPError struct {
	Error   string `json:"error" example:"the category does not have enough remaining budget"` // Human readable description of the error
	Code    string `json:"code,omitempty" example:"INSUFFICIENT_BUDGET"`                       // Identifies the violated business rule
	Details any    `json:"details,omitempty"`                                                  // Context of the violated business rule
}

// Errors caused by the request. All of them result in HTTP 400.
var badRequest = []error{
	httputil.ErrRequestBodyEmpty,
	httputil.ErrInvalidBody,
	httputil.ErrInvalidUUID,
	types.ErrInvalidPeriod,
	importer.ErrInvalidCSV,
	ledger.ErrNegativeAmount,
	ledger.ErrSameCategory,
	ledger.ErrNameRequired,
	ledger.ErrInvalidCarryAction,
	ledger.ErrInvalidAllocationType,
}

// Unique constraint violations. They wrap the database error, only the
// violated rule is shown to users.
var conflicts = []error{
	models.ErrEnvelopeNameNotUnique,
	models.ErrCategoryNameNotUnique,
	models.ErrBudgetPeriodNotUnique,
	models.ErrCarryoverNotUnique,
	models.ErrMonthlySnapshotNotUnique,
}

// New writes an error response with a message formatted from msgAndArgs.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	msg := ""
	if len(msgAndArgs) == 1 {
		msg = fmt.Sprintf("%+v", msgAndArgs[0])
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.JSON(status, HTTPError{
		Error: msg,
	})
}

// Status returns the HTTP status code for an error.
func Status(err error) int {
	var rule ledger.RuleError
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.As(err, &rule):
		return http.StatusUnprocessableEntity
	}

	for _, e := range badRequest {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	for _, e := range conflicts {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// Handler writes the error response for err.
//
// Business rule violations carry their code and context, server errors
// only a reference to the request ID.
func Handler(c *gin.Context, err error) {
	status := Status(err)

	var rule ledger.RuleError
	if status == http.StatusUnprocessableEntity && errors.As(err, &rule) {
		c.JSON(status, HTTPError{
			Error:   err.Error(),
			Code:    rule.Code(),
			Details: rule,
		})
		return
	}

	if status == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		New(c, status, "an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
		return
	}

	for _, e := range conflicts {
		if errors.Is(err, e) {
			New(c, status, e.Error())
			return
		}
	}

	New(c, status, err.Error())
}
