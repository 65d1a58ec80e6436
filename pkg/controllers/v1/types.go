package v1

import (
	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QueryPeriod is the period filter of list endpoints.
type QueryPeriod struct {
	Period string `form:"period" example:"2025-02"` // Year and month, YYYY-MM
}

// pathID parses the id path parameter. If it is not a valid UUID, the
// error response is written and false is returned.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperrors.Handler(c, httputil.ErrInvalidUUID)
		return uuid.Nil, false
	}

	return id, true
}

// pathPeriod parses the period path parameter.
func pathPeriod(c *gin.Context) (types.Period, bool) {
	p, err := types.ParsePeriod(c.Param("period"))
	if err != nil {
		httperrors.Handler(c, err)
		return "", false
	}

	return p, true
}

// queryPeriod parses the optional period query parameter.
func queryPeriod(c *gin.Context) (types.Period, bool) {
	var q QueryPeriod

	// The filter only contains strings, so this will always succeed
	_ = c.ShouldBindQuery(&q)

	p, err := httputil.PeriodFromString(q.Period)
	if err != nil {
		httperrors.Handler(c, err)
		return "", false
	}

	return p, true
}

// requiredPeriod parses the period query parameter and fails if it is not set.
func requiredPeriod(c *gin.Context) (types.Period, bool) {
	p, ok := queryPeriod(c)
	if !ok {
		return "", false
	}

	if p == "" {
		httperrors.Handler(c, errPeriodNotSet)
		return "", false
	}

	return p, true
}
