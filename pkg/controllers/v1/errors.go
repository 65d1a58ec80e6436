package v1

import (
	"fmt"

	"github.com/envelope-zero/ledger/internal/types"
)

var errPeriodNotSet = fmt.Errorf("%w: the period query parameter must be set", types.ErrInvalidPeriod)
