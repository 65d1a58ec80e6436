package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Errors for unique constraints. The create and update callbacks wrap
// the database error in them.
var (
	ErrEnvelopeNameNotUnique    = errors.New("the envelope name must be unique")
	ErrCategoryNameNotUnique    = errors.New("the category name must be unique for the envelope")
	ErrBudgetPeriodNotUnique    = errors.New("there can only be one budget per category and period")
	ErrCarryoverNotUnique       = errors.New("the remaining budget of this category has already been settled for this period")
	ErrMonthlySnapshotNotUnique = errors.New("there can only be one monthly snapshot per period")
)
