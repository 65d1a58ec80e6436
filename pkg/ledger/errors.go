package ledger

import (
	"errors"
	"fmt"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors. Business rule violations are reported with the typed
// errors below, which wrap the matching sentinel.
var (
	ErrNotFound                = models.ErrResourceNotFound
	ErrInsufficientBudget      = errors.New("the category does not have enough remaining budget")
	ErrDonorBudgetInsufficient = errors.New("the donor category does not have enough remaining budget")
	ErrExcessCarryAmount       = errors.New("the carry-over amount exceeds the remaining budget")
	ErrInvalidBackupFormat     = errors.New("the backup format is invalid")
	ErrCarryoverExists         = models.ErrCarryoverNotUnique
)

// Validation errors
var (
	ErrNegativeAmount        = errors.New("amounts must not be negative")
	ErrSameCategory          = errors.New("the donor category must be different from the expense category")
	ErrNameRequired          = errors.New("the name must not be empty")
	ErrInvalidCarryAction    = models.ErrInvalidCarryAction
	ErrInvalidAllocationType = models.ErrInvalidAllocationType
	ErrInvalidPeriod         = types.ErrInvalidPeriod
)

// RuleError is implemented by the errors reporting a violated business rule.
// Code identifies the rule, the error value itself carries the context.
type RuleError interface {
	error
	Code() string
}

// InsufficientBudgetError is returned when an expense exceeds the remaining
// budget of its category. The caller may retry with a subsidy.
type InsufficientBudgetError struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Period     types.Period    `json:"period"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("%s: category %s needs %s in %s, but only %s are available", ErrInsufficientBudget, e.CategoryID, e.Required, e.Period, e.Available)
}

func (e *InsufficientBudgetError) Unwrap() error {
	return ErrInsufficientBudget
}

func (e *InsufficientBudgetError) Code() string {
	return "INSUFFICIENT_BUDGET"
}

// DonorBudgetInsufficientError is returned when the donor of a subsidy
// cannot cover the deficit.
type DonorBudgetInsufficientError struct {
	FromCategoryID uuid.UUID       `json:"fromCategoryId"`
	Period         types.Period    `json:"period"`
	Deficit        decimal.Decimal `json:"deficit"`
	Available      decimal.Decimal `json:"available"`
}

func (e *DonorBudgetInsufficientError) Error() string {
	return fmt.Sprintf("%s: category %s cannot cover a deficit of %s in %s, only %s are available", ErrDonorBudgetInsufficient, e.FromCategoryID, e.Deficit, e.Period, e.Available)
}

func (e *DonorBudgetInsufficientError) Unwrap() error {
	return ErrDonorBudgetInsufficient
}

func (e *DonorBudgetInsufficientError) Code() string {
	return "DONOR_BUDGET_INSUFFICIENT"
}

// ExcessCarryAmountError is returned when more than the remaining budget is
// to be carried over.
type ExcessCarryAmountError struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Period     types.Period    `json:"period"`
	Requested  decimal.Decimal `json:"requested"`
	Available  decimal.Decimal `json:"available"`
}

func (e *ExcessCarryAmountError) Error() string {
	return fmt.Sprintf("%s: %s requested for category %s in %s, but only %s remain", ErrExcessCarryAmount, e.Requested, e.CategoryID, e.Period, e.Available)
}

func (e *ExcessCarryAmountError) Unwrap() error {
	return ErrExcessCarryAmount
}

func (e *ExcessCarryAmountError) Code() string {
	return "EXCESS_CARRY_AMOUNT"
}

// InvalidBackupFormatError is returned when a backup document cannot be imported.
type InvalidBackupFormatError struct {
	Reason string `json:"reason"`
}

func (e *InvalidBackupFormatError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidBackupFormat, e.Reason)
}

func (e *InvalidBackupFormatError) Unwrap() error {
	return ErrInvalidBackupFormat
}

func (e *InvalidBackupFormatError) Code() string {
	return "INVALID_BACKUP_FORMAT"
}

func checkAmount(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is %s", ErrNegativeAmount, name, amount)
	}
	return nil
}
