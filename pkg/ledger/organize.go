package ledger

import (
	"context"
	"strings"

	"github.com/envelope-zero/ledger/internal/types"
	"github.com/envelope-zero/ledger/pkg/models"
	"github.com/envelope-zero/ledger/pkg/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// EnvelopeEditable contains all user configurable fields of an envelope.
type EnvelopeEditable struct {
	Name         string `json:"name" example:"Living Cost" default:""`                                       // Name of the envelope
	Description  string `json:"description" example:"Everything needed to get through the month" default:""` // Description of the envelope
	DisplayOrder int    `json:"displayOrder" example:"1" default:"0"`                                        // Position of the envelope in lists
}

// CategoryEditable contains all user configurable fields of a category.
type CategoryEditable struct {
	EnvelopeID   uuid.UUID `json:"envelopeId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the envelope the category belongs to
	Name         string    `json:"name" example:"Transport" default:""`                       // Name of the category
	Description  string    `json:"description" example:"Bus and train tickets" default:""`    // Description of the category
	DisplayOrder int       `json:"displayOrder" example:"2" default:"0"`                      // Position of the category in its envelope
}

// IncomeCreate contains the data for a new income.
type IncomeCreate struct {
	Date   string          `json:"date" example:"2025-02-01"`                                    // Date the income was received, ISO 8601
	Source string          `json:"source" example:"Salary" default:""`                           // Where the money came from
	Amount decimal.Decimal `json:"amount" example:"8500000" minimum:"0" multipleOf:"0.00000001"` // Amount received
	Note   string          `json:"note" example:"February salary" default:""`                    // Free text
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

// CreateEnvelope creates an envelope.
func (l *Ledger) CreateEnvelope(ctx context.Context, in EnvelopeEditable) (models.Envelope, error) {
	defer l.shared()()

	if err := checkName(in.Name); err != nil {
		return models.Envelope{}, err
	}

	envelope := models.Envelope{
		Name:         in.Name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	envelope.Stamp(l.timestamp())

	if err := l.store.Envelopes().Insert(ctx, &envelope); err != nil {
		return models.Envelope{}, err
	}

	l.log.Debug().Str("id", envelope.ID.String()).Str("name", envelope.Name).Msg("envelope created")
	return envelope, nil
}

// GetEnvelope returns the envelope with the ID.
func (l *Ledger) GetEnvelope(ctx context.Context, id uuid.UUID) (models.Envelope, error) {
	defer l.shared()()

	return l.store.Envelopes().GetByID(ctx, id)
}

// UpdateEnvelope replaces the editable fields of an envelope.
func (l *Ledger) UpdateEnvelope(ctx context.Context, id uuid.UUID, in EnvelopeEditable) (models.Envelope, error) {
	defer l.shared()()

	if err := checkName(in.Name); err != nil {
		return models.Envelope{}, err
	}

	err := l.store.Envelopes().Update(ctx, id, map[string]any{
		"name":          strings.TrimSpace(in.Name),
		"description":   strings.TrimSpace(in.Description),
		"display_order": in.DisplayOrder,
		"updated_at":    l.timestamp(),
	})
	if err != nil {
		return models.Envelope{}, err
	}

	return l.store.Envelopes().GetByID(ctx, id)
}

// DeleteEnvelope deletes an envelope with all of its categories.
func (l *Ledger) DeleteEnvelope(ctx context.Context, id uuid.UUID) error {
	defer l.shared()()

	err := l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Envelopes().GetByID(ctx, id); err != nil {
			return err
		}

		categories, err := tx.Categories().QueryByField(ctx, "envelope_id", id)
		if err != nil {
			return err
		}

		for _, c := range categories {
			if err := deleteCategory(ctx, tx, c.ID); err != nil {
				return err
			}
		}

		return tx.Envelopes().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	l.log.Debug().Str("id", id.String()).Msg("envelope deleted")
	return nil
}

// ListEnvelopes returns all envelopes sorted by their display order.
// Envelopes with the same display order are in creation order.
func (l *Ledger) ListEnvelopes(ctx context.Context) ([]models.Envelope, error) {
	defer l.shared()()

	envelopes, err := l.store.Envelopes().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(envelopes, func(a, b models.Envelope) int {
		return a.DisplayOrder - b.DisplayOrder
	})

	return envelopes, nil
}

// CreateCategory creates a category in an existing envelope.
func (l *Ledger) CreateCategory(ctx context.Context, in CategoryEditable) (models.Category, error) {
	defer l.shared()()

	if err := checkName(in.Name); err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		EnvelopeID:   in.EnvelopeID,
		Name:         in.Name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	category.Stamp(l.timestamp())

	err := l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Envelopes().GetByID(ctx, in.EnvelopeID); err != nil {
			return err
		}

		return tx.Categories().Insert(ctx, &category)
	})
	if err != nil {
		return models.Category{}, err
	}

	l.log.Debug().Str("id", category.ID.String()).Str("name", category.Name).Msg("category created")
	return category, nil
}

// GetCategory returns the category with the ID.
func (l *Ledger) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	defer l.shared()()

	return l.store.Categories().GetByID(ctx, id)
}

// UpdateCategory replaces the editable fields of a category. The category
// can be moved to another existing envelope.
func (l *Ledger) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryEditable) (models.Category, error) {
	defer l.shared()()

	if err := checkName(in.Name); err != nil {
		return models.Category{}, err
	}

	var category models.Category
	err := l.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.Envelopes().GetByID(ctx, in.EnvelopeID); err != nil {
			return err
		}

		err := tx.Categories().Update(ctx, id, map[string]any{
			"envelope_id":   in.EnvelopeID,
			"name":          strings.TrimSpace(in.Name),
			"description":   strings.TrimSpace(in.Description),
			"display_order": in.DisplayOrder,
			"updated_at":    l.timestamp(),
		})
		if err != nil {
			return err
		}

		category, err = tx.Categories().GetByID(ctx, id)
		return err
	})

	return category, err
}

// DeleteCategory deletes a category with its budgets, expenses and
// settlements. Subsidies for the category's expenses and allocations to
// its budgets are deleted, too.
func (l *Ledger) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	defer l.shared()()

	err := l.store.Atomic(ctx, func(tx store.Store) error {
		return deleteCategory(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	l.log.Debug().Str("id", id.String()).Msg("category deleted")
	return nil
}

func deleteCategory(ctx context.Context, s store.Store, id uuid.UUID) error {
	if _, err := s.Categories().GetByID(ctx, id); err != nil {
		return err
	}

	expenses, err := s.Expenses().QueryByField(ctx, "category_id", id)
	if err != nil {
		return err
	}
	for _, e := range expenses {
		if err := s.Subsidies().DeleteWhere(ctx, "expense_id", e.ID); err != nil {
			return err
		}
	}
	if err := s.Expenses().DeleteWhere(ctx, "category_id", id); err != nil {
		return err
	}

	budgets, err := s.Budgets().QueryByField(ctx, "category_id", id)
	if err != nil {
		return err
	}
	for _, b := range budgets {
		if err := s.Allocations().DeleteWhere(ctx, "budget_id", b.ID); err != nil {
			return err
		}
	}
	if err := s.Budgets().DeleteWhere(ctx, "category_id", id); err != nil {
		return err
	}

	if err := s.Carryovers().DeleteWhere(ctx, "category_id", id); err != nil {
		return err
	}

	return s.Categories().Delete(ctx, id)
}

// ListCategories returns the categories of an envelope, or all categories
// if envelopeID is uuid.Nil. They are sorted like envelopes.
func (l *Ledger) ListCategories(ctx context.Context, envelopeID uuid.UUID) ([]models.Category, error) {
	defer l.shared()()

	var categories []models.Category
	var err error
	if envelopeID == uuid.Nil {
		categories, err = l.store.Categories().GetAll(ctx)
	} else {
		categories, err = l.store.Categories().QueryByField(ctx, "envelope_id", envelopeID)
	}
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(categories, func(a, b models.Category) int {
		return a.DisplayOrder - b.DisplayOrder
	})

	return categories, nil
}

// CreateIncome records an income. Its period is derived from the date.
func (l *Ledger) CreateIncome(ctx context.Context, in IncomeCreate) (models.Income, error) {
	defer l.shared()()

	period, err := types.PeriodOfDate(in.Date)
	if err != nil {
		return models.Income{}, err
	}

	if err := checkAmount("amount", in.Amount); err != nil {
		return models.Income{}, err
	}

	income := models.Income{
		Date:   in.Date,
		Period: period,
		Source: in.Source,
		Amount: in.Amount,
		Note:   in.Note,
	}
	income.Stamp(l.timestamp())

	if err := l.store.Incomes().Insert(ctx, &income); err != nil {
		return models.Income{}, err
	}

	l.log.Debug().Str("id", income.ID.String()).Str("amount", income.Amount.String()).Msg("income created")
	return income, nil
}

// GetIncome returns the income with the ID.
func (l *Ledger) GetIncome(ctx context.Context, id uuid.UUID) (models.Income, error) {
	defer l.shared()()

	return l.store.Incomes().GetByID(ctx, id)
}

// ListIncomes returns the incomes of a period, all incomes if the period
// is empty.
func (l *Ledger) ListIncomes(ctx context.Context, period types.Period) ([]models.Income, error) {
	defer l.shared()()

	if period == "" {
		return l.store.Incomes().GetAll(ctx)
	}

	return l.store.Incomes().QueryByField(ctx, "period", period)
}

// DeleteIncome deletes an income. Its allocations are kept, the money
// stays in the budgets.
func (l *Ledger) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	defer l.shared()()

	return l.store.Incomes().Delete(ctx, id)
}
