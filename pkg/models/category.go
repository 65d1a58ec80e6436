package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a single budget line within an Envelope, e.g. "Transport".
type Category struct {
	DefaultModel
	EnvelopeID   uuid.UUID `json:"envelopeId" gorm:"uniqueIndex:category_envelope_name" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the envelope the category belongs to
	Name         string    `json:"name" gorm:"uniqueIndex:category_envelope_name" example:"Transport" default:""`                       // Name of the category
	Description  string    `json:"description" example:"Bus and train tickets" default:""`                                              // Description of the category
	DisplayOrder int       `json:"displayOrder" example:"2" default:"0"`                                                                // Position of the category in its envelope
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)

	return nil
}
