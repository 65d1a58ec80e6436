package models

import (
	"strings"

	"gorm.io/gorm"
)

// Envelope groups categories, e.g. "Living Cost".
type Envelope struct {
	DefaultModel
	Name         string `json:"name" gorm:"uniqueIndex:envelope_name" example:"Living Cost" default:""`      // Name of the envelope
	Description  string `json:"description" example:"Everything needed to get through the month" default:""` // Description of the envelope
	DisplayOrder int    `json:"displayOrder" example:"1" default:"0"`                                        // Position of the envelope in lists
}

func (e *Envelope) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)

	return nil
}
