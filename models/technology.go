package models

import (
	"time"

	"github.com/google/uuid"
)

// TechnologyComparison describes a conversion technology for side-by-side comparison
type TechnologyComparison struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	Type                string     `json:"type" db:"type"`
	Description         *string    `json:"description,omitempty" db:"description"`
	Efficiency          *float64   `json:"efficiency,omitempty" db:"efficiency"`
	CapitalCost         *float64   `json:"capital_cost,omitempty" db:"capital_cost"`
	OperatingCost       *float64   `json:"operating_cost,omitempty" db:"operating_cost"`
	CapacityRange       *string    `json:"capacity_range,omitempty" db:"capacity_range"`
	EnvironmentalImpact *string    `json:"environmental_impact,omitempty" db:"environmental_impact"`
	CreatedBy           *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// NewTechnologyComparison creates a new technology entry
func NewTechnologyComparison(name, techType string) *TechnologyComparison {
	now := time.Now()
	return &TechnologyComparison{
		ID:        uuid.New(),
		Name:      name,
		Type:      techType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
