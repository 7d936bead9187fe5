package models

import (
	"time"

	"github.com/google/uuid"
)

// WasteData is one collection record for a municipality
type WasteData struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Municipality   string     `json:"municipality" db:"municipality"`
	WasteType      string     `json:"waste_type" db:"waste_type"`
	Quantity       float64    `json:"quantity" db:"quantity"`
	Unit           string     `json:"unit" db:"unit"`
	CollectionDate time.Time  `json:"collection_date" db:"collection_date"`
	CreatedBy      *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// DefaultWasteUnit is used when a record is created without a unit
const DefaultWasteUnit = "tonnes"

// NewWasteData creates a new collection record
func NewWasteData(municipality, wasteType string, quantity float64, unit string, collectedOn time.Time) *WasteData {
	if unit == "" {
		unit = DefaultWasteUnit
	}
	now := time.Now()
	return &WasteData{
		ID:             uuid.New(),
		Municipality:   municipality,
		WasteType:      wasteType,
		Quantity:       quantity,
		Unit:           unit,
		CollectionDate: collectedOn,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
