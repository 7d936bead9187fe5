package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScenarioSimulation is a saved, named simulation run
type ScenarioSimulation struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description *string         `json:"description,omitempty" db:"description"`
	Technology  *string         `json:"technology,omitempty" db:"technology"`
	WasteInput  *float64        `json:"waste_input,omitempty" db:"waste_input"`
	Capacity    *float64        `json:"capacity,omitempty" db:"capacity"`
	Results     json.RawMessage `json:"results,omitempty" db:"results"` // JSONB
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// NewScenarioSimulation creates a new saved scenario
func NewScenarioSimulation(name string) *ScenarioSimulation {
	now := time.Now()
	return &ScenarioSimulation{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithResults stores the marshalled results; marshal failures leave Results unset
func (s *ScenarioSimulation) WithResults(results interface{}) *ScenarioSimulation {
	if data, err := json.Marshal(results); err == nil {
		s.Results = data
	}
	return s
}
