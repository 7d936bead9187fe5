package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteStatus is the planning status of a candidate WtE site
type SiteStatus string

const (
	SiteStatusPlanned           SiteStatus = "planned"
	SiteStatusUnderConstruction SiteStatus = "under-construction"
	SiteStatusOperational       SiteStatus = "operational"
	SiteStatusUnderMaintenance  SiteStatus = "under-maintenance"
)

// Valid reports whether s is a known status
func (s SiteStatus) Valid() bool {
	switch s {
	case SiteStatusPlanned, SiteStatusUnderConstruction, SiteStatusOperational, SiteStatusUnderMaintenance:
		return true
	}
	return false
}

// WteSite is a candidate or operating waste-to-energy plant location
type WteSite struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	LocationName       string     `json:"location_name" db:"location_name"`
	Latitude           float64    `json:"latitude" db:"latitude"`
	Longitude          float64    `json:"longitude" db:"longitude"`
	Capacity           float64    `json:"capacity" db:"capacity"` // tonnes per day
	Technology         string     `json:"technology" db:"technology"`
	Status             SiteStatus `json:"status" db:"status"`
	EconomicScore      *float64   `json:"economic_score,omitempty" db:"economic_score"`
	EnvironmentalScore *float64   `json:"environmental_score,omitempty" db:"environmental_score"`
	CreatedBy          *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// NewWteSite creates a new site in the planned state
func NewWteSite(name, locationName string, lat, lng, capacity float64, technology string) *WteSite {
	now := time.Now()
	return &WteSite{
		ID:           uuid.New(),
		Name:         name,
		LocationName: locationName,
		Latitude:     lat,
		Longitude:    lng,
		Capacity:     capacity,
		Technology:   technology,
		Status:       SiteStatusPlanned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// OverallScore averages the economic and environmental scores that are set
func (s *WteSite) OverallScore() *float64 {
	var sum float64
	n := 0
	for _, v := range []*float64{s.EconomicScore, s.EnvironmentalScore} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
