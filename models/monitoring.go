package models

import (
	"time"

	"github.com/google/uuid"
)

// MonitoringRecord is a persisted plant telemetry sample.
// Sensor columns are nullable because not every plant reports every channel.
type MonitoringRecord struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	SiteID           *uuid.UUID `json:"site_id,omitempty" db:"site_id"`
	Timestamp        time.Time  `json:"timestamp" db:"timestamp"`
	PrimaryAirflow   *float64   `json:"primary_airflow,omitempty" db:"primary_airflow"`
	SecondaryAirflow *float64   `json:"secondary_airflow,omitempty" db:"secondary_airflow"`
	FurnacePressure  *float64   `json:"furnace_pressure,omitempty" db:"furnace_pressure"`
	OxygenLevel      *float64   `json:"oxygen_level,omitempty" db:"oxygen_level"`
	COLevel          *float64   `json:"co_level,omitempty" db:"co_level"`
	CO2Level         *float64   `json:"co2_level,omitempty" db:"co2_level"`
	NOxLevel         *float64   `json:"nox_level,omitempty" db:"nox_level"`
	SO2Level         *float64   `json:"so2_level,omitempty" db:"so2_level"`
	SteamFlow        *float64   `json:"steam_flow,omitempty" db:"steam_flow"`
	SteamTemperature *float64   `json:"steam_temperature,omitempty" db:"steam_temperature"`
	SteamPressure    *float64   `json:"steam_pressure,omitempty" db:"steam_pressure"`
	PowerOutput      *float64   `json:"power_output,omitempty" db:"power_output"`
	Efficiency       *float64   `json:"efficiency,omitempty" db:"efficiency"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}
