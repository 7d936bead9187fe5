// Package telemetry produces plant sensor readings, grades them against
// operating thresholds and raises alerts.
package telemetry

import (
	"math/rand"
	"time"
)

// Reading is one snapshot of the plant's sensors
type Reading struct {
	Timestamp      time.Time      `json:"timestamp"`
	Airflow        Airflow        `json:"airflow"`
	GasComposition GasComposition `json:"gas_composition"`
	Energy         Energy         `json:"energy"`
	Auxiliary      Auxiliary      `json:"auxiliary"`
}

// Airflow holds combustion air readings
type Airflow struct {
	PrimaryAirflow   float64 `json:"primary_airflow"`   // Nm³/h
	SecondaryAirflow float64 `json:"secondary_airflow"` // Nm³/h
	IDFanSpeed       float64 `json:"id_fan_speed"`      // %
	FurnacePressure  float64 `json:"furnace_pressure"`  // mbar
}

// GasComposition holds flue gas readings
type GasComposition struct {
	Oxygen         float64 `json:"oxygen"`          // %
	CarbonMonoxide float64 `json:"carbon_monoxide"` // ppm
	CarbonDioxide  float64 `json:"carbon_dioxide"`  // %
	NOx            float64 `json:"nox"`             // mg/Nm³
	SO2            float64 `json:"so2"`             // mg/Nm³
	HCl            float64 `json:"hcl"`             // mg/Nm³
}

// Energy holds boiler and generator readings
type Energy struct {
	SteamFlow       float64 `json:"steam_flow"`       // kg/h
	SteamTemp       float64 `json:"steam_temp"`       // °C
	SteamPressure   float64 `json:"steam_pressure"`   // bar
	PowerGenerated  float64 `json:"power_generated"`  // MW
	PlantEfficiency float64 `json:"plant_efficiency"` // %
}

// Auxiliary holds flue gas treatment readings
type Auxiliary struct {
	LimePH        float64 `json:"lime_ph"`
	BagfilterDP   float64 `json:"bagfilter_dp"`   // Pa
	FeedwaterTemp float64 `json:"feedwater_temp"` // °C
}

// Generator produces mock readings. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator drawing from rnd
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd, now: time.Now}
}

// NewSeededGenerator creates a Generator seeded with seed, or with the
// current time when seed is zero
func NewSeededGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// between returns base + U[0,1)·span
func (g *Generator) between(base, span float64) float64 {
	return base + g.rnd.Float64()*span
}

// Next returns a new reading
func (g *Generator) Next() Reading {
	return Reading{
		Timestamp: g.now().UTC(),
		Airflow: Airflow{
			PrimaryAirflow:   g.between(850, 100),
			SecondaryAirflow: g.between(450, 50),
			IDFanSpeed:       g.between(75, 10),
			FurnacePressure:  g.between(-2.5, 0.5),
		},
		GasComposition: GasComposition{
			Oxygen:         g.between(8.5, 2),
			CarbonMonoxide: g.between(50, 30),
			CarbonDioxide:  g.between(12, 2),
			NOx:            g.between(180, 40),
			SO2:            g.between(25, 15),
			HCl:            g.between(8, 5),
		},
		Energy: Energy{
			SteamFlow:       g.between(45, 5),
			SteamTemp:       g.between(485, 15),
			SteamPressure:   g.between(45, 3),
			PowerGenerated:  g.between(8.5, 1.5),
			PlantEfficiency: g.between(85, 5),
		},
		Auxiliary: Auxiliary{
			LimePH:        g.between(11.2, 0.5),
			BagfilterDP:   g.between(1250, 150),
			FeedwaterTemp: g.between(105, 5),
		},
	}
}
