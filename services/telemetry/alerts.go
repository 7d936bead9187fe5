package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// Alert limits
const (
	COCriticalPPM       = 100.0
	SteamPressureMinBar = 42.0
	NOxWarningMg        = 200.0
)

// Alert is raised when a reading crosses an alert limit
type Alert struct {
	ID      string    `json:"id"`
	Level   Status    `json:"level"`
	Metric  Metric    `json:"metric"`
	Value   float64   `json:"value"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Alerts returns the alerts raised by r, in a fixed order
func Alerts(r Reading) []Alert {
	var out []Alert
	add := func(level Status, metric Metric, value float64, message string) {
		out = append(out, Alert{
			ID:      uuid.NewString(),
			Level:   level,
			Metric:  metric,
			Value:   value,
			Message: message,
			Time:    r.Timestamp,
		})
	}

	if r.GasComposition.CarbonMonoxide > COCriticalPPM {
		add(StatusCritical, MetricCarbonMonoxide, r.GasComposition.CarbonMonoxide,
			"High CO levels detected - Incomplete combustion")
	}
	if r.Energy.SteamPressure < SteamPressureMinBar {
		add(StatusWarning, MetricSteamPressure, r.Energy.SteamPressure,
			"Low steam pressure - Check boiler performance")
	}
	if r.GasComposition.NOx > NOxWarningMg {
		add(StatusWarning, MetricNOx, r.GasComposition.NOx,
			"NOx levels approaching emission limits")
	}
	return out
}
