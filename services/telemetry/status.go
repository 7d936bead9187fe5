package telemetry

// Status grades a sensor value
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in the range, bounds included
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Classify grades value: normal inside the normal band, warning inside the
// warning band, critical otherwise. Bounds are inclusive and the normal band
// wins where the two overlap.
func Classify(value float64, normal, warning Range) Status {
	switch {
	case normal.Contains(value):
		return StatusNormal
	case warning.Contains(value):
		return StatusWarning
	default:
		return StatusCritical
	}
}

// Metric names a graded sensor channel
type Metric string

const (
	MetricPrimaryAirflow   Metric = "primary_airflow"
	MetricSecondaryAirflow Metric = "secondary_airflow"
	MetricIDFanSpeed       Metric = "id_fan_speed"
	MetricFurnacePressure  Metric = "furnace_pressure"
	MetricOxygen           Metric = "oxygen"
	MetricCarbonMonoxide   Metric = "carbon_monoxide"
	MetricCarbonDioxide    Metric = "carbon_dioxide"
	MetricNOx              Metric = "nox"
	MetricSO2              Metric = "so2"
	MetricHCl              Metric = "hcl"
	MetricSteamFlow        Metric = "steam_flow"
	MetricSteamTemp        Metric = "steam_temp"
	MetricSteamPressure    Metric = "steam_pressure"
	MetricPowerGenerated   Metric = "power_generated"
	MetricPlantEfficiency  Metric = "plant_efficiency"
)

// Threshold holds the operating bands of one metric
type Threshold struct {
	Metric  Metric `json:"metric"`
	Unit    string `json:"unit"`
	Normal  Range  `json:"normal"`
	Warning Range  `json:"warning"`
	value   func(Reading) float64
}

var thresholds = []Threshold{
	{MetricPrimaryAirflow, "Nm³/h", Range{800, 950}, Range{700, 1000}, func(r Reading) float64 { return r.Airflow.PrimaryAirflow }},
	{MetricSecondaryAirflow, "Nm³/h", Range{400, 500}, Range{350, 550}, func(r Reading) float64 { return r.Airflow.SecondaryAirflow }},
	{MetricIDFanSpeed, "%", Range{70, 85}, Range{60, 90}, func(r Reading) float64 { return r.Airflow.IDFanSpeed }},
	{MetricFurnacePressure, "mbar", Range{-3, -2}, Range{-4, -1}, func(r Reading) float64 { return r.Airflow.FurnacePressure }},
	{MetricOxygen, "%", Range{6, 11}, Range{4, 13}, func(r Reading) float64 { return r.GasComposition.Oxygen }},
	{MetricCarbonMonoxide, "ppm", Range{0, 80}, Range{80, 120}, func(r Reading) float64 { return r.GasComposition.CarbonMonoxide }},
	{MetricCarbonDioxide, "%", Range{10, 15}, Range{8, 17}, func(r Reading) float64 { return r.GasComposition.CarbonDioxide }},
	{MetricNOx, "mg/Nm³", Range{0, 200}, Range{200, 250}, func(r Reading) float64 { return r.GasComposition.NOx }},
	{MetricSO2, "mg/Nm³", Range{0, 30}, Range{30, 50}, func(r Reading) float64 { return r.GasComposition.SO2 }},
	{MetricHCl, "mg/Nm³", Range{0, 10}, Range{10, 15}, func(r Reading) float64 { return r.GasComposition.HCl }},
	{MetricSteamFlow, "kg/h", Range{40, 50}, Range{35, 55}, func(r Reading) float64 { return r.Energy.SteamFlow }},
	{MetricSteamTemp, "°C", Range{480, 500}, Range{470, 510}, func(r Reading) float64 { return r.Energy.SteamTemp }},
	{MetricSteamPressure, "bar", Range{42, 48}, Range{40, 50}, func(r Reading) float64 { return r.Energy.SteamPressure }},
	{MetricPowerGenerated, "MW", Range{7, 10}, Range{5, 12}, func(r Reading) float64 { return r.Energy.PowerGenerated }},
	{MetricPlantEfficiency, "%", Range{80, 95}, Range{70, 100}, func(r Reading) float64 { return r.Energy.PlantEfficiency }},
}

// Thresholds returns the operating bands of every graded metric
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	copy(out, thresholds)
	return out
}

// MetricStatus is the grade of one metric in a reading
type MetricStatus struct {
	Metric Metric  `json:"metric"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Status Status  `json:"status"`
}

// Evaluate grades every metric of r in threshold table order
func Evaluate(r Reading) []MetricStatus {
	out := make([]MetricStatus, 0, len(thresholds))
	for _, t := range thresholds {
		v := t.value(r)
		out = append(out, MetricStatus{
			Metric: t.Metric,
			Value:  v,
			Unit:   t.Unit,
			Status: Classify(v, t.Normal, t.Warning),
		})
	}
	return out
}
