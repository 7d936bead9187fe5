package waste

import "github.com/upb/wte-dashboard/backend/services/scenario"

// Share is a named percentage
type Share struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CalorificValue is the energy content of a waste fraction in MJ/kg
type CalorificValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// EnergyPotential summarises a recovery method
type EnergyPotential struct {
	Method       string  `json:"method"`
	Category     string  `json:"category"`
	Efficiency   string  `json:"efficiency"`
	EnergyYield  string  `json:"energy_yield"`
	AnnualEnergy float64 `json:"annual_energy"` // MWh/year
}

// District is a district preset graded by collection efficiency
type District struct {
	scenario.DistrictPreset
	Band string `json:"band"`
}

// Reference bundles the static datasets shown by the waste analysis module
type Reference struct {
	Composition     []Share                   `json:"composition"`
	CalorificValues []CalorificValue          `json:"calorific_values"`
	Districts       []District                `json:"districts"`
	EnergyPotential []EnergyPotential         `json:"energy_potential"`
}

// ReferenceData returns fresh copies of the reference datasets
func ReferenceData() Reference {
	return Reference{
		Composition: []Share{
			{"Organic", 45},
			{"Recyclables", 30},
			{"Inert Waste", 15},
			{"Hazardous", 5},
			{"Others", 5},
		},
		CalorificValues: []CalorificValue{
			{"Paper", 16.8},
			{"Textiles", 17.5},
			{"Plastics", 32.6},
			{"Food waste", 4.2},
			{"Yard waste", 6.5},
			{"Wood", 18.6},
			{"Mixed MSW", 10.5},
		},
		Districts: gradedDistricts(),
		EnergyPotential: []EnergyPotential{
			{"Gasification", "Processed RDF", "70-90%", "600-900 kWh/ton", 145000},
			{"Incineration", "Mixed MSW", "65-85%", "500-600 kWh/ton", 114000},
			{"Anaerobic Digestion", "Organic", "60-80%", "80-140 kWh/ton", 28000},
			{"Landfill Gas Recovery", "Landfill", "40-60%", "50-90 kWh/ton", 21000},
		},
	}
}

// EfficiencyBand grades a district's collection efficiency: good at 85 and
// above, fair from 70, poor below
func EfficiencyBand(efficiency float64) string {
	switch {
	case efficiency >= 85:
		return "good"
	case efficiency >= 70:
		return "fair"
	default:
		return "poor"
	}
}

func gradedDistricts() []District {
	presets := scenario.Presets()
	out := make([]District, len(presets))
	for i, p := range presets {
		out[i] = District{DistrictPreset: p, Band: EfficiencyBand(p.CollectionEfficiency)}
	}
	return out
}
