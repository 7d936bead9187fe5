// Package scenario estimates energy, carbon and cost outcomes of converting a
// district's waste stream with one of the supported WtE technologies.
package scenario

// TechnologyID identifies a conversion technology
type TechnologyID string

const (
	Gasification TechnologyID = "gasification"
	Incineration TechnologyID = "incineration"
	Anaerobic    TechnologyID = "anaerobic"
)

// Technology describes a conversion technology offered by the simulator
type Technology struct {
	ID          TechnologyID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Efficiency  float64      `json:"efficiency"` // percent
	BestFor     string       `json:"best_for"`
	EnergyYield string       `json:"energy_yield"`
}

var catalog = []Technology{
	{
		ID:          Gasification,
		Name:        "Gasification",
		Description: "High efficiency, converts waste to syngas",
		Efficiency:  80,
		BestFor:     "Mixed waste streams",
		EnergyYield: "600-900 kWh/ton",
	},
	{
		ID:          Incineration,
		Name:        "Incineration",
		Description: "Proven technology, direct combustion",
		Efficiency:  70,
		BestFor:     "High calorific waste",
		EnergyYield: "500-600 kWh/ton",
	},
	{
		ID:          Anaerobic,
		Name:        "Anaerobic Digestion",
		Description: "Best for organic waste, produces biogas",
		Efficiency:  65,
		BestFor:     "Organic waste",
		EnergyYield: "80-140 kWh/ton",
	},
}

// Catalog returns the supported technologies in display order
func Catalog() []Technology {
	out := make([]Technology, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTechnology returns the catalog entry for id
func LookupTechnology(id TechnologyID) (Technology, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Technology{}, false
}

// ComparisonPoint is one bar group of the static technology comparison chart
type ComparisonPoint struct {
	Name   string  `json:"name"`
	Energy float64 `json:"energy"`
	Carbon float64 `json:"carbon"`
	Cost   float64 `json:"cost"`
}

// ComparisonChart returns the reference energy/carbon/cost figures per technology
func ComparisonChart() []ComparisonPoint {
	return []ComparisonPoint{
		{Name: "Gasification", Energy: 800, Carbon: 600, Cost: 400},
		{Name: "Anaerobic", Energy: 500, Carbon: 700, Cost: 300},
		{Name: "Incineration", Energy: 650, Carbon: 450, Cost: 350},
	}
}

// DistrictPreset holds the collection figures used to seed a simulation
type DistrictPreset struct {
	District             string  `json:"district"`
	CollectionEfficiency float64 `json:"collection_efficiency"`
	WasteVolume          float64 `json:"waste_volume"`
	OrganicPercentage    float64 `json:"organic_percentage"`
	RecyclablePercentage float64 `json:"recyclable_percentage"`
}

var presets = []DistrictPreset{
	{"Urban Area A", 92, 85000, 48, 32},
	{"Urban Area B", 88, 72000, 45, 30},
	{"Suburban Area C", 76, 42000, 50, 28},
	{"Suburban Area D", 72, 38000, 52, 25},
	{"Rural Area E", 65, 18000, 58, 20},
	{"Rural Area F", 58, 15000, 60, 18},
}

// Presets returns the district presets
func Presets() []DistrictPreset {
	out := make([]DistrictPreset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset returns the preset for district
func LookupPreset(district string) (DistrictPreset, bool) {
	for _, p := range presets {
		if p.District == district {
			return p, true
		}
	}
	return DistrictPreset{}, false
}

// Input builds simulation input from the preset for the given technology
func (p DistrictPreset) Input(tech TechnologyID) Input {
	return Input{
		District:             p.District,
		WasteVolume:          p.WasteVolume,
		OrganicPercentage:    p.OrganicPercentage,
		RecyclablePercentage: p.RecyclablePercentage,
		Technology:           tech,
	}
}
