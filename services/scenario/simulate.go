package scenario

import (
	"math"

	"github.com/upb/wte-dashboard/backend/services"
)

const (
	DefaultDistrict             = "Custom"
	DefaultWasteVolume          = 200000.0 // tonnes per year
	DefaultOrganicPercentage    = 45.0
	DefaultRecyclablePercentage = 30.0
	DefaultTechnology           = Gasification

	// revenue per MWh produced
	revenueFactor = 1.2
)

// Input describes the waste stream to simulate. Any zero field falls back
// to its default, so a 0% organic share simulates 45%.
type Input struct {
	District             string       `json:"district,omitempty"`
	WasteVolume          float64      `json:"waste_volume,omitempty" validate:"gte=0"`
	OrganicPercentage    float64      `json:"organic_percentage,omitempty" validate:"gte=0,lte=100"`
	RecyclablePercentage float64      `json:"recyclable_percentage,omitempty" validate:"gte=0,lte=100"`
	Technology           TechnologyID `json:"technology,omitempty"`
}

// Resolved is an Input with every default applied
type Resolved struct {
	District             string       `json:"district"`
	WasteVolume          float64      `json:"waste_volume"`
	OrganicPercentage    float64      `json:"organic_percentage"`
	RecyclablePercentage float64      `json:"recyclable_percentage"`
	Technology           TechnologyID `json:"technology"`
	Efficiency           float64      `json:"efficiency"`
}

// Result holds the rounded yearly outcomes of a simulation
type Result struct {
	EnergyOutput      float64 `json:"energy_output"`      // MWh/year
	CarbonReduction   float64 `json:"carbon_reduction"`   // tonnes CO2/year
	OperationalCost   float64 `json:"operational_cost"`   // thousand USD/year
	LandfillDiversion float64 `json:"landfill_diversion"` // tonnes/year
	RevenueEstimate   float64 `json:"revenue_estimate"`   // thousand USD/year
}

// Simulation pairs the resolved input with its result
type Simulation struct {
	Input  Resolved `json:"input"`
	Result Result   `json:"result"`
}

// Resolve applies defaults and checks the input
func (in Input) Resolve() (Resolved, error) {
	r := Resolved{
		District:             in.District,
		WasteVolume:          in.WasteVolume,
		OrganicPercentage:    in.OrganicPercentage,
		RecyclablePercentage: in.RecyclablePercentage,
		Technology:           in.Technology,
	}
	if r.District == "" {
		r.District = DefaultDistrict
	}
	if r.WasteVolume == 0 {
		r.WasteVolume = DefaultWasteVolume
	}
	if r.OrganicPercentage == 0 {
		r.OrganicPercentage = DefaultOrganicPercentage
	}
	if r.RecyclablePercentage == 0 {
		r.RecyclablePercentage = DefaultRecyclablePercentage
	}
	if r.Technology == "" {
		r.Technology = DefaultTechnology
	}

	if r.WasteVolume < 0 || math.IsNaN(r.WasteVolume) || math.IsInf(r.WasteVolume, 0) {
		return r, services.NewDomainError(services.ErrorTypeValidation, "waste volume must be a non-negative number", nil)
	}
	for _, pct := range []float64{r.OrganicPercentage, r.RecyclablePercentage} {
		if pct < 0 || pct > 100 || math.IsNaN(pct) {
			return r, services.NewDomainError(services.ErrorTypeValidation, "percentages must be between 0 and 100", nil)
		}
	}
	if r.OrganicPercentage+r.RecyclablePercentage > 100 {
		return r, services.ErrInvalidComposition
	}

	tech, ok := LookupTechnology(r.Technology)
	if !ok {
		return r, services.NewDomainError(services.ErrorTypeValidation, services.ErrUnknownTechnology.Message, nil).
			WithDetail("technology", string(r.Technology))
	}
	r.Efficiency = tech.Efficiency
	return r, nil
}

// Simulate resolves the input and computes the outcomes
func Simulate(in Input) (*Simulation, error) {
	r, err := in.Resolve()
	if err != nil {
		return nil, err
	}
	return &Simulation{Input: r, Result: compute(r)}, nil
}

// CompareAll simulates the same waste stream with every catalog technology
func CompareAll(in Input) ([]Simulation, error) {
	out := make([]Simulation, 0, len(catalog))
	for _, tech := range catalog {
		in.Technology = tech.ID
		sim, err := Simulate(in)
		if err != nil {
			return nil, err
		}
		out = append(out, *sim)
	}
	return out, nil
}

func compute(r Resolved) Result {
	organic := r.WasteVolume * r.OrganicPercentage / 100
	recyclable := r.WasteVolume * r.RecyclablePercentage / 100
	residual := r.WasteVolume - organic - recyclable
	eff := r.Efficiency / 100

	var energy, carbon, cost float64
	switch r.Technology {
	case Gasification:
		energy = residual * 0.8 * eff
		carbon = energy * 0.6
		cost = energy * 0.4
	case Anaerobic:
		energy = organic * 0.5 * eff
		carbon = energy * 0.7
		cost = energy * 0.3
	case Incineration:
		energy = residual * 0.65 * eff
		carbon = energy * 0.45
		cost = energy * 0.35
	}

	return Result{
		EnergyOutput:      math.Round(energy),
		CarbonReduction:   math.Round(carbon),
		OperationalCost:   math.Round(cost),
		LandfillDiversion: math.Round((organic + residual) * eff),
		RevenueEstimate:   math.Round(energy * revenueFactor),
	}
}
