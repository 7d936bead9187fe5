package waste

import (
	"math"
	"sort"

	"github.com/upb/wte-dashboard/backend/models"
)

// TypeTotal is the collected quantity of one waste type
type TypeTotal struct {
	WasteType  string  `json:"waste_type"`
	Quantity   float64 `json:"quantity"`
	Percentage float64 `json:"percentage"`
}

// MunicipalityTotal is the collected quantity of one municipality
type MunicipalityTotal struct {
	Municipality string  `json:"municipality"`
	Quantity     float64 `json:"quantity"`
	Records      int     `json:"records"`
}

// Summary aggregates collection records
type Summary struct {
	TotalQuantity  float64             `json:"total_quantity"`
	Records        int                 `json:"records"`
	ByWasteType    []TypeTotal         `json:"by_waste_type"`
	ByMunicipality []MunicipalityTotal `json:"by_municipality"`
}

// Summarize totals records by waste type and municipality. Both breakdowns
// are sorted by quantity descending, then by name. Percentages are rounded
// to one decimal and are zero when nothing was collected.
func Summarize(records []*models.WasteData) Summary {
	byType := map[string]float64{}
	byMunicipality := map[string]*MunicipalityTotal{}

	s := Summary{
		ByWasteType:    []TypeTotal{},
		ByMunicipality: []MunicipalityTotal{},
	}
	for _, r := range records {
		if r == nil {
			continue
		}
		s.Records++
		s.TotalQuantity += r.Quantity
		byType[r.WasteType] += r.Quantity

		m, ok := byMunicipality[r.Municipality]
		if !ok {
			m = &MunicipalityTotal{Municipality: r.Municipality}
			byMunicipality[r.Municipality] = m
		}
		m.Quantity += r.Quantity
		m.Records++
	}

	for wasteType, qty := range byType {
		t := TypeTotal{WasteType: wasteType, Quantity: qty}
		if s.TotalQuantity > 0 {
			t.Percentage = math.Round(qty/s.TotalQuantity*1000) / 10
		}
		s.ByWasteType = append(s.ByWasteType, t)
	}
	sort.Slice(s.ByWasteType, func(i, j int) bool {
		a, b := s.ByWasteType[i], s.ByWasteType[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.WasteType < b.WasteType
	})

	for _, m := range byMunicipality {
		s.ByMunicipality = append(s.ByMunicipality, *m)
	}
	sort.Slice(s.ByMunicipality, func(i, j int) bool {
		a, b := s.ByMunicipality[i], s.ByMunicipality[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Municipality < b.Municipality
	})

	return s
}
