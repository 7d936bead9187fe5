package access

// RouteEntry binds a module to its URL path.
type RouteEntry struct {
	Module Module
	Path   string
}

// RouteTable is an ordered Module -> path table. Reverse lookups scan it in order.
type RouteTable struct {
	entries []RouteEntry
}

// NewRouteTable builds a route table from entries, preserving their order.
func NewRouteTable(entries ...RouteEntry) *RouteTable {
	t := &RouteTable{entries: make([]RouteEntry, len(entries))}
	copy(t.entries, entries)
	return t
}

// Entries returns a copy of the table in declaration order.
func (t *RouteTable) Entries() []RouteEntry {
	if t == nil {
		return nil
	}
	out := make([]RouteEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// PathOf returns the path registered for module.
func (t *RouteTable) PathOf(module Module) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, e := range t.entries {
		if e.Module == module {
			return e.Path, true
		}
	}
	return "", false
}

// ModuleOf returns the first module whose path equals path.
func (t *RouteTable) ModuleOf(path string) (Module, bool) {
	if t == nil {
		return "", false
	}
	for _, e := range t.entries {
		if e.Path == path {
			return e.Module, true
		}
	}
	return "", false
}

// DefaultRoutes is the dashboard's module route table.
var DefaultRoutes = NewRouteTable(
	RouteEntry{ModuleDashboard, "/"},
	RouteEntry{ModuleWasteAnalysis, "/waste-analysis"},
	RouteEntry{ModuleTechnologyComparison, "/compare"},
	RouteEntry{ModuleSiteSuggestions, "/sites"},
	RouteEntry{ModuleScenarioSimulation, "/simulation"},
	RouteEntry{ModuleFinancialAnalysis, "/financial"},
	RouteEntry{ModuleEnvironmentalImpact, "/environmental"},
	RouteEntry{ModuleMultiCriteriaAnalysis, "/mcda"},
	RouteEntry{ModulePolicyAssistant, "/policy"},
	RouteEntry{ModuleUserManagement, "/users"},
	RouteEntry{ModuleSettings, "/settings"},
	RouteEntry{ModuleLogs, "/logs"},
	RouteEntry{ModuleDataManagement, "/data"},
	RouteEntry{ModuleWteMonitoring, "/wte-monitor"},
)
