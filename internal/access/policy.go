package access

import "fmt"

// Grants maps each role to an allow/deny entry for every module.
type Grants map[Role]map[Module]bool

// Policy is an immutable (Role, Module) -> allowed table with a fixed module order.
type Policy struct {
	modules []Module
	grants  Grants
}

// NewPolicy builds a policy from a module order and a grants table. Both are
// copied; later changes to the arguments do not affect the policy.
func NewPolicy(modules []Module, grants Grants) *Policy {
	p := &Policy{
		modules: make([]Module, len(modules)),
		grants:  make(Grants, len(grants)),
	}
	copy(p.modules, modules)
	for role, entries := range grants {
		row := make(map[Module]bool, len(entries))
		for module, allowed := range entries {
			row[module] = allowed
		}
		p.grants[role] = row
	}
	return p
}

// Modules returns the policy's module order. A nil policy has no modules.
func (p *Policy) Modules() []Module {
	if p == nil {
		return nil
	}
	out := make([]Module, len(p.modules))
	copy(out, p.modules)
	return out
}

// Allowed returns the literal entry for (role, module). The second result is
// false when the table has no entry for the pair.
func (p *Policy) Allowed(role Role, module Module) (allowed bool, ok bool) {
	if p == nil {
		return false, false
	}
	row, ok := p.grants[role]
	if !ok {
		return false, false
	}
	allowed, ok = row[module]
	return allowed, ok
}

func (p *Policy) String() string {
	if p == nil {
		return "policy(nil)"
	}
	return fmt.Sprintf("policy(%d roles, %d modules)", len(p.grants), len(p.modules))
}

// DefaultPolicy is the dashboard's role-module policy table.
var DefaultPolicy = NewPolicy(allModules, Grants{
	RoleSuperAdmin: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         true,
		ModuleTechnologyComparison:  true,
		ModuleSiteSuggestions:       true,
		ModuleScenarioSimulation:    true,
		ModuleFinancialAnalysis:     true,
		ModuleEnvironmentalImpact:   true,
		ModuleMultiCriteriaAnalysis: true,
		ModulePolicyAssistant:       true,
		ModuleUserManagement:        true,
		ModuleSettings:              true,
		ModuleLogs:                  true,
		ModuleDataManagement:        true,
		ModuleWteMonitoring:         true,
	},
	RoleMunicipalAnalyst: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         true,
		ModuleTechnologyComparison:  false,
		ModuleSiteSuggestions:       false,
		ModuleScenarioSimulation:    true,
		ModuleFinancialAnalysis:     true,
		ModuleEnvironmentalImpact:   false,
		ModuleMultiCriteriaAnalysis: false,
		ModulePolicyAssistant:       false,
		ModuleUserManagement:        false,
		ModuleSettings:              false,
		ModuleLogs:                  false,
		ModuleDataManagement:        true,
		ModuleWteMonitoring:         true,
	},
	RoleEnvironmentalSpecialist: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         true,
		ModuleTechnologyComparison:  false,
		ModuleSiteSuggestions:       false,
		ModuleScenarioSimulation:    false,
		ModuleFinancialAnalysis:     false,
		ModuleEnvironmentalImpact:   true,
		ModuleMultiCriteriaAnalysis: false,
		ModulePolicyAssistant:       true,
		ModuleUserManagement:        false,
		ModuleSettings:              false,
		ModuleLogs:                  false,
		ModuleDataManagement:        true,
		ModuleWteMonitoring:         true,
	},
	RoleGISPlanner: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         false,
		ModuleTechnologyComparison:  false,
		ModuleSiteSuggestions:       true,
		ModuleScenarioSimulation:    false,
		ModuleFinancialAnalysis:     false,
		ModuleEnvironmentalImpact:   true,
		ModuleMultiCriteriaAnalysis: false,
		ModulePolicyAssistant:       false,
		ModuleUserManagement:        false,
		ModuleSettings:              false,
		ModuleLogs:                  false,
		ModuleDataManagement:        true,
		ModuleWteMonitoring:         false,
	},
	RoleTechnologist: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         false,
		ModuleTechnologyComparison:  true,
		ModuleSiteSuggestions:       false,
		ModuleScenarioSimulation:    false,
		ModuleFinancialAnalysis:     false,
		ModuleEnvironmentalImpact:   false,
		ModuleMultiCriteriaAnalysis: true,
		ModulePolicyAssistant:       false,
		ModuleUserManagement:        false,
		ModuleSettings:              false,
		ModuleLogs:                  false,
		ModuleDataManagement:        true,
		ModuleWteMonitoring:         true,
	},
	RolePolicyMaker: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         false,
		ModuleTechnologyComparison:  false,
		ModuleSiteSuggestions:       false,
		ModuleScenarioSimulation:    true,
		ModuleFinancialAnalysis:     false,
		ModuleEnvironmentalImpact:   false,
		ModuleMultiCriteriaAnalysis: true,
		ModulePolicyAssistant:       true,
		ModuleUserManagement:        false,
		ModuleSettings:              false,
		ModuleLogs:                  false,
		ModuleDataManagement:        true,
		ModuleWteMonitoring:         false,
	},
	RoleViewer: {
		ModuleDashboard:             true,
		ModuleWasteAnalysis:         false,
		ModuleTechnologyComparison:  false,
		ModuleSiteSuggestions:       false,
		ModuleScenarioSimulation:    false,
		ModuleFinancialAnalysis:     false,
		ModuleEnvironmentalImpact:   false,
		ModuleMultiCriteriaAnalysis: false,
		ModulePolicyAssistant:       false,
		ModuleUserManagement:        false,
		ModuleSettings:              false,
		ModuleLogs:                  false,
		ModuleDataManagement:        false,
		ModuleWteMonitoring:         false,
	},
})
