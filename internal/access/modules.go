package access

// Module is a named functional area of the dashboard.
type Module string

const (
	ModuleDashboard             Module = "dashboard"
	ModuleWasteAnalysis         Module = "wasteAnalysis"
	ModuleTechnologyComparison  Module = "technologyComparison"
	ModuleSiteSuggestions       Module = "siteSuggestions"
	ModuleScenarioSimulation    Module = "scenarioSimulation"
	ModuleFinancialAnalysis     Module = "financialAnalysis"
	ModuleEnvironmentalImpact   Module = "environmentalImpact"
	ModuleMultiCriteriaAnalysis Module = "multiCriteriaAnalysis"
	ModulePolicyAssistant       Module = "policyAssistant"
	ModuleUserManagement        Module = "userManagement"
	ModuleSettings              Module = "settings"
	ModuleLogs                  Module = "logs"
	ModuleDataManagement        Module = "dataManagement"
	ModuleWteMonitoring         Module = "wteMonitoring"
)

// allModules is the declaration order used for every ordered result.
var allModules = []Module{
	ModuleDashboard,
	ModuleWasteAnalysis,
	ModuleTechnologyComparison,
	ModuleSiteSuggestions,
	ModuleScenarioSimulation,
	ModuleFinancialAnalysis,
	ModuleEnvironmentalImpact,
	ModuleMultiCriteriaAnalysis,
	ModulePolicyAssistant,
	ModuleUserManagement,
	ModuleSettings,
	ModuleLogs,
	ModuleDataManagement,
	ModuleWteMonitoring,
}

// Modules returns every known module in declaration order.
func Modules() []Module {
	out := make([]Module, len(allModules))
	copy(out, allModules)
	return out
}

func (m Module) String() string {
	return string(m)
}
