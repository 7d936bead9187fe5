package access

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedAllowed lists the allowed modules per role; everything else is denied.
var expectedAllowed = map[Role][]Module{
	RoleSuperAdmin: allModules,
	RoleMunicipalAnalyst: {
		ModuleDashboard, ModuleWasteAnalysis, ModuleScenarioSimulation,
		ModuleFinancialAnalysis, ModuleDataManagement, ModuleWteMonitoring,
	},
	RoleEnvironmentalSpecialist: {
		ModuleDashboard, ModuleWasteAnalysis, ModuleEnvironmentalImpact,
		ModulePolicyAssistant, ModuleDataManagement, ModuleWteMonitoring,
	},
	RoleGISPlanner: {
		ModuleDashboard, ModuleSiteSuggestions, ModuleEnvironmentalImpact, ModuleDataManagement,
	},
	RoleTechnologist: {
		ModuleDashboard, ModuleTechnologyComparison, ModuleMultiCriteriaAnalysis,
		ModuleDataManagement, ModuleWteMonitoring,
	},
	RolePolicyMaker: {
		ModuleDashboard, ModuleScenarioSimulation, ModuleMultiCriteriaAnalysis,
		ModulePolicyAssistant, ModuleDataManagement,
	},
	RoleViewer: {ModuleDashboard},
}

func TestHasAccess_MatchesPolicyTable(t *testing.T) {
	require.Len(t, expectedAllowed, len(Roles()))

	for _, role := range Roles() {
		allowed := make(map[Module]bool)
		for _, m := range expectedAllowed[role] {
			allowed[m] = true
		}
		for _, m := range Modules() {
			assert.Equal(t, allowed[m], HasAccess(role, m), "role=%s module=%s", role, m)
		}
	}
}

func TestHasAccess(t *testing.T) {
	t.Run("viewer cannot manage users", func(t *testing.T) {
		assert.False(t, HasAccess(RoleViewer, ModuleUserManagement))
	})

	t.Run("super admin can manage users", func(t *testing.T) {
		assert.True(t, HasAccess(RoleSuperAdmin, ModuleUserManagement))
	})

	t.Run("absent role is denied everything", func(t *testing.T) {
		for _, m := range Modules() {
			assert.False(t, HasAccess(RoleNone, m), "module=%s", m)
		}
	})

	t.Run("unknown role is denied everything", func(t *testing.T) {
		for _, m := range Modules() {
			assert.False(t, HasAccess(Role("janitor"), m), "module=%s", m)
		}
	})

	t.Run("unknown module is denied", func(t *testing.T) {
		assert.False(t, HasAccess(RoleSuperAdmin, Module("reactorControl")))
	})

	t.Run("missing entry fails closed", func(t *testing.T) {
		modules := []Module{ModuleDashboard, ModuleSettings}
		r := NewResolver(
			NewPolicy(modules, Grants{RoleSuperAdmin: {ModuleDashboard: true}}),
			NewRouteTable(RouteEntry{ModuleDashboard, "/"}, RouteEntry{ModuleSettings, "/settings"}),
		)
		assert.True(t, r.HasAccess(RoleSuperAdmin, ModuleDashboard))
		assert.False(t, r.HasAccess(RoleSuperAdmin, ModuleSettings))
		assert.False(t, r.HasAccess(RoleViewer, ModuleDashboard))
	})

	t.Run("nil resolver denies", func(t *testing.T) {
		var r *Resolver
		assert.False(t, r.HasAccess(RoleSuperAdmin, ModuleDashboard))
		assert.Empty(t, r.AccessibleRoutes(RoleSuperAdmin))
	})
}

func TestAccessibleRoutes(t *testing.T) {
	t.Run("viewer only sees the dashboard", func(t *testing.T) {
		assert.Equal(t, []string{"/"}, AccessibleRoutes(RoleViewer))
	})

	t.Run("super admin sees every route in module order", func(t *testing.T) {
		var want []string
		for _, e := range DefaultRoutes.Entries() {
			want = append(want, e.Path)
		}
		assert.Equal(t, want, AccessibleRoutes(RoleSuperAdmin))
	})

	t.Run("gis planner", func(t *testing.T) {
		assert.Equal(t, []string{"/", "/sites", "/environmental", "/data"}, AccessibleRoutes(RoleGISPlanner))
	})

	t.Run("technologist", func(t *testing.T) {
		assert.Equal(t, []string{"/", "/compare", "/mcda", "/data", "/wte-monitor"}, AccessibleRoutes(RoleTechnologist))
	})

	t.Run("absent and unknown roles get an empty list", func(t *testing.T) {
		assert.NotNil(t, AccessibleRoutes(RoleNone))
		assert.Empty(t, AccessibleRoutes(RoleNone))
		assert.Empty(t, AccessibleRoutes(Role("intern")))
	})

	t.Run("ordering follows policy module order not the route table", func(t *testing.T) {
		r := NewResolver(
			NewPolicy([]Module{ModuleLogs, ModuleDashboard}, Grants{
				RoleViewer: {ModuleLogs: true, ModuleDashboard: true},
			}),
			NewRouteTable(RouteEntry{ModuleDashboard, "/"}, RouteEntry{ModuleLogs, "/logs"}),
		)
		assert.Equal(t, []string{"/logs", "/"}, r.AccessibleRoutes(RoleViewer))
	})

	t.Run("allowed module without a route is dropped", func(t *testing.T) {
		r := NewResolver(
			NewPolicy([]Module{ModuleDashboard, ModuleSettings, ModuleLogs}, Grants{
				RoleSuperAdmin: {ModuleDashboard: true, ModuleSettings: true, ModuleLogs: true},
			}),
			NewRouteTable(RouteEntry{ModuleDashboard, "/"}, RouteEntry{ModuleLogs, "/logs"}),
		)
		assert.Equal(t, []string{"/", "/logs"}, r.AccessibleRoutes(RoleSuperAdmin))
		assert.Equal(t, []Module{ModuleDashboard, ModuleSettings, ModuleLogs}, r.AccessibleModules(RoleSuperAdmin))
	})
}

func TestModuleByRoute(t *testing.T) {
	t.Run("known route", func(t *testing.T) {
		m, ok := ModuleByRoute("/sites")
		require.True(t, ok)
		assert.Equal(t, ModuleSiteSuggestions, m)
	})

	t.Run("unknown route", func(t *testing.T) {
		m, ok := ModuleByRoute("/does-not-exist")
		assert.False(t, ok)
		assert.Equal(t, Module(""), m)
	})

	t.Run("round trip for every module", func(t *testing.T) {
		for _, m := range Modules() {
			path, ok := Default.RouteOf(m)
			require.True(t, ok, "module %s has no route", m)
			got, ok := ModuleByRoute(path)
			require.True(t, ok)
			assert.Equal(t, m, got)
		}
	})

	t.Run("duplicate paths resolve to the first match", func(t *testing.T) {
		r := NewResolver(DefaultPolicy, NewRouteTable(
			RouteEntry{ModuleSettings, "/settings"},
			RouteEntry{ModuleLogs, "/settings"},
		))
		m, ok := r.ModuleByRoute("/settings")
		require.True(t, ok)
		assert.Equal(t, ModuleSettings, m)
	})

	t.Run("lookup ignores the policy", func(t *testing.T) {
		m, ok := ModuleByRoute("/users")
		require.True(t, ok)
		assert.Equal(t, ModuleUserManagement, m)
		assert.False(t, HasAccess(RoleViewer, m))
	})
}

func TestCanNavigate(t *testing.T) {
	assert.True(t, Default.CanNavigate(RoleGISPlanner, "/sites"))
	assert.False(t, Default.CanNavigate(RoleViewer, "/sites"))
	assert.False(t, Default.CanNavigate(RoleSuperAdmin, "/nowhere"))
	assert.False(t, Default.CanNavigate(RoleNone, "/"))
}

func TestResolver_Idempotent(t *testing.T) {
	for _, role := range append(Roles(), RoleNone) {
		assert.Equal(t, AccessibleRoutes(role), AccessibleRoutes(role))
		for _, m := range Modules() {
			assert.Equal(t, HasAccess(role, m), HasAccess(role, m))
		}
	}
	first, ok1 := ModuleByRoute("/mcda")
	second, ok2 := ModuleByRoute("/mcda")
	assert.Equal(t, first, second)
	assert.Equal(t, ok1, ok2)
}

func TestResolver_ConcurrentUse(t *testing.T) {
	want := AccessibleRoutes(RoleMunicipalAnalyst)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, AccessibleRoutes(RoleMunicipalAnalyst))
				assert.True(t, HasAccess(RoleMunicipalAnalyst, ModuleFinancialAnalysis))
			}
		}()
	}
	wg.Wait()
}

func TestResolver_NilTables(t *testing.T) {
	r := NewResolver(nil, nil)

	assert.NotPanics(t, func() {
		assert.False(t, r.HasAccess(RoleSuperAdmin, ModuleDashboard))
		assert.Empty(t, r.AccessibleModules(RoleSuperAdmin))
		assert.Empty(t, r.AccessibleRoutes(RoleSuperAdmin))
		_, ok := r.ModuleByRoute("/")
		assert.False(t, ok)
		assert.False(t, r.CanNavigate(RoleSuperAdmin, "/"))
	})

	var p *Policy
	assert.Nil(t, p.Modules())
	assert.Equal(t, "policy(nil)", p.String())
}

func TestNewPolicy_CopiesInput(t *testing.T) {
	grants := Grants{RoleViewer: {ModuleDashboard: true}}
	p := NewPolicy([]Module{ModuleDashboard}, grants)

	grants[RoleViewer][ModuleDashboard] = false

	allowed, ok := p.Allowed(RoleViewer, ModuleDashboard)
	assert.True(t, ok)
	assert.True(t, allowed)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("gis_planner")
	assert.True(t, ok)
	assert.Equal(t, RoleGISPlanner, r)

	r, ok = ParseRole("root")
	assert.False(t, ok)
	assert.Equal(t, RoleNone, r)

	_, ok = ParseRole("")
	assert.False(t, ok)
}
