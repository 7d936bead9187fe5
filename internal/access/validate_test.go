package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultTables(t *testing.T) {
	require.NoError(t, Validate(DefaultPolicy, DefaultRoutes))
}

func TestValidate(t *testing.T) {
	total := func(modules []Module) Grants {
		g := Grants{}
		for _, r := range Roles() {
			row := map[Module]bool{}
			for _, m := range modules {
				row[m] = r == RoleSuperAdmin
			}
			g[r] = row
		}
		return g
	}
	modules := []Module{ModuleDashboard, ModuleLogs}
	routes := NewRouteTable(RouteEntry{ModuleDashboard, "/"}, RouteEntry{ModuleLogs, "/logs"})

	t.Run("consistent tables pass", func(t *testing.T) {
		assert.NoError(t, Validate(NewPolicy(modules, total(modules)), routes))
	})

	t.Run("missing role row", func(t *testing.T) {
		g := total(modules)
		delete(g, RoleViewer)
		err := Validate(NewPolicy(modules, g), routes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `role "viewer" has no policy row`)
	})

	t.Run("missing entry", func(t *testing.T) {
		g := total(modules)
		delete(g[RoleTechnologist], ModuleLogs)
		err := Validate(NewPolicy(modules, g), routes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `role "technologist" has no entry for module "logs"`)
	})

	t.Run("unknown role row", func(t *testing.T) {
		g := total(modules)
		g[Role("guest")] = map[Module]bool{ModuleDashboard: true}
		err := Validate(NewPolicy(modules, g), routes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown role "guest"`)
	})

	t.Run("module without route", func(t *testing.T) {
		err := Validate(NewPolicy(modules, total(modules)), NewRouteTable(RouteEntry{ModuleDashboard, "/"}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `module "logs" has no route`)
	})

	t.Run("shared path", func(t *testing.T) {
		err := Validate(NewPolicy(modules, total(modules)), NewRouteTable(
			RouteEntry{ModuleDashboard, "/"},
			RouteEntry{ModuleLogs, "/"},
		))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `path "/" used by modules "dashboard" and "logs"`)
	})

	t.Run("route for undeclared module", func(t *testing.T) {
		err := Validate(NewPolicy(modules, total(modules)), NewRouteTable(
			RouteEntry{ModuleDashboard, "/"},
			RouteEntry{ModuleLogs, "/logs"},
			RouteEntry{ModuleSettings, "/settings"},
		))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `route "/settings" points at undeclared module "settings"`)
	})

	t.Run("nil tables", func(t *testing.T) {
		assert.Error(t, Validate(nil, routes))
		assert.Error(t, Validate(NewPolicy(modules, total(modules)), nil))
	})
}
