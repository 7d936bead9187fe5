package access

// Resolver answers access questions over a policy table and a route table.
// It holds no mutable state; a single Resolver may be shared by all callers.
type Resolver struct {
	policy *Policy
	routes *RouteTable
}

// NewResolver creates a Resolver over the given tables.
func NewResolver(policy *Policy, routes *RouteTable) *Resolver {
	return &Resolver{
		policy: policy,
		routes: routes,
	}
}

// Default resolves against DefaultPolicy and DefaultRoutes.
var Default = NewResolver(DefaultPolicy, DefaultRoutes)

// HasAccess reports whether role may use module. Absent or unknown roles,
// unknown modules and missing table entries all deny.
func (r *Resolver) HasAccess(role Role, module Module) bool {
	if r == nil || !role.Valid() {
		return false
	}
	allowed, ok := r.policy.Allowed(role, module)
	return ok && allowed
}

// AccessibleModules returns the modules role may use, in policy module order.
func (r *Resolver) AccessibleModules(role Role) []Module {
	modules := []Module{}
	if r == nil || !role.Valid() {
		return modules
	}
	for _, m := range r.policy.Modules() {
		if r.HasAccess(role, m) {
			modules = append(modules, m)
		}
	}
	return modules
}

// AccessibleRoutes returns the paths of the modules role may use, in policy
// module order. Allowed modules without a route are skipped.
func (r *Resolver) AccessibleRoutes(role Role) []string {
	routes := []string{}
	if r == nil {
		return routes
	}
	for _, m := range r.AccessibleModules(role) {
		if path, ok := r.routes.PathOf(m); ok {
			routes = append(routes, path)
		}
	}
	return routes
}

// ModuleByRoute returns the module registered for path. It does not consult
// the policy; combine with HasAccess (or use CanNavigate) to authorize.
func (r *Resolver) ModuleByRoute(path string) (Module, bool) {
	if r == nil {
		return "", false
	}
	return r.routes.ModuleOf(path)
}

// RouteOf returns the path registered for module.
func (r *Resolver) RouteOf(module Module) (string, bool) {
	if r == nil {
		return "", false
	}
	return r.routes.PathOf(module)
}

// CanNavigate reports whether role may open path.
func (r *Resolver) CanNavigate(role Role, path string) bool {
	module, ok := r.ModuleByRoute(path)
	if !ok {
		return false
	}
	return r.HasAccess(role, module)
}

// HasAccess reports whether role may use module under the default tables.
func HasAccess(role Role, module Module) bool {
	return Default.HasAccess(role, module)
}

// AccessibleRoutes returns the default-table paths role may open.
func AccessibleRoutes(role Role) []string {
	return Default.AccessibleRoutes(role)
}

// ModuleByRoute looks up path in the default route table.
func ModuleByRoute(path string) (Module, bool) {
	return Default.ModuleByRoute(path)
}
