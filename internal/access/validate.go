package access

import (
	"errors"
	"fmt"
)

// Validate checks that policy is total over the known roles and its modules,
// and that routes maps those modules one-to-one onto distinct paths.
// The resolver tolerates violations at runtime; callers run Validate at
// startup and in tests to catch them before that happens.
func Validate(policy *Policy, routes *RouteTable) error {
	if policy == nil {
		return errors.New("access: nil policy")
	}
	if routes == nil {
		return errors.New("access: nil route table")
	}

	var errs []error

	declared := make(map[Module]bool, len(policy.modules))
	for _, m := range policy.modules {
		if declared[m] {
			errs = append(errs, fmt.Errorf("access: module %q declared twice", m))
		}
		declared[m] = true
	}

	for _, role := range allRoles {
		row, ok := policy.grants[role]
		if !ok {
			errs = append(errs, fmt.Errorf("access: role %q has no policy row", role))
			continue
		}
		for _, m := range policy.modules {
			if _, ok := row[m]; !ok {
				errs = append(errs, fmt.Errorf("access: role %q has no entry for module %q", role, m))
			}
		}
		for m := range row {
			if !declared[m] {
				errs = append(errs, fmt.Errorf("access: role %q has entry for undeclared module %q", role, m))
			}
		}
	}
	for role := range policy.grants {
		if !role.Valid() {
			errs = append(errs, fmt.Errorf("access: policy row for unknown role %q", role))
		}
	}

	paths := make(map[string]Module, len(routes.entries))
	routed := make(map[Module]bool, len(routes.entries))
	for _, e := range routes.entries {
		if other, dup := paths[e.Path]; dup {
			errs = append(errs, fmt.Errorf("access: path %q used by modules %q and %q", e.Path, other, e.Module))
		} else {
			paths[e.Path] = e.Module
		}
		if routed[e.Module] {
			errs = append(errs, fmt.Errorf("access: module %q has more than one route", e.Module))
		}
		routed[e.Module] = true
		if !declared[e.Module] {
			errs = append(errs, fmt.Errorf("access: route %q points at undeclared module %q", e.Path, e.Module))
		}
	}
	for _, m := range policy.modules {
		if !routed[m] {
			errs = append(errs, fmt.Errorf("access: module %q has no route", m))
		}
	}

	return errors.Join(errs...)
}
