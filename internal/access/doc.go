// Package access resolves which dashboard modules and routes a role may use.
//
// The package owns two static tables:
//   - the policy table, a total mapping from (Role, Module) to allow/deny
//   - the route table, a one-to-one mapping from Module to URL path
//
// Every lookup fails closed: an absent or unknown role, an unknown module or
// a missing table entry is treated as a denial, never as an error. Lookups are
// pure and safe for concurrent use.
package access
