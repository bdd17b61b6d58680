// Package constant holds cross-module permission identifiers.
package constant

const (
	// PermExchangeAdmin guards the admin surface of the exchange module.
	PermExchangeAdmin = "exchange:admin"

	PermActRead   = "read"
	PermActWrite  = "write"
	PermActDelete = "delete"
)

// RoleAdmin is the casbin role granted to configured admin emails.
const RoleAdmin = "role:admin"
