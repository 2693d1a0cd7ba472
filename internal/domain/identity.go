package domain

import "fmt"

// Role is one of the closed set of roles the catalog recognizes.
type Role string

// The defined roles. Authorization decisions are made purely in terms of
// these values; anything else is rejected at token issuance.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw string into a Role.
// Returns ErrInvalidRole if the value is not part of the defined role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// ParseRoles converts a slice of raw strings into roles, failing on the
// first value outside the defined role set.
func ParseRoles(values []string) ([]Role, error) {
	roles := make([]Role, 0, len(values))
	for _, v := range values {
		role, err := ParseRole(v)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Identity is the authenticated subject derived from a verified token.
// It is reconstructed per request from token claims and never persisted.
type Identity struct {
	// Subject is the opaque subject identifier the token was issued for,
	// typically a UUID.
	Subject string

	// Roles is the role set embedded in the token. It may be empty, in
	// which case the identity passes authentication but fails any
	// role-gated route.
	Roles []Role
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role Role) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether every role in required is present in the
// identity's role set. Extra roles on the identity do not disqualify it;
// an empty required set is trivially satisfied.
func (i Identity) HasAllRoles(required []Role) bool {
	for _, r := range required {
		if !i.HasRole(r) {
			return false
		}
	}
	return true
}
