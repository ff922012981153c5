package domain

import "strconv"

// Role identifies one of the four principal roles. The numeric values are
// part of the external contract (login payloads, notification recipient
// keys) and must not be renumbered.
type Role int

const (
	RoleAdmin    Role = 1
	RoleManager  Role = 2
	RoleEmployee Role = 3
	RoleClient   Role = 4
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// String returns the numeric role id as a string, the form carried in JWT
// claims and URL parameters.
func (r Role) String() string {
	return strconv.Itoa(int(r))
}

// ParseRole converts a numeric role string back into a Role.
// Unknown values yield ok=false.
func ParseRole(s string) (Role, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	r := Role(n)
	return r, r.Valid()
}
