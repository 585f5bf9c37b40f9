package access

// Account roles, in lifecycle order. A pending account exists but cannot
// authenticate until an admin promotes it.
const (
	RolePending = "pending"
	RoleEditor  = "editor"
	RoleAdmin   = "admin"
)

// Can reports whether an identity holding role may perform an operation
// gated on required. Admin satisfies every gate; any other role only
// satisfies an exact match.
func Can(role, required string) bool {
	if role == RoleAdmin {
		return true
	}
	return role == required
}

// CanAuthenticate reports whether an account in the given role is allowed
// to hold a session at all.
func CanAuthenticate(role string) bool {
	return role != RolePending
}
