package auth

// Decision is the outcome of a policy check. Adapters translate it to a
// surface-specific response; the policy itself never writes one.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated: nobody is logged in. API: 401, views: redirect
	// to the login page.
	DenyUnauthenticated
	// DenyForbidden: logged in, but not allowed. 403 on both surfaces.
	DenyForbidden
)

func RequireAuthenticated(id *Identity) Decision {
	if id == nil {
		return DenyUnauthenticated
	}
	return Allow
}

func RequireAdmin(id *Identity) Decision {
	if id == nil {
		return DenyUnauthenticated
	}
	if !id.IsAdmin() {
		return DenyForbidden
	}
	return Allow
}

// RequireOwner allows only the resource's author. Admins get no bypass
// here: edits are author-only, unlike deletes (admin-only) and single
// reads (owner-or-admin). That asymmetry is deliberate.
func RequireOwner(id *Identity, authorID int64) Decision {
	if id == nil {
		return DenyUnauthenticated
	}
	if id.UserID != authorID {
		return DenyForbidden
	}
	return Allow
}

func RequireOwnerOrAdmin(id *Identity, authorID int64) Decision {
	if id == nil {
		return DenyUnauthenticated
	}
	if id.UserID != authorID && !id.IsAdmin() {
		return DenyForbidden
	}
	return Allow
}
