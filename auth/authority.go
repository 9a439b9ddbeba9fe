package auth

// Account roles as stored in the accounts table.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleClerk   = "clerk"
)

// Role authorities. Each role grants a ROLE_* marker plus the fine-grained
// permissions the HTTP rule table keys on.
const (
	AuthorityAdmin   = "ROLE_ADMIN"
	AuthorityManager = "ROLE_MANAGER"
	AuthorityClerk   = "ROLE_CLERK"

	PermOfficeWrite   = "office:write"
	PermStaffWrite    = "staff:write"
	PermDocumentWrite = "document:write"
	PermAccountWrite  = "account:write"
)

var roleAuthorities = map[string][]string{
	RoleAdmin:   {AuthorityAdmin, PermOfficeWrite, PermStaffWrite, PermDocumentWrite, PermAccountWrite},
	RoleManager: {AuthorityManager, PermStaffWrite, PermDocumentWrite},
	RoleClerk:   {AuthorityClerk, PermDocumentWrite},
}

// RoleAuthorities returns the authority set granted by a role. Unknown roles
// grant nothing, which leaves the account authenticated but unprivileged.
func RoleAuthorities(role string) []string {
	granted, ok := roleAuthorities[role]
	if !ok {
		return nil
	}
	out := make([]string, len(granted))
	copy(out, granted)
	return out
}

// KnownRole reports whether the role has a defined authority mapping.
func KnownRole(role string) bool {
	_, ok := roleAuthorities[role]
	return ok
}
