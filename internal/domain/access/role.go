package access

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Grantable reports whether the role may be handed out through a grant.
// Ownership is derived from the file record and is never grantable.
func (r Role) Grantable() bool {
	return r == RoleViewer || r == RoleEditor
}

func (r Role) String() string { return string(r) }
