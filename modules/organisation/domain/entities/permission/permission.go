package permission

import "github.com/yoku/guildmaster/pkg/serrors"

// Permission is an atomic capability a position can grant. IDs are stable
// integers shared with the lkp_org_permissions lookup table.
//
// RequiresHierarchy marks permissions whose check must also compare the
// holder's rank against the target's position (e.g. removing another member).
type Permission struct {
	ID                int
	Name              string
	Description       string
	RequiresHierarchy bool
}

// ErrUnknown marks a permission name that is not part of the catalog.
func ErrUnknown(name string) error {
	return serrors.InvalidArgument("PERMISSION_UNKNOWN", "unknown permission: "+name)
}
