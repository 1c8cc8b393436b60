package composables

import "github.com/yoku/guildmaster/pkg/serrors"

// ErrForbidden is the shared permission-denied sentinel. Services return it
// (or wrap it) whenever an authorization predicate fails.
var ErrForbidden = serrors.PermissionDenied("FORBIDDEN", "permission denied")
