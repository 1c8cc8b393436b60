package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
)

const (
	permissionUpsertQuery = `
        INSERT INTO lkp_org_permissions (id, name, description, requires_hierarchy)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name,
            description = EXCLUDED.description,
            requires_hierarchy = EXCLUDED.requires_hierarchy`

	permissionCountStaleQuery = `SELECT COUNT(*) FROM lkp_org_permissions WHERE NOT (id = ANY($1))`
)

// SyncPermissionCatalog reconciles the permissions lookup table with the
// in-code catalog. Rows present in the table but absent from the catalog are
// an error: deleting them could orphan position grants.
func SyncPermissionCatalog(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(permissions.Permissions))
	for _, p := range permissions.Permissions {
		if _, err := tx.Exec(ctx, permissionUpsertQuery, p.ID, p.Name, p.Description, p.RequiresHierarchy); err != nil {
			return errors.Wrapf(err, "failed to sync permission %q", p.Name)
		}
		ids = append(ids, p.ID)
	}

	var stale int64
	if err := tx.QueryRow(ctx, permissionCountStaleQuery, ids).Scan(&stale); err != nil {
		return errors.Wrap(err, "failed to check permission catalog drift")
	}
	if stale > 0 {
		return errors.Errorf("permission table holds %d entries unknown to the catalog", stale)
	}
	return nil
}
