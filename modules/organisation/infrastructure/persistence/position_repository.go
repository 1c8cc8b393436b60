package persistence

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/permission"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence/models"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/repo"
)

const (
	positionFindQuery = `
        SELECT
            p.id,
            p.organisation_id,
            p.name,
            p.rank,
            p.is_default
        FROM organisation_positions p`

	positionPermissionsQuery = `
        SELECT pp.position_id, pp.permission_id
        FROM position_permissions pp`

	positionUserQuery = positionFindQuery + `
        JOIN organisation_members m ON m.position_id = p.id
        WHERE m.organisation_id = $1 AND m.user_id = $2`

	positionUpdateQuery = `
        UPDATE organisation_positions
        SET name = $1, rank = $2, is_default = $3
        WHERE id = $4`

	positionClearDefaultQuery = `
        UPDATE organisation_positions
        SET is_default = FALSE
        WHERE organisation_id = $1 AND is_default = TRUE`

	positionPermissionInsertQuery = `INSERT INTO position_permissions (position_id, permission_id) VALUES`

	positionPermissionDeleteQuery = `
        DELETE FROM position_permissions
        WHERE position_id = $1 AND permission_id = ANY($2)`

	positionDeleteQuery = `DELETE FROM organisation_positions WHERE id = $1`
)

type PgPositionRepository struct{}

func NewPositionRepository() position.Repository {
	return &PgPositionRepository{}
}

func (g *PgPositionRepository) GetByID(ctx context.Context, id uuid.UUID) (position.Position, error) {
	return g.queryOne(ctx, positionFindQuery+" WHERE p.id = $1", id)
}

func (g *PgPositionRepository) GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]position.Position, error) {
	return g.queryMany(ctx, positionFindQuery+" WHERE p.organisation_id = $1 ORDER BY p.rank DESC, p.name", organisationID)
}

func (g *PgPositionRepository) GetDefault(ctx context.Context, organisationID uuid.UUID) (position.Position, error) {
	pos, err := g.queryOne(ctx, positionFindQuery+" WHERE p.organisation_id = $1 AND p.is_default = TRUE", organisationID)
	if stderrors.Is(err, position.ErrNotFound) {
		return position.Position{}, position.ErrNoDefault
	}
	return pos, err
}

func (g *PgPositionRepository) FindUserPosition(ctx context.Context, organisationID, userID uuid.UUID) (position.Position, error) {
	return g.queryOne(ctx, positionUserQuery, organisationID, userID)
}

func (g *PgPositionRepository) Create(ctx context.Context, data position.Position) (position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return position.Position{}, err
	}

	m := toDBPosition(data)
	query := repo.Insert(
		"organisation_positions",
		[]string{"id", "organisation_id", "name", "rank", "is_default"},
		"id",
	)
	if err := tx.QueryRow(ctx, query, m.ID, m.OrganisationID, m.Name, m.Rank, m.IsDefault).Scan(&m.ID); err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return position.Position{}, position.ErrNameTaken
		}
		return position.Position{}, errors.Wrap(err, "failed to create position")
	}

	if ids := data.PermissionIDs(); len(ids) > 0 {
		if err := g.AddPermissions(ctx, m.ID, ids); err != nil {
			return position.Position{}, err
		}
	}
	return g.GetByID(ctx, m.ID)
}

func (g *PgPositionRepository) Update(ctx context.Context, data position.Position) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	m := toDBPosition(data)
	tag, err := tx.Exec(ctx, positionUpdateQuery, m.Name, m.Rank, m.IsDefault, m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return position.ErrNameTaken
		}
		return errors.Wrap(err, "failed to update position")
	}
	if tag.RowsAffected() == 0 {
		return position.ErrNotFound
	}
	return nil
}

func (g *PgPositionRepository) ClearDefault(ctx context.Context, organisationID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, positionClearDefaultQuery, organisationID); err != nil {
		return errors.Wrap(err, "failed to clear default position")
	}
	return nil
}

func (g *PgPositionRepository) AddPermissions(ctx context.Context, positionID uuid.UUID, permissionIDs []int) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	values := make([]string, 0, len(permissionIDs))
	args := make([]any, 0, len(permissionIDs)+1)
	args = append(args, positionID)
	for i, id := range permissionIDs {
		values = append(values, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, id)
	}
	query := positionPermissionInsertQuery + " " + strings.Join(values, ", ") + " ON CONFLICT DO NOTHING"
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to grant position permissions")
	}
	return nil
}

func (g *PgPositionRepository) RemovePermissions(ctx context.Context, positionID uuid.UUID, permissionIDs []int) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, positionPermissionDeleteQuery, positionID, permissionIDs); err != nil {
		return errors.Wrap(err, "failed to revoke position permissions")
	}
	return nil
}

func (g *PgPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, positionDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete position")
	}
	if tag.RowsAffected() == 0 {
		return position.ErrNotFound
	}
	return nil
}

func (g *PgPositionRepository) queryOne(ctx context.Context, query string, args ...any) (position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return position.Position{}, err
	}

	var m models.Position
	if err := tx.QueryRow(ctx, query, args...).Scan(&m.ID, &m.OrganisationID, &m.Name, &m.Rank, &m.IsDefault); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrNotFound
		}
		return position.Position{}, errors.Wrap(err, "failed to query position")
	}

	perms, err := g.queryPermissions(ctx, m.ID)
	if err != nil {
		return position.Position{}, err
	}
	return toDomainPosition(m, perms[m.ID]), nil
}

func (g *PgPositionRepository) queryMany(ctx context.Context, query string, args ...any) ([]position.Position, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query positions")
	}
	defer rows.Close()

	dbRows := make([]models.Position, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var m models.Position
		if err := rows.Scan(&m.ID, &m.OrganisationID, &m.Name, &m.Rank, &m.IsDefault); err != nil {
			return nil, errors.Wrap(err, "failed to scan position")
		}
		dbRows = append(dbRows, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	perms, err := g.queryPermissions(ctx, ids...)
	if err != nil {
		return nil, err
	}

	out := make([]position.Position, 0, len(dbRows))
	for _, m := range dbRows {
		out = append(out, toDomainPosition(m, perms[m.ID]))
	}
	return out, nil
}

// queryPermissions resolves the granted permission ids of the given positions
// against the in-code catalog. Rows referencing ids absent from the catalog
// are skipped.
func (g *PgPositionRepository) queryPermissions(ctx context.Context, positionIDs ...uuid.UUID) (map[uuid.UUID][]*permission.Permission, error) {
	out := make(map[uuid.UUID][]*permission.Permission, len(positionIDs))
	if len(positionIDs) == 0 {
		return out, nil
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, positionPermissionsQuery+" WHERE pp.position_id = ANY($1)", positionIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query position permissions")
	}
	defer rows.Close()

	for rows.Next() {
		var m models.PositionPermission
		if err := rows.Scan(&m.PositionID, &m.PermissionID); err != nil {
			return nil, errors.Wrap(err, "failed to scan position permission")
		}
		if perm := permissions.ByID(m.PermissionID); perm != nil {
			out[m.PositionID] = append(out[m.PositionID], perm)
		}
	}
	return out, rows.Err()
}
