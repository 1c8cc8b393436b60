package persistence

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence/models"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/repo"
)

const (
	organisationFindQuery = `
        SELECT
            o.id,
            o.creator_id,
            o.name,
            o.description,
            o.email,
            o.avatar_url,
            o.is_public,
            o.org_type,
            (SELECT COUNT(*) FROM organisation_members m WHERE m.organisation_id = o.id) AS member_count,
            o.created_at,
            o.updated_at
        FROM organisations o`

	organisationUpdateQuery = `
        UPDATE organisations
        SET name = $1,
            description = $2,
            email = $3,
            avatar_url = $4,
            is_public = $5,
            updated_at = NOW()
        WHERE id = $6`

	organisationDeleteQuery = `DELETE FROM organisations WHERE id = $1`
)

type PgOrganisationRepository struct{}

func NewOrganisationRepository() organisation.Repository {
	return &PgOrganisationRepository{}
}

func (g *PgOrganisationRepository) GetByID(ctx context.Context, id uuid.UUID) (organisation.Organisation, error) {
	return g.queryOne(ctx, organisationFindQuery+" WHERE o.id = $1", id)
}

func (g *PgOrganisationRepository) GetByName(ctx context.Context, name string) (organisation.Organisation, error) {
	return g.queryOne(ctx, organisationFindQuery+" WHERE LOWER(o.name) = LOWER($1)", strings.TrimSpace(name))
}

func (g *PgOrganisationRepository) Create(ctx context.Context, data organisation.Organisation) (organisation.Organisation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organisation.Organisation{}, err
	}

	m := toDBOrganisation(data)
	query := repo.Insert(
		"organisations",
		[]string{"id", "creator_id", "name", "description", "email", "avatar_url", "is_public", "org_type"},
		"id",
	)
	if err := tx.QueryRow(
		ctx,
		query,
		m.ID,
		m.CreatorID,
		m.Name,
		m.Description,
		m.Email,
		m.AvatarURL,
		m.IsPublic,
		m.OrgType,
	).Scan(&m.ID); err != nil {
		if uniqueErr := organisationUniqueViolation(err); uniqueErr != nil {
			return organisation.Organisation{}, uniqueErr
		}
		return organisation.Organisation{}, errors.Wrap(err, "failed to create organisation")
	}
	return g.GetByID(ctx, m.ID)
}

func (g *PgOrganisationRepository) Update(ctx context.Context, data organisation.Organisation) (organisation.Organisation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organisation.Organisation{}, err
	}

	m := toDBOrganisation(data)
	tag, err := tx.Exec(ctx, organisationUpdateQuery, m.Name, m.Description, m.Email, m.AvatarURL, m.IsPublic, m.ID)
	if err != nil {
		if uniqueErr := organisationUniqueViolation(err); uniqueErr != nil {
			return organisation.Organisation{}, uniqueErr
		}
		return organisation.Organisation{}, errors.Wrap(err, "failed to update organisation")
	}
	if tag.RowsAffected() == 0 {
		return organisation.Organisation{}, organisation.ErrNotFound
	}
	return g.GetByID(ctx, m.ID)
}

func (g *PgOrganisationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, organisationDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete organisation")
	}
	if tag.RowsAffected() == 0 {
		return organisation.ErrNotFound
	}
	return nil
}

func (g *PgOrganisationRepository) queryOne(ctx context.Context, query string, args ...any) (organisation.Organisation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organisation.Organisation{}, err
	}

	var m models.Organisation
	if err := tx.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.CreatorID,
		&m.Name,
		&m.Description,
		&m.Email,
		&m.AvatarURL,
		&m.IsPublic,
		&m.OrgType,
		&m.MemberCount,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return organisation.Organisation{}, organisation.ErrNotFound
		}
		return organisation.Organisation{}, errors.Wrap(err, "failed to query organisation")
	}
	return toDomainOrganisation(m), nil
}

func organisationUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return organisation.ErrEmailTaken
	}
	return organisation.ErrNameTaken
}
