package persistence

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence/models"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/repo"
)

const (
	invitationFindQuery = `
        SELECT
            i.id,
            i.organisation_id,
            i.user_id,
            i.email,
            i.token,
            i.status,
            i.expires_at,
            i.created_at,
            i.updated_at
        FROM organisation_invites i`

	invitationUpdateStatusQuery = `
        UPDATE organisation_invites
        SET status = $1, updated_at = NOW()
        WHERE id = $2`

	invitationExpireStaleQuery = `
        UPDATE organisation_invites
        SET status = 'EXPIRED', updated_at = NOW()
        WHERE status = 'PENDING' AND expires_at < NOW()`

	invitationDeleteQuery = `DELETE FROM organisation_invites WHERE id = $1`
)

type PgInvitationRepository struct{}

func NewInvitationRepository() invitation.Repository {
	return &PgInvitationRepository{}
}

func (g *PgInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (invitation.Invitation, error) {
	return g.queryOne(ctx, invitationFindQuery+" WHERE i.id = $1", id)
}

func (g *PgInvitationRepository) GetPendingByToken(ctx context.Context, token string) (invitation.Invitation, error) {
	return g.queryOne(ctx, invitationFindQuery+" WHERE i.token = $1 AND i.status = 'PENDING'", token)
}

func (g *PgInvitationRepository) FindPending(ctx context.Context, organisationID uuid.UUID, email string) (invitation.Invitation, error) {
	return g.queryOne(
		ctx,
		invitationFindQuery+" WHERE i.organisation_id = $1 AND i.email = $2 AND i.status = 'PENDING'",
		organisationID,
		strings.ToLower(strings.TrimSpace(email)),
	)
}

func (g *PgInvitationRepository) GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]invitation.Invitation, error) {
	return g.queryMany(ctx, invitationFindQuery+" WHERE i.organisation_id = $1 ORDER BY i.created_at DESC", organisationID)
}

func (g *PgInvitationRepository) GetByEmail(ctx context.Context, email string) ([]invitation.Invitation, error) {
	return g.queryMany(
		ctx,
		invitationFindQuery+" WHERE i.email = $1 ORDER BY i.created_at DESC",
		strings.ToLower(strings.TrimSpace(email)),
	)
}

func (g *PgInvitationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]invitation.Invitation, error) {
	return g.queryMany(ctx, invitationFindQuery+" WHERE i.user_id = $1 ORDER BY i.created_at DESC", userID)
}

func (g *PgInvitationRepository) Create(ctx context.Context, data invitation.Invitation) (invitation.Invitation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return invitation.Invitation{}, err
	}

	m := toDBInvitation(data)
	query := repo.Insert(
		"organisation_invites",
		[]string{"id", "organisation_id", "user_id", "email", "token", "status", "expires_at"},
		"id",
	)
	if err := tx.QueryRow(ctx, query, m.ID, m.OrganisationID, m.UserID, m.Email, m.Token, m.Status, m.ExpiresAt).Scan(&m.ID); err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return invitation.Invitation{}, invitation.ErrActiveInviteExists
		}
		return invitation.Invitation{}, errors.Wrap(err, "failed to create invitation")
	}
	return g.GetByID(ctx, m.ID)
}

func (g *PgInvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status invitation.Status) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, invitationUpdateStatusQuery, string(status), id)
	if err != nil {
		return errors.Wrap(err, "failed to update invitation status")
	}
	if tag.RowsAffected() == 0 {
		return invitation.ErrNotFound
	}
	return nil
}

func (g *PgInvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, invitationDeleteQuery, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete invitation")
	}
	if tag.RowsAffected() == 0 {
		return invitation.ErrNotFound
	}
	return nil
}

func (g *PgInvitationRepository) ExpireStale(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, invitationExpireStaleQuery)
	if err != nil {
		return 0, errors.Wrap(err, "failed to expire stale invitations")
	}
	return tag.RowsAffected(), nil
}

func (g *PgInvitationRepository) queryOne(ctx context.Context, query string, args ...any) (invitation.Invitation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return invitation.Invitation{}, err
	}

	var m models.Invitation
	if err := tx.QueryRow(ctx, query, args...).Scan(
		&m.ID,
		&m.OrganisationID,
		&m.UserID,
		&m.Email,
		&m.Token,
		&m.Status,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return invitation.Invitation{}, invitation.ErrNotFound
		}
		return invitation.Invitation{}, errors.Wrap(err, "failed to query invitation")
	}
	return toDomainInvitation(m), nil
}

func (g *PgInvitationRepository) queryMany(ctx context.Context, query string, args ...any) ([]invitation.Invitation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query invitations")
	}
	defer rows.Close()

	out := make([]invitation.Invitation, 0)
	for rows.Next() {
		var m models.Invitation
		if err := rows.Scan(
			&m.ID,
			&m.OrganisationID,
			&m.UserID,
			&m.Email,
			&m.Token,
			&m.Status,
			&m.ExpiresAt,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan invitation")
		}
		out = append(out, toDomainInvitation(m))
	}
	return out, rows.Err()
}
