package persistence

import (
	"context"
	stderrors "errors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/infrastructure/persistence/models"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/repo"
)

const (
	memberFindQuery = `
        SELECT
            m.organisation_id,
            m.user_id,
            m.position_id,
            m.member_since
        FROM organisation_members m`

	memberUpdatePositionQuery = `
        UPDATE organisation_members
        SET position_id = $1
        WHERE organisation_id = $2 AND user_id = $3`

	memberMoveAllQuery = `
        UPDATE organisation_members
        SET position_id = $1
        WHERE position_id = $2`

	memberDeleteQuery = `DELETE FROM organisation_members WHERE organisation_id = $1 AND user_id = $2`
)

type PgMemberRepository struct{}

func NewMemberRepository() member.Repository {
	return &PgMemberRepository{}
}

func (g *PgMemberRepository) Get(ctx context.Context, organisationID, userID uuid.UUID) (member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, err
	}

	var m models.Member
	err = tx.QueryRow(ctx, memberFindQuery+" WHERE m.organisation_id = $1 AND m.user_id = $2", organisationID, userID).
		Scan(&m.OrganisationID, &m.UserID, &m.PositionID, &m.MemberSince)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrNotFound
		}
		return member.Member{}, errors.Wrap(err, "failed to query member")
	}
	return toDomainMember(m), nil
}

func (g *PgMemberRepository) GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]member.Member, error) {
	return g.queryMembers(ctx, memberFindQuery+" WHERE m.organisation_id = $1 ORDER BY m.member_since", organisationID)
}

func (g *PgMemberRepository) GetByPositionID(ctx context.Context, positionID uuid.UUID) ([]member.Member, error) {
	return g.queryMembers(ctx, memberFindQuery+" WHERE m.position_id = $1", positionID)
}

func (g *PgMemberRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]member.Member, error) {
	return g.queryMembers(ctx, memberFindQuery+" WHERE m.user_id = $1", userID)
}

func (g *PgMemberRepository) Create(ctx context.Context, data member.Member) (member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, err
	}

	m := toDBMember(data)
	query := repo.Insert(
		"organisation_members",
		[]string{"organisation_id", "user_id", "position_id", "member_since"},
	)
	if _, err := tx.Exec(ctx, query, m.OrganisationID, m.UserID, m.PositionID, m.MemberSince); err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return member.Member{}, member.ErrAlreadyExists
		}
		return member.Member{}, errors.Wrap(err, "failed to create member")
	}
	return g.Get(ctx, m.OrganisationID, m.UserID)
}

func (g *PgMemberRepository) UpdatePosition(ctx context.Context, organisationID, userID, positionID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, memberUpdatePositionQuery, positionID, organisationID, userID)
	if err != nil {
		return errors.Wrap(err, "failed to update member position")
	}
	if tag.RowsAffected() == 0 {
		return member.ErrNotFound
	}
	return nil
}

func (g *PgMemberRepository) MoveAllToPosition(ctx context.Context, fromPositionID, toPositionID uuid.UUID) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, memberMoveAllQuery, toPositionID, fromPositionID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to move members between positions")
	}
	return tag.RowsAffected(), nil
}

func (g *PgMemberRepository) Delete(ctx context.Context, organisationID, userID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, memberDeleteQuery, organisationID, userID)
	if err != nil {
		return errors.Wrap(err, "failed to delete member")
	}
	if tag.RowsAffected() == 0 {
		return member.ErrNotFound
	}
	return nil
}

func (g *PgMemberRepository) queryMembers(ctx context.Context, query string, args ...any) ([]member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query members")
	}
	defer rows.Close()

	out := make([]member.Member, 0)
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.OrganisationID, &m.UserID, &m.PositionID, &m.MemberSince); err != nil {
			return nil, errors.Wrap(err, "failed to scan member")
		}
		out = append(out, toDomainMember(m))
	}
	return out, rows.Err()
}
