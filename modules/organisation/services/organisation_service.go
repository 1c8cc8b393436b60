package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/eventbus"
)

// ownerPositionRank seats the creator above any position members create
// through the API afterwards.
const ownerPositionRank = 100

type OrganisationService struct {
	repo      organisation.Repository
	positions position.Repository
	members   member.Repository
	perms     *PermissionService
	publisher eventbus.EventBus
}

func NewOrganisationService(
	repo organisation.Repository,
	positions position.Repository,
	members member.Repository,
	perms *PermissionService,
	publisher eventbus.EventBus,
) *OrganisationService {
	return &OrganisationService{
		repo:      repo,
		positions: positions,
		members:   members,
		perms:     perms,
		publisher: publisher,
	}
}

func (s *OrganisationService) GetByID(ctx context.Context, id uuid.UUID) (organisation.Organisation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrganisationService) GetByName(ctx context.Context, name string) (organisation.Organisation, error) {
	return s.repo.GetByName(ctx, name)
}

// Create persists the organisation together with its default "Owner"
// position and the creator's membership, so every organisation starts with
// exactly one default position and the creator seated on it.
func (s *OrganisationService) Create(ctx context.Context, data organisation.Organisation) (organisation.Organisation, error) {
	var created organisation.Organisation
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		org, err := s.repo.Create(txCtx, data)
		if err != nil {
			return err
		}

		owner := position.New(
			org.ID(),
			"Owner",
			ownerPositionRank,
			position.WithDefault(true),
			position.WithPermissions(permissions.Permissions),
		)
		if owner, err = s.positions.Create(txCtx, owner); err != nil {
			return err
		}

		if _, err := s.members.Create(txCtx, member.New(org.ID(), org.CreatorID(), owner.ID())); err != nil {
			return err
		}

		created, err = s.repo.GetByID(txCtx, org.ID())
		return err
	})
	if err != nil {
		return organisation.Organisation{}, err
	}

	s.publisher.Publish(organisation.CreatedEvent{Result: created})
	return created, nil
}

func (s *OrganisationService) Update(ctx context.Context, data organisation.Organisation) (organisation.Organisation, error) {
	if _, err := s.perms.Require(ctx, data.ID(), permissions.OrganisationEdit); err != nil {
		return organisation.Organisation{}, err
	}

	var updated organisation.Organisation
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return organisation.Organisation{}, err
	}

	s.publisher.Publish(organisation.UpdatedEvent{Result: updated})
	return updated, nil
}

func (s *OrganisationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.perms.Require(ctx, id, permissions.OrganisationDelete); err != nil {
		return err
	}

	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(organisation.DeletedEvent{ID: id})
	return nil
}
