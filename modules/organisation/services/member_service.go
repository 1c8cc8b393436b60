package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/invitation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/member"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/organisation"
	"github.com/yoku/guildmaster/modules/organisation/domain/aggregates/position"
	"github.com/yoku/guildmaster/modules/organisation/domain/entities/userprofile"
	"github.com/yoku/guildmaster/modules/organisation/permissions"
	"github.com/yoku/guildmaster/pkg/composables"
	"github.com/yoku/guildmaster/pkg/eventbus"
)

// MemberWithProfile pairs a membership with the best-effort user-directory
// profile. Profile is nil when the directory lookup failed or the user is
// unknown to it.
type MemberWithProfile struct {
	Member  member.Member
	Profile *userprofile.Profile
}

type MemberService struct {
	repo      member.Repository
	orgs      organisation.Repository
	posRepo   position.Repository
	cache     *PositionCacheService
	perms     *PermissionService
	directory userprofile.Directory
	publisher eventbus.EventBus
}

func NewMemberService(
	repo member.Repository,
	orgs organisation.Repository,
	posRepo position.Repository,
	cache *PositionCacheService,
	perms *PermissionService,
	directory userprofile.Directory,
	publisher eventbus.EventBus,
) *MemberService {
	return &MemberService{
		repo:      repo,
		orgs:      orgs,
		posRepo:   posRepo,
		cache:     cache,
		perms:     perms,
		directory: directory,
		publisher: publisher,
	}
}

func (s *MemberService) Get(ctx context.Context, organisationID, userID uuid.UUID) (member.Member, error) {
	return s.repo.Get(ctx, organisationID, userID)
}

func (s *MemberService) GetByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]MemberWithProfile, error) {
	members, err := s.repo.GetByOrganisationID(ctx, organisationID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, members), nil
}

func (s *MemberService) GetByUserID(ctx context.Context, userID uuid.UUID) ([]member.Member, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *MemberService) GetByPositionID(ctx context.Context, positionID uuid.UUID) ([]MemberWithProfile, error) {
	members, err := s.repo.GetByPositionID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, members), nil
}

// Remove takes a member out of the organisation. The creator can never be
// removed; a member may always remove themself; removing anyone else needs
// MEMBER_REMOVE and a strictly higher rank than the target.
func (s *MemberService) Remove(ctx context.Context, organisationID, userID uuid.UUID) error {
	org, err := s.orgs.GetByID(ctx, organisationID)
	if err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, organisationID, userID); err != nil {
		return err
	}

	if userID == org.CreatorID() {
		return member.ErrCreatorRemoval
	}

	requesterID, ok := composables.UseUserID(ctx)
	if !ok {
		return composables.ErrForbidden
	}
	if requesterID != userID {
		if _, err := s.perms.RequireOver(ctx, organisationID, userID, permissions.MemberRemove); err != nil {
			return err
		}
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, organisationID, userID)
	})
	if err != nil {
		return err
	}

	s.cache.EvictUser(ctx, organisationID, userID)
	s.publisher.Publish(member.RemovedEvent{OrganisationID: organisationID, UserID: userID})
	return nil
}

// AddFromInvitation seats the resolved user on the organisation's default
// position. The invitation must already have been validated as acceptable.
// Runs on the caller's transaction when one is on the context, so invitation
// acceptance commits the status change and the membership together.
func (s *MemberService) AddFromInvitation(ctx context.Context, inv invitation.Invitation, user userprofile.Profile) (member.Member, error) {
	pos, err := s.posRepo.GetDefault(ctx, inv.OrganisationID())
	if err != nil {
		return member.Member{}, err
	}

	added, err := s.repo.Create(ctx, member.New(inv.OrganisationID(), user.ID, pos.ID()))
	if err != nil {
		return member.Member{}, err
	}

	s.publisher.Publish(member.AddedEvent{Result: added})
	return added, nil
}

// MoveToPosition rebinds a member to another position in the same
// organisation. Requires MEMBER_UPDATE_ROLE; no rank comparison, any holder
// may move any member.
func (s *MemberService) MoveToPosition(ctx context.Context, userID, fromPositionID, toPositionID uuid.UUID) error {
	if fromPositionID == toPositionID {
		return member.ErrSamePosition
	}

	target, err := s.posRepo.GetByID(ctx, toPositionID)
	if err != nil {
		return err
	}
	if _, err := s.perms.Require(ctx, target.OrganisationID(), permissions.MemberUpdateRole); err != nil {
		return err
	}

	m, err := s.repo.Get(ctx, target.OrganisationID(), userID)
	if err != nil {
		return err
	}
	if m.PositionID() != fromPositionID {
		return member.ErrNotFound
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.UpdatePosition(txCtx, target.OrganisationID(), userID, toPositionID)
	})
	if err != nil {
		return err
	}

	s.cache.EvictUser(ctx, target.OrganisationID(), userID)
	s.publisher.Publish(member.PositionChangedEvent{Result: m.MovedTo(toPositionID)})
	return nil
}

// withProfiles enriches members with directory profiles. Directory failures
// are logged and leave the profiles nil.
func (s *MemberService) withProfiles(ctx context.Context, members []member.Member) []MemberWithProfile {
	out := make([]MemberWithProfile, 0, len(members))
	for _, m := range members {
		out = append(out, MemberWithProfile{Member: m})
	}
	if len(members) == 0 {
		return out
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID())
	}
	profiles, err := s.directory.FindByIDs(ctx, ids)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("user directory lookup failed, returning members without profiles")
		return out
	}

	byID := make(map[uuid.UUID]userprofile.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	for i := range out {
		if p, found := byID[out[i].Member.UserID()]; found {
			profile := p
			out[i].Profile = &profile
		}
	}
	return out
}
